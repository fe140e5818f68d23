// Package notify turns two order snapshots into user-facing status-change
// messages. The order core only signals "state changed"; the message text
// lives out here with the surfaces that display it.
package notify

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dinehall/api/internal/model"
)

// Notification is one derived status-change message.
type Notification struct {
	OrderID uuid.UUID `json:"order_id"`
	Message string    `json:"message"`
}

// Diff compares the previous snapshot with the next one and derives the
// messages a dashboard would toast: new orders, order status changes,
// individual item status changes, and completed payments.
func Diff(prev, next []model.Order) []Notification {
	prevByID := make(map[uuid.UUID]model.Order, len(prev))
	for _, o := range prev {
		prevByID[o.ID] = o
	}

	var out []Notification
	for _, order := range next {
		before, existed := prevByID[order.ID]
		if !existed {
			out = append(out, Notification{
				OrderID: order.ID,
				Message: fmt.Sprintf("New order for table %d", order.TableNumber),
			})
			continue
		}

		if order.Status != before.Status {
			msg := fmt.Sprintf("Table %d: order is now %s", order.TableNumber, order.Status)
			if order.PaidAmount != nil && before.PaidAmount == nil {
				msg = fmt.Sprintf("Table %d: payment completed", order.TableNumber)
			}
			out = append(out, Notification{OrderID: order.ID, Message: msg})
		}

		out = append(out, diffItems(before, order)...)
	}
	return out
}

// diffItems reports items whose status moved independently of the order's.
// Bulk reassignments (the whole order changing status) are skipped so one
// transition doesn't fan out into a message per item.
func diffItems(before, after model.Order) []Notification {
	if before.Status != after.Status {
		return nil
	}

	prevByID := make(map[uuid.UUID]model.OrderItem, len(before.Items))
	for _, item := range before.Items {
		prevByID[item.ID] = item
	}

	var out []Notification
	for _, item := range after.Items {
		old, existed := prevByID[item.ID]
		if !existed {
			out = append(out, Notification{
				OrderID: after.ID,
				Message: fmt.Sprintf("Table %d: %s added to order", after.TableNumber, item.Name),
			})
			continue
		}
		if item.Status != old.Status {
			out = append(out, Notification{
				OrderID: after.ID,
				Message: fmt.Sprintf("Table %d: %s is %s", after.TableNumber, item.Name, item.Status),
			})
		}
	}
	return out
}
