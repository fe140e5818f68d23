package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModifierSelection references the options a customer picked from one of a
// menu item's modifier groups. The reference form used in carts and order
// requests; the core resolves it against the catalog into a ChosenModifier.
type ModifierSelection struct {
	GroupID   uuid.UUID   `json:"group_id"`
	OptionIDs []uuid.UUID `json:"option_ids"`
}

// ChosenModifier records the options a customer picked from one modifier
// group, snapshotted onto the order item at add-time.
type ChosenModifier struct {
	Name    string           `json:"name"`
	Options []ModifierOption `json:"options"`
}

// OrderItem is one line of an order. Name and price are snapshots taken
// when the item was added; later menu edits never change an open order.
type OrderItem struct {
	ID         uuid.UUID        `json:"id"`
	MenuItemID uuid.UUID        `json:"menu_item_id"`
	Name       string           `json:"name"`
	Price      decimal.Decimal  `json:"price"`
	Quantity   int              `json:"quantity"`
	Modifiers  []ChosenModifier `json:"modifiers,omitempty"`
	Notes      string           `json:"notes,omitempty"`
	Status     string           `json:"status"`
}

// LineTotal is (unit price + sum of chosen option deltas) * quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	unit := i.Price
	for _, mod := range i.Modifiers {
		for _, opt := range mod.Options {
			unit = unit.Add(opt.Price)
		}
	}
	return unit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Feedback is a post-payment rating left by the customer.
type Feedback struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// Order is a table's order with its items and derived aggregate state.
type Order struct {
	ID                  uuid.UUID        `json:"id"`
	TableID             uuid.UUID        `json:"table_id"`
	TableNumber         int              `json:"table_number"`
	Items               []OrderItem      `json:"items"`
	Status              string           `json:"status"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
	TotalAmount         decimal.Decimal  `json:"total_amount"`
	PaidAmount          *decimal.Decimal `json:"paid_amount,omitempty"`
	SplitBill           bool             `json:"split_bill,omitempty"`
	LoyaltyPointsEarned int              `json:"loyalty_points_earned,omitempty"`
	Feedback            *Feedback        `json:"feedback,omitempty"`
}

// Total sums the line totals of all current items.
func (o Order) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// Clone deep-copies the order so callers can hand out snapshots without
// exposing the owned collection.
func (o Order) Clone() Order {
	out := o
	out.Items = make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		out.Items[i] = item.Clone()
	}
	if o.PaidAmount != nil {
		paid := *o.PaidAmount
		out.PaidAmount = &paid
	}
	if o.Feedback != nil {
		fb := *o.Feedback
		out.Feedback = &fb
	}
	return out
}

// Clone deep-copies the item and its chosen modifiers.
func (i OrderItem) Clone() OrderItem {
	out := i
	if i.Modifiers != nil {
		out.Modifiers = make([]ChosenModifier, len(i.Modifiers))
		for j, mod := range i.Modifiers {
			opts := make([]ModifierOption, len(mod.Options))
			copy(opts, mod.Options)
			out.Modifiers[j] = ChosenModifier{Name: mod.Name, Options: opts}
		}
	}
	return out
}

// Cart is a per-table staging area for candidate order items. It exists
// only until an order is created from it.
type Cart struct {
	TableID   uuid.UUID  `json:"table_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem references a menu item with the customer's chosen quantity,
// modifier selections and note.
type CartItem struct {
	MenuItemID uuid.UUID           `json:"menu_item_id"`
	Quantity   int                 `json:"quantity"`
	Modifiers  []ModifierSelection `json:"modifiers,omitempty"`
	Notes      string              `json:"notes,omitempty"`
}
