package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/dinehall/api/internal/model"
	"github.com/dinehall/api/internal/notify"
)

// Event types pushed to dashboards.
const (
	EventOrdersSnapshot = "orders.snapshot"
	EventNotifications  = "notifications"
)

// OrderFeed adapts the order service's snapshot subscription to hub
// events. It remembers the previous snapshot so it can also derive and
// push the status-change notifications dashboards toast.
type OrderFeed struct {
	hub *Hub
	log *zap.Logger

	mu   sync.Mutex
	last []model.Order
}

// NewOrderFeed creates a feed over the hub, primed with the current
// orders so the first diff doesn't report everything as new.
func NewOrderFeed(hub *Hub, initial []model.Order, log *zap.Logger) *OrderFeed {
	return &OrderFeed{hub: hub, last: initial, log: log}
}

// Publish pushes the full snapshot and any derived notifications.
// Registered as an order service subscriber.
func (f *OrderFeed) Publish(orders []model.Order) {
	f.mu.Lock()
	changes := notify.Diff(f.last, orders)
	f.last = orders
	f.mu.Unlock()

	payload, err := json.Marshal(orders)
	if err != nil {
		f.log.Warn("marshal order snapshot", zap.Error(err))
		return
	}
	f.hub.Broadcast(Event{Type: EventOrdersSnapshot, Payload: payload})

	if len(changes) == 0 {
		return
	}
	notes, err := json.Marshal(changes)
	if err != nil {
		f.log.Warn("marshal notifications", zap.Error(err))
		return
	}
	f.hub.Broadcast(Event{Type: EventNotifications, Payload: notes})
}

// CurrentSnapshot returns the hello event for a freshly connected client.
func (f *OrderFeed) CurrentSnapshot() Event {
	f.mu.Lock()
	last := f.last
	f.mu.Unlock()

	payload, err := json.Marshal(last)
	if err != nil {
		payload = []byte("[]")
	}
	return Event{Type: EventOrdersSnapshot, Payload: payload}
}
