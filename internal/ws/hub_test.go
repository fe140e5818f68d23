package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/enum"
	"github.com/dinehall/api/internal/model"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, 256),
		log:  zap.NewNop(),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if !hub.clients[client] {
		t.Fatal("client not registered")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.clients[client] {
		t.Fatal("client still registered after unregister")
	}
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)
	client3 := mockClient(hub)

	hub.register <- client1
	hub.register <- client2
	hub.register <- client3
	time.Sleep(10 * time.Millisecond)

	testPayload := json.RawMessage(`[{"status":"ready"}]`)
	hub.Broadcast(Event{Type: EventOrdersSnapshot, Payload: testPayload})

	clients := []*Client{client1, client2, client3}
	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != EventOrdersSnapshot {
				t.Errorf("client%d: expected type %q, got %q", i+1, EventOrdersSnapshot, received.Type)
			}
			if string(received.Payload) != string(testPayload) {
				t.Errorf("client%d: expected payload %s, got %s", i+1, testPayload, received.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestEventSerialization(t *testing.T) {
	testCases := []struct {
		name  string
		event Event
	}{
		{
			name: "orders snapshot event",
			event: Event{
				Type:    EventOrdersSnapshot,
				Payload: json.RawMessage(`[{"id":"abc","status":"pending"}]`),
			},
		},
		{
			name: "notifications event",
			event: Event{
				Type:    EventNotifications,
				Payload: json.RawMessage(`[{"order_id":"def","message":"Table 3: order is now ready"}]`),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.event)
			if err != nil {
				t.Fatalf("Marshal error: %v", err)
			}

			var decoded Event
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}

			if decoded.Type != tc.event.Type {
				t.Errorf("Type mismatch: got %s, want %s", decoded.Type, tc.event.Type)
			}
			if string(decoded.Payload) != string(tc.event.Payload) {
				t.Errorf("Payload mismatch: got %s, want %s", decoded.Payload, tc.event.Payload)
			}
		})
	}
}

func TestOrderFeedPublishesSnapshotAndNotifications(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	feed := NewOrderFeed(hub, nil, zap.NewNop())
	feed.Publish([]model.Order{
		{ID: uuid.New(), TableNumber: 3, Status: enum.OrderStatusPending},
	})

	// First event: the full snapshot.
	select {
	case msg := <-client.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("unmarshal snapshot: %v", err)
		}
		if received.Type != EventOrdersSnapshot {
			t.Errorf("expected snapshot event, got %q", received.Type)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no snapshot event received")
	}

	// Second event: the "new order" notification derived from the diff.
	select {
	case msg := <-client.send:
		var received Event
		if err := json.Unmarshal(msg, &received); err != nil {
			t.Fatalf("unmarshal notifications: %v", err)
		}
		if received.Type != EventNotifications {
			t.Errorf("expected notifications event, got %q", received.Type)
		}
		var notes []struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(received.Payload, &notes); err != nil {
			t.Fatalf("unmarshal payload: %v", err)
		}
		if len(notes) != 1 || notes[0].Message != "New order for table 3" {
			t.Errorf("notifications: got %+v", notes)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no notifications event received")
	}
}

func TestOrderFeedCurrentSnapshot(t *testing.T) {
	hub := NewHub()

	orders := []model.Order{{ID: uuid.New(), TableNumber: 5, Status: enum.OrderStatusReady}}
	feed := NewOrderFeed(hub, orders, zap.NewNop())

	event := feed.CurrentSnapshot()
	if event.Type != EventOrdersSnapshot {
		t.Fatalf("expected snapshot event, got %q", event.Type)
	}

	var decoded []model.Order
	if err := json.Unmarshal(event.Payload, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if len(decoded) != 1 || decoded[0].TableNumber != 5 {
		t.Errorf("snapshot payload: got %+v", decoded)
	}
}

func TestOrderFeedUnchangedSnapshotSkipsNotifications(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	orders := []model.Order{{ID: uuid.New(), TableNumber: 2, Status: enum.OrderStatusPending}}
	feed := NewOrderFeed(hub, orders, zap.NewNop())
	feed.Publish(orders)

	// Snapshot always goes out.
	select {
	case <-client.send:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("no snapshot event received")
	}

	// No diff, so no notifications event follows.
	select {
	case msg := <-client.send:
		t.Fatalf("unexpected second event: %s", msg)
	case <-time.After(50 * time.Millisecond):
	}
}
