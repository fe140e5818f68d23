package handler_test

import (
	"net/http"
	"testing"

	"github.com/dinehall/api/internal/enum"
)

func cartPath(env *testEnv) string {
	return "/tables/" + env.tableID.String() + "/cart"
}

func TestCartGet_EmptyByDefault(t *testing.T) {
	env := newTestEnv(t)

	rr := doRequest(t, env.router, "GET", cartPath(env), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}

	resp := decodeObject(t, rr)
	if resp["table_id"] != env.tableID.String() {
		t.Errorf("table_id: got %v, want %s", resp["table_id"], env.tableID)
	}
}

func TestCartReplace_Valid(t *testing.T) {
	env := newTestEnv(t)

	rr := doRequest(t, env.router, "PUT", cartPath(env), map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": env.colaID.String(), "quantity": 2, "notes": "no ice"},
		},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeObject(t, rr)
	items := resp["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].(map[string]interface{})["notes"] != "no ice" {
		t.Errorf("notes: got %v", items[0])
	}
}

func TestCartReplace_ZeroQuantity(t *testing.T) {
	env := newTestEnv(t)

	rr := doRequest(t, env.router, "PUT", cartPath(env), map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": env.colaID.String(), "quantity": 0},
		},
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestCartClear(t *testing.T) {
	env := newTestEnv(t)

	doRequest(t, env.router, "PUT", cartPath(env), map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": env.colaID.String(), "quantity": 1},
		},
	})

	rr := doRequest(t, env.router, "DELETE", cartPath(env), nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusNoContent)
	}

	rr = doRequest(t, env.router, "GET", cartPath(env), nil)
	resp := decodeObject(t, rr)
	if items, ok := resp["items"].([]interface{}); ok && len(items) != 0 {
		t.Errorf("expected empty cart, got %v", items)
	}
}

func TestCartCheckout_CreatesOrder(t *testing.T) {
	env := newTestEnv(t)

	doRequest(t, env.router, "PUT", cartPath(env), map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": env.colaID.String(), "quantity": 2},
		},
	})

	rr := doRequest(t, env.router, "POST", cartPath(env)+"/checkout", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeObject(t, rr)
	if resp["status"] != enum.OrderStatusPending {
		t.Errorf("order status: got %v, want pending", resp["status"])
	}
	if resp["total_amount"] != "5.98" {
		t.Errorf("total_amount: got %v, want 5.98", resp["total_amount"])
	}

	// The checkout consumed the cart.
	rr = doRequest(t, env.router, "GET", cartPath(env), nil)
	cart := decodeObject(t, rr)
	if items, ok := cart["items"].([]interface{}); ok && len(items) != 0 {
		t.Errorf("expected cart consumed, got %v", items)
	}
}

func TestCartCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	rr := doRequest(t, env.router, "POST", cartPath(env)+"/checkout", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
