package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/enum"
	"github.com/dinehall/api/internal/handler"
	"github.com/dinehall/api/internal/model"
	"github.com/dinehall/api/internal/service"
)

// testEnv wires the full handler surface over in-memory services, no store.
type testEnv struct {
	router  *chi.Mux
	orders  *service.OrderService
	tables  *service.TableRegistry
	carts   *service.CartService
	tableID uuid.UUID
	pizzaID uuid.UUID
	colaID  uuid.UUID
	spiceID uuid.UUID
	mildID  uuid.UUID
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		tableID: uuid.New(),
		pizzaID: uuid.New(),
		colaID:  uuid.New(),
		spiceID: uuid.New(),
		mildID:  uuid.New(),
	}

	menuItems := []model.MenuItem{
		{
			ID:       env.pizzaID,
			Name:     "Margherita",
			Price:    dec(t, "12.99"),
			Category: "pizza",
			Modifiers: []model.ModifierGroup{
				{
					ID:       env.spiceID,
					Name:     "Spice Level",
					Required: true,
					Options: []model.ModifierOption{
						{ID: env.mildID, Name: "Mild", Price: dec(t, "0")},
					},
				},
			},
		},
		{ID: env.colaID, Name: "Cola", Price: dec(t, "2.99"), Category: "drinks"},
	}
	categories := []model.MenuCategory{
		{ID: uuid.New(), Key: "pizza", Name: "Pizza"},
		{ID: uuid.New(), Key: "drinks", Name: "Drinks"},
	}

	env.tables = service.NewTableRegistry([]model.Table{
		{ID: env.tableID, Number: 3, Capacity: 4, Status: enum.TableStatusAvailable},
	}, nil)
	menu := service.NewMenuCatalog(menuItems, categories)
	env.orders = service.NewOrderService(nil, env.tables, menu, nil)
	env.carts = service.NewCartService(nil, menu, env.orders, nil)
	reports := service.NewReportService(env.orders, menu)
	inventory := service.NewInventoryService([]model.InventoryItem{
		{ID: uuid.New(), Name: "Flour", Stock: 2, Threshold: 5, Unit: "kg", Price: dec(t, "1.20")},
		{ID: uuid.New(), Name: "Tomatoes", Stock: 50, Threshold: 10, Unit: "kg", Price: dec(t, "2.00")},
	})

	log := zap.NewNop()
	r := chi.NewRouter()

	orderHandler := handler.NewOrderHandler(env.orders, log)
	r.Route("/orders", func(r chi.Router) {
		orderHandler.RegisterRoutes(r)
		orderHandler.RegisterStaffRoutes(r)
	})

	tableHandler := handler.NewTableHandler(env.tables, env.orders, log)
	cartHandler := handler.NewCartHandler(env.carts, log)
	r.Route("/tables", func(r chi.Router) {
		tableHandler.RegisterRoutes(r)
		tableHandler.RegisterStaffRoutes(r)
		cartHandler.RegisterRoutes(r)
	})

	r.Route("/menu", handler.NewMenuHandler(menu).RegisterRoutes)
	r.Route("/reports", handler.NewReportHandler(reports, log).RegisterRoutes)
	r.Route("/inventory", handler.NewInventoryHandler(inventory).RegisterRoutes)

	env.router = r
	return env
}

func doRequest(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeObject(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func decodeList(t *testing.T, rr *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var resp []map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// createOrder posts a one-cola order and returns the decoded response.
func createOrder(t *testing.T, env *testEnv) map[string]interface{} {
	t.Helper()

	rr := doRequest(t, env.router, "POST", "/orders", map[string]interface{}{
		"table_id": env.tableID.String(),
		"items": []map[string]interface{}{
			{"menu_item_id": env.colaID.String(), "quantity": 2},
		},
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create order: got %d; body: %s", rr.Code, rr.Body.String())
	}
	return decodeObject(t, rr)
}
