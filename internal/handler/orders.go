package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/model"
	"github.com/dinehall/api/internal/service"
)

// OrderServicer defines the service methods needed by order handlers.
// Satisfied by *service.OrderService; narrow interface for testability.
type OrderServicer interface {
	CreateOrder(tableID uuid.UUID, items []service.NewOrderItem) (model.Order, error)
	UpdateOrderStatus(orderID uuid.UUID, status string) (model.Order, error)
	UpdateOrderItemStatus(orderID, itemID uuid.UUID, status string) (model.Order, error)
	AddItemToOrder(orderID uuid.UUID, item service.NewOrderItem) (model.Order, error)
	RemoveItemFromOrder(orderID, itemID uuid.UUID) (model.Order, error)
	CompleteOrder(orderID uuid.UUID, amount decimal.Decimal, splitBill bool) (model.Order, error)
	ProvideFeedback(orderID uuid.UUID, rating int, comment string) (model.Order, error)
	GetOrderByID(id uuid.UUID) (model.Order, error)
	Orders() []model.Order
}

// OrderHandler handles order endpoints.
type OrderHandler struct {
	svc OrderServicer
	log *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc OrderServicer, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

// RegisterRoutes registers the order endpoints open to any role.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/items", h.AddItem)
	r.Delete("/{id}/items/{itemID}", h.RemoveItem)
	r.Post("/{id}/complete", h.Complete)
	r.Post("/{id}/feedback", h.Feedback)
}

// RegisterStaffRoutes registers the status transitions driven by kitchen
// and floor staff.
func (h *OrderHandler) RegisterStaffRoutes(r chi.Router) {
	r.Patch("/{id}/status", h.UpdateStatus)
	r.Patch("/{id}/items/{itemID}/status", h.UpdateItemStatus)
}

// --- Request types ---

type modifierSelectionRequest struct {
	GroupID   string   `json:"group_id"`
	OptionIDs []string `json:"option_ids"`
}

type orderItemRequest struct {
	MenuItemID string                     `json:"menu_item_id"`
	Quantity   int                        `json:"quantity"`
	Notes      string                     `json:"notes"`
	Modifiers  []modifierSelectionRequest `json:"modifiers"`
}

type createOrderRequest struct {
	TableID string             `json:"table_id"`
	Items   []orderItemRequest `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type completeOrderRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	SplitBill bool            `json:"split_bill"`
}

type feedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// toNewOrderItem parses one requested line into the service form.
func toNewOrderItem(req orderItemRequest) (service.NewOrderItem, error) {
	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return service.NewOrderItem{}, err
	}
	item := service.NewOrderItem{
		MenuItemID: menuItemID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	}
	for _, sel := range req.Modifiers {
		groupID, err := uuid.Parse(sel.GroupID)
		if err != nil {
			return service.NewOrderItem{}, err
		}
		optionIDs := make([]uuid.UUID, len(sel.OptionIDs))
		for i, s := range sel.OptionIDs {
			optionIDs[i], err = uuid.Parse(s)
			if err != nil {
				return service.NewOrderItem{}, err
			}
		}
		item.Modifiers = append(item.Modifiers, model.ModifierSelection{
			GroupID:   groupID,
			OptionIDs: optionIDs,
		})
	}
	return item, nil
}

// --- Handlers ---

// Create handles POST /orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	tableID, err := uuid.Parse(req.TableID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table_id"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "items are required"})
		return
	}

	items := make([]service.NewOrderItem, len(req.Items))
	for i, itemReq := range req.Items {
		items[i], err = toNewOrderItem(itemReq)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item reference"})
			return
		}
	}

	order, err := h.svc.CreateOrder(tableID, items)
	if err != nil {
		h.respondError(w, "create order", err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /orders. Optional ?status= and ?table_id= filters.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders := h.svc.Orders()

	status := r.URL.Query().Get("status")
	tableFilter := r.URL.Query().Get("table_id")
	var tableID uuid.UUID
	if tableFilter != "" {
		var err error
		tableID, err = uuid.Parse(tableFilter)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table_id"})
			return
		}
	}

	filtered := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if status != "" && o.Status != status {
			continue
		}
		if tableFilter != "" && o.TableID != tableID {
			continue
		}
		filtered = append(filtered, o)
	}

	writeJSON(w, http.StatusOK, filtered)
}

// Get handles GET /orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	order, err := h.svc.GetOrderByID(orderID)
	if err != nil {
		h.respondError(w, "get order", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /orders/{id}/status. The new status cascades
// to every item of the order.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	order, err := h.svc.UpdateOrderStatus(orderID, req.Status)
	if err != nil {
		h.respondError(w, "update order status", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// AddItem handles POST /orders/{id}/items.
func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req orderItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	item, err := toNewOrderItem(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item reference"})
		return
	}

	order, err := h.svc.AddItemToOrder(orderID, item)
	if err != nil {
		h.respondError(w, "add order item", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// RemoveItem handles DELETE /orders/{id}/items/{itemID}.
func (h *OrderHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	order, err := h.svc.RemoveItemFromOrder(orderID, itemID)
	if err != nil {
		h.respondError(w, "remove order item", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateItemStatus handles PATCH /orders/{id}/items/{itemID}/status. Only
// the named item moves; the aggregate follows when every item agrees.
func (h *OrderHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}
	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	order, err := h.svc.UpdateOrderItemStatus(orderID, itemID, req.Status)
	if err != nil {
		h.respondError(w, "update item status", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Complete handles POST /orders/{id}/complete.
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req completeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.svc.CompleteOrder(orderID, req.Amount, req.SplitBill)
	if err != nil {
		h.respondError(w, "complete order", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Feedback handles POST /orders/{id}/feedback.
func (h *OrderHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order ID"})
		return
	}

	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	order, err := h.svc.ProvideFeedback(orderID, req.Rating, req.Comment)
	if err != nil {
		h.respondError(w, "provide feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// respondError maps service errors onto HTTP statuses.
func (h *OrderHandler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case isNotFoundError(err):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case isValidationError(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		h.log.Error(op, zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
