package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/model"
)

// TableServicer defines the service methods needed by table handlers.
type TableServicer interface {
	Tables() []model.Table
	GetTable(id uuid.UUID) (model.Table, error)
	UpdateTableStatus(id uuid.UUID, status string) error
}

// TableOrderLister exposes the per-table order view.
type TableOrderLister interface {
	GetOrdersByTable(tableID uuid.UUID) []model.Order
}

// TableHandler handles table endpoints.
type TableHandler struct {
	svc    TableServicer
	orders TableOrderLister
	log    *zap.Logger
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(svc TableServicer, orders TableOrderLister, log *zap.Logger) *TableHandler {
	return &TableHandler{svc: svc, orders: orders, log: log}
}

// RegisterRoutes registers the read-only table endpoints.
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Get("/{id}/orders", h.ListOrders)
}

// RegisterStaffRoutes registers the occupancy override used by floor staff.
func (h *TableHandler) RegisterStaffRoutes(r chi.Router) {
	r.Patch("/{id}/status", h.UpdateStatus)
}

// List handles GET /tables.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Tables())
}

// Get handles GET /tables/{id}.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	table, err := h.svc.GetTable(tableID)
	if err != nil {
		h.respondError(w, "get table", err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// ListOrders handles GET /tables/{id}/orders.
func (h *TableHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}
	if _, err := h.svc.GetTable(tableID); err != nil {
		h.respondError(w, "get table", err)
		return
	}

	orders := h.orders.GetOrdersByTable(tableID)
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /tables/{id}/status.
func (h *TableHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Status == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "status is required"})
		return
	}

	if err := h.svc.UpdateTableStatus(tableID, req.Status); err != nil {
		h.respondError(w, "update table status", err)
		return
	}

	table, err := h.svc.GetTable(tableID)
	if err != nil {
		h.respondError(w, "get table", err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

func (h *TableHandler) respondError(w http.ResponseWriter, op string, err error) {
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
