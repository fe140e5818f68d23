package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dinehall/api/internal/model"
	"github.com/dinehall/api/internal/service"
)

// InventoryServicer defines the service methods needed by inventory handlers.
type InventoryServicer interface {
	Items(lowOnly bool) []model.InventoryItem
	Totals() service.InventoryTotals
}

// InventoryHandler handles the stock endpoints.
type InventoryHandler struct {
	svc InventoryServicer
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(svc InventoryServicer) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// RegisterRoutes registers inventory endpoints on the given Chi router.
func (h *InventoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/totals", h.Totals)
}

// List handles GET /inventory. Optional ?filter=low.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter != "" && filter != "low" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid filter"})
		return
	}
	writeJSON(w, http.StatusOK, h.svc.Items(filter == "low"))
}

// Totals handles GET /inventory/totals.
func (h *InventoryHandler) Totals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Totals())
}
