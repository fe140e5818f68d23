package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dinehall/api/internal/model"
)

// MenuServicer defines the service methods needed by menu handlers.
type MenuServicer interface {
	Items() []model.MenuItem
	GetMenuItem(id uuid.UUID) (model.MenuItem, bool)
	Categories() []model.MenuCategory
}

// MenuHandler handles menu endpoints.
type MenuHandler struct {
	svc MenuServicer
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(svc MenuServicer) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// RegisterRoutes registers menu endpoints on the given Chi router.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/items", h.ListItems)
	r.Get("/items/{id}", h.GetItem)
	r.Get("/categories", h.ListCategories)
}

// GetItem handles GET /menu/items/{id}.
func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid menu item ID"})
		return
	}

	item, ok := h.svc.GetMenuItem(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "menu item not found"})
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// ListItems handles GET /menu/items. Optional ?category= filter.
func (h *MenuHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Items()

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := make([]model.MenuItem, 0, len(items))
		for _, item := range items {
			if item.Category == category {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	writeJSON(w, http.StatusOK, items)
}

// ListCategories handles GET /menu/categories.
func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Categories())
}
