package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/model"
)

// CartServicer defines the service methods needed by cart handlers.
type CartServicer interface {
	GetCart(tableID uuid.UUID) model.Cart
	ReplaceCart(tableID uuid.UUID, items []model.CartItem) (model.Cart, error)
	ClearCart(tableID uuid.UUID)
	Checkout(tableID uuid.UUID) (model.Order, error)
}

// CartHandler handles the per-table cart endpoints.
type CartHandler struct {
	svc CartServicer
	log *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc CartServicer, log *zap.Logger) *CartHandler {
	return &CartHandler{svc: svc, log: log}
}

// RegisterRoutes registers cart endpoints on the given Chi router. The
// routes nest under /tables/{id}.
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}/cart", h.Get)
	r.Put("/{id}/cart", h.Replace)
	r.Delete("/{id}/cart", h.Clear)
	r.Post("/{id}/cart/checkout", h.Checkout)
}

type cartItemRequest struct {
	MenuItemID string                     `json:"menu_item_id"`
	Quantity   int                        `json:"quantity"`
	Notes      string                     `json:"notes"`
	Modifiers  []modifierSelectionRequest `json:"modifiers"`
}

type replaceCartRequest struct {
	Items []cartItemRequest `json:"items"`
}

func toCartItem(req cartItemRequest) (model.CartItem, error) {
	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return model.CartItem{}, err
	}
	item := model.CartItem{
		MenuItemID: menuItemID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	}
	for _, sel := range req.Modifiers {
		groupID, err := uuid.Parse(sel.GroupID)
		if err != nil {
			return model.CartItem{}, err
		}
		optionIDs := make([]uuid.UUID, len(sel.OptionIDs))
		for i, s := range sel.OptionIDs {
			optionIDs[i], err = uuid.Parse(s)
			if err != nil {
				return model.CartItem{}, err
			}
		}
		item.Modifiers = append(item.Modifiers, model.ModifierSelection{
			GroupID:   groupID,
			OptionIDs: optionIDs,
		})
	}
	return item, nil
}

// Get handles GET /tables/{id}/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}
	writeJSON(w, http.StatusOK, h.svc.GetCart(tableID))
}

// Replace handles PUT /tables/{id}/cart. The request body replaces the
// staged items wholesale.
func (h *CartHandler) Replace(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	var req replaceCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	items := make([]model.CartItem, len(req.Items))
	for i, itemReq := range req.Items {
		items[i], err = toCartItem(itemReq)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item reference"})
			return
		}
	}

	cart, err := h.svc.ReplaceCart(tableID, items)
	if err != nil {
		h.respondError(w, "replace cart", err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// Clear handles DELETE /tables/{id}/cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}
	h.svc.ClearCart(tableID)
	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /tables/{id}/cart/checkout.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	order, err := h.svc.Checkout(tableID)
	if err != nil {
		h.respondError(w, "checkout cart", err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *CartHandler) respondError(w http.ResponseWriter, op string, err error) {
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
