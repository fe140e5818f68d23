package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dinehall/api/internal/model"
)

// CartPersister mirrors the cart collection after each mutation.
// Satisfied by *store.Store.
type CartPersister interface {
	SaveCarts(carts []model.Cart)
}

// OrderCreator is the one order operation checkout needs.
// Satisfied by *OrderService.
type OrderCreator interface {
	CreateOrder(tableID uuid.UUID, items []NewOrderItem) (model.Order, error)
}

// CartService keeps the per-table staging carts. A cart lives until an
// order is created from it, at which point it is cleared from persistence.
type CartService struct {
	mu      sync.Mutex
	carts   map[uuid.UUID]model.Cart
	menu    MenuLookup
	orders  OrderCreator
	persist CartPersister

	now func() time.Time
}

// NewCartService creates a CartService seeded with any persisted carts.
func NewCartService(carts []model.Cart, menu MenuLookup, orders OrderCreator, persist CartPersister) *CartService {
	byTable := make(map[uuid.UUID]model.Cart, len(carts))
	for _, c := range carts {
		byTable[c.TableID] = c
	}
	return &CartService{
		carts:   byTable,
		menu:    menu,
		orders:  orders,
		persist: persist,
		now:     time.Now,
	}
}

// GetCart returns the table's cart, empty if none is staged.
func (s *CartService) GetCart(tableID uuid.UUID) model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[tableID]
	if !ok {
		return model.Cart{TableID: tableID}
	}
	return cart
}

// ReplaceCart overwrites the table's staged items. Quantities must be
// positive and every item must reference a known menu item; modifier
// validity is checked later, at checkout.
func (s *CartService) ReplaceCart(tableID uuid.UUID, items []model.CartItem) (model.Cart, error) {
	for _, item := range items {
		if item.Quantity <= 0 {
			return model.Cart{}, ErrInvalidQuantity
		}
		if _, ok := s.menu.GetMenuItem(item.MenuItemID); !ok {
			return model.Cart{}, ErrMenuItemNotFound
		}
	}

	cart := model.Cart{TableID: tableID, Items: items, UpdatedAt: s.now()}

	s.mu.Lock()
	s.carts[tableID] = cart
	s.persistLocked()
	s.mu.Unlock()
	return cart, nil
}

// ClearCart drops the table's cart.
func (s *CartService) ClearCart(tableID uuid.UUID) {
	s.mu.Lock()
	delete(s.carts, tableID)
	s.persistLocked()
	s.mu.Unlock()
}

// Checkout turns the staged cart into an order and clears the cart on
// success. An empty cart is rejected the same way an empty order is.
func (s *CartService) Checkout(tableID uuid.UUID) (model.Order, error) {
	s.mu.Lock()
	cart, ok := s.carts[tableID]
	s.mu.Unlock()
	if !ok || len(cart.Items) == 0 {
		return model.Order{}, ErrEmptyItems
	}

	items := make([]NewOrderItem, len(cart.Items))
	for i, ci := range cart.Items {
		items[i] = NewOrderItem{
			MenuItemID: ci.MenuItemID,
			Quantity:   ci.Quantity,
			Modifiers:  ci.Modifiers,
			Notes:      ci.Notes,
		}
	}

	order, err := s.orders.CreateOrder(tableID, items)
	if err != nil {
		return model.Order{}, err
	}

	s.mu.Lock()
	delete(s.carts, tableID)
	s.persistLocked()
	s.mu.Unlock()
	return order, nil
}

// persistLocked mirrors the carts; callers hold s.mu.
func (s *CartService) persistLocked() {
	if s.persist == nil {
		return
	}
	carts := make([]model.Cart, 0, len(s.carts))
	for _, c := range s.carts {
		carts = append(carts, c)
	}
	s.persist.SaveCarts(carts)
}
