package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dinehall/api/internal/enum"
	"github.com/dinehall/api/internal/model"
)

// Errors returned by the order service.
var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrItemNotFound      = errors.New("order item not found")
	ErrTableNotFound     = errors.New("table not found")
	ErrMenuItemNotFound  = errors.New("menu item not found")
	ErrEmptyItems        = errors.New("items are required")
	ErrInvalidQuantity   = errors.New("quantity must be > 0")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidAmount     = errors.New("amount must be >= 0")
	ErrModifierNotFound  = errors.New("modifier group not found on menu item")
	ErrOptionNotFound    = errors.New("option not found in modifier group")
	ErrRequiredModifier  = errors.New("required modifier group needs a selection")
	ErrSingleSelectGroup = errors.New("modifier group allows one option only")
)

// TableRegistrar is the slice of the table registry the order core needs
// for its occupancy side effects.
type TableRegistrar interface {
	GetTable(id uuid.UUID) (model.Table, error)
	UpdateTableStatus(id uuid.UUID, status string) error
}

// MenuLookup resolves menu items at order/cart time.
// Satisfied by *MenuCatalog.
type MenuLookup interface {
	GetMenuItem(id uuid.UUID) (model.MenuItem, bool)
}

// OrderPersister mirrors the order collection after each mutation.
// Satisfied by *store.Store.
type OrderPersister interface {
	SaveOrders(orders []model.Order)
}

// NewOrderItem is the validated input for one order line: a menu item
// reference plus the customer's choices. Name and price are resolved from
// the catalog and snapshotted, never trusted from the caller.
type NewOrderItem struct {
	MenuItemID uuid.UUID
	Quantity   int
	Modifiers  []model.ModifierSelection
	Notes      string
}

// Snapshot is a deep copy of the full order collection, delivered to
// subscribers after every mutation. Always the complete current state,
// never a delta, so late or slow consumers cannot diverge.
type Snapshot []model.Order

// SnapshotFunc receives the order snapshot after a mutation.
type SnapshotFunc func(Snapshot)

// OrderService is the sole owner of the order collection. Every mutation
// funnels through its operations; a single mutex preserves the one-writer
// discipline under concurrent HTTP callers.
type OrderService struct {
	mu      sync.Mutex
	orders  []model.Order
	tables  TableRegistrar
	menu    MenuLookup
	persist OrderPersister

	subMu sync.RWMutex
	subs  []SnapshotFunc

	now func() time.Time
}

// NewOrderService creates an OrderService seeded with any previously
// persisted orders.
func NewOrderService(orders []model.Order, tables TableRegistrar, menu MenuLookup, persist OrderPersister) *OrderService {
	return &OrderService{
		orders:  orders,
		tables:  tables,
		menu:    menu,
		persist: persist,
		now:     time.Now,
	}
}

// Subscribe registers fn to receive the full order snapshot after every
// mutation. There is no unsubscribe; subscribers live as long as the
// service.
func (s *OrderService) Subscribe(fn SnapshotFunc) {
	s.subMu.Lock()
	s.subs = append(s.subs, fn)
	s.subMu.Unlock()
}

// CreateOrder validates the items against the catalog, snapshots names and
// prices, and appends a new pending order. The table is marked occupied
// unconditionally, even if it already was.
func (s *OrderService) CreateOrder(tableID uuid.UUID, items []NewOrderItem) (model.Order, error) {
	table, err := s.tables.GetTable(tableID)
	if err != nil {
		return model.Order{}, err
	}
	if len(items) == 0 {
		return model.Order{}, ErrEmptyItems
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for i, item := range items {
		built, err := s.buildItem(item)
		if err != nil {
			return model.Order{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		orderItems = append(orderItems, built)
	}

	now := s.now()
	order := model.Order{
		ID:          uuid.New(),
		TableID:     tableID,
		TableNumber: table.Number,
		Items:       orderItems,
		Status:      enum.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	order.TotalAmount = order.Total()

	s.mu.Lock()
	s.orders = append(s.orders, order)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	// Occupy regardless of prior status.
	if err := s.tables.UpdateTableStatus(tableID, enum.TableStatusOccupied); err != nil {
		return model.Order{}, err
	}

	s.publish(snap)
	return order.Clone(), nil
}

// buildItem resolves one requested line against the catalog and snapshots
// the name, price and chosen modifier options.
func (s *OrderService) buildItem(item NewOrderItem) (model.OrderItem, error) {
	if item.Quantity <= 0 {
		return model.OrderItem{}, ErrInvalidQuantity
	}
	menuItem, ok := s.menu.GetMenuItem(item.MenuItemID)
	if !ok {
		return model.OrderItem{}, ErrMenuItemNotFound
	}

	chosen, err := resolveModifiers(menuItem, item.Modifiers)
	if err != nil {
		return model.OrderItem{}, err
	}

	return model.OrderItem{
		ID:         uuid.New(),
		MenuItemID: menuItem.ID,
		Name:       menuItem.Name,
		Price:      menuItem.Price,
		Quantity:   item.Quantity,
		Modifiers:  chosen,
		Notes:      item.Notes,
		Status:     enum.OrderStatusPending,
	}, nil
}

// resolveModifiers validates the selections against the menu item's groups
// and returns the snapshot form. A required single-select group needs
// exactly one option; a required multi-select group at least one.
func resolveModifiers(menuItem model.MenuItem, selections []model.ModifierSelection) ([]model.ChosenModifier, error) {
	byGroup := make(map[uuid.UUID][]uuid.UUID, len(selections))
	for _, sel := range selections {
		byGroup[sel.GroupID] = append(byGroup[sel.GroupID], sel.OptionIDs...)
	}

	var chosen []model.ChosenModifier
	for _, group := range menuItem.Modifiers {
		optionIDs := byGroup[group.ID]
		delete(byGroup, group.ID)

		if len(optionIDs) == 0 {
			if group.Required {
				return nil, fmt.Errorf("%w: %s", ErrRequiredModifier, group.Name)
			}
			continue
		}
		if !group.MultiSelect && len(optionIDs) > 1 {
			return nil, fmt.Errorf("%w: %s", ErrSingleSelectGroup, group.Name)
		}

		opts := make([]model.ModifierOption, 0, len(optionIDs))
		for _, optionID := range optionIDs {
			opt, ok := findOption(group, optionID)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrOptionNotFound, group.Name)
			}
			opts = append(opts, opt)
		}
		chosen = append(chosen, model.ChosenModifier{Name: group.Name, Options: opts})
	}

	// Selections referencing groups the menu item doesn't have.
	for groupID := range byGroup {
		return nil, fmt.Errorf("%w: %s", ErrModifierNotFound, groupID)
	}
	return chosen, nil
}

func findOption(group model.ModifierGroup, id uuid.UUID) (model.ModifierOption, bool) {
	for _, opt := range group.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return model.ModifierOption{}, false
}

// UpdateOrderStatus sets the order's status and propagates it to every item
// (the order is the unit of control here). A terminal status triggers the
// table-freeing scan.
func (s *OrderService) UpdateOrderStatus(orderID uuid.UUID, status string) (model.Order, error) {
	if !enum.IsValidOrderStatus(status) {
		return model.Order{}, ErrInvalidStatus
	}

	s.mu.Lock()
	order := s.findLocked(orderID)
	if order == nil {
		s.mu.Unlock()
		return model.Order{}, ErrOrderNotFound
	}

	order.Status = status
	for i := range order.Items {
		order.Items[i].Status = status
	}
	order.UpdatedAt = s.now()

	tableID := order.TableID
	result := order.Clone()
	freeTable := enum.IsTerminalOrderStatus(status) && !s.tableActiveLocked(tableID)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if freeTable {
		if err := s.tables.UpdateTableStatus(tableID, enum.TableStatusAvailable); err != nil {
			return model.Order{}, err
		}
	}

	s.publish(snap)
	return result, nil
}

// UpdateOrderItemStatus sets a single item's status. The order aggregate
// only moves when every item now agrees on the new status; otherwise the
// prior aggregate stays in place. Partial item completion never frees a
// table.
func (s *OrderService) UpdateOrderItemStatus(orderID, itemID uuid.UUID, status string) (model.Order, error) {
	if !enum.IsValidOrderStatus(status) {
		return model.Order{}, ErrInvalidStatus
	}

	s.mu.Lock()
	order := s.findLocked(orderID)
	if order == nil {
		s.mu.Unlock()
		return model.Order{}, ErrOrderNotFound
	}

	found := false
	for i := range order.Items {
		if order.Items[i].ID == itemID {
			order.Items[i].Status = status
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return model.Order{}, ErrItemNotFound
	}

	allSame := true
	for i := range order.Items {
		if order.Items[i].Status != status {
			allSame = false
			break
		}
	}
	if allSame {
		order.Status = status
	}
	order.UpdatedAt = s.now()

	result := order.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return result, nil
}

// AddItemToOrder appends a new pending item and recomputes the total. The
// aggregate status is deliberately left alone even when the order was
// already ready or served; see the lifecycle notes in DESIGN.md.
func (s *OrderService) AddItemToOrder(orderID uuid.UUID, item NewOrderItem) (model.Order, error) {
	built, err := s.buildItem(item)
	if err != nil {
		return model.Order{}, err
	}

	s.mu.Lock()
	order := s.findLocked(orderID)
	if order == nil {
		s.mu.Unlock()
		return model.Order{}, ErrOrderNotFound
	}

	order.Items = append(order.Items, built)
	order.TotalAmount = order.Total()
	order.UpdatedAt = s.now()

	result := order.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return result, nil
}

// RemoveItemFromOrder drops the item and recomputes the total. No status
// recomputation.
func (s *OrderService) RemoveItemFromOrder(orderID, itemID uuid.UUID) (model.Order, error) {
	s.mu.Lock()
	order := s.findLocked(orderID)
	if order == nil {
		s.mu.Unlock()
		return model.Order{}, ErrOrderNotFound
	}

	kept := make([]model.OrderItem, 0, len(order.Items))
	found := false
	for _, it := range order.Items {
		if it.ID == itemID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	if !found {
		s.mu.Unlock()
		return model.Order{}, ErrItemNotFound
	}
	order.Items = kept
	order.TotalAmount = order.Total()
	order.UpdatedAt = s.now()

	result := order.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return result, nil
}

// CompleteOrder records the payment and closes the order. Unlike
// UpdateOrderStatus it does NOT cascade the status to the items; whatever
// they were (typically served) is what the record keeps. Loyalty points are
// one per ten currency units paid, floored.
func (s *OrderService) CompleteOrder(orderID uuid.UUID, amount decimal.Decimal, splitBill bool) (model.Order, error) {
	if amount.IsNegative() {
		return model.Order{}, ErrInvalidAmount
	}

	s.mu.Lock()
	order := s.findLocked(orderID)
	if order == nil {
		s.mu.Unlock()
		return model.Order{}, ErrOrderNotFound
	}

	order.Status = enum.OrderStatusCompleted
	paid := amount
	order.PaidAmount = &paid
	order.SplitBill = splitBill
	order.LoyaltyPointsEarned = int(amount.Div(decimal.NewFromInt(10)).Floor().IntPart())
	order.UpdatedAt = s.now()

	tableID := order.TableID
	result := order.Clone()
	freeTable := !s.tableActiveLocked(tableID)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if freeTable {
		if err := s.tables.UpdateTableStatus(tableID, enum.TableStatusAvailable); err != nil {
			return model.Order{}, err
		}
	}

	s.publish(snap)
	return result, nil
}

// ProvideFeedback attaches a 1–5 rating (and optional comment) to the
// order. No status effect.
func (s *OrderService) ProvideFeedback(orderID uuid.UUID, rating int, comment string) (model.Order, error) {
	if rating < 1 || rating > 5 {
		return model.Order{}, ErrInvalidRating
	}

	s.mu.Lock()
	order := s.findLocked(orderID)
	if order == nil {
		s.mu.Unlock()
		return model.Order{}, ErrOrderNotFound
	}

	order.Feedback = &model.Feedback{Rating: rating, Comment: comment}

	result := order.Clone()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return result, nil
}

// GetOrderByID returns a copy of the order.
func (s *OrderService) GetOrderByID(id uuid.UUID) (model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.findLocked(id)
	if order == nil {
		return model.Order{}, ErrOrderNotFound
	}
	return order.Clone(), nil
}

// GetOrdersByTable returns copies of every order belonging to the table, in
// creation order.
func (s *OrderService) GetOrdersByTable(tableID uuid.UUID) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Order
	for i := range s.orders {
		if s.orders[i].TableID == tableID {
			out = append(out, s.orders[i].Clone())
		}
	}
	return out
}

// Orders returns a snapshot of the full collection.
func (s *OrderService) Orders() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// --- internals ---

// findLocked returns a pointer into the owned slice; callers hold s.mu.
func (s *OrderService) findLocked(id uuid.UUID) *model.Order {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i]
		}
	}
	return nil
}

// tableActiveLocked reports whether any order for the table is still in a
// non-terminal status.
func (s *OrderService) tableActiveLocked(tableID uuid.UUID) bool {
	for i := range s.orders {
		if s.orders[i].TableID == tableID && !enum.IsTerminalOrderStatus(s.orders[i].Status) {
			return true
		}
	}
	return false
}

func (s *OrderService) snapshotLocked() Snapshot {
	snap := make(Snapshot, len(s.orders))
	for i := range s.orders {
		snap[i] = s.orders[i].Clone()
	}
	return snap
}

// publish mirrors the collection and fans the snapshot out to subscribers.
// Called after s.mu is released so a subscriber may read back into the
// service without deadlocking.
func (s *OrderService) publish(snap Snapshot) {
	if s.persist != nil {
		s.persist.SaveOrders(snap)
	}
	s.subMu.RLock()
	subs := s.subs
	s.subMu.RUnlock()
	for _, fn := range subs {
		fn(snap)
	}
}
