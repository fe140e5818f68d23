// Package store mirrors the in-memory application state into an embedded
// bbolt database. One key per collection, each holding a JSON list of flat
// records; timestamps round-trip through RFC 3339.
//
// Reads recover by falling back to the regenerated default collection when
// the persisted data is missing or unreadable. Writes run after every
// mutation and are best-effort: a failed write is logged and dropped, never
// surfaced to the caller.
package store

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/dinehall/api/internal/model"
	"github.com/dinehall/api/internal/seed"
)

const bucketName = "restaurant"

// Collection keys inside the bucket.
const (
	keyOrders         = "orders"
	keyTables         = "tables"
	keyMenuItems      = "menu_items"
	keyMenuCategories = "menu_categories"
	keyCarts          = "carts"
	keyInventory      = "inventory"
)

// Store is a bbolt-backed mirror of the application collections.
type Store struct {
	db  *bolt.DB
	log *zap.Logger
}

// Open opens (or creates) the database file at path.
func Open(path string, log *zap.Logger) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// get returns the raw value for key, or nil when absent.
func (s *Store) get(key string) []byte {
	var data []byte
	_ = s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucketName)).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	return data
}

// put marshals v under key. Failures are logged and swallowed: persistence
// is a mirror, not the source of truth.
func (s *Store) put(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("marshal collection", zap.String("collection", key), zap.Error(err))
		return
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(key), data)
	})
	if err != nil {
		s.log.Warn("write collection", zap.String("collection", key), zap.Error(err))
	}
}

// load unmarshals key into out, reporting whether usable data was found.
func (s *Store) load(key string, out any) bool {
	data := s.get(key)
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.log.Warn("corrupt collection, regenerating defaults",
			zap.String("collection", key), zap.Error(err))
		return false
	}
	return true
}

// Orders loads the persisted order collection. There is no default order
// set: missing or corrupt data yields an empty collection.
func (s *Store) Orders() []model.Order {
	var orders []model.Order
	if !s.load(keyOrders, &orders) {
		return nil
	}
	return orders
}

// SaveOrders mirrors the order collection.
func (s *Store) SaveOrders(orders []model.Order) {
	s.put(keyOrders, orders)
}

// Tables loads the persisted tables, seeding the default floor plan when
// absent or unreadable.
func (s *Store) Tables() []model.Table {
	var tables []model.Table
	if !s.load(keyTables, &tables) || len(tables) == 0 {
		tables = seed.Tables()
		s.put(keyTables, tables)
	}
	return tables
}

// SaveTables mirrors the table collection.
func (s *Store) SaveTables(tables []model.Table) {
	s.put(keyTables, tables)
}

// MenuItems loads the persisted menu, seeding the default menu when absent
// or unreadable.
func (s *Store) MenuItems() []model.MenuItem {
	var items []model.MenuItem
	if !s.load(keyMenuItems, &items) || len(items) == 0 {
		items = seed.MenuItems()
		s.put(keyMenuItems, items)
	}
	return items
}

// MenuCategories loads the persisted categories, seeding defaults when
// absent or unreadable.
func (s *Store) MenuCategories() []model.MenuCategory {
	var categories []model.MenuCategory
	if !s.load(keyMenuCategories, &categories) || len(categories) == 0 {
		categories = seed.MenuCategories()
		s.put(keyMenuCategories, categories)
	}
	return categories
}

// Carts loads the persisted per-table carts. No default set.
func (s *Store) Carts() []model.Cart {
	var carts []model.Cart
	if !s.load(keyCarts, &carts) {
		return nil
	}
	return carts
}

// SaveCarts mirrors the cart collection.
func (s *Store) SaveCarts(carts []model.Cart) {
	s.put(keyCarts, carts)
}

// Inventory loads the persisted stock list, seeding defaults when absent or
// unreadable.
func (s *Store) Inventory() []model.InventoryItem {
	var items []model.InventoryItem
	if !s.load(keyInventory, &items) || len(items) == 0 {
		items = seed.InventoryItems()
		s.put(keyInventory, items)
	}
	return items
}

// Reset drops every collection and regenerates the defaults. Orders and
// carts start empty.
func (s *Store) Reset() {
	s.put(keyOrders, []model.Order{})
	s.put(keyCarts, []model.Cart{})
	s.put(keyTables, seed.Tables())
	s.put(keyMenuItems, seed.MenuItems())
	s.put(keyMenuCategories, seed.MenuCategories())
	s.put(keyInventory, seed.InventoryItems())
}
