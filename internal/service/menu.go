package service

import (
	"github.com/google/uuid"

	"github.com/dinehall/api/internal/model"
)

// MenuCatalog is the read-only menu: items, their modifier groups, and the
// display categories. Built once at startup; no mutation path exists, so no
// locking is needed.
type MenuCatalog struct {
	items      []model.MenuItem
	categories []model.MenuCategory
	byID       map[uuid.UUID]model.MenuItem
}

// NewMenuCatalog indexes the given menu.
func NewMenuCatalog(items []model.MenuItem, categories []model.MenuCategory) *MenuCatalog {
	byID := make(map[uuid.UUID]model.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return &MenuCatalog{items: items, categories: categories, byID: byID}
}

// GetMenuItem looks up an item by ID.
func (c *MenuCatalog) GetMenuItem(id uuid.UUID) (model.MenuItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// Items returns the full menu.
func (c *MenuCatalog) Items() []model.MenuItem {
	return c.items
}

// Categories returns the display categories.
func (c *MenuCatalog) Categories() []model.MenuCategory {
	return c.categories
}
