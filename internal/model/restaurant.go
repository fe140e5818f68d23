package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Table is a physical table in the dining room.
type Table struct {
	ID       uuid.UUID `json:"id"`
	Number   int       `json:"number"`
	Capacity int       `json:"capacity"`
	Status   string    `json:"status"`
	QRCode   string    `json:"qr_code"`
}

// MenuItem is a sellable item on the menu. Read-only for the order core;
// orders snapshot the name and price at add-time.
type MenuItem struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category"`
	Image           string          `json:"image"`
	Available       bool            `json:"available"`
	PreparationTime int             `json:"preparation_time"` // minutes
	Customizable    bool            `json:"customizable"`
	Modifiers       []ModifierGroup `json:"modifiers,omitempty"`
}

// ModifierGroup is a named customization axis for a menu item.
// A required single-select group needs exactly one chosen option;
// a required multi-select group needs at least one.
type ModifierGroup struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Options     []ModifierOption `json:"options"`
	Required    bool             `json:"required"`
	MultiSelect bool             `json:"multi_select"`
}

// ModifierOption is a selectable choice with a price delta.
// The delta may be negative (e.g. a smaller size).
type ModifierOption struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// MenuCategory groups menu items for display.
type MenuCategory struct {
	ID   uuid.UUID `json:"id"`
	Key  string    `json:"key"`
	Name string    `json:"name"`
}

// InventoryItem is a stocked ingredient or supply. Read-only listing,
// not coupled to the order lifecycle.
type InventoryItem struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Stock     int             `json:"stock"`
	Threshold int             `json:"threshold"`
	Unit      string          `json:"unit"`
	Price     decimal.Decimal `json:"price"`
}

// LowStock reports whether the item has fallen below its reorder threshold.
func (i InventoryItem) LowStock() bool {
	return i.Stock < i.Threshold
}
