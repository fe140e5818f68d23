package service

import (
	"github.com/shopspring/decimal"

	"github.com/dinehall/api/internal/model"
)

// InventoryService is a read-only view over the seeded stock list. Not
// coupled to the order lifecycle.
type InventoryService struct {
	items []model.InventoryItem
}

// NewInventoryService creates an InventoryService.
func NewInventoryService(items []model.InventoryItem) *InventoryService {
	return &InventoryService{items: items}
}

// Items returns the stock list, optionally filtered to low-stock entries.
func (s *InventoryService) Items(lowOnly bool) []model.InventoryItem {
	if !lowOnly {
		out := make([]model.InventoryItem, len(s.items))
		copy(out, s.items)
		return out
	}
	var out []model.InventoryItem
	for _, item := range s.items {
		if item.LowStock() {
			out = append(out, item)
		}
	}
	return out
}

// InventoryTotals is the header numbers for the stock view.
type InventoryTotals struct {
	TotalItems    int             `json:"total_items"`
	LowStockItems int             `json:"low_stock_items"`
	StockValue    decimal.Decimal `json:"stock_value"`
}

// Totals folds the stock list into its header numbers. Stock value is
// stock times unit price, summed.
func (s *InventoryService) Totals() InventoryTotals {
	totals := InventoryTotals{TotalItems: len(s.items)}
	for _, item := range s.items {
		if item.LowStock() {
			totals.LowStockItems++
		}
		totals.StockValue = totals.StockValue.Add(
			item.Price.Mul(decimal.NewFromInt(int64(item.Stock))))
	}
	return totals
}
