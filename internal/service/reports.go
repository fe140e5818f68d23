package service

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dinehall/api/internal/enum"
	"github.com/dinehall/api/internal/model"
)

// Timeframes accepted by the report queries.
const (
	TimeframeToday = "today"
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeAll   = "all"
)

// ErrInvalidTimeframe is returned for an unknown timeframe parameter.
var ErrInvalidTimeframe = errors.New("invalid timeframe")

// OrderSource supplies the order snapshot the reports fold over.
// Satisfied by *OrderService.
type OrderSource interface {
	Orders() []model.Order
}

// ReportService derives read-only analytics from the order collection.
// Everything here is a pure fold; no state is kept between calls.
type ReportService struct {
	orders OrderSource
	menu   MenuLookup

	now func() time.Time
}

// NewReportService creates a ReportService.
func NewReportService(orders OrderSource, menu MenuLookup) *ReportService {
	return &ReportService{orders: orders, menu: menu, now: time.Now}
}

// SalesSummary is the headline numbers for a timeframe.
type SalesSummary struct {
	Timeframe         string          `json:"timeframe"`
	TotalOrders       int             `json:"total_orders"`
	CompletedOrders   int             `json:"completed_orders"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// HourlySales is revenue and order count for one hour of the day.
type HourlySales struct {
	Hour         int             `json:"hour"`
	OrderCount   int             `json:"order_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DailySales is revenue and order count for one weekday.
type DailySales struct {
	Day          string          `json:"day"`
	OrderCount   int             `json:"order_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// PopularItem is an item's sold quantity and revenue across orders.
type PopularItem struct {
	Name         string          `json:"name"`
	QuantitySold int             `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// CategorySales is revenue attributed to one menu category.
type CategorySales struct {
	Category     string          `json:"category"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// filtered returns the orders created inside the timeframe window.
func (s *ReportService) filtered(timeframe string) ([]model.Order, error) {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var cutoff time.Time
	switch timeframe {
	case TimeframeToday:
		cutoff = today
	case TimeframeWeek:
		cutoff = today.AddDate(0, 0, -7)
	case TimeframeMonth:
		cutoff = today.AddDate(0, -1, 0)
	case TimeframeAll, "":
		return s.orders.Orders(), nil
	default:
		return nil, ErrInvalidTimeframe
	}

	var out []model.Order
	for _, o := range s.orders.Orders() {
		if !o.CreatedAt.Before(cutoff) {
			out = append(out, o)
		}
	}
	return out, nil
}

// Summary folds the timeframe's orders into the headline numbers. Revenue
// counts completed orders only.
func (s *ReportService) Summary(timeframe string) (SalesSummary, error) {
	orders, err := s.filtered(timeframe)
	if err != nil {
		return SalesSummary{}, err
	}

	summary := SalesSummary{Timeframe: timeframe, TotalOrders: len(orders)}
	for _, o := range orders {
		if o.Status == enum.OrderStatusCompleted {
			summary.CompletedOrders++
			summary.TotalRevenue = summary.TotalRevenue.Add(o.TotalAmount)
		}
	}
	if summary.CompletedOrders > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.
			Div(decimal.NewFromInt(int64(summary.CompletedOrders))).
			Round(2)
	}
	return summary, nil
}

// Hourly buckets the timeframe's orders into the 24 hours of the day.
// Every hour is present, including empty ones.
func (s *ReportService) Hourly(timeframe string) ([]HourlySales, error) {
	orders, err := s.filtered(timeframe)
	if err != nil {
		return nil, err
	}

	buckets := make([]HourlySales, 24)
	for i := range buckets {
		buckets[i].Hour = i
	}
	for _, o := range orders {
		h := o.CreatedAt.Hour()
		buckets[h].OrderCount++
		buckets[h].TotalRevenue = buckets[h].TotalRevenue.Add(o.TotalAmount)
	}
	return buckets, nil
}

// Daily buckets the timeframe's orders by weekday, Sunday first.
func (s *ReportService) Daily(timeframe string) ([]DailySales, error) {
	orders, err := s.filtered(timeframe)
	if err != nil {
		return nil, err
	}

	buckets := make([]DailySales, 7)
	for i := range buckets {
		buckets[i].Day = time.Weekday(i).String()
	}
	for _, o := range orders {
		d := int(o.CreatedAt.Weekday())
		buckets[d].OrderCount++
		buckets[d].TotalRevenue = buckets[d].TotalRevenue.Add(o.TotalAmount)
	}
	return buckets, nil
}

// PopularItems ranks items by quantity sold across the timeframe's orders.
// Revenue here is base price times quantity; modifier deltas are a property
// of individual orders, not of the item's popularity.
func (s *ReportService) PopularItems(timeframe string, limit int) ([]PopularItem, error) {
	orders, err := s.filtered(timeframe)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*PopularItem)
	for _, o := range orders {
		for _, item := range o.Items {
			p, ok := byName[item.Name]
			if !ok {
				p = &PopularItem{Name: item.Name}
				byName[item.Name] = p
			}
			p.QuantitySold += item.Quantity
			p.TotalRevenue = p.TotalRevenue.Add(
				item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}

	out := make([]PopularItem, 0, len(byName))
	for _, p := range byName {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].QuantitySold != out[j].QuantitySold {
			return out[i].QuantitySold > out[j].QuantitySold
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CategorySales attributes item revenue to menu categories via catalog
// lookup of the snapshotted menu item ID. Items whose menu entry no longer
// exists land in "other".
func (s *ReportService) CategorySales(timeframe string) ([]CategorySales, error) {
	orders, err := s.filtered(timeframe)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]decimal.Decimal)
	for _, o := range orders {
		for _, item := range o.Items {
			category := "other"
			if menuItem, ok := s.menu.GetMenuItem(item.MenuItemID); ok {
				category = menuItem.Category
			}
			totals[category] = totals[category].Add(item.LineTotal())
		}
	}

	out := make([]CategorySales, 0, len(totals))
	for category, revenue := range totals {
		out = append(out, CategorySales{Category: category, TotalRevenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TotalRevenue.GreaterThan(out[j].TotalRevenue)
	})
	return out, nil
}
