package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dinehall/api/internal/enum"
	"github.com/dinehall/api/internal/model"
)

// mockOrderSource implements OrderSource over a fixed slice.
type mockOrderSource struct {
	orders []model.Order
}

func (m *mockOrderSource) Orders() []model.Order {
	return m.orders
}

// newReportFixture builds a ReportService over a fixed clock and a small
// order history: two completed orders today, one completed three days ago,
// one still pending today.
func newReportFixture() (*ReportService, uuid.UUID) {
	now := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC) // a Saturday
	pizzaID := uuid.New()

	menu := &mockMenu{items: map[uuid.UUID]model.MenuItem{
		pizzaID: {ID: pizzaID, Name: "Margherita", Price: dec("10"), Category: "pizza"},
	}}

	orders := []model.Order{
		{
			Status:      enum.OrderStatusCompleted,
			CreatedAt:   now.Add(-2 * time.Hour), // today, 13:00
			TotalAmount: dec("30"),
			Items: []model.OrderItem{
				{MenuItemID: pizzaID, Name: "Margherita", Price: dec("10"), Quantity: 3},
			},
		},
		{
			Status:      enum.OrderStatusCompleted,
			CreatedAt:   now.Add(-4 * time.Hour), // today, 11:00
			TotalAmount: dec("10"),
			Items: []model.OrderItem{
				{MenuItemID: pizzaID, Name: "Margherita", Price: dec("10"), Quantity: 1},
			},
		},
		{
			Status:      enum.OrderStatusCompleted,
			CreatedAt:   now.AddDate(0, 0, -3), // Wednesday
			TotalAmount: dec("25"),
			Items: []model.OrderItem{
				{MenuItemID: uuid.New(), Name: "Off Menu Special", Price: dec("25"), Quantity: 1},
			},
		},
		{
			Status:      enum.OrderStatusPending,
			CreatedAt:   now.Add(-time.Hour), // today, 14:00
			TotalAmount: dec("99"),
			Items: []model.OrderItem{
				{MenuItemID: pizzaID, Name: "Margherita", Price: dec("10"), Quantity: 2},
			},
		},
	}

	svc := NewReportService(&mockOrderSource{orders: orders}, menu)
	svc.now = func() time.Time { return now }
	return svc, pizzaID
}

func TestSummary_RevenueCountsCompletedOnly(t *testing.T) {
	svc, _ := newReportFixture()

	summary, err := svc.Summary(TimeframeAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalOrders != 4 {
		t.Errorf("total orders: got %d, want 4", summary.TotalOrders)
	}
	if summary.CompletedOrders != 3 {
		t.Errorf("completed orders: got %d, want 3", summary.CompletedOrders)
	}
	// 30 + 10 + 25 = 65; the pending order's 99 is excluded.
	if !summary.TotalRevenue.Equal(dec("65")) {
		t.Errorf("revenue: got %v, want 65", summary.TotalRevenue)
	}
	// 65 / 3 = 21.67 rounded
	if !summary.AverageOrderValue.Equal(dec("21.67")) {
		t.Errorf("average: got %v, want 21.67", summary.AverageOrderValue)
	}
}

func TestSummary_TodayExcludesOlderOrders(t *testing.T) {
	svc, _ := newReportFixture()

	summary, err := svc.Summary(TimeframeToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.TotalOrders != 3 {
		t.Errorf("total orders today: got %d, want 3", summary.TotalOrders)
	}
	if !summary.TotalRevenue.Equal(dec("40")) {
		t.Errorf("revenue today: got %v, want 40", summary.TotalRevenue)
	}
}

func TestSummary_WeekIncludesRecentDays(t *testing.T) {
	svc, _ := newReportFixture()

	summary, err := svc.Summary(TimeframeWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalOrders != 4 {
		t.Errorf("total orders this week: got %d, want 4", summary.TotalOrders)
	}
}

func TestSummary_InvalidTimeframe(t *testing.T) {
	svc, _ := newReportFixture()

	_, err := svc.Summary("fortnight")
	if !errors.Is(err, ErrInvalidTimeframe) {
		t.Fatalf("expected ErrInvalidTimeframe, got: %v", err)
	}
}

func TestHourly_AllBucketsPresent(t *testing.T) {
	svc, _ := newReportFixture()

	buckets, err := svc.Hourly(TimeframeToday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(buckets) != 24 {
		t.Fatalf("expected 24 buckets, got %d", len(buckets))
	}
	if buckets[13].OrderCount != 1 || !buckets[13].TotalRevenue.Equal(dec("30")) {
		t.Errorf("13:00 bucket: got %+v", buckets[13])
	}
	if buckets[0].OrderCount != 0 {
		t.Errorf("empty bucket should have zero count, got %d", buckets[0].OrderCount)
	}
}

func TestDaily_BucketsByWeekday(t *testing.T) {
	svc, _ := newReportFixture()

	buckets, err := svc.Daily(TimeframeWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(buckets))
	}
	if buckets[0].Day != "Sunday" {
		t.Errorf("first bucket: got %v, want Sunday", buckets[0].Day)
	}
	// Three orders on Saturday, one on Wednesday.
	if buckets[time.Saturday].OrderCount != 3 {
		t.Errorf("Saturday count: got %d, want 3", buckets[time.Saturday].OrderCount)
	}
	if buckets[time.Wednesday].OrderCount != 1 {
		t.Errorf("Wednesday count: got %d, want 1", buckets[time.Wednesday].OrderCount)
	}
}

func TestPopularItems_RankedByQuantity(t *testing.T) {
	svc, _ := newReportFixture()

	items, err := svc.PopularItems(TimeframeAll, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Margherita: 3 + 1 + 2 = 6 units, 60 revenue.
	if items[0].Name != "Margherita" || items[0].QuantitySold != 6 {
		t.Errorf("top item: got %+v", items[0])
	}
	if !items[0].TotalRevenue.Equal(dec("60")) {
		t.Errorf("top item revenue: got %v, want 60", items[0].TotalRevenue)
	}
}

func TestPopularItems_LimitApplied(t *testing.T) {
	svc, _ := newReportFixture()

	items, err := svc.PopularItems(TimeframeAll, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item with limit, got %d", len(items))
	}
}

func TestCategorySales_UnknownItemsLandInOther(t *testing.T) {
	svc, _ := newReportFixture()

	sales, err := svc.CategorySales(TimeframeAll)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byCategory := make(map[string]string)
	for _, s := range sales {
		byCategory[s.Category] = s.TotalRevenue.String()
	}
	// Margherita lines: 30 + 10 + 20 = 60.
	if byCategory["pizza"] != "60" {
		t.Errorf("pizza revenue: got %v, want 60", byCategory["pizza"])
	}
	// The off-menu special has no catalog entry.
	if byCategory["other"] != "25" {
		t.Errorf("other revenue: got %v, want 25", byCategory["other"])
	}
}
