// Package seed regenerates the default data set: tables, the menu with its
// modifier groups, display categories and the inventory list. The store
// falls back to these generators whenever a persisted collection is missing
// or unreadable.
package seed

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dinehall/api/internal/enum"
	"github.com/dinehall/api/internal/model"
)

// Tables generates the default 12-table floor plan. Capacity and initial
// status follow a fixed pattern so the floor looks lived-in on first run.
func Tables() []model.Table {
	tables := make([]model.Table, 0, 12)
	for i := 1; i <= 12; i++ {
		capacity := 2
		switch {
		case i%3 == 0:
			capacity = 6
		case i%2 == 0:
			capacity = 4
		}
		status := enum.TableStatusAvailable
		switch {
		case i%5 == 0:
			status = enum.TableStatusOccupied
		case i%7 == 0:
			status = enum.TableStatusReserved
		}
		tables = append(tables, model.Table{
			ID:       uuid.New(),
			Number:   i,
			Capacity: capacity,
			Status:   status,
			QRCode:   fmt.Sprintf("https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=table-%d", i),
		})
	}
	return tables
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// modifierGroups builds the three shared customization axes. The Size group
// carries a negative delta for Small.
func modifierGroups() []model.ModifierGroup {
	return []model.ModifierGroup{
		{
			ID:   uuid.New(),
			Name: "Spice Level",
			Options: []model.ModifierOption{
				{ID: uuid.New(), Name: "Mild", Price: decimal.Zero},
				{ID: uuid.New(), Name: "Medium", Price: decimal.Zero},
				{ID: uuid.New(), Name: "Hot", Price: decimal.Zero},
				{ID: uuid.New(), Name: "Extra Hot", Price: price("0.50")},
			},
			Required:    true,
			MultiSelect: false,
		},
		{
			ID:   uuid.New(),
			Name: "Toppings",
			Options: []model.ModifierOption{
				{ID: uuid.New(), Name: "Cheese", Price: price("1.00")},
				{ID: uuid.New(), Name: "Mushrooms", Price: price("1.50")},
				{ID: uuid.New(), Name: "Peppers", Price: price("1.00")},
				{ID: uuid.New(), Name: "Onions", Price: price("0.75")},
			},
			Required:    false,
			MultiSelect: true,
		},
		{
			ID:   uuid.New(),
			Name: "Size",
			Options: []model.ModifierOption{
				{ID: uuid.New(), Name: "Small", Price: price("-2.00")},
				{ID: uuid.New(), Name: "Regular", Price: decimal.Zero},
				{ID: uuid.New(), Name: "Large", Price: price("3.00")},
			},
			Required:    true,
			MultiSelect: false,
		},
	}
}

// MenuItems generates the default menu.
func MenuItems() []model.MenuItem {
	mods := modifierGroups()
	spice, toppings, size := mods[0], mods[1], mods[2]

	return []model.MenuItem{
		{
			ID:              uuid.New(),
			Name:            "Margherita Pizza",
			Description:     "Classic pizza with tomato sauce, mozzarella, and basil",
			Price:           price("12.99"),
			Category:        "pizza",
			Image:           "https://images.pexels.com/photos/3944311/pexels-photo-3944311.jpeg",
			Available:       true,
			PreparationTime: 15,
			Customizable:    true,
			Modifiers:       []model.ModifierGroup{toppings, size},
		},
		{
			ID:              uuid.New(),
			Name:            "Pepperoni Pizza",
			Description:     "Pizza with tomato sauce, mozzarella, and pepperoni",
			Price:           price("14.99"),
			Category:        "pizza",
			Image:           "https://images.pexels.com/photos/2619970/pexels-photo-2619970.jpeg",
			Available:       true,
			PreparationTime: 15,
			Customizable:    true,
			Modifiers:       []model.ModifierGroup{toppings, size},
		},
		{
			ID:              uuid.New(),
			Name:            "Veggie Pizza",
			Description:     "Pizza with tomato sauce, mozzarella, and assorted vegetables",
			Price:           price("13.99"),
			Category:        "pizza",
			Image:           "https://images.pexels.com/photos/2180875/pexels-photo-2180875.jpeg",
			Available:       false,
			PreparationTime: 15,
			Customizable:    true,
			Modifiers:       []model.ModifierGroup{toppings, size},
		},
		{
			ID:              uuid.New(),
			Name:            "Caesar Salad",
			Description:     "Romaine lettuce, croutons, parmesan cheese with Caesar dressing",
			Price:           price("8.99"),
			Category:        "salad",
			Image:           "https://images.pexels.com/photos/1211887/pexels-photo-1211887.jpeg",
			Available:       true,
			PreparationTime: 5,
		},
		{
			ID:              uuid.New(),
			Name:            "Greek Salad",
			Description:     "Mixed greens, tomatoes, cucumbers, olives, feta cheese with vinaigrette",
			Price:           price("9.99"),
			Category:        "salad",
			Image:           "https://images.pexels.com/photos/16982655/pexels-photo-16982655.jpeg",
			Available:       true,
			PreparationTime: 5,
		},
		{
			ID:              uuid.New(),
			Name:            "Spaghetti Bolognese",
			Description:     "Spaghetti with hearty meat sauce",
			Price:           price("15.99"),
			Category:        "pasta",
			Image:           "https://images.pexels.com/photos/1279330/pexels-photo-1279330.jpeg",
			Available:       true,
			PreparationTime: 20,
			Customizable:    true,
			Modifiers:       []model.ModifierGroup{spice},
		},
		{
			ID:              uuid.New(),
			Name:            "Fettuccine Alfredo",
			Description:     "Fettuccine pasta with creamy parmesan sauce",
			Price:           price("14.99"),
			Category:        "pasta",
			Image:           "https://images.pexels.com/photos/5710170/pexels-photo-5710170.jpeg",
			Available:       true,
			PreparationTime: 18,
		},
		{
			ID:              uuid.New(),
			Name:            "Tiramisu",
			Description:     "Classic Italian dessert with coffee-soaked ladyfingers and mascarpone cream",
			Price:           price("7.99"),
			Category:        "dessert",
			Image:           "https://images.pexels.com/photos/6880219/pexels-photo-6880219.jpeg",
			Available:       true,
		},
		{
			ID:              uuid.New(),
			Name:            "Cheesecake",
			Description:     "Creamy cheesecake with berry compote",
			Price:           price("6.99"),
			Category:        "dessert",
			Image:           "https://images.pexels.com/photos/4553123/pexels-photo-4553123.jpeg",
			Available:       true,
		},
		{
			ID:              uuid.New(),
			Name:            "Coca-Cola",
			Description:     "Classic cola beverage",
			Price:           price("2.99"),
			Category:        "drinks",
			Image:           "https://images.pexels.com/photos/2983100/pexels-photo-2983100.jpeg",
			Available:       true,
		},
		{
			ID:              uuid.New(),
			Name:            "Iced Tea",
			Description:     "Refreshing iced tea with lemon",
			Price:           price("2.99"),
			Category:        "drinks",
			Image:           "https://images.pexels.com/photos/1194030/pexels-photo-1194030.jpeg",
			Available:       true,
		},
		{
			ID:              uuid.New(),
			Name:            "Fresh Lemonade",
			Description:     "Housemade lemonade with fresh lemons",
			Price:           price("3.99"),
			Category:        "drinks",
			Image:           "https://images.pexels.com/photos/357573/pexels-photo-357573.jpeg",
			Available:       true,
			PreparationTime: 3,
		},
	}
}

// MenuCategories generates the display categories keyed by the category
// strings on menu items.
func MenuCategories() []model.MenuCategory {
	return []model.MenuCategory{
		{ID: uuid.New(), Key: "pizza", Name: "Pizza"},
		{ID: uuid.New(), Key: "pasta", Name: "Pasta"},
		{ID: uuid.New(), Key: "salad", Name: "Salad"},
		{ID: uuid.New(), Key: "dessert", Name: "Dessert"},
		{ID: uuid.New(), Key: "drinks", Name: "Drinks"},
	}
}

// InventoryItems generates the default stock list.
func InventoryItems() []model.InventoryItem {
	return []model.InventoryItem{
		{ID: uuid.New(), Name: "Flour", Category: "Dry Goods", Stock: 25, Threshold: 10, Unit: "kg", Price: price("1.50")},
		{ID: uuid.New(), Name: "Tomatoes", Category: "Produce", Stock: 8, Threshold: 10, Unit: "kg", Price: price("2.99")},
		{ID: uuid.New(), Name: "Mozzarella Cheese", Category: "Dairy", Stock: 15, Threshold: 5, Unit: "kg", Price: price("9.99")},
		{ID: uuid.New(), Name: "Olive Oil", Category: "Oils", Stock: 5, Threshold: 10, Unit: "L", Price: price("12.99")},
		{ID: uuid.New(), Name: "Pepperoni", Category: "Meats", Stock: 7, Threshold: 3, Unit: "kg", Price: price("15.99")},
		{ID: uuid.New(), Name: "Red Wine", Category: "Beverages", Stock: 2, Threshold: 5, Unit: "bottles", Price: price("18.99")},
		{ID: uuid.New(), Name: "Basil", Category: "Herbs", Stock: 4, Threshold: 5, Unit: "bunches", Price: price("3.99")},
		{ID: uuid.New(), Name: "Garlic", Category: "Produce", Stock: 20, Threshold: 8, Unit: "heads", Price: price("0.99")},
	}
}
