// Package seed loads the demo data used by the in-memory backend.
package seed

import (
	"context"
	"fmt"

	"menuapp/internal/auth"
	"menuapp/internal/menu"
	"menuapp/internal/restaurant"

	"github.com/shopspring/decimal"
)

const (
	DemoAdminEmail    = "admin@example.com"
	DemoAdminPassword = "password"
)

func text(s string) *string { return &s }

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var restaurants = []restaurant.Restaurant{
	{ID: 1, Name: "The Burger Palace", UniversalParcelCharge: money("1.50")},
	{ID: 2, Name: "Pizza Heaven", UniversalParcelCharge: money("2.00")},
}

var categories = []menu.Category{
	{ID: 1, Name: "Burgers", RestaurantID: 1},
	{ID: 2, Name: "Sides", RestaurantID: 1},
	{ID: 3, Name: "Classic Pizzas", RestaurantID: 2},
	{ID: 4, Name: "Gourmet Pizzas", RestaurantID: 2},
}

var items = []menu.MenuItem{
	{ID: 1, Name: "Classic Burger", Price: money("8.99"), Description: text("A juicy beef patty with lettuce, tomato and house sauce."), CategoryID: 1, RestaurantID: 1, InStock: true, TakeawayAvailable: true},
	{ID: 2, Name: "Cheese Burger", Price: money("9.99"), Description: text("The classic burger with a slice of cheddar."), CategoryID: 1, RestaurantID: 1, InStock: false, TakeawayAvailable: true},
	{ID: 3, Name: "Fries", Price: money("3.50"), Description: text("Crispy golden fries."), CategoryID: 2, RestaurantID: 1, InStock: true, TakeawayAvailable: true},
	{ID: 4, Name: "Margherita Pizza", Price: money("12.00"), Description: text("Tomato, mozzarella and basil."), CategoryID: 3, RestaurantID: 2, InStock: true, TakeawayAvailable: true},
	{ID: 5, Name: "Pepperoni Pizza", Price: money("14.00"), Description: text("The all-time favourite."), CategoryID: 3, RestaurantID: 2, InStock: true, TakeawayAvailable: true},
	{ID: 6, Name: "Truffle Mushroom Pizza", Price: money("18.00"), Description: text("Truffle oil and assorted mushrooms."), CategoryID: 4, RestaurantID: 2, InStock: true, TakeawayAvailable: true},
}

// Demo creates the two demo restaurants with their menus and returns the
// id of the first one. Ids are remapped, so it works against repositories
// that assign their own ids.
func Demo(ctx context.Context, rs restaurant.Repository, ms menu.Repository) (int64, error) {
	restaurantIDs := make(map[int64]int64, len(restaurants))
	for i := range restaurants {
		res := restaurants[i]
		if err := rs.Create(ctx, &res); err != nil {
			return 0, fmt.Errorf("seed restaurant %q: %w", res.Name, err)
		}
		restaurantIDs[restaurants[i].ID] = res.ID
	}

	categoryIDs := make(map[int64]int64, len(categories))
	for i := range categories {
		c := categories[i]
		c.RestaurantID = restaurantIDs[c.RestaurantID]
		if err := ms.CreateCategory(ctx, &c); err != nil {
			return 0, fmt.Errorf("seed category %q: %w", c.Name, err)
		}
		categoryIDs[categories[i].ID] = c.ID
	}

	for i := range items {
		item := items[i]
		item.RestaurantID = restaurantIDs[item.RestaurantID]
		item.CategoryID = categoryIDs[item.CategoryID]
		if err := ms.CreateItem(ctx, &item); err != nil {
			return 0, fmt.Errorf("seed menu item %q: %w", item.Name, err)
		}
	}

	return restaurantIDs[restaurants[0].ID], nil
}

// Memory fills empty in-memory repositories with the demo data and a demo
// admin linked to the first restaurant.
func Memory(ctx context.Context, rs restaurant.Repository, ms menu.Repository, users *auth.Service) error {
	first, err := Demo(ctx, rs, ms)
	if err != nil {
		return err
	}

	if _, err := users.EnsureAdmin(ctx, DemoAdminEmail, DemoAdminPassword, first); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
