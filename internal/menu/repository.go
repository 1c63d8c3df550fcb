package menu

import (
	"context"
	"errors"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("menu item not found")
	ErrCategoryInUse    = errors.New("category still has menu items")
)

// Repository defines all database operations for categories and menu items.
// Every list is filtered by restaurant.
type Repository interface {

	// -------------------------------
	// Categories
	// -------------------------------

	ListCategories(ctx context.Context, restaurantID int64) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id int64) error

	// -------------------------------
	// Menu items
	// -------------------------------

	ListItems(ctx context.Context, restaurantID int64) ([]MenuItem, error)
	GetItem(ctx context.Context, id int64) (*MenuItem, error)
	CreateItem(ctx context.Context, item *MenuItem) error
	UpdateItem(ctx context.Context, item *MenuItem) error
	DeleteItem(ctx context.Context, id int64) error
	SetInStock(ctx context.Context, id int64, inStock bool) error
}
