package order

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("order not found")
	ErrStatusConflict = errors.New("order status changed concurrently")
)

// Repository stores orders. Every mutation emits a change signal for the
// order's restaurant.
type Repository interface {
	// Place assigns the id and the per-restaurant daily order number.
	Place(ctx context.Context, o *Order) error
	ListByRestaurant(ctx context.Context, restaurantID int64) ([]Order, error)
	Get(ctx context.Context, id int64) (*Order, error)
	// UpdateStatus only applies when the current status equals from.
	UpdateStatus(ctx context.Context, id int64, from, to Status) (*Order, error)
}
