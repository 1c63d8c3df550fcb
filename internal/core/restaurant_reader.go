package core

import (
	"context"

	"menuapp/internal/restaurant"
)

// RestaurantReader is the read side of the restaurant module shared by
// menu, cart and order.
type RestaurantReader interface {
	GetRestaurant(ctx context.Context, id int64) (*restaurant.Restaurant, error)
}
