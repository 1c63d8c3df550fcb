package auth

import (
	"context"
	"errors"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrNoRestaurant = errors.New("user is not linked to a restaurant")
)

// UserRepository defines the data-access contract.
// Service depends ONLY on this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)

	// LinkRestaurant attaches the user to the restaurant they administer.
	LinkRestaurant(ctx context.Context, userID string, restaurantID int64) error
	GetRestaurantIDForUser(ctx context.Context, userID string) (int64, error)
}
