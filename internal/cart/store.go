package cart

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCartNotFound       = errors.New("cart not found")
	ErrCheckoutInProgress = errors.New("cart checkout already in progress")
)

// lockTTL bounds how long a crashed checkout can hold a cart.
const lockTTL = 30 * time.Second

// Session is the persisted state of one customer cart.
type Session struct {
	ID           string    `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	Lines        []Line    `json:"lines"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Store persists cart sessions. Expired or unknown ids return ErrCartNotFound.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	// Lock takes the checkout lock of a cart. It fails with
	// ErrCheckoutInProgress while another holder has it.
	Lock(ctx context.Context, id string) (unlock func(), err error)
}
