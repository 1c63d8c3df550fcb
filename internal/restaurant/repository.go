package restaurant

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("restaurant not found")

type Repository interface {
	Create(ctx context.Context, r *Restaurant) error
	Get(ctx context.Context, id int64) (*Restaurant, error)
	UpdateDetails(ctx context.Context, id int64, s Settings) error
	UpdateLogoURL(ctx context.Context, id int64, logoURL string) error
}
