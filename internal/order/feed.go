package order

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const fetchTimeout = 10 * time.Second

// Feed turns change signals into full order lists.
type Feed struct {
	repo     Repository
	notifier Notifier
	log      zerolog.Logger
	group    singleflight.Group
}

func NewFeed(repo Repository, notifier Notifier, log zerolog.Logger) *Feed {
	return &Feed{
		repo:     repo,
		notifier: notifier,
		log:      log.With().Str("component", "order-feed").Logger(),
	}
}

// Watch emits the current orders of a restaurant, then the refetched list
// after every change signal. The channel is closed when ctx is done.
// Emitted slices are shared between watchers and must not be modified.
func (f *Feed) Watch(ctx context.Context, restaurantID int64) (<-chan []Order, error) {
	signals, unsubscribe := f.notifier.Subscribe(restaurantID)

	initial, err := f.fetch(ctx, restaurantID)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	out := make(chan []Order, 1)
	out <- initial

	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			select {
			case <-ctx.Done():
				return
			case <-signals:
			}

			orders, err := f.fetch(ctx, restaurantID)
			if err != nil {
				f.log.Error().Err(err).Int64("restaurant_id", restaurantID).Msg("order refetch failed")
				continue
			}

			select {
			case out <- orders:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// fetch coalesces concurrent refetches for the same restaurant.
func (f *Feed) fetch(ctx context.Context, restaurantID int64) ([]Order, error) {
	v, err, _ := f.group.Do(strconv.FormatInt(restaurantID, 10), func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		orders, err := f.repo.ListByRestaurant(fetchCtx, restaurantID)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
		return orders, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Order), nil
}
