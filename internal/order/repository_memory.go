package order

import (
	"context"
	"sort"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu       sync.RWMutex
	orders   map[int64]Order
	nextID   int64
	notifier *MemoryNotifier
	now      func() time.Time
}

// NewInMemoryRepository signals changes on notifier when it is not nil.
func NewInMemoryRepository(notifier *MemoryNotifier) *InMemoryRepository {
	return &InMemoryRepository{
		orders:   make(map[int64]Order),
		notifier: notifier,
		now:      time.Now,
	}
}

func (r *InMemoryRepository) Place(ctx context.Context, o *Order) error {
	r.mu.Lock()

	now := r.now()
	y, m, d := now.Date()

	number := 0
	for _, existing := range r.orders {
		ey, em, ed := existing.CreatedAt.In(now.Location()).Date()
		if existing.RestaurantID == o.RestaurantID && ey == y && em == m && ed == d && existing.DailyOrderNumber > number {
			number = existing.DailyOrderNumber
		}
	}

	r.nextID++
	o.ID = r.nextID
	o.DailyOrderNumber = number + 1
	o.Status = StatusPending
	o.CreatedAt = now

	stored := *o
	stored.Items = append([]Item(nil), o.Items...)
	r.orders[o.ID] = stored
	r.mu.Unlock()

	r.signal(o.RestaurantID)
	return nil
}

func (r *InMemoryRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Order{}
	for _, o := range r.orders {
		if o.RestaurantID == restaurantID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id int64) (*Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id int64, from, to Status) (*Order, error) {
	r.mu.Lock()

	o, ok := r.orders[id]
	if !ok {
		r.mu.Unlock()
		return nil, ErrNotFound
	}
	if o.Status != from {
		r.mu.Unlock()
		return nil, ErrStatusConflict
	}

	o.Status = to
	r.orders[id] = o
	r.mu.Unlock()

	r.signal(o.RestaurantID)
	return &o, nil
}

func (r *InMemoryRepository) signal(restaurantID int64) {
	if r.notifier != nil {
		r.notifier.Notify(restaurantID)
	}
}
