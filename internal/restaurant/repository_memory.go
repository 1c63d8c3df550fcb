package restaurant

import (
	"context"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu          sync.RWMutex
	restaurants map[int64]*Restaurant
	nextID      int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		restaurants: make(map[int64]*Restaurant),
		nextID:      1,
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, res *Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.ID == 0 {
		res.ID = r.nextID
	}
	if res.ID >= r.nextID {
		r.nextID = res.ID + 1
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	cp := *res
	r.restaurants[res.ID] = &cp
	return nil
}

func (r *InMemoryRepository) Get(ctx context.Context, id int64) (*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.restaurants[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *InMemoryRepository) UpdateDetails(ctx context.Context, id int64, s Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.restaurants[id]
	if !ok {
		return ErrNotFound
	}
	res.Name = s.Name
	res.UniversalParcelCharge = s.UniversalParcelCharge
	return nil
}

func (r *InMemoryRepository) UpdateLogoURL(ctx context.Context, id int64, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.restaurants[id]
	if !ok {
		return ErrNotFound
	}
	res.LogoURL = &logoURL
	return nil
}
