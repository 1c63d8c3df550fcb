package menu

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository backs the local build and the tests. New ids follow
// max(id)+1 like the simulated backend they replace.
type InMemoryRepository struct {
	mu         sync.RWMutex
	categories map[int64]Category
	items      map[int64]MenuItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		categories: make(map[int64]Category),
		items:      make(map[int64]MenuItem),
	}
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (r *InMemoryRepository) ListCategories(ctx context.Context, restaurantID int64) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Category{}
	for _, c := range r.categories {
		if c.RestaurantID == restaurantID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) GetCategory(ctx context.Context, id int64) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return &c, nil
}

func (r *InMemoryRepository) CreateCategory(ctx context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		for id := range r.categories {
			if id > c.ID {
				c.ID = id
			}
		}
		c.ID++
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *InMemoryRepository) UpdateCategory(ctx context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[c.ID]; !ok {
		return ErrCategoryNotFound
	}
	r.categories[c.ID] = *c
	return nil
}

func (r *InMemoryRepository) DeleteCategory(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	for _, item := range r.items {
		if item.CategoryID == id {
			return ErrCategoryInUse
		}
	}
	delete(r.categories, id)
	return nil
}

// --------------------------------------------------
// Menu items
// --------------------------------------------------

func (r *InMemoryRepository) ListItems(ctx context.Context, restaurantID int64) ([]MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []MenuItem{}
	for _, item := range r.items {
		if item.RestaurantID == restaurantID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) GetItem(ctx context.Context, id int64) (*MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (r *InMemoryRepository) CreateItem(ctx context.Context, item *MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == 0 {
		for id := range r.items {
			if id > item.ID {
				item.ID = id
			}
		}
		item.ID++
	}
	r.items[item.ID] = *item
	return nil
}

func (r *InMemoryRepository) UpdateItem(ctx context.Context, item *MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[item.ID]; !ok {
		return ErrItemNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *InMemoryRepository) DeleteItem(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryRepository) SetInStock(ctx context.Context, id int64, inStock bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return ErrItemNotFound
	}
	item.InStock = inStock
	r.items[id] = item
	return nil
}
