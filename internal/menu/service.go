package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"menuapp/internal/core"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidInput = errors.New("invalid menu input")
	ErrForbidden    = errors.New("belongs to another restaurant")
)

type Service struct {
	repo        Repository
	restaurants core.RestaurantReader
	log         zerolog.Logger
}

func NewService(repo Repository, restaurants core.RestaurantReader, log zerolog.Logger) *Service {
	return &Service{
		repo:        repo,
		restaurants: restaurants,
		log:         log.With().Str("component", "menu").Logger(),
	}
}

// --------------------------------------------------
// Public menu (grouped by category)
// --------------------------------------------------
func (s *Service) GetMenu(ctx context.Context, restaurantID int64) (*Menu, error) {
	res, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.ListCategories(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	grouped := make(map[int64][]MenuItem, len(categories))
	for _, item := range items {
		grouped[item.CategoryID] = append(grouped[item.CategoryID], item)
	}

	return &Menu{
		Restaurant: res,
		Categories: categories,
		Items:      grouped,
	}, nil
}

// GetItem is used by the cart to resolve menu items.
func (s *Service) GetItem(ctx context.Context, id int64) (*MenuItem, error) {
	return s.repo.GetItem(ctx, id)
}

// --------------------------------------------------
// ADMIN: categories
// --------------------------------------------------

func (s *Service) AddCategory(ctx context.Context, restaurantID int64, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	c := &Category{Name: name, RestaurantID: restaurantID}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.log.Info().Int64("restaurant_id", restaurantID).Int64("category_id", c.ID).Msg("category added")
	return c, nil
}

func (s *Service) UpdateCategory(ctx context.Context, restaurantID, id int64, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}

	c, err := s.ownedCategory(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	c.Name = name
	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteCategory(ctx context.Context, restaurantID, id int64) error {
	if _, err := s.ownedCategory(ctx, restaurantID, id); err != nil {
		return err
	}
	return s.repo.DeleteCategory(ctx, id)
}

func (s *Service) ownedCategory(ctx context.Context, restaurantID, id int64) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.RestaurantID != restaurantID {
		return nil, ErrForbidden
	}
	return c, nil
}

// --------------------------------------------------
// ADMIN: menu items
// --------------------------------------------------

func (s *Service) AddItem(ctx context.Context, restaurantID int64, in ItemInput) (*MenuItem, error) {
	item := &MenuItem{
		RestaurantID:      restaurantID,
		InStock:           true,
		TakeawayAvailable: true,
	}
	if err := s.apply(ctx, restaurantID, item, in); err != nil {
		return nil, err
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.log.Info().Int64("restaurant_id", restaurantID).Int64("item_id", item.ID).Msg("menu item added")
	return item, nil
}

func (s *Service) UpdateItem(ctx context.Context, restaurantID, id int64, in ItemInput) (*MenuItem, error) {
	item, err := s.ownedItem(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, restaurantID, item, in); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteItem(ctx context.Context, restaurantID, id int64) error {
	if _, err := s.ownedItem(ctx, restaurantID, id); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, id)
}

func (s *Service) SetStock(ctx context.Context, restaurantID, id int64, inStock bool) (*MenuItem, error) {
	item, err := s.ownedItem(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetInStock(ctx, id, inStock); err != nil {
		return nil, err
	}

	item.InStock = inStock
	s.log.Info().Int64("item_id", id).Bool("in_stock", inStock).Msg("stock updated")
	return item, nil
}

func (s *Service) ownedItem(ctx context.Context, restaurantID, id int64) (*MenuItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != restaurantID {
		return nil, ErrForbidden
	}
	return item, nil
}

// apply validates the input and copies it onto item.
func (s *Service) apply(ctx context.Context, restaurantID int64, item *MenuItem, in ItemInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if in.ParcelCharge != nil && in.ParcelCharge.IsNegative() {
		return fmt.Errorf("%w: parcel charge must not be negative", ErrInvalidInput)
	}

	if _, err := s.ownedCategory(ctx, restaurantID, in.CategoryID); err != nil {
		if errors.Is(err, ErrCategoryNotFound) {
			return fmt.Errorf("%w: unknown category", ErrInvalidInput)
		}
		return err
	}

	item.Name = name
	item.Price = in.Price
	item.Description = in.Description
	item.CategoryID = in.CategoryID
	item.ParcelCharge = in.ParcelCharge
	if in.InStock != nil {
		item.InStock = *in.InStock
	}
	if in.TakeawayAvailable != nil {
		item.TakeawayAvailable = *in.TakeawayAvailable
	}
	return nil
}
