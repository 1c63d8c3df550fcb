package cart

import (
	"context"
	"errors"
	"time"

	"menuapp/internal/core"
	"menuapp/internal/menu"
	"menuapp/internal/restaurant"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrRestaurantNotFound  = errors.New("restaurant not found")
	ErrItemNotInRestaurant = errors.New("menu item does not belong to this restaurant")
	ErrItemUnavailable     = errors.New("menu item is out of stock")
	ErrTakeawayUnavailable = errors.New("menu item is not available for takeaway")
)

// MenuItemReader resolves menu items added to a cart.
type MenuItemReader interface {
	GetItem(ctx context.Context, id int64) (*menu.MenuItem, error)
}

// View is a cart session as returned to clients.
type View struct {
	ID           string `json:"id"`
	RestaurantID int64  `json:"restaurant_id"`
	Snapshot
}

// LinePatch holds the optional fields of a line update.
type LinePatch struct {
	DineInQuantity      *int    `json:"dine_in_quantity"`
	TakeawayQuantity    *int    `json:"takeaway_quantity"`
	SpecialInstructions *string `json:"special_instructions"`
}

type Service struct {
	store       Store
	items       MenuItemReader
	restaurants core.RestaurantReader
	log         zerolog.Logger
	now         func() time.Time
}

func NewService(store Store, items MenuItemReader, restaurants core.RestaurantReader, log zerolog.Logger) *Service {
	return &Service{
		store:       store,
		items:       items,
		restaurants: restaurants,
		log:         log.With().Str("component", "cart").Logger(),
		now:         time.Now,
	}
}

// Open starts an empty cart for a restaurant.
func (s *Service) Open(ctx context.Context, restaurantID int64) (*View, error) {
	res, err := s.restaurants.GetRestaurant(ctx, restaurantID)
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}

	sess := &Session{
		ID:           uuid.NewString(),
		RestaurantID: res.ID,
		UpdatedAt:    s.now(),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}

	s.log.Debug().Str("cart_id", sess.ID).Int64("restaurant_id", res.ID).Msg("cart opened")
	return view(sess, New(res.UniversalParcelCharge)), nil
}

func (s *Service) Get(ctx context.Context, cartID string) (*View, error) {
	sess, c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return view(sess, c), nil
}

func (s *Service) AddItem(ctx context.Context, cartID string, menuItemID int64) (*View, error) {
	sess, c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.GetItem(ctx, menuItemID)
	if err != nil {
		return nil, err
	}
	if item.RestaurantID != sess.RestaurantID {
		return nil, ErrItemNotInRestaurant
	}
	if !item.InStock {
		return nil, ErrItemUnavailable
	}

	c.AddItem(*item)
	return s.save(ctx, sess, c)
}

// UpdateLine applies a patch through the aggregator, so negative quantities
// and unknown items are silently ignored.
func (s *Service) UpdateLine(ctx context.Context, cartID string, itemID int64, patch LinePatch) (*View, error) {
	sess, c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if patch.TakeawayQuantity != nil && *patch.TakeawayQuantity > 0 {
		if line, ok := c.Line(itemID); ok && !line.Item.TakeawayAvailable {
			return nil, ErrTakeawayUnavailable
		}
	}

	if patch.SpecialInstructions != nil {
		c.SetInstructions(itemID, *patch.SpecialInstructions)
	}
	c.SetQuantities(itemID, patch.DineInQuantity, patch.TakeawayQuantity)

	return s.save(ctx, sess, c)
}

func (s *Service) Clear(ctx context.Context, cartID string) (*View, error) {
	sess, c, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Clear()
	return s.save(ctx, sess, c)
}

// LockCheckout holds a cart for the duration of one checkout.
func (s *Service) LockCheckout(ctx context.Context, cartID string) (func(), error) {
	return s.store.Lock(ctx, cartID)
}

// load rebuilds the aggregator from the stored lines using the restaurant's
// current parcel charge.
func (s *Service) load(ctx context.Context, cartID string) (*Session, *Cart, error) {
	sess, err := s.store.Get(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}

	res, err := s.restaurants.GetRestaurant(ctx, sess.RestaurantID)
	if err != nil {
		if errors.Is(err, restaurant.ErrNotFound) {
			return nil, nil, ErrRestaurantNotFound
		}
		return nil, nil, err
	}

	c := New(res.UniversalParcelCharge)
	c.Restore(sess.Lines)
	return sess, c, nil
}

func (s *Service) save(ctx context.Context, sess *Session, c *Cart) (*View, error) {
	snap := c.Snapshot()
	sess.Lines = snap.Lines
	sess.UpdatedAt = s.now()

	if err := s.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return &View{ID: sess.ID, RestaurantID: sess.RestaurantID, Snapshot: snap}, nil
}

func view(sess *Session, c *Cart) *View {
	return &View{ID: sess.ID, RestaurantID: sess.RestaurantID, Snapshot: c.Snapshot()}
}
