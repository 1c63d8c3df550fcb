package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"menuapp/internal/cart"
	"menuapp/internal/events"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidOrder      = errors.New("invalid order")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrForbidden         = errors.New("order belongs to another restaurant")
)

// Carts is the part of the cart service used at checkout.
type Carts interface {
	Get(ctx context.Context, cartID string) (*cart.View, error)
	Clear(ctx context.Context, cartID string) (*cart.View, error)
	LockCheckout(ctx context.Context, cartID string) (func(), error)
}

type Service struct {
	repo      Repository
	carts     Carts
	publisher events.Publisher
	log       zerolog.Logger
}

func NewService(repo Repository, carts Carts, publisher events.Publisher, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		carts:     carts,
		publisher: publisher,
		log:       log.With().Str("component", "order").Logger(),
	}
}

// --------------------------------------------------
// PlaceOrder builds and stores the order for a cart snapshot
// --------------------------------------------------
func (s *Service) PlaceOrder(ctx context.Context, restaurantID int64, customerName string, snap cart.Snapshot) (*Order, error) {
	if restaurantID <= 0 {
		return nil, fmt.Errorf("%w: restaurant id is missing", ErrInvalidOrder)
	}
	if len(snap.Lines) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidOrder)
	}
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	}

	items := make([]Item, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		items = append(items, Item{
			MenuItemID:          l.Item.ID,
			MenuItemName:        l.Item.Name,
			MenuItemPrice:       l.Item.Price,
			DineInQuantity:      l.DineInQuantity,
			TakeawayQuantity:    l.TakeawayQuantity,
			SpecialInstructions: strings.TrimSpace(l.SpecialInstructions),
		})
	}

	o := &Order{
		CustomerName: customerName,
		Total:        snap.Total,
		Items:        items,
		Status:       StatusPending,
		RestaurantID: restaurantID,
	}
	if err := s.repo.Place(ctx, o); err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("order_id", o.ID).
		Int64("restaurant_id", restaurantID).
		Int("daily_order_number", o.DailyOrderNumber).
		Str("total", o.Total.StringFixed(2)).
		Msg("order placed")

	s.publish(ctx, events.TypeOrderPlaced, o)
	return o, nil
}

// Checkout places the cart's order and clears the cart once it is stored.
// A concurrent checkout of the same cart fails with cart.ErrCheckoutInProgress.
func (s *Service) Checkout(ctx context.Context, cartID, customerName string) (*Order, error) {
	unlock, err := s.carts.LockCheckout(ctx, cartID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	v, err := s.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}

	o, err := s.PlaceOrder(ctx, v.RestaurantID, customerName, v.Snapshot)
	if err != nil {
		return nil, err
	}

	if _, err := s.carts.Clear(ctx, cartID); err != nil {
		s.log.Error().Err(err).Str("cart_id", cartID).Int64("order_id", o.ID).Msg("clear cart after checkout")
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, restaurantID int64) ([]Order, error) {
	return s.repo.ListByRestaurant(ctx, restaurantID)
}

// UpdateStatus moves an order along its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, restaurantID, orderID int64, to Status) (*Order, error) {
	if !to.Valid() {
		return nil, ErrInvalidStatus
	}

	current, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if current.RestaurantID != restaurantID {
		return nil, ErrForbidden
	}
	if !current.Status.CanTransitionTo(to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, to)
	}

	o, err := s.repo.UpdateStatus(ctx, orderID, current.Status, to)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("order_id", o.ID).
		Str("from", string(current.Status)).
		Str("to", string(to)).
		Msg("order status updated")

	s.publish(ctx, events.TypeOrderStatusChanged, o)
	return o, nil
}

// publish never fails the caller.
func (s *Service) publish(ctx context.Context, eventType string, o *Order) {
	err := s.publisher.Publish(ctx, events.Event{
		Type:    eventType,
		Key:     strconv.FormatInt(o.RestaurantID, 10),
		Payload: o,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("type", eventType).Int64("order_id", o.ID).Msg("publish order event")
	}
}
