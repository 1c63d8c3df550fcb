package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrder(restaurantID int64) *Order {
	return &Order{
		CustomerName: "Asha",
		Total:        decimal.RequireFromString("8.99"),
		Items:        []Item{{MenuItemID: 1, MenuItemName: "Classic Burger", MenuItemPrice: decimal.RequireFromString("8.99"), DineInQuantity: 1}},
		RestaurantID: restaurantID,
	}
}

func TestInMemory_DailyOrderNumber(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	a, b, other := newOrder(1), newOrder(1), newOrder(2)
	require.NoError(t, repo.Place(ctx, a))
	require.NoError(t, repo.Place(ctx, b))
	require.NoError(t, repo.Place(ctx, other))

	assert.Equal(t, 1, a.DailyOrderNumber)
	assert.Equal(t, 2, b.DailyOrderNumber)
	assert.Equal(t, 1, other.DailyOrderNumber)
	assert.Equal(t, StatusPending, b.Status)

	now = now.Add(24 * time.Hour)
	next := newOrder(1)
	require.NoError(t, repo.Place(ctx, next))
	assert.Equal(t, 1, next.DailyOrderNumber)
	assert.Equal(t, int64(4), next.ID)
}

func TestInMemory_PlaceForcesPending(t *testing.T) {
	repo := NewInMemoryRepository(nil)

	o := newOrder(1)
	o.Status = StatusCompleted
	require.NoError(t, repo.Place(context.Background(), o))

	got, err := repo.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
}

func TestInMemory_ListByRestaurant(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()

	for _, rid := range []int64{1, 2, 1} {
		require.NoError(t, repo.Place(ctx, newOrder(rid)))
	}

	list, err := repo.ListByRestaurant(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].ID)
	assert.Equal(t, int64(1), list[1].ID)

	list, err = repo.ListByRestaurant(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInMemory_GuardedStatusUpdate(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()

	o := newOrder(1)
	require.NoError(t, repo.Place(ctx, o))

	updated, err := repo.UpdateStatus(ctx, o.ID, StatusPending, StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, updated.Status)

	_, err = repo.UpdateStatus(ctx, o.ID, StatusPending, StatusRejected)
	assert.ErrorIs(t, err, ErrStatusConflict)

	_, err = repo.UpdateStatus(ctx, 99, StatusPending, StatusAccepted)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemory_MutationsSignal(t *testing.T) {
	n := NewMemoryNotifier()
	repo := NewInMemoryRepository(n)
	ctx := context.Background()

	sig, unsubscribe := n.Subscribe(1)
	defer unsubscribe()

	o := newOrder(1)
	require.NoError(t, repo.Place(ctx, o))
	select {
	case <-sig:
	default:
		t.Fatal("expected a signal after Place")
	}

	_, err := repo.UpdateStatus(ctx, o.ID, StatusPending, StatusAccepted)
	require.NoError(t, err)
	select {
	case <-sig:
	default:
		t.Fatal("expected a signal after UpdateStatus")
	}

	require.NoError(t, repo.Place(ctx, newOrder(2)))
	select {
	case <-sig:
		t.Fatal("unexpected signal for another restaurant")
	default:
	}
}
