package order

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan []Order) []Order {
	t.Helper()
	select {
	case orders, ok := <-ch:
		require.True(t, ok, "feed closed")
		return orders
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for feed")
		return nil
	}
}

func TestFeed_InitialThenRefetch(t *testing.T) {
	n := NewMemoryNotifier()
	repo := NewInMemoryRepository(n)
	feed := NewFeed(repo, n, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, repo.Place(ctx, newOrder(1)))

	lists, err := feed.Watch(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, receive(t, lists), 1)

	require.NoError(t, repo.Place(ctx, newOrder(1)))
	got := receive(t, lists)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID, "newest first")

	_, err = repo.UpdateStatus(ctx, 1, StatusPending, StatusAccepted)
	require.NoError(t, err)
	got = receive(t, lists)
	assert.Equal(t, StatusAccepted, got[1].Status)
}

func TestFeed_ClosesOnCancel(t *testing.T) {
	n := NewMemoryNotifier()
	feed := NewFeed(NewInMemoryRepository(n), n, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	lists, err := feed.Watch(ctx, 1)
	require.NoError(t, err)
	receive(t, lists)

	cancel()
	select {
	case _, ok := <-lists:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("feed did not close")
	}
}

type flakyRepo struct {
	Repository
	fail atomic.Bool
}

func (r *flakyRepo) ListByRestaurant(ctx context.Context, restaurantID int64) ([]Order, error) {
	if r.fail.Load() {
		return nil, errors.New("db down")
	}
	return r.Repository.ListByRestaurant(ctx, restaurantID)
}

func TestFeed_FetchErrorKeepsWatching(t *testing.T) {
	n := NewMemoryNotifier()
	repo := &flakyRepo{Repository: NewInMemoryRepository(n)}
	feed := NewFeed(repo, n, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lists, err := feed.Watch(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, receive(t, lists))

	repo.fail.Store(true)
	n.Notify(1)

	select {
	case <-lists:
		t.Fatal("failed refetch must not emit")
	case <-time.After(100 * time.Millisecond):
	}

	repo.fail.Store(false)
	require.NoError(t, repo.Place(ctx, newOrder(1)))
	assert.Len(t, receive(t, lists), 1)
}

func TestFeed_InitialErrorIsReturned(t *testing.T) {
	n := NewMemoryNotifier()
	repo := &flakyRepo{Repository: NewInMemoryRepository(n)}
	repo.fail.Store(true)

	_, err := NewFeed(repo, n, zerolog.Nop()).Watch(context.Background(), 1)
	assert.Error(t, err)
	assert.Empty(t, n.subs)
}
