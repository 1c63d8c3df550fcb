package cart

import (
	"context"
	"testing"
	"time"

	"menuapp/internal/menu"
	"menuapp/internal/restaurant"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc         *Service
	restaurants *restaurant.Service
	items       *menu.InMemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	resRepo := restaurant.NewInMemoryRepository()
	require.NoError(t, resRepo.Create(ctx, &restaurant.Restaurant{ID: 1, Name: "The Burger Palace", UniversalParcelCharge: d("1.50")}))
	require.NoError(t, resRepo.Create(ctx, &restaurant.Restaurant{ID: 2, Name: "Pizza Heaven"}))
	restaurants := restaurant.NewService(resRepo, nil, zerolog.Nop())

	items := menu.NewInMemoryRepository()
	require.NoError(t, items.CreateItem(ctx, ptr(burger())))
	require.NoError(t, items.CreateItem(ctx, ptr(fries())))
	require.NoError(t, items.CreateItem(ctx, &menu.MenuItem{ID: 3, Name: "Shake", Price: d("4.00"), InStock: false, TakeawayAvailable: true, RestaurantID: 1}))
	require.NoError(t, items.CreateItem(ctx, &menu.MenuItem{ID: 4, Name: "Soup", Price: d("5.00"), InStock: true, TakeawayAvailable: false, RestaurantID: 1}))
	require.NoError(t, items.CreateItem(ctx, &menu.MenuItem{ID: 5, Name: "Margherita", Price: d("12.00"), InStock: true, RestaurantID: 2}))

	svc := NewService(NewMemoryStore(time.Hour), items, restaurants, zerolog.Nop())
	return &fixture{svc: svc, restaurants: restaurants, items: items}
}

func ptr[T any](v T) *T { return &v }

func TestService_OpenUnknownRestaurant(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Open(context.Background(), 99)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)
}

func TestService_FullFlow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, err := f.svc.Open(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, v.ID)
	assert.Empty(t, v.Lines)

	_, err = f.svc.AddItem(ctx, v.ID, 1)
	require.NoError(t, err)

	v, err = f.svc.UpdateLine(ctx, v.ID, 1, LinePatch{TakeawayQuantity: ptr(2), SpecialInstructions: ptr("well done")})
	require.NoError(t, err)
	assert.True(t, v.Total.Equal(d("29.97")))

	v, err = f.svc.UpdateLine(ctx, v.ID, 1, LinePatch{DineInQuantity: ptr(0)})
	require.NoError(t, err)
	assert.True(t, v.Subtotal.Equal(d("17.98")))
	assert.True(t, v.Total.Equal(d("20.98")))

	got, err := f.svc.Get(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "well done", got.Lines[0].SpecialInstructions)

	v, err = f.svc.Clear(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, v.Lines)
	assert.True(t, v.Total.IsZero())
}

func TestService_NegativePatchIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, _ := f.svc.Open(ctx, 1)
	before, err := f.svc.AddItem(ctx, v.ID, 2)
	require.NoError(t, err)

	after, err := f.svc.UpdateLine(ctx, v.ID, 2, LinePatch{DineInQuantity: ptr(-4)})
	require.NoError(t, err)
	assert.Equal(t, before.TotalItemCount, after.TotalItemCount)
	assert.True(t, before.Total.Equal(after.Total))
}

func TestService_PatchSwapsDineInAndTakeaway(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, _ := f.svc.Open(ctx, 1)
	_, err := f.svc.AddItem(ctx, v.ID, 1)
	require.NoError(t, err)

	v, err = f.svc.UpdateLine(ctx, v.ID, 1, LinePatch{DineInQuantity: ptr(0), TakeawayQuantity: ptr(2)})
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 0, v.Lines[0].DineInQuantity)
	assert.Equal(t, 2, v.Lines[0].TakeawayQuantity)
	assert.Equal(t, "20.98", v.Total.StringFixed(2))

	v, err = f.svc.UpdateLine(ctx, v.ID, 1, LinePatch{DineInQuantity: ptr(2), TakeawayQuantity: ptr(0)})
	require.NoError(t, err)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 2, v.Lines[0].DineInQuantity)
	assert.Equal(t, 0, v.Lines[0].TakeawayQuantity)
	assert.Equal(t, "17.98", v.Total.StringFixed(2))

	v, err = f.svc.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, v.Lines, 1)
}

func TestService_AddItemRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, _ := f.svc.Open(ctx, 1)

	_, err := f.svc.AddItem(ctx, v.ID, 5)
	assert.ErrorIs(t, err, ErrItemNotInRestaurant)

	_, err = f.svc.AddItem(ctx, v.ID, 3)
	assert.ErrorIs(t, err, ErrItemUnavailable)

	_, err = f.svc.AddItem(ctx, v.ID, 404)
	assert.ErrorIs(t, err, menu.ErrItemNotFound)

	_, err = f.svc.AddItem(ctx, "missing", 1)
	assert.ErrorIs(t, err, ErrCartNotFound)
}

func TestService_TakeawayUnavailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, _ := f.svc.Open(ctx, 1)
	_, err := f.svc.AddItem(ctx, v.ID, 4)
	require.NoError(t, err)

	_, err = f.svc.UpdateLine(ctx, v.ID, 4, LinePatch{TakeawayQuantity: ptr(1)})
	assert.ErrorIs(t, err, ErrTakeawayUnavailable)

	_, err = f.svc.UpdateLine(ctx, v.ID, 4, LinePatch{TakeawayQuantity: ptr(0)})
	assert.NoError(t, err)
}

func TestService_ParcelRateReadOnLoad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v, _ := f.svc.Open(ctx, 1)
	_, _ = f.svc.AddItem(ctx, v.ID, 1)
	v, err := f.svc.UpdateLine(ctx, v.ID, 1, LinePatch{TakeawayQuantity: ptr(1)})
	require.NoError(t, err)
	assert.True(t, v.ParcelCharges.Equal(d("1.50")))

	_, err = f.restaurants.SaveSettings(ctx, 1, restaurant.Settings{Name: "The Burger Palace", UniversalParcelCharge: d("2.00")})
	require.NoError(t, err)

	v, err = f.svc.Get(ctx, v.ID)
	require.NoError(t, err)
	assert.True(t, v.ParcelCharges.Equal(d("2.00")))
}
