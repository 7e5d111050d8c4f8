package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-streaming-service/internal/models"
	"movie-streaming-service/internal/repository/memory"
)

func setupOrderService(t *testing.T) (*OrderService, *memory.Store, *fakeClock) {
	t.Helper()
	store := memory.New()
	clock := newClock()
	svc := NewOrderService(store, store)
	svc.now = clock.Now
	return svc, store, clock
}

func TestCreateOrder_Errors(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	free := seedMovie(t, store, freeMovie("Free"))
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	tests := []struct {
		name string
		req  models.CreateOrderRequest
		want error
	}{
		{"missing movie", models.CreateOrderRequest{UserID: 1, MovieID: 999, Amount: 30}, ErrNotFound},
		{"free movie", models.CreateOrderRequest{UserID: 1, MovieID: free.ID, Amount: 0}, ErrInvalidState},
		{"wrong amount", models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 29.99}, ErrInvalidArgument},
		{"missing user", models.CreateOrderRequest{MovieID: paid.ID, Amount: 30}, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateOrder_ReturnsExistingPending(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	first, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	require.NoError(t, err)
	assert.False(t, first.Existing)
	assert.Equal(t, models.OrderPending, first.Order.Status)
	assert.NotEmpty(t, first.Order.OrderNo)

	// Amount is not re-checked for an existing pending order.
	second, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 1})
	require.NoError(t, err)
	assert.True(t, second.Existing)
	assert.Equal(t, first.Order.ID, second.Order.ID)
}

func TestPayOrder_GrantsEntitlement(t *testing.T) {
	svc, store, clock := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))
	owner := Caller{UserID: 1}

	res, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	require.NoError(t, err)

	order, err := svc.PayOrder(ctx, owner, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPaid, order.Status)
	require.NotNil(t, order.PaidAt)
	assert.Equal(t, clock.Now(), *order.PaidAt)

	ents, err := svc.ListActiveEntitlements(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ents, 1)
	assert.Equal(t, order.PaidAt.Add(24*time.Hour), ents[0].ExpiredAt)
	assert.Equal(t, *order.PaidAt, ents[0].CreatedAt)

	_, err = svc.PayOrder(ctx, owner, res.Order.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	assert.ErrorIs(t, err, ErrConflict)

	// Once the window lapses a new purchase is allowed.
	clock.Advance(24*time.Hour + time.Second)
	again, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	require.NoError(t, err)
	assert.NotEqual(t, res.Order.ID, again.Order.ID)
}

func TestPayOrder_Errors(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	_, err := svc.PayOrder(ctx, Caller{Admin: true}, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	res, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	require.NoError(t, err)

	_, err = svc.PayOrder(ctx, Caller{UserID: 2}, res.Order.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CancelOrder(ctx, Caller{UserID: 1}, res.Order.ID)
	require.NoError(t, err)
	_, err = svc.PayOrder(ctx, Caller{UserID: 1}, res.Order.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	_, err = svc.CancelOrder(ctx, Caller{UserID: 1}, res.Order.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestPayOrder_PriceDriftCancels(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	res, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	require.NoError(t, err)

	paid.Price = ptr(35.0)
	require.NoError(t, store.UpdateMovie(ctx, paid))

	_, err = svc.PayOrder(ctx, Caller{UserID: 1}, res.Order.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	order, err := store.GetOrder(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderCancelled, order.Status)

	ents, _ := svc.ListActiveEntitlements(ctx, 1)
	assert.Empty(t, ents)
}

func TestCreateOrder_StalePendingReplaced(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	first, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	require.NoError(t, err)

	paid.Price = ptr(20.0)
	require.NoError(t, store.UpdateMovie(ctx, paid))

	second, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 20})
	require.NoError(t, err)
	assert.False(t, second.Existing)
	assert.Equal(t, 20.0, second.Order.Amount)

	old, _ := store.GetOrder(ctx, first.Order.ID)
	assert.Equal(t, models.OrderCancelled, old.Status)
}

func TestCreateOrder_StalePendingKeptWhenRejected(t *testing.T) {
	svc, store, clock := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	stale := &models.Order{OrderNo: "stale", UserID: 1, MovieID: paid.ID, Amount: 30, Status: models.OrderPending}
	require.NoError(t, store.CreateOrder(ctx, stale))

	paid.Price = ptr(20.0)
	require.NoError(t, store.UpdateMovie(ctx, paid))

	_, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	got, err := store.GetOrder(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)

	require.NoError(t, store.CreateEntitlement(ctx, &models.Entitlement{
		UserID: 1, MovieID: paid.ID, OrderID: 99,
		CreatedAt: clock.Now(), ExpiredAt: clock.Now().Add(models.EntitlementWindow),
	}))
	_, err = svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 20})
	assert.ErrorIs(t, err, ErrConflict)
	got, err = store.GetOrder(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, got.Status)
}

func TestCheckPurchaseStatus(t *testing.T) {
	svc, store, clock := setupOrderService(t)
	ctx := context.Background()
	free := seedMovie(t, store, freeMovie("Free"))
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	st, err := svc.CheckPurchaseStatus(ctx, 1, free.ID)
	require.NoError(t, err)
	assert.True(t, st.Purchased)
	assert.True(t, st.Free)

	st, err = svc.CheckPurchaseStatus(ctx, 1, paid.ID)
	require.NoError(t, err)
	assert.False(t, st.Purchased)

	_, err = svc.CheckPurchaseStatus(ctx, 1, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	res, _ := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	_, err = svc.PayOrder(ctx, Caller{UserID: 1}, res.Order.ID)
	require.NoError(t, err)

	st, err = svc.CheckPurchaseStatus(ctx, 1, paid.ID)
	require.NoError(t, err)
	assert.True(t, st.Purchased)
	require.NotNil(t, st.ExpiredAt)

	clock.Advance(24 * time.Hour)
	st, err = svc.CheckPurchaseStatus(ctx, 1, paid.ID)
	require.NoError(t, err)
	assert.False(t, st.Purchased, "expiredAt == now is no longer valid")
}

func TestPayOrder_ConcurrentPaymentsGrantOnce(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	res, err := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	require.NoError(t, err)

	var ok, rejected atomic.Int32
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.PayOrder(ctx, Caller{UserID: 1}, res.Order.ID)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, ErrInvalidState):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(15), rejected.Load())
	ents, _ := svc.ListActiveEntitlements(ctx, 1)
	assert.Len(t, ents, 1)
}

func TestCreateOrder_ConcurrentCreatesYieldOneOrder(t *testing.T) {
	svc, store, _ := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
		}()
	}
	wg.Wait()

	orders, err := svc.ListUserOrders(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestSweepExpiredEntitlements(t *testing.T) {
	svc, store, clock := setupOrderService(t)
	ctx := context.Background()
	paid := seedMovie(t, store, paidMovie("Paid", 30))

	res, _ := svc.CreateOrder(ctx, models.CreateOrderRequest{UserID: 1, MovieID: paid.ID, Amount: 30})
	_, err := svc.PayOrder(ctx, Caller{UserID: 1}, res.Order.ID)
	require.NoError(t, err)

	n, err := svc.SweepExpiredEntitlements(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	clock.Advance(25 * time.Hour)
	n, err = svc.SweepExpiredEntitlements(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
