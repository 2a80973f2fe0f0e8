package cartsvc

import (
	"context"
	"sync"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/toughshop/internal/cart"
	"github.com/talkincode/toughshop/internal/domain"
)

type mapProducts map[int64]domain.Product

func (m mapProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := m[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

var testProducts = mapProducts{
	1: {ID: 1, Name: "Premium Cat Food", Price: 980, Category: "food"},
	2: {ID: 2, Name: "Pet Water Fountain", Price: 1250, Category: "accessories"},
}

type recorder struct {
	mu        sync.Mutex
	changes   []CartChangedEvent
	checkouts []CheckoutEvent
}

func newTestService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	bus := EventBus.New()
	rec := &recorder{}
	require.NoError(t, bus.Subscribe(TopicCartChanged, func(e CartChangedEvent) {
		rec.mu.Lock()
		rec.changes = append(rec.changes, e)
		rec.mu.Unlock()
	}))
	require.NoError(t, bus.Subscribe(TopicCheckout, func(e CheckoutEvent) {
		rec.mu.Lock()
		rec.checkouts = append(rec.checkouts, e)
		rec.mu.Unlock()
	}))
	svc := NewService(testProducts, NewRegistry(), bus, cart.NewFormatter("en", "$", 0))
	return svc, rec
}

func TestService_AddProduct(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddProduct(ctx, "s", 1)
	require.NoError(t, err)
	_, err = svc.AddProduct(ctx, "s", 2)
	require.NoError(t, err)
	v, err := svc.AddProduct(ctx, "s", 1)
	require.NoError(t, err)

	assert.Equal(t, int64(3210), v.TotalPrice)
	assert.Equal(t, 3, v.TotalCount)
	require.Len(t, v.Items, 2)
	assert.Equal(t, int64(1), v.Items[0].ID)
	assert.Equal(t, 2, v.Items[0].Quantity)

	require.Len(t, rec.changes, 3)
	assert.Equal(t, "add", rec.changes[2].Op)
	assert.Equal(t, 3, rec.changes[2].TotalCount)
}

func TestService_AddUnknownProduct(t *testing.T) {
	svc, rec := newTestService(t)

	_, err := svc.AddProduct(context.Background(), "s", 42)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, 0, svc.Registry().Len())
	assert.Empty(t, rec.changes)
}

func TestService_NoopsStaySilent(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()
	_, err := svc.AddProduct(ctx, "s", 1)
	require.NoError(t, err)

	v, changed := svc.UpdateQuantity("s", 1, 0)
	assert.False(t, changed)
	assert.Equal(t, 1, v.TotalCount)

	_, changed = svc.RemoveItem("s", 2)
	assert.False(t, changed)

	v, changed = svc.UpdateQuantity("other", 1, 3)
	assert.False(t, changed)
	assert.Empty(t, v.Items)
	assert.Equal(t, 1, svc.Registry().Len(), "no cart created for unknown session")

	assert.Len(t, rec.changes, 1)
}

func TestService_UpdateRemoveClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, _ = svc.AddProduct(ctx, "s", 1)
	_, _ = svc.AddProduct(ctx, "s", 2)

	v, changed := svc.UpdateQuantity("s", 2, 4)
	require.True(t, changed)
	assert.Equal(t, int64(980+4*1250), v.TotalPrice)

	v, changed = svc.RemoveItem("s", 1)
	require.True(t, changed)
	assert.Equal(t, int64(5000), v.TotalPrice)
	assert.Equal(t, 4, v.TotalCount)

	v = svc.Clear("s")
	assert.Empty(t, v.Items)
	assert.Equal(t, 0, svc.View("s").TotalCount)
}

func TestService_Checkout(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.Checkout(ctx, "s")
	assert.ErrorIs(t, err, cart.ErrEmptyCart)

	_, _ = svc.AddProduct(ctx, "s", 1)
	_, _ = svc.AddProduct(ctx, "s", 2)
	_, _ = svc.AddProduct(ctx, "s", 1)

	receipt, summary, err := svc.Checkout(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(3210), receipt.TotalPrice)
	assert.Contains(t, summary, "Premium Cat Food x 2 = $1,960")
	assert.Contains(t, summary, "Total: $3,210")
	assert.Empty(t, svc.View("s").Items)

	require.Len(t, rec.checkouts, 1)
	assert.Equal(t, "s", rec.checkouts[0].SessionID)
	assert.Equal(t, summary, rec.checkouts[0].Summary)

	_, _, err = svc.Checkout(ctx, "s")
	assert.ErrorIs(t, err, cart.ErrEmptyCart)
}

func TestService_CheckoutCanceledContext(t *testing.T) {
	svc, _ := newTestService(t)
	_, _ = svc.AddProduct(context.Background(), "s", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := svc.Checkout(ctx, "s")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, svc.View("s").TotalCount)
}
