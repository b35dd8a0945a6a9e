package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssroyels/Trendex/internal/domain"
)

func setupStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client, 24*time.Hour), mr
}

// ---------------------------------------------------------------------------
// Cart
// ---------------------------------------------------------------------------

func TestSessionStore_Cart_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	cart := domain.NewCart()
	cart.Add("var-1", domain.ItemSnapshot{Name: "Wear The Code", Price: 49900, Size: "M", Color: "red"}, 2)
	require.NoError(t, store.SaveCart(ctx, "sess-1", cart))

	loaded, err := store.LoadCart(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 2, loaded["var-1"].Qty)
	assert.Equal(t, int64(49900), loaded["var-1"].Price)
	assert.Equal(t, int64(99800), loaded.Subtotal())
}

func TestSessionStore_Cart_MissingYieldsEmpty(t *testing.T) {
	store, _ := setupStore(t)

	cart, err := store.LoadCart(context.Background(), "fresh-session")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Empty(t, cart)
}

func TestSessionStore_Cart_CorruptValueDiscarded(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("session:sess-1:cart", "{not valid json"))

	cart, err := store.LoadCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, cart)

	// The corrupt value is gone, not left to fail every subsequent load.
	assert.False(t, mr.Exists("session:sess-1:cart"))
}

func TestSessionStore_Cart_LastWriteWins(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	first := domain.NewCart()
	first.Add("var-1", domain.ItemSnapshot{Price: 100}, 1)
	second := domain.NewCart()
	second.Add("var-2", domain.ItemSnapshot{Price: 200}, 3)

	require.NoError(t, store.SaveCart(ctx, "shared", first))
	require.NoError(t, store.SaveCart(ctx, "shared", second))

	loaded, err := store.LoadCart(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, 3, loaded["var-2"].Qty)
}

// ---------------------------------------------------------------------------
// Address
// ---------------------------------------------------------------------------

func TestSessionStore_Address_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	addr := &domain.Address{
		Name:         "Shopper",
		Email:        "shopper@example.com",
		Phone:        "9876543210",
		LocalAddress: "42 Main Street",
		Pincode:      "110001",
		City:         "Delhi",
		State:        "Delhi",
		Verified:     true,
	}
	require.NoError(t, store.SaveAddress(ctx, "sess-1", addr))

	loaded, err := store.LoadAddress(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "110001", loaded.Pincode)
	assert.True(t, loaded.Verified)
}

func TestSessionStore_Address_MissingIsNil(t *testing.T) {
	store, _ := setupStore(t)

	loaded, err := store.LoadAddress(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSessionStore_Address_CorruptIsNil(t *testing.T) {
	store, mr := setupStore(t)

	require.NoError(t, mr.Set("session:sess-1:address", "]["))

	loaded, err := store.LoadAddress(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

// ---------------------------------------------------------------------------
// Pending order, confirmed flag, status
// ---------------------------------------------------------------------------

func TestSessionStore_PendingOrder_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	cart := domain.NewCart()
	cart.Add("var-1", domain.ItemSnapshot{Price: 49900}, 1)
	order := &domain.PendingOrder{
		OrderID:       "ord-1",
		Cart:          cart,
		Address:       domain.Address{Pincode: "110001"},
		PaymentMethod: "cod",
		Subtotal:      49900,
		PlacedAt:      time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SavePendingOrder(ctx, "sess-1", order))

	loaded, err := store.LoadPendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "ord-1", loaded.OrderID)
	assert.Equal(t, int64(49900), loaded.Subtotal)
	assert.Len(t, loaded.Cart, 1)
}

func TestSessionStore_OrderConfirmedFlag(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	confirmed, err := store.OrderConfirmed(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, confirmed)

	require.NoError(t, store.SetOrderConfirmed(ctx, "sess-1"))

	confirmed, err = store.OrderConfirmed(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, confirmed)
}

func TestSessionStore_OrderStatus_RoundTrip(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	status, err := store.LoadOrderStatus(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, status)

	require.NoError(t, store.SaveOrderStatus(ctx, "sess-1", domain.OrderStatusShipped))

	status, err = store.LoadOrderStatus(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, status)
}

func TestSessionStore_ClearOrder(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.SavePendingOrder(ctx, "sess-1", &domain.PendingOrder{OrderID: "ord-1"}))
	require.NoError(t, store.SetOrderConfirmed(ctx, "sess-1"))
	require.NoError(t, store.SaveOrderStatus(ctx, "sess-1", domain.OrderStatusConfirmed))

	require.NoError(t, store.ClearOrder(ctx, "sess-1"))

	order, err := store.LoadPendingOrder(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, order)

	confirmed, err := store.OrderConfirmed(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, confirmed)

	status, err := store.LoadOrderStatus(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, status)
}
