package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ssroyels/Trendex/internal/domain"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
)

func newCartTestService(store *mockSessionStore, t *testing.T) *CartService {
	return NewCartService(store, noopProducer(t), newTestLogger())
}

func cartWithItem(itemID string, qty int, price int64) domain.Cart {
	cart := domain.NewCart()
	cart.Add(itemID, domain.ItemSnapshot{Name: "Code Tee", Price: price, Size: "M", Color: "red"}, qty)
	return cart
}

func TestGetCart_Empty(t *testing.T) {
	store := new(mockSessionStore)
	svc := newCartTestService(store, t)
	ctx := context.Background()

	store.On("LoadCart", ctx, "sess-1").Return(domain.NewCart(), nil)

	view, err := svc.GetCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Subtotal)
	assert.Zero(t, view.ItemCount)
}

func TestAddItem_New(t *testing.T) {
	store := new(mockSessionStore)
	svc := newCartTestService(store, t)
	ctx := context.Background()

	store.On("LoadCart", ctx, "sess-1").Return(domain.NewCart(), nil)
	store.On("SaveCart", ctx, "sess-1", mock.MatchedBy(func(c domain.Cart) bool {
		return c["code-tee-red-m"].Qty == 2
	})).Return(nil)

	view, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ItemID: "code-tee-red-m", Qty: 2, Name: "Code Tee", Price: 499, Size: "M", Color: "red",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(998), view.Subtotal)
	assert.Equal(t, 2, view.ItemCount)
	store.AssertExpectations(t)
}

func TestAddItem_MergesQuantity(t *testing.T) {
	store := new(mockSessionStore)
	svc := newCartTestService(store, t)
	ctx := context.Background()

	store.On("LoadCart", ctx, "sess-1").Return(cartWithItem("code-tee-red-m", 1, 499), nil)
	store.On("SaveCart", ctx, "sess-1", mock.Anything).Return(nil)

	view, err := svc.AddItem(ctx, "sess-1", AddItemInput{
		ItemID: "code-tee-red-m", Qty: 2, Name: "Renamed", Price: 999,
	})
	require.NoError(t, err)
	entry := view.Items["code-tee-red-m"]
	assert.Equal(t, 3, entry.Qty)
	assert.Equal(t, "Code Tee", entry.Name)
	assert.Equal(t, int64(499), entry.Price)
}

func TestAddItem_Validation(t *testing.T) {
	store := new(mockSessionStore)
	svc := newCartTestService(store, t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "", AddItemInput{ItemID: "x", Qty: 1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.AddItem(ctx, "sess-1", AddItemInput{Qty: 1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.AddItem(ctx, "sess-1", AddItemInput{ItemID: "x", Qty: 0})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	_, err = svc.AddItem(ctx, "sess-1", AddItemInput{ItemID: "x", Qty: MaxQuantityPerItem + 1})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	store.AssertNotCalled(t, "LoadCart")
}

func TestAddItem_CombinedQuantityLimit(t *testing.T) {
	store := new(mockSessionStore)
	svc := newCartTestService(store, t)
	ctx := context.Background()

	store.On("LoadCart", ctx, "sess-1").Return(cartWithItem("code-tee-red-m", MaxQuantityPerItem, 499), nil)

	_, err := svc.AddItem(ctx, "sess-1", AddItemInput{ItemID: "code-tee-red-m", Qty: 1, Name: "Code Tee"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	store.AssertNotCalled(t, "SaveCart")
}

func TestRemoveItem_DropsLineAtZero(t *testing.T) {
	store := new(mockSessionStore)
	svc := newCartTestService(store, t)
	ctx := context.Background()

	store.On("LoadCart", ctx, "sess-1").Return(cartWithItem("code-tee-red-m", 2, 499), nil)
	store.On("SaveCart", ctx, "sess-1", mock.MatchedBy(func(c domain.Cart) bool {
		return len(c) == 0
	})).Return(nil)

	view, err := svc.RemoveItem(ctx, "sess-1", "code-tee-red-m", 2)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	store.AssertExpectations(t)
}

func TestRemoveItem_UnknownIsNoOp(t *testing.T) {
	store := new(mockSessionStore)
	svc := newCartTestService(store, t)
	ctx := context.Background()

	store.On("LoadCart", ctx, "sess-1").Return(cartWithItem("code-tee-red-m", 2, 499), nil)
	store.On("SaveCart", ctx, "sess-1", mock.Anything).Return(nil)

	view, err := svc.RemoveItem(ctx, "sess-1", "ghost", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, view.ItemCount)
}

func TestClearCart(t *testing.T) {
	store := new(mockSessionStore)
	svc := newCartTestService(store, t)
	ctx := context.Background()

	store.On("SaveCart", ctx, "sess-1", mock.MatchedBy(func(c domain.Cart) bool {
		return len(c) == 0
	})).Return(nil)

	view, err := svc.ClearCart(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	store.AssertExpectations(t)
}
