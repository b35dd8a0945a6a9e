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

type checkoutFixture struct {
	variants  *mockVariantRepository
	addresses *mockAddressRepository
	orders    *mockOrderRepository
	sessions  *mockSessionStore
	pincodes  *mockPincodeChecker
	svc       *CheckoutService
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	f := &checkoutFixture{
		variants:  new(mockVariantRepository),
		addresses: new(mockAddressRepository),
		orders:    new(mockOrderRepository),
		sessions:  new(mockSessionStore),
		pincodes:  new(mockPincodeChecker),
	}
	f.svc = NewCheckoutService(f.variants, f.addresses, f.orders, f.sessions, f.pincodes, noopProducer(t), newTestLogger())
	return f
}

func validAddressInput() AddressInput {
	return AddressInput{
		Name:         "Asha",
		Email:        "asha@example.com",
		Phone:        "9876543210",
		LocalAddress: "12 MG Road",
		Pincode:      "560034",
		City:         "Bengaluru",
		State:        "Karnataka",
	}
}

func verifiedAddress() *domain.Address {
	return &domain.Address{
		ID: "addr-1", Name: "Asha", Email: "asha@example.com", Phone: "9876543210",
		LocalAddress: "12 MG Road", Pincode: "560034", City: "Bengaluru", State: "Karnataka",
		Verified: true,
	}
}

func TestVerifyPincode(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.pincodes.On("IsServiceable", ctx, "560034").Return(true, nil)
	require.NoError(t, f.svc.VerifyPincode(ctx, "560034"))

	f.pincodes.On("IsServiceable", ctx, "999999").Return(false, nil)
	err := f.svc.VerifyPincode(ctx, "999999")
	assert.ErrorIs(t, err, apperrors.ErrUnserviceable)
}

func TestSaveAddress_Anonymous(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.pincodes.On("IsServiceable", ctx, "560034").Return(true, nil)
	f.sessions.On("SaveAddress", ctx, "sess-1", mock.MatchedBy(func(a *domain.Address) bool {
		return a.Verified && a.Pincode == "560034"
	})).Return(nil)

	address, err := f.svc.SaveAddress(ctx, "sess-1", "", validAddressInput())
	require.NoError(t, err)
	assert.True(t, address.Verified)
	f.addresses.AssertNotCalled(t, "Create")
}

func TestSaveAddress_AuthedPersistsDurably(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.pincodes.On("IsServiceable", ctx, "560034").Return(true, nil)
	f.addresses.On("Create", ctx, mock.MatchedBy(func(a *domain.Address) bool {
		return a.UserID == "user-1"
	})).Return(nil)
	f.sessions.On("SaveAddress", ctx, "sess-1", mock.Anything).Return(nil)

	_, err := f.svc.SaveAddress(ctx, "sess-1", "user-1", validAddressInput())
	require.NoError(t, err)
	f.addresses.AssertExpectations(t)
}

func TestSaveAddress_UnserviceablePincode(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.pincodes.On("IsServiceable", ctx, "560034").Return(false, nil)

	_, err := f.svc.SaveAddress(ctx, "sess-1", "", validAddressInput())
	assert.ErrorIs(t, err, apperrors.ErrUnserviceable)
	f.sessions.AssertNotCalled(t, "SaveAddress")
}

func TestSaveAddress_MissingFields(t *testing.T) {
	f := newCheckoutFixture(t)

	input := validAddressInput()
	input.Phone = ""
	_, err := f.svc.SaveAddress(context.Background(), "sess-1", "", input)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	f.pincodes.AssertNotCalled(t, "IsServiceable")
}

func TestPlaceOrder(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	cart := cartWithItem("code-tee-red-m", 2, 499)
	f.sessions.On("LoadAddress", ctx, "sess-1").Return(verifiedAddress(), nil)
	f.sessions.On("LoadCart", ctx, "sess-1").Return(cart, nil)
	f.variants.On("DecrementStock", ctx, "code-tee-red-m", 2).Return(nil)
	f.variants.On("GetBySlug", ctx, "code-tee-red-m").Return(&domain.ProductVariant{
		Slug: "code-tee-red-m", Title: "Code Tee", AvailableQty: 3,
	}, nil)
	f.orders.On("Create", ctx, mock.MatchedBy(func(o *domain.Order) bool {
		return o.Subtotal == 998 && o.Status == domain.OrderStatusConfirmed && len(o.Items) == 1
	})).Return(nil)
	f.sessions.On("SavePendingOrder", ctx, "sess-1", mock.Anything).Return(nil)
	f.sessions.On("SaveOrderStatus", ctx, "sess-1", domain.OrderStatusConfirmed).Return(nil)
	f.sessions.On("SaveCart", ctx, "sess-1", mock.MatchedBy(func(c domain.Cart) bool {
		return len(c) == 0
	})).Return(nil)

	order, err := f.svc.PlaceOrder(ctx, "sess-1", "user-1", PlaceOrderInput{PaymentMethod: "cod"})
	require.NoError(t, err)
	assert.Equal(t, int64(998), order.Subtotal)
	assert.Equal(t, "user-1", order.UserID)
	f.sessions.AssertExpectations(t)
	f.orders.AssertExpectations(t)
}

func TestPlaceOrder_OutOfStockAborts(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.sessions.On("LoadAddress", ctx, "sess-1").Return(verifiedAddress(), nil)
	f.sessions.On("LoadCart", ctx, "sess-1").Return(cartWithItem("code-tee-red-m", 5, 499), nil)
	f.variants.On("DecrementStock", ctx, "code-tee-red-m", 5).Return(apperrors.OutOfStock("code-tee-red-m"))

	_, err := f.svc.PlaceOrder(ctx, "sess-1", "", PlaceOrderInput{PaymentMethod: "cod"})
	assert.ErrorIs(t, err, apperrors.ErrOutOfStock)
	f.orders.AssertNotCalled(t, "Create")
}

func TestPlaceOrder_RequiresAddress(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.sessions.On("LoadAddress", ctx, "sess-1").Return(nil, nil)

	_, err := f.svc.PlaceOrder(ctx, "sess-1", "", PlaceOrderInput{PaymentMethod: "cod"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.sessions.On("LoadAddress", ctx, "sess-1").Return(verifiedAddress(), nil)
	f.sessions.On("LoadCart", ctx, "sess-1").Return(domain.NewCart(), nil)

	_, err := f.svc.PlaceOrder(ctx, "sess-1", "", PlaceOrderInput{PaymentMethod: "cod"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	f.variants.AssertNotCalled(t, "DecrementStock")
}

func TestGetAddress_FallsBackToDurable(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.sessions.On("LoadAddress", ctx, "sess-1").Return(nil, nil)
	f.addresses.On("LatestByUser", ctx, "user-1").Return(verifiedAddress(), nil)

	address, err := f.svc.GetAddress(ctx, "sess-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "addr-1", address.ID)
}

func TestGetAddress_AnonymousMissing(t *testing.T) {
	f := newCheckoutFixture(t)
	ctx := context.Background()

	f.sessions.On("LoadAddress", ctx, "sess-1").Return(nil, nil)

	_, err := f.svc.GetAddress(ctx, "sess-1", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
