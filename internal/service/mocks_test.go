package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/ssroyels/Trendex/internal/domain"
	"github.com/ssroyels/Trendex/internal/event"
	"github.com/ssroyels/Trendex/internal/repository"
)

// --- Mock Repositories ---

type mockVariantRepository struct {
	mock.Mock
}

func (m *mockVariantRepository) ListByCategory(ctx context.Context, category string) ([]domain.ProductVariant, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductVariant), args.Error(1)
}

func (m *mockVariantRepository) GetBySlug(ctx context.Context, slug string) (*domain.ProductVariant, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariant), args.Error(1)
}

func (m *mockVariantRepository) ListByTitle(ctx context.Context, title string) ([]domain.ProductVariant, error) {
	args := m.Called(ctx, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductVariant), args.Error(1)
}

func (m *mockVariantRepository) BulkInsert(ctx context.Context, variants []domain.ProductVariant) error {
	args := m.Called(ctx, variants)
	return args.Error(0)
}

func (m *mockVariantRepository) Update(ctx context.Context, id string, update repository.VariantUpdate) (*domain.ProductVariant, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariant), args.Error(1)
}

func (m *mockVariantRepository) DecrementStock(ctx context.Context, slug string, qty int) error {
	args := m.Called(ctx, slug, qty)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) Create(ctx context.Context, address *domain.Address) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

func (m *mockAddressRepository) LatestByUser(ctx context.Context, userID string) (*domain.Address, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *mockOrderRepository) ReplaceItems(ctx context.Context, id string, items []domain.CartEntry, subtotal int64) error {
	args := m.Called(ctx, id, items, subtotal)
	return args.Error(0)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) LoadCart(ctx context.Context, sessionID string) (domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockSessionStore) SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error {
	args := m.Called(ctx, sessionID, cart)
	return args.Error(0)
}

func (m *mockSessionStore) LoadAddress(ctx context.Context, sessionID string) (*domain.Address, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

func (m *mockSessionStore) SaveAddress(ctx context.Context, sessionID string, address *domain.Address) error {
	args := m.Called(ctx, sessionID, address)
	return args.Error(0)
}

func (m *mockSessionStore) LoadPendingOrder(ctx context.Context, sessionID string) (*domain.PendingOrder, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingOrder), args.Error(1)
}

func (m *mockSessionStore) SavePendingOrder(ctx context.Context, sessionID string, order *domain.PendingOrder) error {
	args := m.Called(ctx, sessionID, order)
	return args.Error(0)
}

func (m *mockSessionStore) OrderConfirmed(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionStore) SetOrderConfirmed(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *mockSessionStore) LoadOrderStatus(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *mockSessionStore) SaveOrderStatus(ctx context.Context, sessionID string, status string) error {
	args := m.Called(ctx, sessionID, status)
	return args.Error(0)
}

func (m *mockSessionStore) ClearOrder(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockPincodeChecker struct {
	mock.Mock
}

func (m *mockPincodeChecker) IsServiceable(ctx context.Context, pincode string) (bool, error) {
	args := m.Called(ctx, pincode)
	return args.Bool(0), args.Error(1)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// noopProducer drops all events; tests that assert on publishes use their
// own capturing producer at the event package level.
func noopProducer(t *testing.T) *event.Producer {
	t.Helper()
	return event.NewProducer(nil, newTestLogger())
}
