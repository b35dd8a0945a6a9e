package repository

import (
	"context"

	"github.com/ssroyels/Trendex/internal/domain"
)

// VariantRepository defines persistence operations for product variant rows.
type VariantRepository interface {
	// ListByCategory returns all variant rows for a category in insertion
	// order. The aggregator consumes this output as-is.
	ListByCategory(ctx context.Context, category string) ([]domain.ProductVariant, error)

	// GetBySlug retrieves a single variant by its URL slug.
	GetBySlug(ctx context.Context, slug string) (*domain.ProductVariant, error)

	// ListByTitle returns all variants sharing a title, so a product page
	// can resolve a size/color pick to a concrete variant and its stock.
	ListByTitle(ctx context.Context, title string) ([]domain.ProductVariant, error)

	// BulkInsert inserts a batch of variant rows.
	BulkInsert(ctx context.Context, variants []domain.ProductVariant) error

	// Update applies a partial update to a variant by ID. Nil fields are
	// left untouched.
	Update(ctx context.Context, id string, update VariantUpdate) (*domain.ProductVariant, error)

	// DecrementStock atomically reduces a variant's available quantity,
	// never below zero. Returns ErrOutOfStock when the variant lacks the
	// requested quantity.
	DecrementStock(ctx context.Context, slug string, qty int) error
}

// VariantUpdate holds the optional fields of a partial variant update.
type VariantUpdate struct {
	Title        *string
	Category     *string
	Price        *int64
	Sizes        []string
	Colors       []string
	AvailableQty *int
	Image        *string
	Description  *string
}

// UserRepository defines persistence operations for registered users.
type UserRepository interface {
	// Create inserts a new user. Returns ErrAlreadyExists on a duplicate
	// email.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by (lowercased) email.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// AddressRepository defines persistence operations for delivery addresses.
type AddressRepository interface {
	// Create inserts a new address for a user.
	Create(ctx context.Context, address *domain.Address) error

	// LatestByUser returns the most recently saved address for a user.
	LatestByUser(ctx context.Context, userID string) (*domain.Address, error)
}

// OrderRepository defines persistence operations for durable order records.
type OrderRepository interface {
	// Create inserts a new order row.
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID.
	GetByID(ctx context.Context, id string) (*domain.Order, error)

	// UpdateStatus moves an order to a new tracking stage.
	UpdateStatus(ctx context.Context, id, status string) error

	// ReplaceItems swaps an order's item set and subtotal, used when a
	// pending order is confirmed with a subset of its items.
	ReplaceItems(ctx context.Context, id string, items []domain.CartEntry, subtotal int64) error
}

// SessionStore persists per-session storefront state: the cart, the saved
// address, the pending order snapshot, the order-confirmed flag, and the
// order tracking status. Corrupt stored values are discarded and read back
// as absent, never surfaced as errors.
type SessionStore interface {
	LoadCart(ctx context.Context, sessionID string) (domain.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error

	LoadAddress(ctx context.Context, sessionID string) (*domain.Address, error)
	SaveAddress(ctx context.Context, sessionID string, address *domain.Address) error

	LoadPendingOrder(ctx context.Context, sessionID string) (*domain.PendingOrder, error)
	SavePendingOrder(ctx context.Context, sessionID string, order *domain.PendingOrder) error

	OrderConfirmed(ctx context.Context, sessionID string) (bool, error)
	SetOrderConfirmed(ctx context.Context, sessionID string) error

	LoadOrderStatus(ctx context.Context, sessionID string) (string, error)
	SaveOrderStatus(ctx context.Context, sessionID string, status string) error

	// ClearOrder removes the pending order snapshot, confirmed flag, and
	// status for a session.
	ClearOrder(ctx context.Context, sessionID string) error
}
