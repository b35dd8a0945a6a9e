package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/ssroyels/Trendex/internal/domain"
	"github.com/ssroyels/Trendex/internal/event"
	"github.com/ssroyels/Trendex/internal/repository"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
)

// PincodeChecker reports whether a delivery pincode is within serviceable
// range.
type PincodeChecker interface {
	IsServiceable(ctx context.Context, pincode string) (bool, error)
}

// AddressInput holds a delivery address as submitted at checkout.
type AddressInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,len=10,numeric"`
	LocalAddress string `json:"local_address" validate:"required"`
	Pincode      string `json:"pincode" validate:"required,len=6,numeric"`
	City         string `json:"city" validate:"required"`
	State        string `json:"state" validate:"required"`
}

// PlaceOrderInput holds the parameters for placing an order.
type PlaceOrderInput struct {
	PaymentMethod string `json:"payment_method" validate:"required,oneof=cod online"`
}

// CheckoutService implements pincode verification, address capture, and
// order placement.
type CheckoutService struct {
	variants  repository.VariantRepository
	addresses repository.AddressRepository
	orders    repository.OrderRepository
	sessions  repository.SessionStore
	pincodes  PincodeChecker
	producer  *event.Producer
	logger    *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	variants repository.VariantRepository,
	addresses repository.AddressRepository,
	orders repository.OrderRepository,
	sessions repository.SessionStore,
	pincodes PincodeChecker,
	producer *event.Producer,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		variants:  variants,
		addresses: addresses,
		orders:    orders,
		sessions:  sessions,
		pincodes:  pincodes,
		producer:  producer,
		logger:    logger,
	}
}

// VerifyPincode checks a pincode against the serviceable list. Returns an
// unserviceable error when delivery does not reach it.
func (s *CheckoutService) VerifyPincode(ctx context.Context, pincode string) error {
	if pincode == "" {
		return apperrors.InvalidInput("pincode is required")
	}

	ok, err := s.pincodes.IsServiceable(ctx, pincode)
	if err != nil {
		return fmt.Errorf("check pincode: %w", err)
	}
	if !ok {
		return apperrors.Unserviceable(pincode)
	}
	return nil
}

// SaveAddress verifies the address pincode and stores the address on the
// session. When the caller is authenticated the address is also persisted
// durably under their account.
func (s *CheckoutService) SaveAddress(ctx context.Context, sessionID, userID string, input AddressInput) (*domain.Address, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.Name == "" || input.Email == "" || input.Phone == "" ||
		input.LocalAddress == "" || input.Pincode == "" || input.City == "" || input.State == "" {
		return nil, apperrors.InvalidInput("all address fields are required")
	}

	if err := s.VerifyPincode(ctx, input.Pincode); err != nil {
		return nil, err
	}

	address := &domain.Address{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		LocalAddress: input.LocalAddress,
		Pincode:      input.Pincode,
		City:         input.City,
		State:        input.State,
		Verified:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if userID != "" {
		if err := s.addresses.Create(ctx, address); err != nil {
			return nil, fmt.Errorf("save address: %w", err)
		}
	}

	if err := s.sessions.SaveAddress(ctx, sessionID, address); err != nil {
		return nil, fmt.Errorf("save session address: %w", err)
	}

	s.logger.InfoContext(ctx, "address saved",
		slog.String("session_id", sessionID),
		slog.String("pincode", input.Pincode),
	)

	return address, nil
}

// GetAddress returns the session's saved address, falling back to the
// user's most recent durable address when the session holds none.
func (s *CheckoutService) GetAddress(ctx context.Context, sessionID, userID string) (*domain.Address, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	address, err := s.sessions.LoadAddress(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session address: %w", err)
	}
	if address != nil {
		return address, nil
	}

	if userID != "" {
		return s.addresses.LatestByUser(ctx, userID)
	}

	return nil, apperrors.NotFound("address", sessionID)
}

// PlaceOrder turns the session's cart into a durable order. Stock is
// decremented per item with a floor at zero; the first item lacking stock
// aborts the order. The cart is cleared on success.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sessionID, userID string, input PlaceOrderInput) (*domain.Order, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.PaymentMethod == "" {
		return nil, apperrors.InvalidInput("payment method is required")
	}

	address, err := s.sessions.LoadAddress(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session address: %w", err)
	}
	if address == nil {
		return nil, apperrors.InvalidInput("a delivery address is required before placing an order")
	}
	if !address.Verified {
		return nil, apperrors.Unserviceable(address.Pincode)
	}

	cart, err := s.sessions.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if len(cart) == 0 {
		return nil, apperrors.InvalidInput("cart is empty")
	}

	items := sortedEntries(cart)
	for _, item := range items {
		if err := s.variants.DecrementStock(ctx, item.ItemID, item.Qty); err != nil {
			return nil, err
		}
		s.publishIfDepleted(ctx, item.ItemID)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		SessionID:     sessionID,
		Items:         items,
		Subtotal:      cart.Subtotal(),
		Address:       *address,
		PaymentMethod: input.PaymentMethod,
		Status:        domain.OrderStatusConfirmed,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	pending := &domain.PendingOrder{
		OrderID:       order.ID,
		Cart:          cart,
		Address:       *address,
		PaymentMethod: input.PaymentMethod,
		Subtotal:      order.Subtotal,
		PlacedAt:      now,
	}
	if err := s.sessions.SavePendingOrder(ctx, sessionID, pending); err != nil {
		return nil, fmt.Errorf("save pending order: %w", err)
	}
	if err := s.sessions.SaveOrderStatus(ctx, sessionID, domain.OrderStatusConfirmed); err != nil {
		return nil, fmt.Errorf("save order status: %w", err)
	}
	if err := s.sessions.SaveCart(ctx, sessionID, domain.NewCart()); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	s.producer.OrderPlaced(ctx, event.OrderPlaced{
		OrderID:       order.ID,
		SessionID:     sessionID,
		UserID:        userID,
		Subtotal:      order.Subtotal,
		ItemCount:     cart.ItemCount(),
		PaymentMethod: input.PaymentMethod,
	})

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("session_id", sessionID),
		slog.Int64("subtotal", order.Subtotal),
	)

	return order, nil
}

// publishIfDepleted emits a stock depletion event when the variant just hit
// zero. Lookup failures are logged, never surfaced.
func (s *CheckoutService) publishIfDepleted(ctx context.Context, itemSlug string) {
	variant, err := s.variants.GetBySlug(ctx, itemSlug)
	if err != nil {
		s.logger.WarnContext(ctx, "stock check after decrement failed",
			slog.String("slug", itemSlug),
			slog.String("error", err.Error()),
		)
		return
	}
	if variant.AvailableQty == 0 {
		s.producer.StockDepleted(ctx, event.StockDepleted{Slug: variant.Slug, Title: variant.Title})
	}
}

// sortedEntries flattens a cart into a stable item list ordered by item ID.
func sortedEntries(cart domain.Cart) []domain.CartEntry {
	items := make([]domain.CartEntry, 0, len(cart))
	for _, entry := range cart {
		items = append(items, entry)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ItemID < items[j].ItemID })
	return items
}
