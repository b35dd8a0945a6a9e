package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ssroyels/Trendex/internal/domain"
	"github.com/ssroyels/Trendex/internal/event"
	"github.com/ssroyels/Trendex/internal/repository"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart item.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct items allowed in a cart.
	MaxItemsPerCart = 50
)

// AddItemInput holds the parameters for adding an item to the cart. The
// snapshot fields are captured on first add and kept as-is on merges.
type AddItemInput struct {
	ItemID string `json:"item_id" validate:"required"`
	Qty    int    `json:"qty" validate:"required,gte=1"`
	Name   string `json:"name" validate:"required"`
	Price  int64  `json:"price" validate:"gte=0"`
	Size   string `json:"size"`
	Color  string `json:"color"`
	Image  string `json:"img"`
}

// CartView is the cart plus its derived totals, as returned to clients.
type CartView struct {
	Items     domain.Cart `json:"items"`
	Subtotal  int64       `json:"subtotal"`
	ItemCount int         `json:"item_count"`
}

// CartService implements the session cart operations. Every mutation runs a
// load, mutate, save cycle against the session store; concurrent writes to
// the same session are last-write-wins.
type CartService struct {
	sessions repository.SessionStore
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(sessions repository.SessionStore, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		sessions: sessions,
		producer: producer,
		logger:   logger,
	}
}

// GetCart returns the session's cart. A session with no stored cart gets an
// empty one.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart, err := s.sessions.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	return viewOf(cart), nil
}

// AddItem adds qty of an item to the session's cart, merging quantities when
// the item is already present.
func (s *CartService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if input.ItemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if input.Qty <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Qty > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}
	if input.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	cart, err := s.sessions.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	if entry, ok := cart[input.ItemID]; ok {
		if entry.Qty+input.Qty > MaxQuantityPerItem {
			return nil, apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
		}
	} else if len(cart) >= MaxItemsPerCart {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
	}

	cart.Add(input.ItemID, domain.ItemSnapshot{
		Name:  input.Name,
		Price: input.Price,
		Size:  input.Size,
		Color: input.Color,
		Image: input.Image,
	}, input.Qty)

	if err := s.saveAndPublish(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("item_id", input.ItemID),
		slog.Int("qty", input.Qty),
	)

	return viewOf(cart), nil
}

// RemoveItem decrements qty of an item, dropping the line entirely when its
// quantity reaches zero. Removing an item the cart does not hold is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, itemID string, qty int) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if itemID == "" {
		return nil, apperrors.InvalidInput("item id is required")
	}
	if qty <= 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}

	cart, err := s.sessions.LoadCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	cart.Remove(itemID, qty)

	if err := s.saveAndPublish(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("session_id", sessionID),
		slog.String("item_id", itemID),
		slog.Int("qty", qty),
	)

	return viewOf(cart), nil
}

// ClearCart empties the session's cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (*CartView, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	cart := domain.NewCart()
	if err := s.saveAndPublish(ctx, sessionID, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("session_id", sessionID),
	)

	return viewOf(cart), nil
}

func (s *CartService) saveAndPublish(ctx context.Context, sessionID string, cart domain.Cart) error {
	if err := s.sessions.SaveCart(ctx, sessionID, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	s.producer.CartUpdated(ctx, event.CartUpdated{
		SessionID: sessionID,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	})

	return nil
}

func viewOf(cart domain.Cart) *CartView {
	return &CartView{
		Items:     cart,
		Subtotal:  cart.Subtotal(),
		ItemCount: cart.ItemCount(),
	}
}
