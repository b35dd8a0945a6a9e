package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ssroyels/Trendex/internal/domain"
	"github.com/ssroyels/Trendex/internal/repository"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
)

// OrderTracking is the tracking view of a session's placed order.
type OrderTracking struct {
	Order     *domain.PendingOrder `json:"order"`
	Status    string               `json:"status"`
	Stages    []string             `json:"stages"`
	Confirmed bool                 `json:"confirmed"`
}

// OrderService implements order tracking and confirmation on top of the
// session snapshot and the durable order record.
type OrderService struct {
	orders   repository.OrderRepository
	sessions repository.SessionStore
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, sessions repository.SessionStore, logger *slog.Logger) *OrderService {
	return &OrderService{
		orders:   orders,
		sessions: sessions,
		logger:   logger,
	}
}

// Track returns the session's placed order and its current tracking stage.
// A reloaded session never opens on the terminal stage; a stale or missing
// persisted status restarts at the first stage.
func (s *OrderService) Track(ctx context.Context, sessionID string) (*OrderTracking, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	pending, err := s.sessions.LoadPendingOrder(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load pending order: %w", err)
	}
	if pending == nil {
		return nil, apperrors.NotFound("order", sessionID)
	}

	saved, err := s.sessions.LoadOrderStatus(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load order status: %w", err)
	}
	status := domain.StartingOrderStatus(saved)
	if status != saved {
		if err := s.sessions.SaveOrderStatus(ctx, sessionID, status); err != nil {
			return nil, fmt.Errorf("save order status: %w", err)
		}
	}

	confirmed, err := s.sessions.OrderConfirmed(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load confirmed flag: %w", err)
	}

	return &OrderTracking{
		Order:     pending,
		Status:    status,
		Stages:    domain.OrderStages(),
		Confirmed: confirmed,
	}, nil
}

// Advance moves the session's order to the next tracking stage and mirrors
// it on the durable record. The terminal stage advances to itself.
func (s *OrderService) Advance(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", apperrors.InvalidInput("session id is required")
	}

	pending, err := s.sessions.LoadPendingOrder(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load pending order: %w", err)
	}
	if pending == nil {
		return "", apperrors.NotFound("order", sessionID)
	}

	saved, err := s.sessions.LoadOrderStatus(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load order status: %w", err)
	}

	next := domain.NextOrderStatus(saved)
	if err := s.sessions.SaveOrderStatus(ctx, sessionID, next); err != nil {
		return "", fmt.Errorf("save order status: %w", err)
	}
	if err := s.orders.UpdateStatus(ctx, pending.OrderID, next); err != nil {
		return "", fmt.Errorf("update order status: %w", err)
	}

	s.logger.InfoContext(ctx, "order status advanced",
		slog.String("order_id", pending.OrderID),
		slog.String("status", next),
	)

	return next, nil
}

// Confirm finalizes the session's pending order with the chosen subset of
// its items, recomputing the subtotal. A confirmed order is immutable.
func (s *OrderService) Confirm(ctx context.Context, sessionID string, itemIDs []string) (*OrderTracking, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if len(itemIDs) == 0 {
		return nil, apperrors.InvalidInput("at least one item is required")
	}

	pending, err := s.sessions.LoadPendingOrder(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load pending order: %w", err)
	}
	if pending == nil {
		return nil, apperrors.NotFound("order", sessionID)
	}

	confirmed, err := s.sessions.OrderConfirmed(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load confirmed flag: %w", err)
	}
	if confirmed {
		return nil, apperrors.Conflict("order is already confirmed")
	}

	kept := domain.NewCart()
	for _, id := range itemIDs {
		entry, ok := pending.Cart[id]
		if !ok {
			return nil, apperrors.InvalidInput(fmt.Sprintf("item %q is not part of the order", id))
		}
		kept[id] = entry
	}

	pending.Cart = kept
	pending.Subtotal = kept.Subtotal()

	if err := s.orders.ReplaceItems(ctx, pending.OrderID, sortedEntries(kept), pending.Subtotal); err != nil {
		return nil, fmt.Errorf("replace order items: %w", err)
	}
	if err := s.sessions.SavePendingOrder(ctx, sessionID, pending); err != nil {
		return nil, fmt.Errorf("save pending order: %w", err)
	}
	if err := s.sessions.SetOrderConfirmed(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("set confirmed flag: %w", err)
	}

	saved, err := s.sessions.LoadOrderStatus(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load order status: %w", err)
	}

	s.logger.InfoContext(ctx, "order confirmed",
		slog.String("order_id", pending.OrderID),
		slog.Int("items", len(kept)),
		slog.Int64("subtotal", pending.Subtotal),
	)

	return &OrderTracking{
		Order:     pending,
		Status:    domain.StartingOrderStatus(saved),
		Stages:    domain.OrderStages(),
		Confirmed: true,
	}, nil
}
