package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ssroyels/Trendex/internal/domain"
	"github.com/ssroyels/Trendex/pkg/database"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
// Order items and the address snapshot are stored as JSONB columns; an order
// is a point-in-time document, not a join target.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order row.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	addressJSON, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("marshal order address: %w", err)
	}

	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	query := `
		INSERT INTO orders (id, user_id, session_id, items, subtotal, address, payment_method, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.pool.Exec(ctx, query,
		order.ID, order.UserID, order.SessionID, itemsJSON, order.Subtotal,
		addressJSON, order.PaymentMethod, order.Status,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, session_id, items, subtotal, address, payment_method, status, created_at, updated_at
		FROM orders
		WHERE id = $1`

	var (
		o           domain.Order
		itemsJSON   []byte
		addressJSON []byte
	)
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.SessionID, &itemsJSON, &o.Subtotal,
		&addressJSON, &o.PaymentMethod, &o.Status,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(addressJSON, &o.Address); err != nil {
		return nil, fmt.Errorf("unmarshal order address: %w", err)
	}
	return &o, nil
}

// UpdateStatus moves an order to a new tracking stage.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2`

	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}
	return nil
}

// ReplaceItems swaps an order's item set and subtotal.
func (r *OrderRepository) ReplaceItems(ctx context.Context, id string, items []domain.CartEntry, subtotal int64) error {
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}

	query := `
		UPDATE orders
		SET items = $1, subtotal = $2, updated_at = NOW()
		WHERE id = $3`

	ct, err := r.pool.Exec(ctx, query, itemsJSON, subtotal, id)
	if err != nil {
		return fmt.Errorf("replace order items: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}
	return nil
}
