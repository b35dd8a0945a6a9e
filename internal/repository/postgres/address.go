package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ssroyels/Trendex/internal/domain"
	"github.com/ssroyels/Trendex/pkg/database"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
)

// AddressRepository implements repository.AddressRepository using PostgreSQL.
type AddressRepository struct {
	pool database.DBTX
}

// NewAddressRepository creates a PostgreSQL-backed address repository.
func NewAddressRepository(pool database.DBTX) *AddressRepository {
	return &AddressRepository{pool: pool}
}

// Create inserts a new address for a user.
func (r *AddressRepository) Create(ctx context.Context, address *domain.Address) error {
	address.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO addresses (id, user_id, name, email, phone, local_address, pincode, city, state, verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		address.ID, address.UserID, address.Name, address.Email, address.Phone,
		address.LocalAddress, address.Pincode, address.City, address.State,
		address.Verified, address.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert address: %w", err)
	}
	return nil
}

// LatestByUser returns the most recently saved address for a user.
func (r *AddressRepository) LatestByUser(ctx context.Context, userID string) (*domain.Address, error) {
	query := `
		SELECT id, user_id, name, email, phone, local_address, pincode, city, state, verified, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var a domain.Address
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&a.ID, &a.UserID, &a.Name, &a.Email, &a.Phone,
		&a.LocalAddress, &a.Pincode, &a.City, &a.State,
		&a.Verified, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("address", userID)
		}
		return nil, fmt.Errorf("get latest address: %w", err)
	}
	return &a, nil
}
