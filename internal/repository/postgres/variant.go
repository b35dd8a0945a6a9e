package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ssroyels/Trendex/internal/domain"
	"github.com/ssroyels/Trendex/internal/repository"
	"github.com/ssroyels/Trendex/pkg/database"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
)

const variantColumns = "id, title, slug, category, price, sizes, colors, available_qty, img, description, created_at, updated_at"

// VariantRepository implements repository.VariantRepository using PostgreSQL.
type VariantRepository struct {
	pool database.DBTX
}

// NewVariantRepository creates a PostgreSQL-backed variant repository.
func NewVariantRepository(pool database.DBTX) *VariantRepository {
	return &VariantRepository{pool: pool}
}

func scanVariant(row pgx.Row) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := row.Scan(
		&v.ID,
		&v.Title,
		&v.Slug,
		&v.Category,
		&v.Price,
		&v.Sizes,
		&v.Colors,
		&v.AvailableQty,
		&v.Image,
		&v.Description,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVariants(rows pgx.Rows) ([]domain.ProductVariant, error) {
	defer rows.Close()

	variants := []domain.ProductVariant{}
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return variants, nil
}

// ListByCategory returns all variant rows for a category in insertion order.
func (r *VariantRepository) ListByCategory(ctx context.Context, category string) ([]domain.ProductVariant, error) {
	query := `
		SELECT ` + variantColumns + `
		FROM product_variants
		WHERE category = $1
		ORDER BY created_at, id`

	ctx, end := database.TraceQuery(ctx, "ListByCategory", query)
	rows, err := r.pool.Query(ctx, query, category)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("list variants by category: %w", err)
	}
	return collectVariants(rows)
}

// GetBySlug retrieves a single variant by its URL slug.
func (r *VariantRepository) GetBySlug(ctx context.Context, slug string) (*domain.ProductVariant, error) {
	query := `
		SELECT ` + variantColumns + `
		FROM product_variants
		WHERE slug = $1`

	v, err := scanVariant(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("variant", slug)
		}
		return nil, fmt.Errorf("get variant by slug: %w", err)
	}
	return v, nil
}

// ListByTitle returns all variants sharing a title.
func (r *VariantRepository) ListByTitle(ctx context.Context, title string) ([]domain.ProductVariant, error) {
	query := `
		SELECT ` + variantColumns + `
		FROM product_variants
		WHERE title = $1
		ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, title)
	if err != nil {
		return nil, fmt.Errorf("list variants by title: %w", err)
	}
	return collectVariants(rows)
}

// BulkInsert inserts a batch of variant rows in one transaction.
func (r *VariantRepository) BulkInsert(ctx context.Context, variants []domain.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO product_variants (` + variantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	now := time.Now().UTC()
	for i := range variants {
		v := &variants[i]
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		v.UpdatedAt = now

		_, err := tx.Exec(ctx, query,
			v.ID, v.Title, v.Slug, v.Category, v.Price,
			v.Sizes, v.Colors, v.AvailableQty, v.Image, v.Description,
			v.CreatedAt, v.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.AlreadyExists("variant", "slug", v.Slug)
			}
			return fmt.Errorf("insert variant %s: %w", v.Slug, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit bulk insert: %w", err)
	}
	return nil
}

// Update applies a partial update to a variant by ID.
func (r *VariantRepository) Update(ctx context.Context, id string, update repository.VariantUpdate) (*domain.ProductVariant, error) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}

	if update.Title != nil {
		add("title", *update.Title)
	}
	if update.Category != nil {
		add("category", *update.Category)
	}
	if update.Price != nil {
		add("price", *update.Price)
	}
	if update.Sizes != nil {
		add("sizes", update.Sizes)
	}
	if update.Colors != nil {
		add("colors", update.Colors)
	}
	if update.AvailableQty != nil {
		add("available_qty", *update.AvailableQty)
	}
	if update.Image != nil {
		add("img", *update.Image)
	}
	if update.Description != nil {
		add("description", *update.Description)
	}
	if len(sets) == 0 {
		return r.getByID(ctx, id)
	}
	add("updated_at", time.Now().UTC())

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE product_variants SET %s WHERE id = $%d RETURNING "+variantColumns,
		strings.Join(sets, ", "), len(args),
	)

	v, err := scanVariant(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("variant", id)
		}
		if isUniqueViolation(err) {
			return nil, apperrors.AlreadyExists("variant", "id", id)
		}
		return nil, fmt.Errorf("update variant: %w", err)
	}
	return v, nil
}

func (r *VariantRepository) getByID(ctx context.Context, id string) (*domain.ProductVariant, error) {
	query := `
		SELECT ` + variantColumns + `
		FROM product_variants
		WHERE id = $1`

	v, err := scanVariant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("variant", id)
		}
		return nil, fmt.Errorf("get variant by id: %w", err)
	}
	return v, nil
}

// DecrementStock atomically reduces a variant's available quantity. The
// WHERE guard keeps the quantity from ever going below zero under
// concurrent purchases.
func (r *VariantRepository) DecrementStock(ctx context.Context, slug string, qty int) error {
	query := `
		UPDATE product_variants
		SET available_qty = available_qty - $2, updated_at = NOW()
		WHERE slug = $1 AND available_qty >= $2`

	ctx, end := database.TraceQuery(ctx, "DecrementStock", query)
	ct, err := r.pool.Exec(ctx, query, slug, qty)
	end(err)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if ct.RowsAffected() > 0 {
		return nil
	}

	// Nothing updated: either the variant is unknown or it lacks stock.
	var available int
	err = r.pool.QueryRow(ctx, "SELECT available_qty FROM product_variants WHERE slug = $1", slug).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NotFound("variant", slug)
		}
		return fmt.Errorf("check stock: %w", err)
	}
	return apperrors.OutOfStock(slug)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}
