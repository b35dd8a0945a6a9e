// Package service implements the storefront business logic on top of the
// repository and session layers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ssroyels/Trendex/internal/domain"
	"github.com/ssroyels/Trendex/internal/event"
	"github.com/ssroyels/Trendex/internal/repository"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
	"github.com/ssroyels/Trendex/pkg/slug"
)

// defaultImages supplies a category placeholder when no variant in a title
// group carries an image of its own.
var defaultImages = map[string]string{
	domain.CategoryTshirt:     "/img/default-tshirt.webp",
	domain.CategoryHoodies:    "/img/default-hoodie.webp",
	domain.CategorySweatshirt: "/img/default-sweatshirt.webp",
	domain.CategoryMugs:       "/img/default-mug.webp",
	domain.CategoryStickers:   "/img/default-sticker.webp",
}

// ProductDetail is the product-page view of one variant: the variant itself
// plus the option lists and slug lookup built from its title group.
type ProductDetail struct {
	Variant  domain.ProductVariant        `json:"variant"`
	Colors   []string                     `json:"colors"`
	Sizes    []string                     `json:"sizes"`
	Siblings map[string]map[string]string `json:"siblings"`
}

// CreateVariantInput holds one variant row of an admin catalog upload.
type CreateVariantInput struct {
	Title        string   `json:"title" validate:"required"`
	Category     string   `json:"category" validate:"required"`
	Price        int64    `json:"price" validate:"required,gte=0"`
	Sizes        []string `json:"size"`
	Colors       []string `json:"color"`
	AvailableQty int      `json:"availableQty" validate:"gte=0"`
	Image        string   `json:"img"`
	Description  string   `json:"desc"`
}

// UpdateVariantInput holds the optional fields of an admin variant update.
type UpdateVariantInput struct {
	Title        *string  `json:"title"`
	Category     *string  `json:"category"`
	Price        *int64   `json:"price" validate:"omitempty,gte=0"`
	Sizes        []string `json:"size"`
	Colors       []string `json:"color"`
	AvailableQty *int     `json:"availableQty" validate:"omitempty,gte=0"`
	Image        *string  `json:"img"`
	Description  *string  `json:"desc"`
}

// CatalogService serves category listings, product pages, and the admin
// catalog mutations.
type CatalogService struct {
	variants repository.VariantRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(variants repository.VariantRepository, producer *event.Producer, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		variants: variants,
		producer: producer,
		logger:   logger,
	}
}

// ListCategory returns the aggregated catalog for a category: one card per
// title, options collected from in-stock variants only.
func (s *CatalogService) ListCategory(ctx context.Context, category string) ([]domain.CatalogProduct, error) {
	if !domain.IsValidCategory(category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", category))
	}

	variants, err := s.variants.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}

	products := domain.AggregateVariants(variants)
	for i := range products {
		if products[i].Image == "" {
			products[i].Image = defaultImages[category]
		}
	}

	return products, nil
}

// GetProduct returns the product-page detail for a variant slug. The option
// lists and the color/size to slug lookup span the variant's whole title
// group, in-stock rows only.
func (s *CatalogService) GetProduct(ctx context.Context, variantSlug string) (*ProductDetail, error) {
	if variantSlug == "" {
		return nil, apperrors.InvalidInput("slug is required")
	}

	variant, err := s.variants.GetBySlug(ctx, variantSlug)
	if err != nil {
		return nil, fmt.Errorf("get variant: %w", err)
	}

	group, err := s.variants.ListByTitle(ctx, variant.Title)
	if err != nil {
		return nil, fmt.Errorf("list title group: %w", err)
	}

	detail := &ProductDetail{
		Variant:  *variant,
		Colors:   []string{},
		Sizes:    []string{},
		Siblings: make(map[string]map[string]string),
	}
	for _, v := range group {
		if !v.InStock() {
			continue
		}
		for _, color := range v.Colors {
			if color == "" {
				continue
			}
			detail.Colors = appendUnique(detail.Colors, color)
			for _, size := range v.Sizes {
				if size == "" {
					continue
				}
				detail.Sizes = appendUnique(detail.Sizes, size)
				if detail.Siblings[color] == nil {
					detail.Siblings[color] = make(map[string]string)
				}
				detail.Siblings[color][size] = v.Slug
			}
		}
	}

	return detail, nil
}

// CreateVariants inserts a batch of variant rows from an admin upload. Each
// input row may carry several sizes and colors; one row is inserted per
// size/color combination, each with its own slug.
func (s *CatalogService) CreateVariants(ctx context.Context, inputs []CreateVariantInput) ([]domain.ProductVariant, error) {
	if len(inputs) == 0 {
		return nil, apperrors.InvalidInput("at least one variant is required")
	}

	now := time.Now().UTC()
	var rows []domain.ProductVariant
	for _, in := range inputs {
		if in.Title == "" {
			return nil, apperrors.InvalidInput("title is required")
		}
		if !domain.IsValidCategory(in.Category) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", in.Category))
		}
		if in.Price < 0 {
			return nil, apperrors.InvalidInput("price must not be negative")
		}

		sizes := in.Sizes
		if len(sizes) == 0 {
			sizes = []string{""}
		}
		colors := in.Colors
		if len(colors) == 0 {
			colors = []string{""}
		}

		for _, color := range colors {
			for _, size := range sizes {
				row := domain.ProductVariant{
					ID:           uuid.New().String(),
					Title:        in.Title,
					Slug:         slug.ForVariant(in.Title, size, color),
					Category:     in.Category,
					Price:        in.Price,
					Sizes:        []string{},
					Colors:       []string{},
					AvailableQty: in.AvailableQty,
					Image:        in.Image,
					Description:  in.Description,
					CreatedAt:    now,
					UpdatedAt:    now,
				}
				if size != "" {
					row.Sizes = []string{size}
				}
				if color != "" {
					row.Colors = []string{color}
				}
				rows = append(rows, row)
			}
		}
	}

	if err := s.variants.BulkInsert(ctx, rows); err != nil {
		return nil, fmt.Errorf("insert variants: %w", err)
	}

	for _, row := range rows {
		s.producer.ProductCreated(ctx, event.ProductChanged{
			VariantID: row.ID,
			Slug:      row.Slug,
			Category:  row.Category,
		})
	}

	s.logger.InfoContext(ctx, "variants created",
		slog.Int("count", len(rows)),
	)

	return rows, nil
}

// UpdateVariant applies a partial update to one variant row.
func (s *CatalogService) UpdateVariant(ctx context.Context, id string, in UpdateVariantInput) (*domain.ProductVariant, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("variant id is required")
	}
	if in.Category != nil && !domain.IsValidCategory(*in.Category) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown category %q", *in.Category))
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, apperrors.InvalidInput("price must not be negative")
	}
	if in.AvailableQty != nil && *in.AvailableQty < 0 {
		return nil, apperrors.InvalidInput("available quantity must not be negative")
	}

	variant, err := s.variants.Update(ctx, id, repository.VariantUpdate{
		Title:        in.Title,
		Category:     in.Category,
		Price:        in.Price,
		Sizes:        in.Sizes,
		Colors:       in.Colors,
		AvailableQty: in.AvailableQty,
		Image:        in.Image,
		Description:  in.Description,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update variant: %w", err)
	}

	s.producer.ProductUpdated(ctx, event.ProductChanged{
		VariantID: variant.ID,
		Slug:      variant.Slug,
		Category:  variant.Category,
	})

	return variant, nil
}

// appendUnique appends value to list if not already present, preserving
// insertion order.
func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
