// Package main implements a standalone seed tool that populates the
// storefront with a sample catalog and an admin account. It connects
// straight to Postgres with the same config the server uses.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/ssroyels/Trendex/internal/config"
	"github.com/ssroyels/Trendex/internal/domain"
	postgresrepo "github.com/ssroyels/Trendex/internal/repository/postgres"
	"github.com/ssroyels/Trendex/migrations"
	"github.com/ssroyels/Trendex/pkg/database"
	apperrors "github.com/ssroyels/Trendex/pkg/errors"
	"github.com/ssroyels/Trendex/pkg/logger"
	"github.com/ssroyels/Trendex/pkg/slug"
)

type seedProduct struct {
	title       string
	category    string
	price       int64
	sizes       []string
	colors      []string
	qty         int
	description string
}

var catalog = []seedProduct{
	{"Wear The Code", domain.CategoryTshirt, 499, []string{"S", "M", "L", "XL"}, []string{"black", "red", "blue"}, 20, "Classic tee for people who ship."},
	{"Eat Sleep Code Repeat", domain.CategoryTshirt, 449, []string{"M", "L"}, []string{"white", "navy"}, 15, "The loop that never terminates."},
	{"Git Commit Hoodie", domain.CategoryHoodies, 1299, []string{"M", "L", "XL"}, []string{"black", "grey"}, 10, "Push warmth to production."},
	{"Null Pointer Sweatshirt", domain.CategorySweatshirt, 999, []string{"S", "M", "L"}, []string{"maroon"}, 8, "Dereference responsibly."},
	{"Coffee && Code Mug", domain.CategoryMugs, 299, nil, []string{"white", "black"}, 50, "Fuel for the build."},
	{"Stack Overflow Sticker", domain.CategoryStickers, 99, nil, nil, 200, "Copy, paste, attribute."},
}

func main() {
	log := logger.New("trendex-seed", "info")

	cfg, err := config.Load()
	if err != nil {
		log.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pgCfg := cfg.PostgresConfig()
	pool, err := database.NewPostgresPool(ctx, &pgCfg, log)
	if err != nil {
		log.Error("failed to connect to postgres", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		log.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := seedVariants(ctx, pool, log); err != nil {
		log.Error("failed to seed variants", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := seedAdmin(ctx, pool, log); err != nil {
		log.Error("failed to seed admin user", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("seed complete")
}

func seedVariants(ctx context.Context, pool database.DBTX, log *slog.Logger) error {
	repo := postgresrepo.NewVariantRepository(pool)
	now := time.Now().UTC()

	var rows []domain.ProductVariant
	for _, p := range catalog {
		sizes := p.sizes
		if len(sizes) == 0 {
			sizes = []string{""}
		}
		colors := p.colors
		if len(colors) == 0 {
			colors = []string{""}
		}
		for _, color := range colors {
			for _, size := range sizes {
				row := domain.ProductVariant{
					ID:           uuid.New().String(),
					Title:        p.title,
					Slug:         slug.ForVariant(p.title, size, color),
					Category:     p.category,
					Price:        p.price,
					Sizes:        []string{},
					Colors:       []string{},
					AvailableQty: p.qty,
					Description:  p.description,
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

	if err := repo.BulkInsert(ctx, rows); err != nil {
		// Seeding is idempotent per slug; an already seeded database is fine.
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			log.Info("catalog already seeded, skipping")
			return nil
		}
		return err
	}

	log.Info("seeded catalog", slog.Int("variants", len(rows)))
	return nil
}

func seedAdmin(ctx context.Context, pool database.DBTX, log *slog.Logger) error {
	repo := postgresrepo.NewUserRepository(pool)

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin-change-me"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = repo.Create(ctx, &domain.User{
		ID:           uuid.New().String(),
		Name:         "Store Admin",
		Email:        "admin@trendex.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			log.Info("admin user already exists, skipping")
			return nil
		}
		return err
	}

	log.Info("seeded admin user", slog.String("email", "admin@trendex.local"))
	return nil
}
