package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ssroyels/Trendex/internal/auth"
	"github.com/ssroyels/Trendex/internal/service"
	"github.com/ssroyels/Trendex/pkg/health"
	"github.com/ssroyels/Trendex/pkg/middleware"
)

// RouterConfig bundles the services and cross-cutting settings the router
// needs.
type RouterConfig struct {
	Catalog  *service.CatalogService
	Cart     *service.CartService
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Users    *service.UserService

	Tokens        *auth.JWTManager
	Health        *health.Handler
	CORS          middleware.CORSConfig
	AuthRateRPS   int
	AuthRateBurst int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Session())

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	validate := func(token string) (*middleware.Claims, error) {
		claims, err := cfg.Tokens.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
	}

	catalogHandler := NewCatalogHandler(cfg.Catalog, logger)
	cartHandler := NewCartHandler(cfg.Cart, logger)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, logger)
	orderHandler := NewOrderHandler(cfg.Orders, logger)
	authHandler := NewAuthHandler(cfg.Users, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequestLogger(logger))

		r.Get("/products/{category}", catalogHandler.ListCategory)
		r.Get("/product/{slug}", catalogHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{itemID}", cartHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.OptionalAuth(validate))

			r.Post("/pincode", checkoutHandler.VerifyPincode)
			r.Post("/address", checkoutHandler.SaveAddress)
			r.Get("/address", checkoutHandler.GetAddress)
			r.Post("/order", checkoutHandler.PlaceOrder)
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", orderHandler.Track)
			r.Post("/advance", orderHandler.Advance)
			r.Post("/confirm", orderHandler.Confirm)
		})

		authLimit := middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst, logger)
		r.Route("/auth", func(r chi.Router) {
			r.With(authLimit).Post("/signup", authHandler.Signup)
			r.With(authLimit).Post("/login", authHandler.Login)
			r.With(middleware.Auth(validate)).Get("/me", authHandler.Me)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(validate))
			r.Use(middleware.RequireRole("admin"))

			r.Post("/products", catalogHandler.CreateProducts)
			r.Patch("/products/{id}", catalogHandler.UpdateProduct)
		})
	})

	return r
}
