// Package http exposes the devserver's REST API: the storefront cart and
// wishlist wire contract, a dev token endpoint, the product catalog, health
// checks, and metrics.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jyothimogili456/storesync/internal/devserver/auth"
	"github.com/jyothimogili456/storesync/internal/devserver/catalog"
	"github.com/jyothimogili456/storesync/internal/devserver/service"
	"github.com/jyothimogili456/storesync/pkg/health"
	"github.com/jyothimogili456/storesync/pkg/middleware"
)

// NewRouter creates a chi router with all devserver routes registered.
func NewRouter(
	cartService *service.CartService,
	wishlistService *service.WishlistService,
	cat *catalog.Catalog,
	tokens *auth.TokenManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("devserver"))
	r.Use(middleware.CORS)

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		promhttp.Handler().ServeHTTP(w, req)
	})

	// Dev auth and catalog endpoints, no credential required.
	authHandler := NewAuthHandler(tokens, logger)
	r.Post("/auth/token", authHandler.IssueToken)
	r.Get("/products", NewCatalogHandler(cat).ListProducts)

	cartHandler := NewCartHandler(cartService, logger)
	wishlistHandler := NewWishlistHandler(wishlistService, logger)

	// Collection endpoints require a bearer token; the path userId must match
	// the token subject. The request-scoped logger picks up the authenticated
	// user id, so it mounts after Auth.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens.Validate))
		r.Use(middleware.RequestLogger(logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/getCartItems/{userId}", cartHandler.GetItems)
			r.Get("/total/{userId}", cartHandler.GetTotal)
			r.Post("/add/{userId}", cartHandler.AddItem)
			r.Put("/updateQuantity/{cartId}/{userId}", cartHandler.UpdateQuantity)
			r.Delete("/remove/{cartId}/{userId}", cartHandler.RemoveItem)
			r.Delete("/clear/{userId}", cartHandler.Clear)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/getWishListProducts/{userId}", wishlistHandler.GetProducts)
			r.Post("/add/{userId}", wishlistHandler.AddProduct)
			r.Delete("/remove/{wishlistId}/{userId}", wishlistHandler.RemoveEntry)
			r.Delete("/clear/{userId}", wishlistHandler.Clear)
		})
	})

	return r
}
