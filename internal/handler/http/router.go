package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/comicverse/hub/internal/service"
	"github.com/comicverse/hub/pkg/health"
	"github.com/comicverse/hub/pkg/middleware"
)

// RouterConfig holds the request-scoped settings of the router.
type RouterConfig struct {
	ServiceName    string
	Profile        string
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	storefront *service.StorefrontService,
	cartService *service.CartService,
	wishlistService *service.WishlistService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger, cfg.Profile))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins)))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(storefront, logger)
	cartHandler := NewCartHandler(cartService, logger)
	wishlistHandler := NewWishlistHandler(wishlistService, storefront, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/home", catalogHandler.Home)
		r.Get("/comics", catalogHandler.ListComics)
		r.Get("/comics/{id}", catalogHandler.GetComic)
		r.Get("/publishers", catalogHandler.ListPublishers)
		r.Get("/genres", catalogHandler.ListGenres)
		r.Get("/badges", catalogHandler.GetBadges)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{comicId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{comicId}", cartHandler.RemoveItem)
			r.Post("/checkout", cartHandler.Checkout)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlistHandler.GetWishlist)
			r.Put("/{comicId}", wishlistHandler.AddItem)
			r.Delete("/{comicId}", wishlistHandler.RemoveItem)
			r.Post("/{comicId}/toggle", wishlistHandler.Toggle)
		})
	})

	return r
}
