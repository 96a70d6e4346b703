package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/comicverse/hub/internal/catalog"
	"github.com/comicverse/hub/internal/config"
	"github.com/comicverse/hub/internal/event"
	handler "github.com/comicverse/hub/internal/handler/http"
	"github.com/comicverse/hub/internal/kvstate"
	"github.com/comicverse/hub/internal/kvstate/file"
	"github.com/comicverse/hub/internal/kvstate/postgres"
	kvredis "github.com/comicverse/hub/internal/kvstate/redis"
	"github.com/comicverse/hub/internal/repository/kv"
	"github.com/comicverse/hub/internal/service"
	"github.com/comicverse/hub/pkg/database"
	"github.com/comicverse/hub/pkg/health"
	pkgkafka "github.com/comicverse/hub/pkg/kafka"
	"github.com/comicverse/hub/pkg/tracing"
)

const serviceName = "storefront"

// App wires together all dependencies and runs the storefront.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	rdb            *redis.Client
	pool           *pgxpool.Pool
	producer       *pkgkafka.Producer
	tracerShutdown func(context.Context) error
	httpServer     *http.Server

	Catalog    *catalog.Catalog
	Storefront *service.StorefrontService
	Cart       *service.CartService
	Wishlist   *service.WishlistService
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a := &App{cfg: cfg, logger: logger}

	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing(serviceName))
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	a.tracerShutdown = tracerShutdown
	database.SetSlowQueryLogging(100*time.Millisecond, logger)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		a.close()
		return nil, err
	}
	a.Catalog = cat
	logger.Info("catalog loaded",
		slog.Int("comics", cat.Len()),
		slog.String("path", cfg.CatalogPath),
	)

	store, err := a.openState(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	state := kvstate.Namespaced(store, cfg.Profile)

	var notifier event.BadgeNotifier = event.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		a.producer = pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
		notifier = event.NewProducer(a.producer, cfg.Profile, logger)
		logger.Info("kafka producer initialized", slog.Any("brokers", cfg.KafkaBrokers))
	}

	// Build the dependency graph.
	taxRate := decimal.NewFromFloat(cfg.TaxRate)
	a.Cart = service.NewCartService(cat, kv.NewCartRepository(state, logger), notifier, taxRate, logger)
	a.Wishlist = service.NewWishlistService(cat, kv.NewWishlistRepository(state, logger), notifier, logger)
	a.Storefront = service.NewStorefrontService(cat, a.Cart, a.Wishlist)

	// Health checks.
	healthHandler := health.NewHandler(serviceName)
	healthHandler.Register("state", store.Ping)
	if a.producer != nil {
		healthHandler.Register("kafka", a.producer.Ping)
	}

	// HTTP router.
	router := handler.NewRouter(a.Storefront, a.Cart, a.Wishlist, healthHandler, logger, handler.RouterConfig{
		ServiceName:    serviceName,
		Profile:        cfg.Profile,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return a, nil
}

// openState connects the configured state substrate.
func (a *App) openState(ctx context.Context) (kvstate.Store, error) {
	cfg := a.cfg
	switch cfg.StateBackend {
	case config.BackendMemory:
		a.logger.Warn("using in-memory state; carts and wishlists are lost on restart")
		return kvstate.NewMemoryStore(), nil

	case config.BackendFile:
		store, err := file.New(cfg.StateDir)
		if err != nil {
			return nil, err
		}
		a.logger.Info("using file state", slog.String("dir", store.Dir()))
		return store, nil

	case config.BackendRedis:
		rdb, err := database.NewRedisClient(ctx, cfg.Redis(), a.logger)
		if err != nil {
			return nil, err
		}
		a.rdb = rdb
		a.logger.Info("connected to Redis",
			slog.String("addr", cfg.RedisAddr),
			slog.Int("db", cfg.RedisDB),
		)
		return kvredis.New(rdb, cfg.StateExpiry()), nil

	case config.BackendPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), a.logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		a.logger.Info("connected to PostgreSQL",
			slog.String("host", cfg.PostgresHost),
			slog.String("database", cfg.PostgresDB),
		)
		if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool, serviceName); err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, a.logger); err != nil {
			return nil, fmt.Errorf("migrate state schema: %w", err)
		}
		return postgres.New(pool, cfg.StateExpiry()), nil
	}
	return nil, fmt.Errorf("unknown state backend %q", cfg.StateBackend)
}

// Handler returns the HTTP handler serving the storefront.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
			slog.String("profile", a.cfg.Profile),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		a.close()
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	a.close()
	a.logger.Info("application shutdown complete")
	return nil
}

// close releases every connection opened so far. It is safe on a partially
// built App.
func (a *App) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close error", slog.String("error", err.Error()))
		}
		a.producer = nil
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
		a.rdb = nil
	}
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
	if a.tracerShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.tracerShutdown(ctx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		}
		a.tracerShutdown = nil
	}
}
