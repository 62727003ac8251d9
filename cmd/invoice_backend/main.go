package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/adapters/cache"
	"github.com/SscSPs/invoice_analytics/internal/adapters/pricing"
	portsrepo "github.com/SscSPs/invoice_analytics/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_analytics/internal/core/services"
	"github.com/SscSPs/invoice_analytics/internal/handlers"
	"github.com/SscSPs/invoice_analytics/internal/middleware"
	"github.com/SscSPs/invoice_analytics/internal/platform/config"
	"github.com/SscSPs/invoice_analytics/internal/platform/metrics"
	"github.com/SscSPs/invoice_analytics/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_analytics/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// @title Multi-Currency Invoice Analytics API
// @version 1.0
// @description Customers, invoices and revenue analytics across currencies.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	// Amounts and rates go over the wire, and into Redis, as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	if err := run(cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{ConnectTimeout: 10 * time.Second})
	if err != nil {
		return err
	}
	defer database.ClosePgxPool(dbPool)

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := pgsql.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
	}

	appMetrics := metrics.New(true)

	var rateCache portsrepo.RateCacheRepositoryFacade = pgsql.NewPgxRateCacheRepository(dbPool)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			// the durable tier still answers every lookup
			logger.Warn("Redis unreachable, continuing without hot cache", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
		}
		rateCache = cache.NewRedisRateCache(rdb, rateCache)
		logger.Info("Redis rate cache enabled", slog.String("addr", cfg.RedisAddr))
	}

	repos := pgsql.NewRepositoryProvider(dbPool, rateCache)
	provider := pricing.NewExchangeRateAPIClient(cfg.ExchangeRateAPIURL, cfg.ExchangeRateAPIKey, appMetrics)
	serviceContainer := services.NewServiceContainer(cfg, repos, provider, appMetrics)

	limiterInstance, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		middleware.MetricsMiddleware(appMetrics),
		gin.Recovery(),
		cors.New(corsConfig(cfg)),
	)
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, handlers.RouteDeps{
		DB:      dbPool,
		Metrics: appMetrics,
		Limiter: limiterInstance,
	}); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	c.ExposeHeaders = []string{middleware.RequestIDHeader}
	if len(cfg.CORSAllowedOrigins) == 0 || cfg.CORSAllowedOrigins[0] == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
