package handlers

import (
	"fmt"

	"github.com/SscSPs/invoice_analytics/cmd/docs"
	portssvc "github.com/SscSPs/invoice_analytics/internal/core/ports/services"
	"github.com/SscSPs/invoice_analytics/internal/gqlapi"
	"github.com/SscSPs/invoice_analytics/internal/middleware"
	"github.com/SscSPs/invoice_analytics/internal/platform/config"
	"github.com/SscSPs/invoice_analytics/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps carries the optional infrastructure the routes expose or use.
type RouteDeps struct {
	DB      Pinger
	Metrics *metrics.Metrics
	Limiter *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) error {
	home := &homeHandler{cfg: cfg, db: deps.DB}
	r.GET("/", home.getHome)
	r.GET("/health", home.getHealth)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	if err := setupAPIV1Routes(r, cfg, services, deps); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) error {
	executor, err := gqlapi.NewExecutor(&gqlapi.Resolver{Customers: services.Customer, Invoices: services.Invoice})
	if err != nil {
		return fmt.Errorf("failed to build graphql schema: %w", err)
	}

	v1 := r.Group("/api/v1")
	if cfg.AuthEnabled() {
		v1.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	} else {
		v1.Use(middleware.StaticUserMiddleware(cfg.DevUserID))
	}
	if deps.Limiter != nil {
		v1.Use(middleware.RateLimit(deps.Limiter))
	}

	registerExchangeRateRoutes(v1, services.ExchangeRate)
	workplace := registerWorkplaceRoutes(v1, services.Workplace)
	registerCustomerRoutes(workplace, services.Customer)
	registerInvoiceRoutes(workplace, services.Invoice)
	registerAnalyticsRoutes(workplace, services.Analytics)
	registerGraphQLRoutes(workplace, executor)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Title = cfg.AppName
	docs.SwaggerInfo.Version = cfg.AppVersion
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
