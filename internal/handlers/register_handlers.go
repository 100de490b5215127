package handlers

import (
	"github.com/novira-app/novira-backend/cmd/docs"
	portssvc "github.com/novira-app/novira-backend/internal/core/ports/services"
	"github.com/novira-app/novira-backend/internal/middleware"
	"github.com/novira-app/novira-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health and metrics are unauthenticated; they serve infrastructure, not users.
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/", getHome)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Shared limiter for mutating endpoints.
	rate, _ := limiter.NewRateFromFormatted("30-M")
	rateLimit := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	RegisterBalanceRoutes(v1, services.Balance, services.Simplify, cfg.ReportingCurrency)
	registerSplitRoutes(v1, services.Balance)
	RegisterSettlementRoutes(v1, services.Settlement, rateLimit)
	registerCurrencyRoutes(v1, services.Currency)
	registerRateRoutes(v1, services.Rate, rateLimit)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
