package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shipquote/rate-service/internal/metrics"
	"github.com/shipquote/rate-service/internal/middleware"
	"github.com/shipquote/rate-service/internal/service"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	APIKeys        map[string]bool
	EnableAuth     bool
	JWTSecret      string
	CORSOrigins    []string
	LoggingService service.LoggingService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
		EnableAuth: false,
	}
}

// NewRouter creates and configures the Gin router for the rate service.
func NewRouter(handler *Handler, boxesHandler *BoxCatalogHandler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	shipmentRoutes := NewShipmentRoutes(handler)
	shipmentRoutes.RegisterPublicRoutes(api)

	// State-changing routes require a JWT when auth is enabled.
	mutating := api.Group("")
	if cfg.EnableAuth && cfg.JWTSecret != "" {
		mutating.Use(middleware.JWTAuth([]byte(cfg.JWTSecret), ""))
	}
	shipmentRoutes.RegisterProtectedRoutes(mutating, &cfg)

	// Catalog administration additionally requires the admin role.
	admin := api.Group("")
	if cfg.EnableAuth && cfg.JWTSecret != "" {
		admin.Use(middleware.JWTAuth([]byte(cfg.JWTSecret), "admin"))
	}
	if boxesHandler != nil {
		adminRoutes := NewAdminRoutes(boxesHandler)
		adminRoutes.RegisterProtectedRoutes(admin, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	router.Use(cors.New(corsConfig))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.LoggingService),
		middleware.ErrorHandler(),
	)

	if cfg.RequestTimeout > 0 {
		router.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health and metrics routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	// API key authentication for the whole API surface, when configured.
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}
}
