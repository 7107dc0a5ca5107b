// Package app provides router configuration.
package app

import (
	"context"

	"github.com/shipquote/rate-service/config"
	"github.com/shipquote/rate-service/internal/http"
	"github.com/shipquote/rate-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	BoxesHandler  *http.BoxCatalogHandler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	handler := http.NewHandler(services.Shipping, loggingService)
	boxesHandler := http.NewBoxCatalogHandler(services.Catalogs, loggingService)
	healthHandler := http.NewHealthHandler()

	// Surface carrier circuit state and database connectivity in readiness.
	if services.Carrier != nil && services.Carrier.Breaker() != nil {
		healthHandler.RegisterCircuitBreaker("fedex", services.Carrier.Breaker())
	}
	if dbComponents != nil && dbComponents.DB != nil {
		db := dbComponents.DB
		healthHandler.RegisterChecker("mongodb", http.HealthCheckerFunc(func() error {
			return db.HealthCheck(context.Background())
		}))
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		EnableAuth:     cfg.Auth.Enabled,
		APIKeys:        cfg.Auth.APIKeys,
		JWTSecret:      cfg.Auth.JWTSecret,
		CORSOrigins:    cfg.Server.CORSOrigins,
		LoggingService: loggingService,
	}

	return &RouterComponents{
		Handler:       handler,
		BoxesHandler:  boxesHandler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
