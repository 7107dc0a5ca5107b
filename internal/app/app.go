// Package app provides application initialization and dependency injection.
package app

import (
	"github.com/gin-gonic/gin"

	"github.com/shipquote/rate-service/config"
	"github.com/shipquote/rate-service/internal/http"
)

// InitializeApp creates and wires all application dependencies.
// This is the main orchestration function that initializes all components.
func InitializeApp(cfg config.Config) *gin.Engine {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Server)

	// Initialize database components (MongoDB repositories and services)
	dbComponents := InitializeDatabase(cfg.Database)

	// Initialize the carrier client and business services
	serviceComponents := InitializeServices(cfg.Carrier, dbComponents)

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return http.NewRouter(
		routerComponents.Handler,
		routerComponents.BoxesHandler,
		routerComponents.HealthHandler,
		routerComponents.Config,
	)
}
