// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/shipquote/rate-service/config"
	"github.com/shipquote/rate-service/internal/middleware"
	"github.com/shipquote/rate-service/internal/repository"
	"github.com/shipquote/rate-service/internal/service"
)

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	BoxCatalogRepo repository.BoxCatalogRepositoryInterface
	LoggingService service.LoggingService
}

// InitializeDatabase initializes MongoDB connection and creates required repositories and services.
// Returns nil if database is disabled or connection fails; the service
// then runs with the built-in box catalog and console-only logging.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	if err := db.SetLogsTTL(context.Background(), cfg.LogsTTLDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
	}

	logsRepo := repository.NewLogsRepository(db)
	loggingService := service.NewLoggingService(logsRepo)

	// Request logs go through the buffered worker pool.
	middleware.InitAsyncLogger(loggingService, middleware.DefaultAsyncLoggerConfig())

	boxCatalogRepo := repository.NewBoxCatalogRepository(db)

	return &DatabaseComponents{
		DB:             db,
		BoxCatalogRepo: boxCatalogRepo,
		LoggingService: loggingService,
	}
}
