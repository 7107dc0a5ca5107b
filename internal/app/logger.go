// Package app provides logger initialization.
package app

import (
	"github.com/shipquote/rate-service/config"
	"github.com/shipquote/rate-service/internal/logger"
)

// InitializeLogger initializes the JSON logger from server configuration.
func InitializeLogger(cfg config.ServerConfig) {
	logger.Init(cfg.LogLevel, cfg.LogPretty)
}
