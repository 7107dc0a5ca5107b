// Package main is the entry point for the rate-service application.
//
// @title           Shipping Rate Service API
// @version         1.0.0
// @description     API for quoting shipping rates, purchasing labels, and tracking shipments.
//
//	Items are packed into carrier boxes, heavy or oversized shipments are
//	classified for freight, and rates for all applicable service
//	categories are fetched concurrently.
//
// @contact.name   API Support
// @contact.email  support@example.com
//
// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT
//
// @host      localhost:8080
// @BasePath  /
//
// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
//
// @tag.name        Rates
// @tag.description Rate quoting operations
//
// @tag.name        Labels
// @tag.description Label purchase and cancellation
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/shipquote/rate-service/config"
	"github.com/shipquote/rate-service/internal/app"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
