// Package app provides service initialization.
package app

import (
	"github.com/shipquote/rate-service/config"
	"github.com/shipquote/rate-service/internal/carrier/fedex"
	"github.com/shipquote/rate-service/internal/circuitbreaker"
	"github.com/shipquote/rate-service/internal/packing"
	"github.com/shipquote/rate-service/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Shipping service.ShippingService
	Catalogs service.BoxCatalogService
	Carrier  *fedex.Client
}

// InitializeServices initializes the carrier client and business services.
func InitializeServices(cfg config.CarrierConfig, dbComponents *DatabaseComponents) *ServiceComponents {
	var catalogSvc *service.BoxCatalogServiceImpl
	if dbComponents != nil {
		catalogSvc = service.NewBoxCatalogService(dbComponents.BoxCatalogRepo)
	} else {
		catalogSvc = service.NewBoxCatalogService(nil)
	}

	var packOpts []packing.Option
	if cfg.CustomBoxesEnabled {
		packOpts = append(packOpts, packing.WithCustomBoxes(cfg.CustomBoxMarginIn, cfg.CustomBoxTareLbs))
	}

	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:             "fedex",
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		CoolDown:         cfg.CircuitBreakerCoolDown,
	})

	client := fedex.NewClient(fedex.Config{
		ClientID:              cfg.ClientID,
		ClientSecret:          cfg.ClientSecret,
		AccountNumber:         cfg.AccountNumber,
		BaseURL:               cfg.BaseURL,
		TestMode:              cfg.TestMode,
		MarkupPercent:         cfg.MarkupPercent,
		UseIntelligentPacking: cfg.UseIntelligentPacking,
		EnabledServices:       cfg.EnabledServices,
		RateTypes:             cfg.RateTypes,
		SmartPostHubs:         cfg.SmartPostHubs,
		RequestTimeout:        cfg.RequestTimeout,
		Retry: fedex.RetryPolicy{
			MaxRetries: cfg.RetryMaxAttempts,
			BaseDelay:  cfg.RetryBaseDelay,
			MaxDelay:   cfg.RetryMaxDelay,
			Jitter:     true,
		},
	},
		fedex.WithCircuitBreaker(breaker),
		fedex.WithPacker(&service.CatalogPacker{Catalogs: catalogSvc, Options: packOpts}),
	)

	shipping := service.NewShippingService(client, catalogSvc, packOpts...)

	return &ServiceComponents{
		Shipping: shipping,
		Catalogs: catalogSvc,
		Carrier:  client,
	}
}
