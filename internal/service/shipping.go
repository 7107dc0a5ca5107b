package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/shipquote/rate-service/internal/carrier"
	"github.com/shipquote/rate-service/internal/domain/model"
	"github.com/shipquote/rate-service/internal/metrics"
	"github.com/shipquote/rate-service/internal/packing"
)

// ShippingService exposes carrier operations and packing previews to the
// HTTP layer.
type ShippingService interface {
	GetRates(ctx context.Context, origin, destination model.Address, packages []model.Package, opts carrier.RateOptions) ([]model.Rate, error)
	CreateLabel(ctx context.Context, origin, destination model.Address, packages []model.Package, serviceCode string) (model.Label, error)
	Track(ctx context.Context, trackingNumber string) (model.TrackingInfo, error)
	ValidateAddress(ctx context.Context, address model.Address) (bool, error)
	CancelShipment(ctx context.Context, trackingNumber string) (bool, error)
	PreviewPacking(ctx context.Context, items []model.PackItem, preferFewerBoxes bool) model.PackingResult
}

// ShippingServiceImpl implements ShippingService on top of a single
// carrier provider.
type ShippingServiceImpl struct {
	provider carrier.ShippingProvider
	catalogs BoxCatalogService
	packOpts []packing.Option
}

// NewShippingService creates a new shipping service. The packer options
// apply to every pack the service runs, e.g. the custom-box fallback.
func NewShippingService(provider carrier.ShippingProvider, catalogs BoxCatalogService, packOpts ...packing.Option) ShippingService {
	return &ShippingServiceImpl{
		provider: provider,
		catalogs: catalogs,
		packOpts: packOpts,
	}
}

// GetRates quotes shipping rates for the given packages.
func (s *ShippingServiceImpl) GetRates(ctx context.Context, origin, destination model.Address, packages []model.Package, opts carrier.RateOptions) ([]model.Rate, error) {
	rates, err := s.provider.GetRates(ctx, origin, destination, packages, opts)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("packages", len(packages)).
		Int("rates", len(rates)).
		Str("destination_postal", destination.PostalCode).
		Msg("Rate quote completed")

	return rates, nil
}

// CreateLabel purchases a label for the given shipment.
func (s *ShippingServiceImpl) CreateLabel(ctx context.Context, origin, destination model.Address, packages []model.Package, serviceCode string) (model.Label, error) {
	return s.provider.CreateLabel(ctx, origin, destination, packages, serviceCode)
}

// Track returns tracking status and scan history for a shipment.
func (s *ShippingServiceImpl) Track(ctx context.Context, trackingNumber string) (model.TrackingInfo, error) {
	return s.provider.Track(ctx, trackingNumber)
}

// ValidateAddress checks deliverability of an address with the carrier.
func (s *ShippingServiceImpl) ValidateAddress(ctx context.Context, address model.Address) (bool, error) {
	return s.provider.ValidateAddress(ctx, address)
}

// CancelShipment voids a shipment that has not yet been picked up.
func (s *ShippingServiceImpl) CancelShipment(ctx context.Context, trackingNumber string) (bool, error) {
	return s.provider.CancelShipment(ctx, trackingNumber)
}

// PreviewPacking runs the box packer against the active catalog without
// rating, so callers can inspect box assignment and estimated cost.
func (s *ShippingServiceImpl) PreviewPacking(ctx context.Context, items []model.PackItem, preferFewerBoxes bool) model.PackingResult {
	catalog := packing.DefaultCatalog()
	if s.catalogs != nil {
		catalog = s.catalogs.ActiveCatalog(ctx)
	}

	opts := append([]packing.Option{}, s.packOpts...)
	if preferFewerBoxes {
		opts = append(opts, packing.WithPreferFewerBoxes())
	}

	start := time.Now()
	result := packing.NewBoxPacker(catalog, opts...).Pack(items)
	metrics.RecordPacking(time.Since(start), len(result.Boxes))

	return result
}
