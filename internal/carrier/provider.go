// Package carrier defines the provider abstraction over shipping carriers
// plus the shared error taxonomy and the offline rate estimator.
package carrier

import (
	"context"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// RateOptions tunes a single rate request.
type RateOptions struct {
	// PreferEconomy sorts results by price instead of transit time
	PreferEconomy bool `json:"prefer_economy,omitempty"`
	// ServiceCodes narrows the result to these codes; empty means all
	ServiceCodes []string `json:"service_codes,omitempty"`
	// ShipDate is the planned ship date, YYYY-MM-DD; empty means today
	ShipDate string `json:"ship_date,omitempty"`
}

// RateProvider quotes shipping rates.
type RateProvider interface {
	GetRates(ctx context.Context, origin, destination model.Address, packages []model.Package, opts RateOptions) ([]model.Rate, error)
}

// ShippingProvider is the full per-carrier capability set. Carriers that
// cannot perform an operation return ErrUnsupported.
type ShippingProvider interface {
	RateProvider
	CreateLabel(ctx context.Context, origin, destination model.Address, packages []model.Package, serviceCode string) (model.Label, error)
	Track(ctx context.Context, trackingNumber string) (model.TrackingInfo, error)
	ValidateAddress(ctx context.Context, address model.Address) (bool, error)
	CancelShipment(ctx context.Context, trackingNumber string) (bool, error)
}
