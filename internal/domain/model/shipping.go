// Package model defines the core domain entities for the rate service.
package model

// Address represents a shipping origin or destination.
//
// @Description Postal address used as shipment origin or destination
type Address struct {
	// Street lines, at least one required
	Street []string `json:"street" example:"123 Main St"`
	City   string   `json:"city" example:"Memphis"`
	State  string   `json:"state" example:"TN"`
	// PostalCode is the ZIP or postal code
	PostalCode string `json:"postal_code" example:"38125"`
	// Country is the ISO 3166-1 alpha-2 country code
	Country string `json:"country" example:"US"`
	// Residential marks the address as a home delivery
	Residential bool `json:"residential,omitempty"`
}

// Package represents a single physical parcel in a shipment.
//
// @Description Parcel weight and optional dimensions
type Package struct {
	// WeightLbs is the parcel weight in pounds
	WeightLbs float64 `json:"weight_lbs" example:"12.5"`
	// LengthIn, WidthIn, HeightIn are optional outer dimensions in inches
	LengthIn float64 `json:"length_in,omitempty" example:"18"`
	WidthIn  float64 `json:"width_in,omitempty" example:"14"`
	HeightIn float64 `json:"height_in,omitempty" example:"10"`
	// DeclaredValue is the optional insured value in USD
	DeclaredValue float64 `json:"declared_value,omitempty"`
}

// HasDimensions reports whether all three dimensions are set.
func (p Package) HasDimensions() bool {
	return p.LengthIn > 0 && p.WidthIn > 0 && p.HeightIn > 0
}

// VolumeCubicIn returns the package volume in cubic inches, or 0 if
// dimensions are missing.
func (p Package) VolumeCubicIn() float64 {
	if !p.HasDimensions() {
		return 0
	}
	return p.LengthIn * p.WidthIn * p.HeightIn
}

// Rate is the externally visible unit of rate output.
//
// @Description A single quoted shipping rate
type Rate struct {
	Carrier     string  `json:"carrier" example:"fedex"`
	ServiceCode string  `json:"service_code" example:"FEDEX_GROUND"`
	ServiceName string  `json:"service_name" example:"FedEx Ground"`
	Amount      float64 `json:"amount" example:"14.82"`
	Currency    string  `json:"currency" example:"USD"`
	// TransitDays is the estimated delivery time in business days
	TransitDays int `json:"transit_days" example:"3"`
	// Guaranteed is set when the carrier guarantees the delivery date
	Guaranteed bool `json:"guaranteed,omitempty"`
	// Estimated marks rates produced by the offline estimator, not the carrier
	Estimated bool `json:"estimated,omitempty"`
}

// Label is the result of a label purchase.
type Label struct {
	TrackingNumber string `json:"tracking_number"`
	LabelURL       string `json:"label_url"`
	ServiceCode    string `json:"service_code"`
	Carrier        string `json:"carrier"`
}

// TrackingEvent is a single scan in a shipment's history.
type TrackingEvent struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
}

// TrackingInfo is the current state of a shipment.
type TrackingInfo struct {
	TrackingNumber string          `json:"tracking_number"`
	Status         string          `json:"status"`
	Events         []TrackingEvent `json:"events"`
}
