package dto

import "github.com/shipquote/rate-service/internal/domain/model"

// RateQuoteResponse is the payload for POST /api/rates.
type RateQuoteResponse struct {
	Rates []model.Rate `json:"rates"`
	// Estimated is true when no carrier credentials were configured and
	// rates come from the offline estimator.
	Estimated bool `json:"estimated"`
}

// ValidateAddressResponse is the payload for POST /api/addresses/validate.
type ValidateAddressResponse struct {
	Valid bool `json:"valid"`
}

// CancelShipmentResponse is the payload for DELETE /api/shipments/:trackingNumber.
type CancelShipmentResponse struct {
	TrackingNumber string `json:"tracking_number"`
	Cancelled      bool   `json:"cancelled"`
}
