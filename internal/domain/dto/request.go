// Package dto defines Data Transfer Objects for HTTP request and response
// handling. DTOs decouple the HTTP layer from the domain model and carry
// validation for API communication.
package dto

import (
	"fmt"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// RateQuoteRequest is the body for POST /api/rates. Semantic checks
// live in Validate so errors carry the JSON field names rather than the
// binding validator's Go-field form.
//
// @Description Request shipping rates for a set of packages
type RateQuoteRequest struct {
	Origin      model.Address   `json:"origin"`
	Destination model.Address   `json:"destination"`
	Packages    []model.Package `json:"packages"`
	// PreferEconomy sorts results by price instead of transit days
	PreferEconomy bool `json:"prefer_economy,omitempty"`
	// ServiceCodes narrows the result to these codes; empty means all
	ServiceCodes []string `json:"service_codes,omitempty"`
	// ShipDate is the planned ship date, YYYY-MM-DD
	ShipDate string `json:"ship_date,omitempty"`
}

// Validate performs custom validation on the request.
func (r *RateQuoteRequest) Validate() error {
	if err := validateAddress("origin", r.Origin); err != nil {
		return err
	}
	if err := validateAddress("destination", r.Destination); err != nil {
		return err
	}
	if len(r.Packages) == 0 {
		return &ValidationError{Field: "packages", Message: "at least one package is required"}
	}
	for i, pkg := range r.Packages {
		if pkg.WeightLbs <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("packages[%d].weight_lbs", i),
				Message: "must be a positive number",
			}
		}
		if pkg.LengthIn < 0 || pkg.WidthIn < 0 || pkg.HeightIn < 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("packages[%d]", i),
				Message: "dimensions must not be negative",
			}
		}
	}
	return nil
}

// CreateLabelRequest is the body for POST /api/labels.
type CreateLabelRequest struct {
	Origin      model.Address   `json:"origin"`
	Destination model.Address   `json:"destination"`
	Packages    []model.Package `json:"packages"`
	ServiceCode string          `json:"service_code"`
}

// Validate performs custom validation on the request.
func (r *CreateLabelRequest) Validate() error {
	if r.ServiceCode == "" {
		return &ValidationError{Field: "service_code", Message: "is required"}
	}
	if len(r.Packages) == 0 {
		return &ValidationError{Field: "packages", Message: "at least one package is required"}
	}
	for i, pkg := range r.Packages {
		if pkg.WeightLbs <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("packages[%d].weight_lbs", i),
				Message: "must be a positive number",
			}
		}
	}
	if err := validateAddress("origin", r.Origin); err != nil {
		return err
	}
	return validateAddress("destination", r.Destination)
}

// ValidateAddressRequest is the body for POST /api/addresses/validate.
type ValidateAddressRequest struct {
	Address model.Address `json:"address"`
}

// Validate performs custom validation on the request.
func (r *ValidateAddressRequest) Validate() error {
	return validateAddress("address", r.Address)
}

// PackPreviewRequest is the body for POST /api/pack: it runs the box
// packer without rating, so callers can preview box assignment.
type PackPreviewRequest struct {
	Items []model.PackItem `json:"items"`
	// PreferFewerBoxes enables the consolidation pass
	PreferFewerBoxes bool `json:"prefer_fewer_boxes,omitempty"`
}

// Validate performs custom validation on the request.
func (r *PackPreviewRequest) Validate() error {
	if len(r.Items) == 0 {
		return &ValidationError{Field: "items", Message: "at least one item is required"}
	}
	for i, item := range r.Items {
		if item.LengthIn <= 0 || item.WidthIn <= 0 || item.HeightIn <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d]", i),
				Message: "dimensions must be positive",
			}
		}
		if item.WeightLbs <= 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d].weight_lbs", i),
				Message: "must be a positive number",
			}
		}
		if item.Quantity < 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "must not be negative",
			}
		}
	}
	return nil
}

// UpdateBoxCatalogRequest replaces the active box catalog configuration.
type UpdateBoxCatalogRequest struct {
	Boxes     []model.BoxDefinition `json:"boxes"`
	CreatedBy string                `json:"created_by,omitempty"`
}

// Validate performs custom validation on the request.
func (r *UpdateBoxCatalogRequest) Validate() error {
	if len(r.Boxes) == 0 {
		return &ValidationError{Field: "boxes", Message: "at least one box is required"}
	}
	seen := map[string]bool{}
	for i, box := range r.Boxes {
		if box.ID == "" {
			return &ValidationError{Field: fmt.Sprintf("boxes[%d].id", i), Message: "is required"}
		}
		if seen[box.ID] {
			return &ValidationError{Field: fmt.Sprintf("boxes[%d].id", i), Message: "duplicate box id"}
		}
		seen[box.ID] = true
		if box.LengthIn <= 0 || box.WidthIn <= 0 || box.HeightIn <= 0 {
			return &ValidationError{Field: fmt.Sprintf("boxes[%d]", i), Message: "dimensions must be positive"}
		}
		if box.MaxWeightLbs <= 0 {
			return &ValidationError{Field: fmt.Sprintf("boxes[%d].max_weight_lbs", i), Message: "must be positive"}
		}
	}
	return nil
}

func validateAddress(field string, a model.Address) error {
	if len(a.Street) == 0 || a.Street[0] == "" {
		return &ValidationError{Field: field + ".street", Message: "at least one street line is required"}
	}
	if a.PostalCode == "" {
		return &ValidationError{Field: field + ".postal_code", Message: "is required"}
	}
	if a.Country == "" {
		return &ValidationError{Field: field + ".country", Message: "is required"}
	}
	return nil
}
