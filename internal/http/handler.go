// Package http provides the HTTP transport layer for the rate service.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shipquote/rate-service/internal/carrier"
	"github.com/shipquote/rate-service/internal/circuitbreaker"
	"github.com/shipquote/rate-service/internal/domain/dto"
	"github.com/shipquote/rate-service/internal/middleware"
	"github.com/shipquote/rate-service/internal/service"
)

// Handler provides HTTP handlers for shipping routes.
type Handler struct {
	shipping service.ShippingService
	logging  service.LoggingService
}

// NewHandler creates a new Handler instance.
func NewHandler(shipping service.ShippingService, logging service.LoggingService) *Handler {
	return &Handler{
		shipping: shipping,
		logging:  logging,
	}
}

// GetRates handles POST /api/rates requests.
//
// @Summary      Quote shipping rates
// @Description  Returns available shipping rates for the given origin, destination, and packages. Rates from multiple service categories are fetched concurrently; a category failure degrades the result instead of failing the request.
// @Tags         Rates
// @Accept       json
// @Produce      json
// @Param        request body dto.RateQuoteRequest true "Shipment information"
// @Success      200 {object} dto.SuccessResponse "Available rates"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests"
// @Failure      502 {object} dto.ErrorResponse "Carrier error"
// @Router       /api/rates [post]
func (h *Handler) GetRates(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.RateQuoteRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	rates, err := h.shipping.GetRates(c.Request.Context(), req.Origin, req.Destination, req.Packages, carrier.RateOptions{
		PreferEconomy: req.PreferEconomy,
		ServiceCodes:  req.ServiceCodes,
		ShipDate:      req.ShipDate,
	})
	if err != nil {
		h.carrierError(builder, err)
		return
	}

	estimated := len(rates) > 0 && rates[0].Estimated
	builder.SuccessOK(dto.RateQuoteResponse{Rates: rates, Estimated: estimated})
}

// CreateLabel handles POST /api/labels requests.
//
// @Summary      Purchase a shipping label
// @Tags         Labels
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateLabelRequest true "Shipment information"
// @Success      201 {object} dto.SuccessResponse "Label created"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      502 {object} dto.ErrorResponse "Carrier error"
// @Security     BearerAuth
// @Router       /api/labels [post]
func (h *Handler) CreateLabel(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreateLabelRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	label, err := h.shipping.CreateLabel(c.Request.Context(), req.Origin, req.Destination, req.Packages, req.ServiceCode)
	if err != nil {
		middleware.AuditLogError(h.logging, c, "create_label", "Label purchase failed", err, map[string]interface{}{
			"service_code": req.ServiceCode,
		})
		h.carrierError(builder, err)
		return
	}

	middleware.AuditLog(h.logging, c, "create_label", "Label purchased", map[string]interface{}{
		"service_code":    req.ServiceCode,
		"tracking_number": label.TrackingNumber,
	})

	builder.SuccessCreated(label)
}

// Track handles GET /api/track/:trackingNumber requests.
//
// @Summary      Track a shipment
// @Tags         Tracking
// @Produce      json
// @Param        trackingNumber path string true "Tracking number"
// @Success      200 {object} dto.SuccessResponse "Tracking status and scan history"
// @Failure      404 {object} dto.ErrorResponse "Unknown tracking number"
// @Router       /api/track/{trackingNumber} [get]
func (h *Handler) Track(c *gin.Context) {
	builder := NewResponseBuilder(c)

	trackingNumber := c.Param("trackingNumber")
	if trackingNumber == "" {
		builder.Error(http.StatusBadRequest, "tracking number is required", nil)
		return
	}

	info, err := h.shipping.Track(c.Request.Context(), trackingNumber)
	if err != nil {
		h.carrierError(builder, err)
		return
	}

	builder.SuccessOK(info)
}

// ValidateAddress handles POST /api/addresses/validate requests.
//
// @Summary      Validate a delivery address
// @Tags         Addresses
// @Accept       json
// @Produce      json
// @Param        request body dto.ValidateAddressRequest true "Address to validate"
// @Success      200 {object} dto.SuccessResponse "Validation verdict"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/addresses/validate [post]
func (h *Handler) ValidateAddress(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.ValidateAddressRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	valid, err := h.shipping.ValidateAddress(c.Request.Context(), req.Address)
	if err != nil {
		h.carrierError(builder, err)
		return
	}

	builder.SuccessOK(dto.ValidateAddressResponse{Valid: valid})
}

// CancelShipment handles DELETE /api/shipments/:trackingNumber requests.
//
// @Summary      Cancel a shipment
// @Description  Voids a shipment that has not yet been picked up.
// @Tags         Labels
// @Produce      json
// @Param        trackingNumber path string true "Tracking number"
// @Success      200 {object} dto.SuccessResponse "Cancellation verdict"
// @Failure      502 {object} dto.ErrorResponse "Carrier error"
// @Security     BearerAuth
// @Router       /api/shipments/{trackingNumber} [delete]
func (h *Handler) CancelShipment(c *gin.Context) {
	builder := NewResponseBuilder(c)

	trackingNumber := c.Param("trackingNumber")
	if trackingNumber == "" {
		builder.Error(http.StatusBadRequest, "tracking number is required", nil)
		return
	}

	cancelled, err := h.shipping.CancelShipment(c.Request.Context(), trackingNumber)
	if err != nil {
		middleware.AuditLogError(h.logging, c, "cancel_shipment", "Shipment cancellation failed", err, map[string]interface{}{
			"tracking_number": trackingNumber,
		})
		h.carrierError(builder, err)
		return
	}

	middleware.AuditLog(h.logging, c, "cancel_shipment", "Shipment cancelled", map[string]interface{}{
		"tracking_number": trackingNumber,
	})

	builder.SuccessOK(dto.CancelShipmentResponse{TrackingNumber: trackingNumber, Cancelled: cancelled})
}

// PreviewPacking handles POST /api/pack requests.
//
// @Summary      Preview box packing
// @Description  Runs the box packer against the active catalog without rating, returning box assignment, shipped weights, and estimated cost.
// @Tags         Packing
// @Accept       json
// @Produce      json
// @Param        request body dto.PackPreviewRequest true "Items to pack"
// @Success      200 {object} dto.SuccessResponse "Packing result"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/pack [post]
func (h *Handler) PreviewPacking(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.PackPreviewRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, err.Error(), err)
		return
	}

	result := h.shipping.PreviewPacking(c.Request.Context(), req.Items, req.PreferFewerBoxes)
	builder.SuccessOK(result)
}

// carrierError translates carrier failures into HTTP responses.
func (h *Handler) carrierError(builder *ResponseBuilder, err error) {
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		builder.Error(http.StatusServiceUnavailable, "Carrier temporarily unavailable", err)
		return
	}
	if errors.Is(err, carrier.ErrUnsupported) {
		builder.Error(http.StatusNotImplemented, "Operation not supported by carrier", err)
		return
	}
	if errors.Is(err, carrier.ErrAllCategoriesFailed) {
		builder.Error(http.StatusBadGateway, "All carrier rate requests failed", err)
		return
	}

	var carrierErr *carrier.Error
	if errors.As(err, &carrierErr) {
		switch carrierErr.Kind {
		case carrier.KindValidation:
			builder.ErrorWithDetails(http.StatusBadRequest, carrierErr.Message, err, carrierErr.Details)
		case carrier.KindRateLimitExceeded:
			builder.Error(http.StatusTooManyRequests, "Carrier rate limit exceeded", err)
		case carrier.KindServiceUnavailable, carrier.KindNetwork:
			builder.Error(http.StatusServiceUnavailable, "Carrier temporarily unavailable", err)
		default:
			builder.Error(http.StatusBadGateway, "Carrier request failed", err)
		}
		return
	}

	builder.Error(http.StatusBadGateway, "Carrier request failed", err)
}
