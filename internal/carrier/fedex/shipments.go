package fedex

import (
	"context"
	"strings"

	"github.com/shipquote/rate-service/internal/carrier"
	"github.com/shipquote/rate-service/internal/domain/model"
)

// CreateLabel purchases a label for the given service. Single-request
// operation; classified errors propagate after the standard retry policy.
func (c *Client) CreateLabel(ctx context.Context, origin, destination model.Address, packages []model.Package, serviceCode string) (model.Label, error) {
	if c.offline() {
		return model.Label{}, carrier.ErrUnsupported
	}
	if _, known := ServiceByCode(serviceCode); !known {
		return model.Label{}, &carrier.Error{
			Kind:    carrier.KindValidation,
			Message: "unknown service code: " + serviceCode,
		}
	}

	reqBody := shipRequest{
		AccountNumber:        accountNumber{Value: c.cfg.AccountNumber},
		LabelResponseOptions: "URL_ONLY",
		RequestedShipment: requestedShipment{
			Shipper:                   wireParty{Address: toWireAddress(origin)},
			Recipient:                 wireParty{Address: toWireAddress(destination)},
			ShipDateStamp:             shipDate(""),
			PickupType:                "DROPOFF_AT_FEDEX_LOCATION",
			ServiceType:               serviceCode,
			PackagingType:             "YOUR_PACKAGING",
			RateRequestType:           c.cfg.RateTypes,
			RequestedPackageLineItems: toLineItems(packages),
		},
	}

	var resp shipResponse
	err := c.executeWithRetry(ctx, "create_label", func(ctx context.Context) error {
		resp = shipResponse{}
		return c.post(ctx, pathShipments, reqBody, &resp)
	})
	if err != nil {
		return model.Label{}, err
	}

	if len(resp.Output.TransactionShipments) == 0 {
		return model.Label{}, &carrier.Error{Kind: carrier.KindUnknown, Message: "empty shipment response"}
	}
	shipment := resp.Output.TransactionShipments[0]

	label := model.Label{
		TrackingNumber: shipment.MasterTrackingNumber,
		ServiceCode:    shipment.ServiceType,
		Carrier:        "fedex",
	}
	for _, piece := range shipment.PieceResponses {
		if label.TrackingNumber == "" {
			label.TrackingNumber = piece.TrackingNumber
		}
		for _, doc := range piece.PackageDocuments {
			if doc.URL != "" {
				label.LabelURL = doc.URL
				break
			}
		}
		if label.LabelURL != "" {
			break
		}
	}
	return label, nil
}

// Track returns the scan history and current status for a tracking number.
func (c *Client) Track(ctx context.Context, trackingNumber string) (model.TrackingInfo, error) {
	if c.offline() {
		return model.TrackingInfo{}, carrier.ErrUnsupported
	}

	reqBody := trackRequest{
		IncludeDetailedScans: true,
		TrackingInfo: []trackingQuery{
			{TrackingNumberInfo: trackingNumberInfo{TrackingNumber: trackingNumber}},
		},
	}

	var resp trackResponse
	err := c.executeWithRetry(ctx, "track", func(ctx context.Context) error {
		resp = trackResponse{}
		return c.post(ctx, pathTrack, reqBody, &resp)
	})
	if err != nil {
		return model.TrackingInfo{}, err
	}

	info := model.TrackingInfo{TrackingNumber: trackingNumber}
	for _, result := range resp.Output.CompleteTrackResults {
		for _, tr := range result.TrackResults {
			if tr.LatestStatusDetail != nil && info.Status == "" {
				info.Status = tr.LatestStatusDetail.Description
			}
			for _, ev := range tr.ScanEvents {
				event := model.TrackingEvent{
					Timestamp:   ev.Date,
					Description: ev.EventDescription,
				}
				if ev.ScanLocation != nil {
					event.Location = strings.TrimSpace(ev.ScanLocation.City + " " + ev.ScanLocation.StateOrProvinceCode)
				}
				info.Events = append(info.Events, event)
			}
		}
	}
	if info.Status == "" {
		info.Status = "UNKNOWN"
	}
	return info, nil
}

// ValidateAddress checks deliverability. The address is valid when the
// carrier resolves it without a failure attribute.
func (c *Client) ValidateAddress(ctx context.Context, address model.Address) (bool, error) {
	if c.offline() {
		return false, carrier.ErrUnsupported
	}

	reqBody := addressValidationRequest{
		AddressesToValidate: []addressToValidate{{Address: toWireAddress(address)}},
	}

	var resp addressValidationResponse
	err := c.executeWithRetry(ctx, "validate_address", func(ctx context.Context) error {
		resp = addressValidationResponse{}
		return c.post(ctx, pathAddressResolve, reqBody, &resp)
	})
	if err != nil {
		return false, err
	}

	if len(resp.Output.ResolvedAddresses) == 0 {
		return false, nil
	}
	resolved := resp.Output.ResolvedAddresses[0]
	if resolved.Attributes["DPV"] == "false" || resolved.Attributes["Resolved"] == "false" {
		return false, nil
	}
	return true, nil
}

// CancelShipment voids a previously created shipment.
func (c *Client) CancelShipment(ctx context.Context, trackingNumber string) (bool, error) {
	if c.offline() {
		return false, carrier.ErrUnsupported
	}

	reqBody := cancelRequest{
		AccountNumber:  accountNumber{Value: c.cfg.AccountNumber},
		TrackingNumber: trackingNumber,
	}

	var resp cancelResponse
	err := c.executeWithRetry(ctx, "cancel_shipment", func(ctx context.Context) error {
		resp = cancelResponse{}
		return c.post(ctx, pathCancelShipment, reqBody, &resp)
	})
	if err != nil {
		return false, err
	}
	return resp.Output.CancelledShipment, nil
}
