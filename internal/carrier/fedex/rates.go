package fedex

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shipquote/rate-service/internal/carrier"
	"github.com/shipquote/rate-service/internal/domain/model"
	"github.com/shipquote/rate-service/internal/freight"
	"github.com/shipquote/rate-service/internal/metrics"
)

// GetRates quotes rates across all applicable service categories.
// Category requests run concurrently; one category's failure never aborts
// its siblings. An error is returned only when every category failed.
func (c *Client) GetRates(ctx context.Context, origin, destination model.Address, packages []model.Package, opts carrier.RateOptions) ([]model.Rate, error) {
	if c.offline() {
		metrics.RecordRateRequest("estimated")
		return c.estimator.GetRates(ctx, origin, destination, packages, c.mergeOptions(opts))
	}
	metrics.RecordRateRequest("carrier")

	freightRequired := freight.RequiresFreight(packages)

	// Intelligent packing only applies to parcel-sized shipments with
	// dimensioned packages.
	if c.cfg.UseIntelligentPacking && !freightRequired && c.packer != nil {
		if items := itemsFromPackages(packages); len(items) > 0 {
			result := c.packer.Pack(items)
			if len(result.Boxes) > 0 && len(result.Unpacked) == 0 {
				packages = result.Packages()
			}
		}
	}

	categories := applicableCategories(origin, destination, freightRequired, c.cfg.SmartPostHubs)

	// Overall deadline across the fan-out: worst-case attempts per
	// category plus slack, so one stuck category cannot hang the call.
	budget := c.cfg.RequestTimeout*time.Duration(c.cfg.Retry.MaxRetries+1) + 5*time.Second
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	var (
		mu       sync.Mutex
		merged   []model.Rate
		failures []error
		wg       sync.WaitGroup
	)

	for _, category := range categories {
		wg.Add(1)
		go func(category Category) {
			defer wg.Done()
			rates, err := c.ratesForCategory(ctx, category, origin, destination, packages, opts)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				metrics.RecordCategoryRequest(string(category), "error")
				c.logger.Warn().
					Str("category", string(category)).
					Err(err).
					Msg("Rate category failed; continuing with remaining categories")
				failures = append(failures, fmt.Errorf("%s: %w", category, err))
				return
			}
			metrics.RecordCategoryRequest(string(category), "success")
			merged = append(merged, rates...)
		}(category)
	}
	wg.Wait()

	if len(merged) == 0 && len(failures) > 0 {
		return nil, fmt.Errorf("%w: %w", carrier.ErrAllCategoriesFailed, errors.Join(failures...))
	}

	merged = c.filterAllowed(merged, opts)
	merged = carrier.DedupeCheapest(merged)
	for i := range merged {
		merged[i].Amount = carrier.RoundCents(merged[i].Amount * (1 + c.cfg.MarkupPercent/100))
	}
	carrier.SortRates(merged, opts.PreferEconomy)
	return merged, nil
}

// ratesForCategory issues one resilient rate request and maps the reply.
func (c *Client) ratesForCategory(ctx context.Context, category Category, origin, destination model.Address, packages []model.Package, opts carrier.RateOptions) ([]model.Rate, error) {
	reqBody := c.buildRateRequest(category, origin, destination, packages, opts)

	var resp rateResponse
	err := c.executeWithRetry(ctx, "rates_"+string(category), func(ctx context.Context) error {
		resp = rateResponse{}
		return c.post(ctx, pathRateQuotes, reqBody, &resp)
	})
	if err != nil {
		return nil, err
	}
	return c.parseRates(resp), nil
}

// buildRateRequest assembles the wire request for one category. Freight
// categories carry freightShipmentDetail; smartpost carries the hub.
func (c *Client) buildRateRequest(category Category, origin, destination model.Address, packages []model.Package, opts carrier.RateOptions) rateRequest {
	shipment := requestedShipment{
		Shipper:                   wireParty{Address: toWireAddress(origin)},
		Recipient:                 wireParty{Address: toWireAddress(destination)},
		ShipDateStamp:             shipDate(opts.ShipDate),
		PickupType:                "DROPOFF_AT_FEDEX_LOCATION",
		RateRequestType:           c.cfg.RateTypes,
		RequestedPackageLineItems: toLineItems(packages),
	}

	switch category {
	case CategoryFreight:
		class := freight.ShipmentClass(packages)
		declared := declaredValue(packages)
		shipment.FreightShipmentDetail = &freightDetail{
			Role:               "SHIPPER",
			FreightClass:       "CLASS_" + class.Code,
			TotalHandlingUnits: freight.CalculatePallets(packages),
		}
		if declared > 0 {
			shipment.FreightShipmentDetail.DeclaredValue = &wireMoney{Currency: "USD", Amount: declared}
		}
	case CategorySmartPost:
		shipment.SmartPostInfoDetail = &smartPostDetail{
			Indicia: "PARCEL_SELECT",
			HubID:   c.cfg.SmartPostHubs[destination.State],
		}
	}

	return rateRequest{
		AccountNumber:                accountNumber{Value: c.cfg.AccountNumber},
		RateRequestControlParameters: &rateControlParameters{ReturnTransitTimes: true},
		RequestedShipment:            shipment,
	}
}

// parseRates maps a carrier reply to rate entries. Every rated detail
// (LIST, ACCOUNT, ...) becomes its own entry; deduplication keeps the
// cheapest per service code afterwards. Unknown service codes are dropped
// with a warning, never fatally.
func (c *Client) parseRates(resp rateResponse) []model.Rate {
	var rates []model.Rate
	for _, detail := range resp.Output.RateReplyDetails {
		svc, known := ServiceByCode(detail.ServiceType)
		if !known {
			c.logger.Warn().
				Str("service_code", detail.ServiceType).
				Msg("Dropping rate for unknown service code")
			continue
		}

		transit := svc.TransitDays
		if detail.OperationalDetail != nil {
			if days, err := strconv.Atoi(detail.OperationalDetail.TransitTime); err == nil && days > 0 {
				transit = days
			}
		}

		name := detail.ServiceName
		if name == "" {
			name = svc.Name
		}

		for _, rated := range detail.RatedShipmentDetails {
			if rated.TotalNetCharge <= 0 {
				continue
			}
			currency := rated.Currency
			if currency == "" {
				currency = "USD"
			}
			rates = append(rates, model.Rate{
				Carrier:     "fedex",
				ServiceCode: svc.Code,
				ServiceName: name,
				Amount:      rated.TotalNetCharge,
				Currency:    currency,
				TransitDays: transit,
				Guaranteed:  svc.Guaranteed,
			})
		}
	}
	return rates
}

// filterAllowed applies the configured allow-list and the per-request
// service code filter.
func (c *Client) filterAllowed(rates []model.Rate, opts carrier.RateOptions) []model.Rate {
	allowed := map[string]bool{}
	for _, code := range c.cfg.EnabledServices {
		allowed[code] = true
	}
	requested := map[string]bool{}
	for _, code := range opts.ServiceCodes {
		requested[code] = true
	}
	if len(allowed) == 0 && len(requested) == 0 {
		return rates
	}
	out := rates[:0]
	for _, r := range rates {
		if len(allowed) > 0 && !allowed[r.ServiceCode] {
			continue
		}
		if len(requested) > 0 && !requested[r.ServiceCode] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// mergeOptions folds the configured allow-list into per-request options
// for the offline estimator.
func (c *Client) mergeOptions(opts carrier.RateOptions) carrier.RateOptions {
	if len(opts.ServiceCodes) == 0 && len(c.cfg.EnabledServices) > 0 {
		opts.ServiceCodes = c.cfg.EnabledServices
	}
	return opts
}

// itemsFromPackages converts dimensioned caller packages into pack items
// so the packer can rearrange them. Packages without dimensions disable
// intelligent packing for the request.
func itemsFromPackages(packages []model.Package) []model.PackItem {
	items := make([]model.PackItem, 0, len(packages))
	for i, pkg := range packages {
		if !pkg.HasDimensions() {
			return nil
		}
		items = append(items, model.PackItem{
			Name:      fmt.Sprintf("package-%d", i+1),
			LengthIn:  pkg.LengthIn,
			WidthIn:   pkg.WidthIn,
			HeightIn:  pkg.HeightIn,
			WeightLbs: pkg.WeightLbs,
			Quantity:  1,
		})
	}
	return items
}

func toWireAddress(a model.Address) wireAddress {
	return wireAddress{
		StreetLines:         a.Street,
		City:                a.City,
		StateOrProvinceCode: a.State,
		PostalCode:          a.PostalCode,
		CountryCode:         a.Country,
		Residential:         a.Residential,
	}
}

func toLineItems(packages []model.Package) []packageLineItem {
	items := make([]packageLineItem, 0, len(packages))
	for _, pkg := range packages {
		item := packageLineItem{
			Weight: wireWeight{Units: "LB", Value: pkg.WeightLbs},
		}
		if pkg.HasDimensions() {
			item.Dimensions = &wireDimensions{
				Length: int(pkg.LengthIn + 0.5),
				Width:  int(pkg.WidthIn + 0.5),
				Height: int(pkg.HeightIn + 0.5),
				Units:  "IN",
			}
		}
		if pkg.DeclaredValue > 0 {
			item.DeclaredValue = &wireMoney{Currency: "USD", Amount: pkg.DeclaredValue}
		}
		items = append(items, item)
	}
	return items
}

func declaredValue(packages []model.Package) float64 {
	var total float64
	for _, pkg := range packages {
		total += pkg.DeclaredValue
	}
	return total
}

func shipDate(date string) string {
	if date != "" {
		return date
	}
	return time.Now().Format("2006-01-02")
}
