// Package fedex implements the FedEx-style carrier provider: OAuth2
// client-credentials auth, retry with backoff, concurrent per-category
// rate requests, and single-shipment operations.
package fedex

import "github.com/shipquote/rate-service/internal/domain/model"

// Category groups carrier services for request fan-out. One rate request
// is issued per applicable category.
type Category string

const (
	CategoryExpress       Category = "express"
	CategoryGround        Category = "ground"
	CategoryFreight       Category = "freight"
	CategorySmartPost     Category = "smartpost"
	CategoryInternational Category = "international"
)

// ServiceDefinition is an immutable catalog entry for one carrier service.
type ServiceDefinition struct {
	Code          string
	Name          string
	Category      Category
	International bool
	// MaxWeightLbs and MaxLengthIn are the carrier's per-package ceilings
	MaxWeightLbs float64
	MaxLengthIn  float64
	Guaranteed   bool
	// TransitDays is the nominal transit estimate when the carrier reply
	// does not include one
	TransitDays int
	// PriceFactor scales estimated pricing relative to ground
	PriceFactor float64
}

// serviceCatalog is the static service table, loaded once. Unknown codes
// in carrier replies are dropped with a warning.
var serviceCatalog = []ServiceDefinition{
	{Code: "PRIORITY_OVERNIGHT", Name: "FedEx Priority Overnight", Category: CategoryExpress, MaxWeightLbs: 150, MaxLengthIn: 108, Guaranteed: true, TransitDays: 1, PriceFactor: 3.8},
	{Code: "STANDARD_OVERNIGHT", Name: "FedEx Standard Overnight", Category: CategoryExpress, MaxWeightLbs: 150, MaxLengthIn: 108, Guaranteed: true, TransitDays: 1, PriceFactor: 3.4},
	{Code: "FEDEX_2_DAY", Name: "FedEx 2Day", Category: CategoryExpress, MaxWeightLbs: 150, MaxLengthIn: 108, Guaranteed: true, TransitDays: 2, PriceFactor: 2.2},
	{Code: "FEDEX_EXPRESS_SAVER", Name: "FedEx Express Saver", Category: CategoryExpress, MaxWeightLbs: 150, MaxLengthIn: 108, TransitDays: 3, PriceFactor: 1.6},
	{Code: "FEDEX_GROUND", Name: "FedEx Ground", Category: CategoryGround, MaxWeightLbs: 150, MaxLengthIn: 108, TransitDays: 4, PriceFactor: 1.0},
	{Code: "GROUND_HOME_DELIVERY", Name: "FedEx Home Delivery", Category: CategoryGround, MaxWeightLbs: 70, MaxLengthIn: 108, TransitDays: 5, PriceFactor: 1.05},
	{Code: "SMART_POST", Name: "FedEx Ground Economy", Category: CategorySmartPost, MaxWeightLbs: 70, MaxLengthIn: 60, TransitDays: 6, PriceFactor: 0.8},
	{Code: "FEDEX_FREIGHT_ECONOMY", Name: "FedEx Freight Economy", Category: CategoryFreight, MaxWeightLbs: 20000, MaxLengthIn: 480, TransitDays: 5, PriceFactor: 4.0},
	{Code: "FEDEX_FREIGHT_PRIORITY", Name: "FedEx Freight Priority", Category: CategoryFreight, MaxWeightLbs: 20000, MaxLengthIn: 480, TransitDays: 3, PriceFactor: 5.0},
	{Code: "INTERNATIONAL_ECONOMY", Name: "FedEx International Economy", Category: CategoryInternational, International: true, MaxWeightLbs: 150, MaxLengthIn: 108, TransitDays: 6, PriceFactor: 5.0},
	{Code: "INTERNATIONAL_PRIORITY", Name: "FedEx International Priority", Category: CategoryInternational, International: true, MaxWeightLbs: 150, MaxLengthIn: 108, Guaranteed: true, TransitDays: 3, PriceFactor: 7.5},
}

// serviceByCode indexes the catalog for reply mapping.
var serviceByCode = func() map[string]ServiceDefinition {
	m := make(map[string]ServiceDefinition, len(serviceCatalog))
	for _, s := range serviceCatalog {
		m[s.Code] = s
	}
	return m
}()

// ServiceByCode looks up a catalog entry by carrier service code.
func ServiceByCode(code string) (ServiceDefinition, bool) {
	s, ok := serviceByCode[code]
	return s, ok
}

// applicableCategories selects the categories to fan out over.
// International shipments get the international category only. Domestic
// shipments always get express and ground, plus freight when required and
// smartpost when the destination region is served by a hub. Freight-class
// shipments skip smartpost: they exceed its 70 lb / 60 in ceilings, so the
// request could never produce a usable quote.
func applicableCategories(origin, destination model.Address, freightRequired bool, smartPostHubs map[string]string) []Category {
	if destination.Country != "" && destination.Country != origin.Country {
		return []Category{CategoryInternational}
	}
	categories := []Category{CategoryExpress, CategoryGround}
	if freightRequired {
		categories = append(categories, CategoryFreight)
	}
	if _, served := smartPostHubs[destination.State]; served && !freightRequired {
		categories = append(categories, CategorySmartPost)
	}
	return categories
}
