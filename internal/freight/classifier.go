// Package freight implements NMFC density classification and the
// freight-mode business rules.
package freight

import (
	"math"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// Freight-mode thresholds. These are hard business rules: weight strictly
// over 150 lb or any dimension strictly over 96 in requires LTL freight.
const (
	MaxParcelWeightLbs   = 150.0
	MaxParcelDimensionIn = 96.0
)

// Standard pallet: 48x40 footprint stacked 6 ft high, 2000 lb per pallet.
const (
	palletWeightLbs   = 2000.0
	palletVolumeIn3   = 48.0 * 40.0 * 72.0
	cubicInchesPerFt3 = 1728.0
)

// Classes is the ordered NMFC density table, lowest density (highest
// class) handled by the linear scan below. Bounds are [min, max) lb/ft3.
var Classes = []model.FreightClass{
	{Code: "500", MinDensity: 0, MaxDensity: 1},
	{Code: "400", MinDensity: 1, MaxDensity: 2},
	{Code: "300", MinDensity: 2, MaxDensity: 3},
	{Code: "250", MinDensity: 3, MaxDensity: 4},
	{Code: "200", MinDensity: 4, MaxDensity: 5},
	{Code: "175", MinDensity: 5, MaxDensity: 6},
	{Code: "150", MinDensity: 6, MaxDensity: 7},
	{Code: "125", MinDensity: 7, MaxDensity: 8},
	{Code: "110", MinDensity: 8, MaxDensity: 9},
	{Code: "100", MinDensity: 9, MaxDensity: 10.5},
	{Code: "92.5", MinDensity: 10.5, MaxDensity: 12},
	{Code: "85", MinDensity: 12, MaxDensity: 13.5},
	{Code: "77.5", MinDensity: 13.5, MaxDensity: 15},
	{Code: "70", MinDensity: 15, MaxDensity: 22.5},
	{Code: "65", MinDensity: 22.5, MaxDensity: 30},
	{Code: "60", MinDensity: 30, MaxDensity: 35},
	{Code: "55", MinDensity: 35, MaxDensity: 50},
	{Code: "50", MinDensity: 50, MaxDensity: math.MaxFloat64},
}

// DefaultClass is returned for zero or negative volume, or a density that
// falls in no bucket.
var DefaultClass = model.FreightClass{Code: "100", MinDensity: 9, MaxDensity: 10.5}

// ClassifyDensity maps weight and dimensions to an NMFC freight class.
// Density is pounds per cubic foot.
func ClassifyDensity(weightLbs, lengthIn, widthIn, heightIn float64) model.FreightClass {
	volumeFt3 := (lengthIn * widthIn * heightIn) / cubicInchesPerFt3
	if volumeFt3 <= 0 || weightLbs <= 0 {
		return DefaultClass
	}
	density := weightLbs / volumeFt3
	for _, class := range Classes {
		if class.Contains(density) {
			return class
		}
	}
	return DefaultClass
}

// RequiresFreight reports whether the shipment exceeds parcel limits.
// Boundary values (exactly 150 lb, exactly 96 in) remain parcel.
func RequiresFreight(packages []model.Package) bool {
	var totalWeight float64
	for _, pkg := range packages {
		totalWeight += pkg.WeightLbs
		if pkg.LengthIn > MaxParcelDimensionIn ||
			pkg.WidthIn > MaxParcelDimensionIn ||
			pkg.HeightIn > MaxParcelDimensionIn {
			return true
		}
	}
	return totalWeight > MaxParcelWeightLbs
}

// CalculatePallets returns the number of handling units for an LTL
// shipment: enough pallets to carry the weight and the volume, at least 1.
func CalculatePallets(packages []model.Package) int {
	var totalWeight, totalVolume float64
	for _, pkg := range packages {
		totalWeight += pkg.WeightLbs
		totalVolume += pkg.VolumeCubicIn()
	}
	byWeight := int(math.Ceil(totalWeight / palletWeightLbs))
	byVolume := int(math.Ceil(totalVolume / palletVolumeIn3))
	pallets := byWeight
	if byVolume > pallets {
		pallets = byVolume
	}
	if pallets < 1 {
		pallets = 1
	}
	return pallets
}

// ShipmentClass classifies a multi-package shipment by aggregate density.
func ShipmentClass(packages []model.Package) model.FreightClass {
	var totalWeight, totalVolume float64
	for _, pkg := range packages {
		totalWeight += pkg.WeightLbs
		totalVolume += pkg.VolumeCubicIn()
	}
	if totalVolume <= 0 || totalWeight <= 0 {
		return DefaultClass
	}
	density := totalWeight / (totalVolume / cubicInchesPerFt3)
	for _, class := range Classes {
		if class.Contains(density) {
			return class
		}
	}
	return DefaultClass
}
