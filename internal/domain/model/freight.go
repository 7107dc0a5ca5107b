package model

// FreightClass is one of the 18 standard NMFC density classes.
type FreightClass struct {
	// Code is the class code, "50" through "500"
	Code string `json:"code"`
	// MinDensity and MaxDensity bound the class as [min, max) in lb/ft3
	MinDensity float64 `json:"min_density"`
	MaxDensity float64 `json:"max_density"`
}

// Contains reports whether the density falls in this class's bucket.
func (f FreightClass) Contains(density float64) bool {
	return density >= f.MinDensity && density < f.MaxDensity
}
