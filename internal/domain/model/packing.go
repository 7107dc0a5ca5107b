package model

import "sort"

// PackItem is a physical item submitted for packing. Constructed per
// request and discarded with the result.
//
// @Description Item to be packed into carrier boxes
type PackItem struct {
	Name string `json:"name" example:"ceramic mug"`
	// ProductType is an optional hint consulted when no catalog box fits
	ProductType string  `json:"product_type,omitempty" example:"mug"`
	LengthIn    float64 `json:"length_in" example:"5"`
	WidthIn     float64 `json:"width_in" example:"5"`
	HeightIn    float64 `json:"height_in" example:"4"`
	WeightLbs   float64 `json:"weight_lbs" example:"1.2"`
	Quantity    int     `json:"quantity" example:"2"`
	// Fragile items are flagged in packing warnings
	Fragile bool `json:"fragile,omitempty"`
	// Rollable items (posters, banners) may be packed in tubes
	Rollable bool `json:"rollable,omitempty"`
}

// Volume returns the single-unit volume in cubic inches.
func (i PackItem) Volume() float64 {
	return i.LengthIn * i.WidthIn * i.HeightIn
}

// SortedDims returns the item's dimensions sorted ascending. Used for the
// rotation-agnostic fit check.
func (i PackItem) SortedDims() [3]float64 {
	d := [3]float64{i.LengthIn, i.WidthIn, i.HeightIn}
	sort.Float64s(d[:])
	return d
}

// BoxDefinition is an immutable catalog entry describing one container type.
type BoxDefinition struct {
	ID       string  `json:"id" bson:"id"`
	Category string  `json:"category" bson:"category"`
	LengthIn float64 `json:"length_in" bson:"length_in"`
	WidthIn  float64 `json:"width_in" bson:"width_in"`
	HeightIn float64 `json:"height_in" bson:"height_in"`
	// MaxWeightLbs is the carrier's weight ceiling for this box
	MaxWeightLbs float64 `json:"max_weight_lbs" bson:"max_weight_lbs"`
	// TareWeightLbs is the empty box weight, added to shipped totals
	TareWeightLbs float64 `json:"tare_weight_lbs" bson:"tare_weight_lbs"`
	// UsableFactor derates the geometric volume for packing material
	UsableFactor float64 `json:"usable_factor" bson:"usable_factor"`
	// Tags mark special eligibility, e.g. "poster-suitable"
	Tags []string `json:"tags,omitempty" bson:"tags,omitempty"`
}

// Volume returns the geometric volume in cubic inches.
func (b BoxDefinition) Volume() float64 {
	return b.LengthIn * b.WidthIn * b.HeightIn
}

// UsableVolume returns the volume available for items after derating.
func (b BoxDefinition) UsableVolume() float64 {
	f := b.UsableFactor
	if f <= 0 || f > 1 {
		f = 1
	}
	return b.Volume() * f
}

// SortedDims returns the box's outer dimensions sorted ascending.
func (b BoxDefinition) SortedDims() [3]float64 {
	d := [3]float64{b.LengthIn, b.WidthIn, b.HeightIn}
	sort.Float64s(d[:])
	return d
}

// HasTag reports whether the box carries the given eligibility tag.
func (b BoxDefinition) HasTag(tag string) bool {
	for _, t := range b.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// PackedBox is one chosen box plus the items assigned to it.
// Invariant: UsedWeightLbs <= Box.MaxWeightLbs and
// UsedVolumeIn3 <= Box.UsableVolume().
type PackedBox struct {
	Box           BoxDefinition `json:"box"`
	Items         []PackItem    `json:"items"`
	UsedWeightLbs float64       `json:"used_weight_lbs"`
	UsedVolumeIn3 float64       `json:"used_volume_in3"`
	// Custom marks a one-off box synthesized outside the catalog
	Custom bool `json:"custom,omitempty"`
}

// RemainingWeightLbs returns the weight capacity left for items.
func (p PackedBox) RemainingWeightLbs() float64 {
	return p.Box.MaxWeightLbs - p.UsedWeightLbs
}

// RemainingVolumeIn3 returns the usable volume left for items.
func (p PackedBox) RemainingVolumeIn3() float64 {
	return p.Box.UsableVolume() - p.UsedVolumeIn3
}

// Fits reports whether the item fits this box's remaining capacity.
// The dimensional check compares sorted dimensions axis by axis; it is
// rotation-agnostic and necessary but not sufficient for a true 3-D fit.
func (p PackedBox) Fits(item PackItem) bool {
	if item.WeightLbs > p.RemainingWeightLbs() {
		return false
	}
	if item.Volume() > p.RemainingVolumeIn3() {
		return false
	}
	id := item.SortedDims()
	bd := p.Box.SortedDims()
	for axis := range id {
		if id[axis] > bd[axis] {
			return false
		}
	}
	return true
}

// Add places an item into the box and updates the running totals.
func (p *PackedBox) Add(item PackItem) {
	p.Items = append(p.Items, item)
	p.UsedWeightLbs += item.WeightLbs
	p.UsedVolumeIn3 += item.Volume()
}

// ShippedWeightLbs returns item weight plus the box's own tare weight.
func (p PackedBox) ShippedWeightLbs() float64 {
	return p.UsedWeightLbs + p.Box.TareWeightLbs
}

// PackingResult is the immutable outcome of one packing call.
type PackingResult struct {
	Boxes    []PackedBox `json:"boxes"`
	Unpacked []PackItem  `json:"unpacked,omitempty"`
	// TotalWeightLbs is the sum of shipped weights across all boxes
	TotalWeightLbs float64 `json:"total_weight_lbs"`
	// EstimatedCost is a relative cost figure used for box selection only
	EstimatedCost float64  `json:"estimated_cost"`
	Warnings      []string `json:"warnings,omitempty"`
}

// Packages converts packed boxes into request packages for rating.
func (r PackingResult) Packages() []Package {
	pkgs := make([]Package, 0, len(r.Boxes))
	for _, b := range r.Boxes {
		pkgs = append(pkgs, Package{
			WeightLbs: b.ShippedWeightLbs(),
			LengthIn:  b.Box.LengthIn,
			WidthIn:   b.Box.WidthIn,
			HeightIn:  b.Box.HeightIn,
		})
	}
	return pkgs
}
