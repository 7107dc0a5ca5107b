package packing

import (
	"fmt"
	"sort"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// Cost model constants for the relative per-box cost estimate.
// DIM weight uses the common 139 divisor.
const (
	costPerPoundUSD    = 0.50
	costPerDimPoundUSD = 0.30
	costBasePerBoxUSD  = 5.0
	dimWeightDivisor   = 139.0
)

// Poster-shape thresholds: a rollable item is routed to a tube when it is
// long and thin.
const (
	posterMinLengthIn = 18.0
	posterMaxGirthIn  = 6.0
)

// Packer defines the interface for packing operations.
type Packer interface {
	Pack(items []model.PackItem) model.PackingResult
}

// Option configures a BoxPacker.
type Option func(*BoxPacker)

// BoxPacker implements Packer with a first-fit-decreasing heuristic over
// the box catalog. The 3-D fit check is rotation-agnostic and compares
// sorted dimensions only; it never tracks item positions.
type BoxPacker struct {
	catalog          *Catalog
	allowCustomBoxes bool
	customMarginIn   float64
	customTareLbs    float64
	preferFewerBoxes bool
}

// NewBoxPacker creates a BoxPacker over the given catalog.
func NewBoxPacker(catalog *Catalog, opts ...Option) *BoxPacker {
	p := &BoxPacker{
		catalog:        catalog,
		customMarginIn: 2,
		customTareLbs:  1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// WithCustomBoxes enables the one-off custom box fallback with the given
// clearance margin (inches per dimension) and tare weight.
func WithCustomBoxes(marginIn, tareLbs float64) Option {
	return func(p *BoxPacker) {
		p.allowCustomBoxes = true
		if marginIn > 0 {
			p.customMarginIn = marginIn
		}
		if tareLbs > 0 {
			p.customTareLbs = tareLbs
		}
	}
}

// WithPreferFewerBoxes enables the consolidation pass after packing.
func WithPreferFewerBoxes() Option {
	return func(p *BoxPacker) {
		p.preferFewerBoxes = true
	}
}

// Pack assigns items to boxes. Items that fit no catalog box and no
// custom fallback are returned unpacked; that signals manual or freight
// handling, not an error.
func (p *BoxPacker) Pack(items []model.PackItem) model.PackingResult {
	var result model.PackingResult

	units := expand(items)
	// FFD: largest first improves average bin utilization.
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].Volume() > units[j].Volume()
	})

	var boxes []*model.PackedBox
	for _, item := range units {
		if item.Rollable && posterShaped(item) {
			if placed := p.placeInTube(&boxes, item); placed {
				continue
			}
		}

		if placed := placeInOpenBox(boxes, item); placed {
			continue
		}

		if box, ok := p.catalog.SmallestFor(item); ok {
			boxes = append(boxes, openBox(box, item))
			continue
		}

		if item.ProductType != "" {
			if box, ok := p.catalog.RecommendedFor(item.ProductType); ok && fitsAlone(item, box) {
				boxes = append(boxes, openBox(box, item))
				continue
			}
		}

		if p.allowCustomBoxes {
			boxes = append(boxes, openBox(p.customBoxFor(item), item))
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("item %q required a custom box (%.0fx%.0fx%.0f)",
					item.Name, item.LengthIn+p.customMarginIn, item.WidthIn+p.customMarginIn, item.HeightIn+p.customMarginIn))
			continue
		}

		result.Unpacked = append(result.Unpacked, item)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("item %q (%.0fx%.0fx%.0f, %.1f lb) fits no available box",
				item.Name, item.LengthIn, item.WidthIn, item.HeightIn, item.WeightLbs))
	}

	if p.preferFewerBoxes && len(boxes) > 1 {
		boxes = consolidate(boxes)
	}

	for _, b := range boxes {
		result.Boxes = append(result.Boxes, *b)
		result.TotalWeightLbs += b.ShippedWeightLbs()
		result.EstimatedCost += boxCost(*b)
	}
	for _, item := range result.Unpacked {
		if item.Fragile {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("unpacked item %q is fragile", item.Name))
		}
	}
	return result
}

// expand turns quantity-N items into N unit items.
func expand(items []model.PackItem) []model.PackItem {
	var units []model.PackItem
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		unit := item
		unit.Quantity = 1
		for n := 0; n < qty; n++ {
			units = append(units, unit)
		}
	}
	return units
}

func posterShaped(item model.PackItem) bool {
	d := item.SortedDims()
	return d[2] >= posterMinLengthIn && d[0] <= posterMaxGirthIn && d[1] <= posterMaxGirthIn
}

// placeInTube tries open tubes first, then opens a new tube sized for the
// item. Only poster-suitable tubes are considered.
func (p *BoxPacker) placeInTube(boxes *[]*model.PackedBox, item model.PackItem) bool {
	for _, b := range *boxes {
		if b.Box.Category == CategoryTube && b.Fits(item) {
			b.Add(item)
			return true
		}
	}
	for _, tube := range p.catalog.Tubes() {
		if tube.HasTag(TagPosterSuitable) && fitsAlone(item, tube) {
			*boxes = append(*boxes, openBox(tube, item))
			return true
		}
	}
	return false
}

func placeInOpenBox(boxes []*model.PackedBox, item model.PackItem) bool {
	for _, b := range boxes {
		if b.Fits(item) {
			b.Add(item)
			return true
		}
	}
	return false
}

func openBox(def model.BoxDefinition, item model.PackItem) *model.PackedBox {
	b := &model.PackedBox{Box: def}
	b.Add(item)
	return b
}

func (p *BoxPacker) customBoxFor(item model.PackItem) model.BoxDefinition {
	return model.BoxDefinition{
		ID:            "CUSTOM",
		Category:      CategoryBox,
		LengthIn:      item.LengthIn + p.customMarginIn,
		WidthIn:       item.WidthIn + p.customMarginIn,
		HeightIn:      item.HeightIn + p.customMarginIn,
		MaxWeightLbs:  item.WeightLbs,
		TareWeightLbs: p.customTareLbs,
		UsableFactor:  1,
	}
}

// boxCost is the relative cost estimate used for comparing packings:
// max(actual weight, DIM weight) pricing plus a flat base charge.
func boxCost(b model.PackedBox) float64 {
	dimWeight := b.Box.Volume() / dimWeightDivisor
	byWeight := b.ShippedWeightLbs() * costPerPoundUSD
	byDim := dimWeight * costPerDimPoundUSD
	cost := byWeight
	if byDim > cost {
		cost = byDim
	}
	return cost + costBasePerBoxUSD
}

// consolidate tries to eliminate boxes by redistributing the contents of
// the emptiest box into the fuller ones. A box is dropped only when every
// item in it can be moved without violating capacity or fit.
func consolidate(boxes []*model.PackedBox) []*model.PackedBox {
	for {
		if len(boxes) <= 1 {
			return boxes
		}
		sort.SliceStable(boxes, func(i, j int) bool {
			return boxes[i].RemainingVolumeIn3() > boxes[j].RemainingVolumeIn3()
		})

		dropped := false
		for candidate := 0; candidate < len(boxes); candidate++ {
			rest := make([]*model.PackedBox, 0, len(boxes)-1)
			for i, b := range boxes {
				if i != candidate {
					rest = append(rest, clone(b))
				}
			}
			if moveAll(boxes[candidate].Items, rest) {
				boxes = rest
				dropped = true
				break
			}
		}
		if !dropped {
			return boxes
		}
	}
}

func moveAll(items []model.PackItem, targets []*model.PackedBox) bool {
	for _, item := range items {
		moved := false
		for _, t := range targets {
			if t.Fits(item) {
				t.Add(item)
				moved = true
				break
			}
		}
		if !moved {
			return false
		}
	}
	return true
}

func clone(b *model.PackedBox) *model.PackedBox {
	c := *b
	c.Items = make([]model.PackItem, len(b.Items))
	copy(c.Items, b.Items)
	return &c
}
