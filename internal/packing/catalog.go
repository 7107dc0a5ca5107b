// Package packing implements the box catalog and the bin-packing engine
// that turns loose items into carrier-ready packages.
package packing

import (
	"sort"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// Box categories recognized by the packer.
const (
	CategoryBox  = "box"
	CategoryTube = "tube"
)

// TagPosterSuitable marks boxes eligible for rolled poster/banner items.
const TagPosterSuitable = "poster-suitable"

// DefaultBoxes is the built-in container catalog, used when no catalog
// configuration is stored in the database.
var DefaultBoxes = []model.BoxDefinition{
	{ID: "SM_BOX", Category: CategoryBox, LengthIn: 12, WidthIn: 10, HeightIn: 6, MaxWeightLbs: 20, TareWeightLbs: 0.5, UsableFactor: 0.85},
	{ID: "MD_BOX", Category: CategoryBox, LengthIn: 18, WidthIn: 14, HeightIn: 10, MaxWeightLbs: 40, TareWeightLbs: 1, UsableFactor: 0.85},
	{ID: "LG_BOX", Category: CategoryBox, LengthIn: 24, WidthIn: 18, HeightIn: 12, MaxWeightLbs: 65, TareWeightLbs: 1.5, UsableFactor: 0.85},
	{ID: "XL_BOX", Category: CategoryBox, LengthIn: 30, WidthIn: 24, HeightIn: 18, MaxWeightLbs: 100, TareWeightLbs: 2.5, UsableFactor: 0.85},
	{ID: "TUBE_38", Category: CategoryTube, LengthIn: 38, WidthIn: 6, HeightIn: 6, MaxWeightLbs: 20, TareWeightLbs: 0.8, UsableFactor: 0.9, Tags: []string{TagPosterSuitable}},
}

// DefaultProductBoxes maps a product-type hint to a preferred catalog box.
// Consulted only after the regular fit search fails.
var DefaultProductBoxes = map[string]string{
	"poster":    "TUBE_38",
	"banner":    "TUBE_38",
	"mug":       "SM_BOX",
	"tshirt":    "SM_BOX",
	"hoodie":    "MD_BOX",
	"canvas":    "LG_BOX",
	"framed":    "XL_BOX",
	"blanket":   "MD_BOX",
	"yard-sign": "LG_BOX",
}

// Catalog is a read-only set of box definitions, loaded once at startup.
type Catalog struct {
	boxes        []model.BoxDefinition
	productBoxes map[string]string
}

// NewCatalog builds a catalog from the given boxes, sorted by usable
// volume ascending so "smallest box that fits" is a forward scan.
func NewCatalog(boxes []model.BoxDefinition, productBoxes map[string]string) *Catalog {
	sorted := make([]model.BoxDefinition, len(boxes))
	copy(sorted, boxes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UsableVolume() < sorted[j].UsableVolume()
	})
	if productBoxes == nil {
		productBoxes = DefaultProductBoxes
	}
	return &Catalog{boxes: sorted, productBoxes: productBoxes}
}

// DefaultCatalog returns a catalog over the built-in box table.
func DefaultCatalog() *Catalog {
	return NewCatalog(DefaultBoxes, DefaultProductBoxes)
}

// Boxes returns the catalog entries, smallest usable volume first.
func (c *Catalog) Boxes() []model.BoxDefinition {
	return c.boxes
}

// ByID returns the box with the given ID.
func (c *Catalog) ByID(id string) (model.BoxDefinition, bool) {
	for _, b := range c.boxes {
		if b.ID == id {
			return b, true
		}
	}
	return model.BoxDefinition{}, false
}

// SmallestFor returns the smallest box (by usable volume) that can hold
// the item alone, respecting the weight ceiling and the sorted-dimension
// fit check.
func (c *Catalog) SmallestFor(item model.PackItem) (model.BoxDefinition, bool) {
	for _, b := range c.boxes {
		if fitsAlone(item, b) {
			return b, true
		}
	}
	return model.BoxDefinition{}, false
}

// RecommendedFor consults the product-type recommendation table.
func (c *Catalog) RecommendedFor(productType string) (model.BoxDefinition, bool) {
	id, ok := c.productBoxes[productType]
	if !ok {
		return model.BoxDefinition{}, false
	}
	return c.ByID(id)
}

// Tubes returns the tube-category boxes, smallest first.
func (c *Catalog) Tubes() []model.BoxDefinition {
	var tubes []model.BoxDefinition
	for _, b := range c.boxes {
		if b.Category == CategoryTube {
			tubes = append(tubes, b)
		}
	}
	return tubes
}

func fitsAlone(item model.PackItem, box model.BoxDefinition) bool {
	if item.WeightLbs > box.MaxWeightLbs {
		return false
	}
	if item.Volume() > box.UsableVolume() {
		return false
	}
	id := item.SortedDims()
	bd := box.SortedDims()
	for axis := range id {
		if id[axis] > bd[axis] {
			return false
		}
	}
	return true
}
