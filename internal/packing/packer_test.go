package packing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// testCatalog is a small fixed catalog so expectations don't shift when
// the built-in table changes.
func testCatalog() *Catalog {
	return NewCatalog([]model.BoxDefinition{
		{ID: "SMALL", Category: CategoryBox, LengthIn: 12, WidthIn: 10, HeightIn: 6, MaxWeightLbs: 20, TareWeightLbs: 0.5, UsableFactor: 0.85},
		{ID: "LARGE", Category: CategoryBox, LengthIn: 24, WidthIn: 18, HeightIn: 12, MaxWeightLbs: 20, TareWeightLbs: 1, UsableFactor: 0.85},
		{ID: "TUBE", Category: CategoryTube, LengthIn: 38, WidthIn: 6, HeightIn: 6, MaxWeightLbs: 20, TareWeightLbs: 0.8, UsableFactor: 0.9, Tags: []string{TagPosterSuitable}},
	}, map[string]string{"poster": "TUBE"})
}

func TestBoxPacker_Pack(t *testing.T) {
	tests := []struct {
		name         string
		items        []model.PackItem
		wantBoxes    int
		wantUnpacked int
		validate     func(*testing.T, model.PackingResult)
	}{
		{
			name: "five small items share the smallest box",
			items: []model.PackItem{
				{Name: "mug", LengthIn: 5, WidthIn: 5, HeightIn: 4, WeightLbs: 1, Quantity: 5},
			},
			wantBoxes: 1,
			validate: func(t *testing.T, result model.PackingResult) {
				box := result.Boxes[0]
				assert.Equal(t, "SMALL", box.Box.ID)
				assert.Len(t, box.Items, 5)
				assert.InDelta(t, 5.0, box.UsedWeightLbs, 1e-9)
				assert.InDelta(t, 5.5, box.ShippedWeightLbs(), 1e-9)
			},
		},
		{
			name: "single bulky item takes the large box and its tare",
			items: []model.PackItem{
				{Name: "lamp", LengthIn: 20, WidthIn: 15, HeightIn: 10, WeightLbs: 5},
			},
			wantBoxes: 1,
			validate: func(t *testing.T, result model.PackingResult) {
				box := result.Boxes[0]
				assert.Equal(t, "LARGE", box.Box.ID)
				assert.InDelta(t, 5.0, box.UsedWeightLbs, 1e-9)
				assert.InDelta(t, 6.0, box.ShippedWeightLbs(), 1e-9)
			},
		},
		{
			name: "weight ceiling splits into multiple boxes",
			items: []model.PackItem{
				{Name: "brick", LengthIn: 8, WidthIn: 4, HeightIn: 2, WeightLbs: 15, Quantity: 3},
			},
			wantBoxes: 3,
		},
		{
			name: "rollable poster goes to a tube",
			items: []model.PackItem{
				{Name: "poster", LengthIn: 36, WidthIn: 4, HeightIn: 4, WeightLbs: 1, Rollable: true},
			},
			wantBoxes: 1,
			validate: func(t *testing.T, result model.PackingResult) {
				assert.Equal(t, "TUBE", result.Boxes[0].Box.ID)
			},
		},
		{
			name: "rollable but stubby item is boxed, not tubed",
			items: []model.PackItem{
				{Name: "rolled mat", LengthIn: 10, WidthIn: 4, HeightIn: 4, WeightLbs: 2, Rollable: true},
			},
			wantBoxes: 1,
			validate: func(t *testing.T, result model.PackingResult) {
				assert.Equal(t, "SMALL", result.Boxes[0].Box.ID)
			},
		},
		{
			name: "oversized item without custom boxes goes unpacked",
			items: []model.PackItem{
				{Name: "surfboard", LengthIn: 80, WidthIn: 22, HeightIn: 4, WeightLbs: 18},
			},
			wantBoxes:    0,
			wantUnpacked: 1,
			validate: func(t *testing.T, result model.PackingResult) {
				require.NotEmpty(t, result.Warnings)
				assert.Contains(t, result.Warnings[0], "fits no available box")
			},
		},
		{
			name: "overweight item goes unpacked even though it fits dimensionally",
			items: []model.PackItem{
				{Name: "anvil", LengthIn: 10, WidthIn: 8, HeightIn: 6, WeightLbs: 55},
			},
			wantBoxes:    0,
			wantUnpacked: 1,
		},
		{
			name: "fragile unpacked item gets an extra warning",
			items: []model.PackItem{
				{Name: "mirror", LengthIn: 80, WidthIn: 40, HeightIn: 2, WeightLbs: 30, Fragile: true},
			},
			wantBoxes:    0,
			wantUnpacked: 1,
			validate: func(t *testing.T, result model.PackingResult) {
				found := false
				for _, w := range result.Warnings {
					if w == `unpacked item "mirror" is fragile` {
						found = true
					}
				}
				assert.True(t, found, "expected fragile warning, got %v", result.Warnings)
			},
		},
		{
			name:      "no items yields empty result",
			items:     nil,
			wantBoxes: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packer := NewBoxPacker(testCatalog())
			result := packer.Pack(tt.items)

			assert.Len(t, result.Boxes, tt.wantBoxes)
			assert.Len(t, result.Unpacked, tt.wantUnpacked)
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

// TestBoxPacker_SplitOnWeight covers the reference scenario: five 4 lb
// items against a 20 lb box ceiling and tight usable volume must split
// into two boxes without losing weight.
func TestBoxPacker_SplitOnWeight(t *testing.T) {
	catalog := NewCatalog([]model.BoxDefinition{
		{ID: "BIN", Category: CategoryBox, LengthIn: 12, WidthIn: 12, HeightIn: 8, MaxWeightLbs: 20, TareWeightLbs: 1, UsableFactor: 0.85},
	}, nil)
	packer := NewBoxPacker(catalog)

	// 6 x 4 lb exceeds one box's 20 lb ceiling.
	result := packer.Pack([]model.PackItem{
		{Name: "kit", LengthIn: 6, WidthIn: 6, HeightIn: 4, WeightLbs: 4, Quantity: 6},
	})

	require.Len(t, result.Boxes, 2)
	assert.Empty(t, result.Unpacked)

	var itemWeight float64
	for _, b := range result.Boxes {
		assert.LessOrEqual(t, b.UsedWeightLbs, b.Box.MaxWeightLbs)
		itemWeight += b.UsedWeightLbs
	}
	assert.InDelta(t, 24.0, itemWeight, 1e-9)

	// Shipped total includes one tare per box.
	assert.InDelta(t, 26.0, result.TotalWeightLbs, 1e-9)
}

// TestBoxPacker_WeightConservation checks that no item weight is lost or
// duplicated across any packing outcome.
func TestBoxPacker_WeightConservation(t *testing.T) {
	items := []model.PackItem{
		{Name: "a", LengthIn: 5, WidthIn: 5, HeightIn: 5, WeightLbs: 3, Quantity: 4},
		{Name: "b", LengthIn: 10, WidthIn: 8, HeightIn: 4, WeightLbs: 7, Quantity: 2},
		{Name: "c", LengthIn: 36, WidthIn: 3, HeightIn: 3, WeightLbs: 1, Rollable: true},
		{Name: "too-big", LengthIn: 99, WidthIn: 50, HeightIn: 50, WeightLbs: 40},
	}

	var want float64
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		want += item.WeightLbs * float64(qty)
	}

	result := NewBoxPacker(testCatalog()).Pack(items)

	var got float64
	for _, b := range result.Boxes {
		got += b.UsedWeightLbs
	}
	for _, item := range result.Unpacked {
		got += item.WeightLbs
	}
	assert.InDelta(t, want, got, 1e-9)
}

// TestBoxPacker_CapacityInvariants checks that no packed box exceeds its
// weight ceiling or usable volume.
func TestBoxPacker_CapacityInvariants(t *testing.T) {
	items := []model.PackItem{
		{Name: "cube", LengthIn: 6, WidthIn: 6, HeightIn: 6, WeightLbs: 5, Quantity: 12},
		{Name: "slab", LengthIn: 16, WidthIn: 12, HeightIn: 2, WeightLbs: 9, Quantity: 4},
	}

	result := NewBoxPacker(testCatalog()).Pack(items)
	require.NotEmpty(t, result.Boxes)

	for _, b := range result.Boxes {
		assert.LessOrEqual(t, b.UsedWeightLbs, b.Box.MaxWeightLbs,
			"box %s over weight", b.Box.ID)
		assert.LessOrEqual(t, b.UsedVolumeIn3, b.Box.UsableVolume(),
			"box %s over volume", b.Box.ID)
	}
}

func TestBoxPacker_CustomBoxFallback(t *testing.T) {
	packer := NewBoxPacker(testCatalog(), WithCustomBoxes(2, 1))

	result := packer.Pack([]model.PackItem{
		{Name: "surfboard", LengthIn: 80, WidthIn: 22, HeightIn: 4, WeightLbs: 18},
	})

	require.Len(t, result.Boxes, 1)
	assert.Empty(t, result.Unpacked)

	box := result.Boxes[0].Box
	assert.Equal(t, "CUSTOM", box.ID)
	assert.InDelta(t, 82.0, box.LengthIn, 1e-9)
	assert.InDelta(t, 24.0, box.WidthIn, 1e-9)
	assert.InDelta(t, 6.0, box.HeightIn, 1e-9)
	assert.InDelta(t, 1.0, box.TareWeightLbs, 1e-9)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "custom box")
}

func TestBoxPacker_ProductTypeRecommendation(t *testing.T) {
	// An item that fails the regular fit scan but whose product type maps
	// to a box it fits.
	catalog := NewCatalog([]model.BoxDefinition{
		{ID: "TINY", Category: CategoryBox, LengthIn: 6, WidthIn: 6, HeightIn: 4, MaxWeightLbs: 5, TareWeightLbs: 0.2, UsableFactor: 0.5},
		{ID: "POSTER_TUBE", Category: CategoryTube, LengthIn: 40, WidthIn: 7, HeightIn: 7, MaxWeightLbs: 10, TareWeightLbs: 0.8, UsableFactor: 1},
	}, map[string]string{"poster": "POSTER_TUBE"})
	packer := NewBoxPacker(catalog)

	result := packer.Pack([]model.PackItem{
		{Name: "flat poster", ProductType: "poster", LengthIn: 38, WidthIn: 6, HeightIn: 1, WeightLbs: 1},
	})

	require.Len(t, result.Boxes, 1)
	assert.Equal(t, "POSTER_TUBE", result.Boxes[0].Box.ID)
}

func TestBoxPacker_Consolidation(t *testing.T) {
	// The cube opens the small box first (larger volume, FFD order); the
	// pole then needs the long box for its length. Consolidation must
	// notice the cube also fits the long box's spare capacity and drop
	// the small box.
	catalog := NewCatalog([]model.BoxDefinition{
		{ID: "SMALL", Category: CategoryBox, LengthIn: 10, WidthIn: 10, HeightIn: 6, MaxWeightLbs: 50, TareWeightLbs: 0.5, UsableFactor: 1},
		{ID: "LONG", Category: CategoryBox, LengthIn: 32, WidthIn: 16, HeightIn: 10, MaxWeightLbs: 50, TareWeightLbs: 1, UsableFactor: 1},
	}, nil)
	items := []model.PackItem{
		{Name: "cube", LengthIn: 10, WidthIn: 10, HeightIn: 5, WeightLbs: 10},
		{Name: "pole", LengthIn: 30, WidthIn: 3, HeightIn: 3, WeightLbs: 5},
	}

	withoutMerge := NewBoxPacker(catalog).Pack(items)
	require.Len(t, withoutMerge.Boxes, 2)

	result := NewBoxPacker(catalog, WithPreferFewerBoxes()).Pack(items)

	require.Len(t, result.Boxes, 1)
	assert.Equal(t, "LONG", result.Boxes[0].Box.ID)
	assert.Len(t, result.Boxes[0].Items, 2)
	assert.InDelta(t, 15.0, result.Boxes[0].UsedWeightLbs, 1e-9)
}

func TestBoxCost(t *testing.T) {
	tests := []struct {
		name string
		box  model.PackedBox
		want float64
	}{
		{
			name: "weight-driven cost",
			box: model.PackedBox{
				Box:           model.BoxDefinition{LengthIn: 10, WidthIn: 10, HeightIn: 10, TareWeightLbs: 1},
				UsedWeightLbs: 30,
			},
			// max(31*0.50, (1000/139)*0.30) + 5
			want: 20.5,
		},
		{
			name: "dimensional-weight-driven cost",
			box: model.PackedBox{
				Box:           model.BoxDefinition{LengthIn: 30, WidthIn: 24, HeightIn: 18, TareWeightLbs: 1},
				UsedWeightLbs: 2,
			},
			// max(3*0.50, (12960/139)*0.30) + 5
			want: 12960.0/139.0*0.30 + 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, boxCost(tt.box), 1e-9)
		})
	}
}

func TestCatalog_SmallestFor(t *testing.T) {
	catalog := testCatalog()

	box, ok := catalog.SmallestFor(model.PackItem{LengthIn: 5, WidthIn: 5, HeightIn: 4, WeightLbs: 1})
	require.True(t, ok)
	assert.Equal(t, "SMALL", box.ID)

	box, ok = catalog.SmallestFor(model.PackItem{LengthIn: 20, WidthIn: 15, HeightIn: 10, WeightLbs: 10})
	require.True(t, ok)
	assert.Equal(t, "LARGE", box.ID)

	_, ok = catalog.SmallestFor(model.PackItem{LengthIn: 50, WidthIn: 50, HeightIn: 50, WeightLbs: 1})
	assert.False(t, ok)
}
