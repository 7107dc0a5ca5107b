package freight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shipquote/rate-service/internal/domain/model"
)

func TestClassifyDensity(t *testing.T) {
	tests := []struct {
		name      string
		weightLbs float64
		lengthIn  float64
		widthIn   float64
		heightIn  float64
		wantCode  string
	}{
		{
			// 200 lb / (48*40*36/1728 ft3) = 200/40 = 5.0 lb/ft3
			name:      "crate at 5 lb per cubic foot",
			weightLbs: 200, lengthIn: 48, widthIn: 40, heightIn: 36,
			wantCode: "175",
		},
		{
			// 10 lb in a 12 ft3 envelope: 0.83 lb/ft3
			name:      "very light bulky freight",
			weightLbs: 10, lengthIn: 48, widthIn: 36, heightIn: 12,
			wantCode: "500",
		},
		{
			// 1728 in3 = exactly 1 ft3, 55 lb -> density 55
			name:      "dense machined part",
			weightLbs: 55, lengthIn: 12, widthIn: 12, heightIn: 12,
			wantCode: "50",
		},
		{
			name:      "zero volume falls back to default",
			weightLbs: 100, lengthIn: 0, widthIn: 40, heightIn: 36,
			wantCode: DefaultClass.Code,
		},
		{
			name:      "zero weight falls back to default",
			weightLbs: 0, lengthIn: 48, widthIn: 40, heightIn: 36,
			wantCode: DefaultClass.Code,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDensity(tt.weightLbs, tt.lengthIn, tt.widthIn, tt.heightIn)
			assert.Equal(t, tt.wantCode, got.Code)
		})
	}
}

func TestClassifyDensity_BucketBoundaries(t *testing.T) {
	// Buckets are [min, max): a density exactly on a boundary belongs to
	// the upper bucket. 1 ft3 boxes make density equal the weight.
	tests := []struct {
		density  float64
		wantCode string
	}{
		{0.5, "500"},
		{1, "400"},
		{4.999, "200"},
		{5, "175"},
		{9, "100"},
		{10.5, "92.5"},
		{15, "70"},
		{22.5, "65"},
		{50, "50"},
		{300, "50"},
	}

	for _, tt := range tests {
		got := ClassifyDensity(tt.density, 12, 12, 12)
		assert.Equal(t, tt.wantCode, got.Code, "density %.3f", tt.density)
	}
}

func TestRequiresFreight(t *testing.T) {
	tests := []struct {
		name     string
		packages []model.Package
		want     bool
	}{
		{
			name: "light small parcel",
			packages: []model.Package{
				{WeightLbs: 20, LengthIn: 12, WidthIn: 10, HeightIn: 8},
			},
			want: false,
		},
		{
			name: "exactly 150 lb total stays parcel",
			packages: []model.Package{
				{WeightLbs: 100, LengthIn: 20, WidthIn: 20, HeightIn: 20},
				{WeightLbs: 50, LengthIn: 20, WidthIn: 20, HeightIn: 20},
			},
			want: false,
		},
		{
			name: "just over 150 lb total requires freight",
			packages: []model.Package{
				{WeightLbs: 100, LengthIn: 20, WidthIn: 20, HeightIn: 20},
				{WeightLbs: 50.1, LengthIn: 20, WidthIn: 20, HeightIn: 20},
			},
			want: true,
		},
		{
			name: "exactly 96 in dimension stays parcel",
			packages: []model.Package{
				{WeightLbs: 40, LengthIn: 96, WidthIn: 10, HeightIn: 10},
			},
			want: false,
		},
		{
			name: "dimension over 96 in requires freight regardless of weight",
			packages: []model.Package{
				{WeightLbs: 5, LengthIn: 96.5, WidthIn: 4, HeightIn: 4},
			},
			want: true,
		},
		{
			name: "oversized width caught too",
			packages: []model.Package{
				{WeightLbs: 30, LengthIn: 40, WidthIn: 97, HeightIn: 10},
			},
			want: true,
		},
		{
			name:     "no packages",
			packages: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RequiresFreight(tt.packages))
		})
	}
}

func TestCalculatePallets(t *testing.T) {
	tests := []struct {
		name     string
		packages []model.Package
		want     int
	}{
		{
			name: "single light crate needs one pallet",
			packages: []model.Package{
				{WeightLbs: 300, LengthIn: 48, WidthIn: 40, HeightIn: 36},
			},
			want: 1,
		},
		{
			name: "weight drives the count",
			packages: []model.Package{
				{WeightLbs: 2500, LengthIn: 48, WidthIn: 40, HeightIn: 36},
			},
			want: 2,
		},
		{
			name: "volume drives the count",
			packages: []model.Package{
				// 3x a full pallet cube plus a little: 48*40*72 = 138240 in3
				{WeightLbs: 400, LengthIn: 96, WidthIn: 80, HeightIn: 60},
			},
			want: 4,
		},
		{
			name:     "empty shipment still gets one pallet",
			packages: nil,
			want:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePallets(tt.packages))
		})
	}
}

func TestShipmentClass(t *testing.T) {
	t.Run("aggregates weight and volume across packages", func(t *testing.T) {
		// 2 x (100 lb, 20 ft3) -> 200 lb / 40 ft3 = 5 lb/ft3
		packages := []model.Package{
			{WeightLbs: 100, LengthIn: 48, WidthIn: 40, HeightIn: 18},
			{WeightLbs: 100, LengthIn: 48, WidthIn: 40, HeightIn: 18},
		}
		assert.Equal(t, "175", ShipmentClass(packages).Code)
	})

	t.Run("empty shipment gets the default class", func(t *testing.T) {
		assert.Equal(t, DefaultClass.Code, ShipmentClass(nil).Code)
	})
}
