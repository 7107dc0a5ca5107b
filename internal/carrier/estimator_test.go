package carrier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipquote/rate-service/internal/domain/model"
)

var (
	estOrigin   = model.Address{City: "Memphis", State: "TN", PostalCode: "38103", Country: "US"}
	estDomestic = model.Address{City: "Portland", State: "OR", PostalCode: "97201", Country: "US"}
	estIntl     = model.Address{City: "London", PostalCode: "SW1A 1AA", Country: "GB"}
)

func TestEstimator_GetRates(t *testing.T) {
	estimator := NewEstimator(0)
	packages := []model.Package{{WeightLbs: 10}}

	rates, err := estimator.GetRates(context.Background(), estOrigin, estDomestic, packages, RateOptions{})

	require.NoError(t, err)
	require.NotEmpty(t, rates)
	for _, r := range rates {
		assert.True(t, r.Estimated)
		assert.Equal(t, "fedex", r.Carrier)
		assert.Positive(t, r.Amount)
	}

	// Ground: 8.50 base + 0.55/lb * 10 lb.
	byCode := map[string]model.Rate{}
	for _, r := range rates {
		byCode[r.ServiceCode] = r
	}
	ground, ok := byCode["FEDEX_GROUND"]
	require.True(t, ok)
	assert.InDelta(t, 14.00, ground.Amount, 1e-9)
	_, intl := byCode["INTERNATIONAL_ECONOMY"]
	assert.False(t, intl, "domestic quotes exclude international services")
}

func TestEstimator_InternationalServicesOnly(t *testing.T) {
	estimator := NewEstimator(0)
	packages := []model.Package{{WeightLbs: 4}}

	rates, err := estimator.GetRates(context.Background(), estOrigin, estIntl, packages, RateOptions{})

	require.NoError(t, err)
	require.NotEmpty(t, rates)
	for _, r := range rates {
		assert.Contains(t, []string{"INTERNATIONAL_ECONOMY", "INTERNATIONAL_PRIORITY"}, r.ServiceCode)
	}
}

func TestEstimator_MarkupAndServiceFilter(t *testing.T) {
	estimator := NewEstimator(10)
	packages := []model.Package{{WeightLbs: 10}}
	opts := RateOptions{ServiceCodes: []string{"FEDEX_GROUND"}}

	rates, err := estimator.GetRates(context.Background(), estOrigin, estDomestic, packages, opts)

	require.NoError(t, err)
	require.Len(t, rates, 1)
	// (8.50 + 5.50) * 1.10
	assert.InDelta(t, 15.40, rates[0].Amount, 1e-9)
}

func TestRoundCents(t *testing.T) {
	assert.InDelta(t, 10.56, RoundCents(10.555), 1e-9)
	assert.InDelta(t, 10.55, RoundCents(10.554), 1e-9)
	assert.InDelta(t, 0.0, RoundCents(0.004), 1e-9)
	assert.InDelta(t, 110.00, RoundCents(100.0*1.1), 1e-9)
}

func TestSortRates(t *testing.T) {
	rates := func() []model.Rate {
		return []model.Rate{
			{ServiceCode: "A", Amount: 30, TransitDays: 1},
			{ServiceCode: "B", Amount: 10, TransitDays: 5},
			{ServiceCode: "C", Amount: 20, TransitDays: 2},
			{ServiceCode: "D", Amount: 15, TransitDays: 2},
		}
	}

	t.Run("fastest first by default", func(t *testing.T) {
		sorted := rates()
		SortRates(sorted, false)

		var order []string
		for _, r := range sorted {
			order = append(order, r.ServiceCode)
		}
		// Ties on transit break on price.
		assert.Equal(t, []string{"A", "D", "C", "B"}, order)
	})

	t.Run("cheapest first when economy preferred", func(t *testing.T) {
		sorted := rates()
		SortRates(sorted, true)

		var order []string
		for _, r := range sorted {
			order = append(order, r.ServiceCode)
		}
		assert.Equal(t, []string{"B", "D", "C", "A"}, order)
	})
}

func TestDedupeCheapest(t *testing.T) {
	rates := []model.Rate{
		{ServiceCode: "FEDEX_GROUND", Amount: 45.00},
		{ServiceCode: "FEDEX_2_DAY", Amount: 80.00},
		{ServiceCode: "FEDEX_GROUND", Amount: 42.50},
		{ServiceCode: "FEDEX_2_DAY", Amount: 85.00},
	}

	deduped := DedupeCheapest(rates)

	require.Len(t, deduped, 2)
	assert.Equal(t, "FEDEX_GROUND", deduped[0].ServiceCode)
	assert.InDelta(t, 42.50, deduped[0].Amount, 1e-9)
	assert.Equal(t, "FEDEX_2_DAY", deduped[1].ServiceCode)
	assert.InDelta(t, 80.00, deduped[1].Amount, 1e-9)
}
