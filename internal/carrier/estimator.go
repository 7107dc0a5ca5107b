package carrier

import (
	"context"
	"math"
	"sort"

	"github.com/shipquote/rate-service/internal/domain/model"
)

// estimatedService is one row of the deterministic offline rate table.
type estimatedService struct {
	code          string
	name          string
	baseUSD       float64
	perPoundUSD   float64
	transitDays   int
	guaranteed    bool
	international bool
}

// estimatedRateTable backs the no-credentials and test-mode paths. The
// figures are deliberately fixed so tests and local development are
// reproducible; they never reflect carrier pricing.
var estimatedRateTable = []estimatedService{
	{code: "FEDEX_GROUND", name: "FedEx Ground", baseUSD: 8.50, perPoundUSD: 0.55, transitDays: 4},
	{code: "FEDEX_EXPRESS_SAVER", name: "FedEx Express Saver", baseUSD: 14.00, perPoundUSD: 0.95, transitDays: 3},
	{code: "FEDEX_2_DAY", name: "FedEx 2Day", baseUSD: 18.50, perPoundUSD: 1.25, transitDays: 2, guaranteed: true},
	{code: "PRIORITY_OVERNIGHT", name: "FedEx Priority Overnight", baseUSD: 32.00, perPoundUSD: 2.10, transitDays: 1, guaranteed: true},
	{code: "SMART_POST", name: "FedEx Ground Economy", baseUSD: 6.75, perPoundUSD: 0.40, transitDays: 6},
	{code: "INTERNATIONAL_ECONOMY", name: "FedEx International Economy", baseUSD: 42.00, perPoundUSD: 3.25, transitDays: 6, international: true},
	{code: "INTERNATIONAL_PRIORITY", name: "FedEx International Priority", baseUSD: 65.00, perPoundUSD: 4.50, transitDays: 3, guaranteed: true, international: true},
}

// Estimator produces deterministic rates without any network I/O. It is
// used when no carrier credentials are configured or test mode is set.
type Estimator struct {
	markupPercent float64
}

// NewEstimator creates an offline estimator applying the given markup.
func NewEstimator(markupPercent float64) *Estimator {
	return &Estimator{markupPercent: markupPercent}
}

// GetRates implements RateProvider over the fixed table. The context is
// accepted for interface symmetry; this path never blocks.
func (e *Estimator) GetRates(_ context.Context, origin, destination model.Address, packages []model.Package, opts RateOptions) ([]model.Rate, error) {
	var totalWeight float64
	for _, pkg := range packages {
		totalWeight += pkg.WeightLbs
	}
	international := destination.Country != "" && destination.Country != origin.Country

	allowed := map[string]bool{}
	for _, code := range opts.ServiceCodes {
		allowed[code] = true
	}

	var rates []model.Rate
	for _, svc := range estimatedRateTable {
		if svc.international != international {
			continue
		}
		if len(allowed) > 0 && !allowed[svc.code] {
			continue
		}
		amount := svc.baseUSD + svc.perPoundUSD*totalWeight
		amount = RoundCents(amount * (1 + e.markupPercent/100))
		rates = append(rates, model.Rate{
			Carrier:     "fedex",
			ServiceCode: svc.code,
			ServiceName: svc.name,
			Amount:      amount,
			Currency:    "USD",
			TransitDays: svc.transitDays,
			Guaranteed:  svc.guaranteed,
			Estimated:   true,
		})
	}

	SortRates(rates, opts.PreferEconomy)
	return rates, nil
}

// RoundCents rounds an amount to 2 decimals.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// SortRates orders rates by ascending transit days, or by ascending price
// when economy is preferred. Ties break on the other dimension.
func SortRates(rates []model.Rate, preferEconomy bool) {
	sort.SliceStable(rates, func(i, j int) bool {
		if preferEconomy {
			if rates[i].Amount != rates[j].Amount {
				return rates[i].Amount < rates[j].Amount
			}
			return rates[i].TransitDays < rates[j].TransitDays
		}
		if rates[i].TransitDays != rates[j].TransitDays {
			return rates[i].TransitDays < rates[j].TransitDays
		}
		return rates[i].Amount < rates[j].Amount
	})
}

// DedupeCheapest keeps the lowest amount per service code. Order of the
// survivors follows first appearance.
func DedupeCheapest(rates []model.Rate) []model.Rate {
	best := make(map[string]int, len(rates))
	out := make([]model.Rate, 0, len(rates))
	for _, r := range rates {
		if idx, seen := best[r.ServiceCode]; seen {
			if r.Amount < out[idx].Amount {
				out[idx] = r
			}
			continue
		}
		best[r.ServiceCode] = len(out)
		out = append(out, r)
	}
	return out
}
