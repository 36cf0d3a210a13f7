package engine

import (
	"math"
	"sort"
)

// MonteCarloStats summarizes the empirical NPV distribution. Samples keeps
// generation order so downstream charting sees the raw sequence; percentiles
// are computed from a separately sorted copy.
type MonteCarloStats struct {
	ProbNegative float64
	P5           float64
	P50          float64
	P95          float64
	Samples      []float64
}

// RunMonteCarlo perturbs the base schedule iterations times and values each
// path at the discount rate. The delay pass runs before the default pass,
// so a delayed installment can still be captured or erased by a default.
// progress, when non-nil, is called after every iteration; it is the only
// spot a caller can hook cancellation or reporting into, since each
// iteration is O(term) and cheap.
func RunMonteCarlo(base Schedule, discountMonthly float64, risk RiskParams, src UniformSource, progress func(done, total int)) (MonteCarloStats, error) {
	if err := risk.Validate(); err != nil {
		return MonteCarloStats{}, err
	}

	hazard := MonthlyHazard(risk.AnnualDefaultPct)
	samples := make([]float64, risk.Iterations)
	negatives := 0
	for i := 0; i < risk.Iterations; i++ {
		flows := applyDelay(base.CashFlows, src, risk.DelayProbabilityPct, risk.DelayMonths)
		flows = applyDefault(flows, base.Outstanding, src, hazard, risk.LossGivenDefaultPct)
		npv := NPV(discountMonthly, flows)
		samples[i] = npv
		if npv < 0 {
			negatives++
		}
		if progress != nil {
			progress(i+1, risk.Iterations)
		}
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	return MonteCarloStats{
		ProbNegative: float64(negatives) / float64(risk.Iterations),
		P5:           Percentile(sorted, 0.05),
		P50:          Percentile(sorted, 0.50),
		P95:          Percentile(sorted, 0.95),
		Samples:      samples,
	}, nil
}

// Percentile interpolates linearly between order statistics of an
// already-sorted sample; p is a fraction in [0,1].
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	idx := float64(n-1) * p
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
