package engine

import "math"

// NPV discounts flows at a per-month rate. A rate of exactly -1 divides by
// zero; callers are expected not to ask for it.
func NPV(rateMonthly float64, flows []float64) float64 {
	total := 0.0
	for t, cf := range flows {
		total += cf / math.Pow(1+rateMonthly, float64(t))
	}
	return total
}

const (
	irrLo         = -0.99
	irrInitialHi  = 10.0
	irrHiCap      = 1e6
	irrMaxExpand  = 40
	irrIterations = 80
	irrTolerance  = 1e-9
)

// IRR finds the monthly rate at which the flows discount to zero. Returns
// NaN when no sign change can be bracketed, which callers surface as
// "undefined" rather than an error.
func IRR(flows []float64) float64 {
	return bisect(func(r float64) float64 { return NPV(r, flows) })
}

// bisect is a generic bracketing root-finder: grow the upper bound
// geometrically until f changes sign across [irrLo, hi], then bisect a fixed
// number of rounds. Bracketing rather than Newton: post-default truncated
// paths produce sign patterns that defeat derivative-based solvers.
func bisect(f func(float64) float64) float64 {
	lo, hi := irrLo, irrInitialHi
	flo, fhi := f(lo), f(hi)

	for i := 0; flo*fhi > 0; i++ {
		if i >= irrMaxExpand || hi >= irrHiCap {
			return math.NaN()
		}
		hi *= 1.5
		if hi > irrHiCap {
			hi = irrHiCap
		}
		fhi = f(hi)
	}

	for i := 0; i < irrIterations; i++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if math.Abs(fmid) < irrTolerance {
			return mid
		}
		if flo*fmid < 0 {
			hi = mid
		} else {
			lo = mid
			flo = fmid
		}
	}
	return (lo + hi) / 2
}

// DiscountedPayback returns the first month at which the cumulative
// discounted cash flow turns non-negative. ok is false when the loan never
// recovers within the horizon.
func DiscountedPayback(rateMonthly float64, flows []float64) (months int, ok bool) {
	sum := 0.0
	for t, cf := range flows {
		sum += cf / math.Pow(1+rateMonthly, float64(t))
		if sum >= 0 {
			return t, true
		}
	}
	return 0, false
}
