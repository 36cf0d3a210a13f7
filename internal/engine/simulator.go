package engine

import "math"

// Simulator runs the full pipeline: base schedule, deterministic valuation,
// then the Monte Carlo pass. The zero value is ready to use; Progress is
// optional.
type Simulator struct {
	// Progress, when set, is called after every Monte Carlo iteration.
	Progress func(done, total int)
}

// Run evaluates the loan. Everything operates on the explicit inputs only:
// a fresh PRNG per call, no shared state, so concurrent Run calls are
// independent.
func (s *Simulator) Run(terms LoanTerms, risk RiskParams, discountAnnualPct float64) (*Result, error) {
	if err := risk.Validate(); err != nil {
		return nil, err
	}

	rateMonthly := MonthlyRate(terms.AnnualRatePct)
	discountMonthly := MonthlyRate(discountAnnualPct)

	sched, err := BuildSchedule(terms, rateMonthly)
	if err != nil {
		return nil, err
	}

	res := &Result{
		NPV:        NPV(discountMonthly, sched.CashFlows),
		IRRMonthly: IRR(sched.CashFlows),
	}
	res.IRRAnnual = math.NaN()
	if !math.IsNaN(res.IRRMonthly) {
		res.IRRAnnual = AnnualRate(res.IRRMonthly)
	}
	res.PaybackMonths, res.PaybackFound = DiscountedPayback(discountMonthly, sched.CashFlows)

	var src UniformSource
	if risk.Seed != nil {
		src = NewSource(*risk.Seed)
	} else {
		src = NewTimeSource()
	}

	var progress func(done, total int)
	if s != nil {
		progress = s.Progress
	}
	mc, err := RunMonteCarlo(sched, discountMonthly, risk, src, progress)
	if err != nil {
		return nil, err
	}
	res.MonteCarlo = mc

	return res, nil
}

// Simulate is the plain entry point for callers that do not need progress
// reporting.
func Simulate(terms LoanTerms, risk RiskParams, discountAnnualPct float64) (*Result, error) {
	return (&Simulator{}).Run(terms, risk, discountAnnualPct)
}
