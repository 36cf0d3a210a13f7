package service

import (
	"loansim/internal/engine"
	"loansim/internal/models"
)

// ScenarioTerms maps a stored scenario onto engine loan terms.
func ScenarioTerms(sc *models.Scenario) engine.LoanTerms {
	return engine.LoanTerms{
		Principal:     sc.Principal.InexactFloat64(),
		TermMonths:    sc.TermMonths,
		AnnualRatePct: sc.AnnualRatePct.InexactFloat64(),
		Method:        engine.Method(sc.Method),
		GraceMonths:   sc.GraceMonths,
	}
}

// ScenarioRequest expands a stored scenario into a full simulation request.
func ScenarioRequest(sc *models.Scenario) SimulationRequest {
	req := SimulationRequest{
		Principal:           sc.Principal.InexactFloat64(),
		TermMonths:          sc.TermMonths,
		AnnualRatePct:       sc.AnnualRatePct.InexactFloat64(),
		Method:              sc.Method,
		GraceMonths:         sc.GraceMonths,
		DiscountAnnualPct:   sc.DiscountAnnualPct.InexactFloat64(),
		AnnualDefaultPct:    sc.AnnualDefaultPct.InexactFloat64(),
		LossGivenDefaultPct: sc.LossGivenDefaultPct.InexactFloat64(),
		DelayProbabilityPct: sc.DelayProbabilityPct.InexactFloat64(),
		DelayMonths:         sc.DelayMonths,
		Iterations:          sc.Iterations,
	}
	if sc.Seed != nil {
		req.Seed = *sc.Seed
	}
	return req
}
