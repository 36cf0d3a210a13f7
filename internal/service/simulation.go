package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"loansim/internal/cache"
	"loansim/internal/config"
	"loansim/internal/engine"
)

// SimulationRequest is the input contract consumed from the UI collaborator.
// Percent fields are percentages (12 means 12%), not fractions.
type SimulationRequest struct {
	Principal     float64 `json:"principal"`
	TermMonths    int     `json:"term_months"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	Method        string  `json:"method"`
	GraceMonths   int     `json:"grace_months"`

	DiscountAnnualPct float64 `json:"discount_annual_pct"`

	AnnualDefaultPct    float64 `json:"annual_default_pct"`
	LossGivenDefaultPct float64 `json:"loss_given_default_pct"`
	DelayProbabilityPct float64 `json:"delay_probability_pct"`
	DelayMonths         int     `json:"delay_months"`
	Iterations          int     `json:"iterations"`
	// Seed makes the run reproducible. Empty means non-deterministic;
	// non-numeric text degrades to seed 0 rather than failing the run.
	Seed string `json:"seed"`
}

type BaseCase struct {
	NPV float64 `json:"npv"`
	// IRRAnnualPct is null when no root could be bracketed ("undefined").
	IRRAnnualPct *float64 `json:"irr_annual_pct"`
	// PaybackMonths is null when the loan never recovers within the horizon.
	PaybackMonths *int `json:"payback_months"`
}

type MonteCarloSummary struct {
	Iterations      int     `json:"iterations"`
	ProbNegativeNPV float64 `json:"prob_negative_npv"`
	P5              float64 `json:"p5"`
	P50             float64 `json:"p50"`
	P95             float64 `json:"p95"`
	// Samples preserves generation order for downstream charting.
	Samples []float64 `json:"samples"`
}

type SimulationResponse struct {
	RunID         string            `json:"run_id"`
	Deterministic bool              `json:"deterministic"`
	Cached        bool              `json:"cached,omitempty"`
	BaseCase      BaseCase          `json:"base_case"`
	MonteCarlo    MonteCarloSummary `json:"monte_carlo"`
}

type SimulationService struct {
	Engine config.EngineConfig
	Cache  cache.ResultCache
	Logger *zap.Logger
}

// Run normalizes the request, consults the result cache for seeded runs and
// executes the engine. Unseeded runs bypass the cache entirely: caching a
// non-reproducible result would pin one arbitrary draw of the distribution.
func (s *SimulationService) Run(ctx context.Context, req SimulationRequest) (*SimulationResponse, error) {
	norm, terms, risk := s.normalize(req)
	if err := s.checkLimits(terms); err != nil {
		return nil, err
	}
	deterministic := risk.Seed != nil

	var key string
	if deterministic && s.Cache != nil {
		if payload, err := json.Marshal(norm); err == nil {
			key = cache.Key("loansim:sim", payload)
			if raw, ok := s.Cache.Get(ctx, key); ok {
				var resp SimulationResponse
				if err := json.Unmarshal(raw, &resp); err == nil {
					resp.Cached = true
					return &resp, nil
				}
			}
		}
	}

	res, err := engine.Simulate(terms, risk, norm.DiscountAnnualPct)
	if err != nil {
		return nil, err
	}

	resp := buildResponse(res, risk.Iterations, deterministic)
	if s.Logger != nil {
		s.Logger.Info("simulation complete",
			zap.String("run_id", resp.RunID),
			zap.Int("iterations", risk.Iterations),
			zap.Bool("deterministic", deterministic),
			zap.Float64("base_npv", res.NPV),
			zap.Float64("prob_negative_npv", res.MonteCarlo.ProbNegative),
		)
	}
	if key != "" {
		if payload, err := json.Marshal(resp); err == nil {
			s.Cache.Set(ctx, key, payload)
		}
	}
	return resp, nil
}

// RunWithProgress executes the engine with a per-iteration progress hook.
// Progress runs always execute; the cache is not consulted.
func (s *SimulationService) RunWithProgress(ctx context.Context, req SimulationRequest, progress func(done, total int)) (*SimulationResponse, error) {
	norm, terms, risk := s.normalize(req)
	if err := s.checkLimits(terms); err != nil {
		return nil, err
	}

	sim := &engine.Simulator{Progress: progress}
	res, err := sim.Run(terms, risk, norm.DiscountAnnualPct)
	if err != nil {
		return nil, err
	}
	return buildResponse(res, risk.Iterations, risk.Seed != nil), nil
}

// normalize applies the input contract: percent clamping, iteration bounds
// and seed parsing. Structural validation (principal, term, grace, method)
// is left to the engine so its sentinel errors surface unchanged.
func (s *SimulationService) normalize(req SimulationRequest) (SimulationRequest, engine.LoanTerms, engine.RiskParams) {
	req.Method = strings.ToUpper(strings.TrimSpace(req.Method))
	req.AnnualDefaultPct = clampPct(req.AnnualDefaultPct)
	req.LossGivenDefaultPct = clampPct(req.LossGivenDefaultPct)
	req.DelayProbabilityPct = clampPct(req.DelayProbabilityPct)
	req.Iterations = s.boundIterations(req.Iterations)
	req.Seed = strings.TrimSpace(req.Seed)

	terms := engine.LoanTerms{
		Principal:     req.Principal,
		TermMonths:    req.TermMonths,
		AnnualRatePct: req.AnnualRatePct,
		Method:        engine.Method(req.Method),
		GraceMonths:   req.GraceMonths,
	}
	risk := engine.RiskParams{
		AnnualDefaultPct:    req.AnnualDefaultPct,
		LossGivenDefaultPct: req.LossGivenDefaultPct,
		DelayProbabilityPct: req.DelayProbabilityPct,
		DelayMonths:         req.DelayMonths,
		Iterations:          req.Iterations,
		Seed:                parseSeed(req.Seed),
	}
	return req, terms, risk
}

// checkLimits enforces the operational term ceiling. The engine itself only
// rejects non-positive terms; the cap is a service policy.
func (s *SimulationService) checkLimits(terms engine.LoanTerms) error {
	if s.Engine.MaxTermMonths > 0 && terms.TermMonths > s.Engine.MaxTermMonths {
		return fmt.Errorf("%w: term %d exceeds maximum %d months", engine.ErrInvalidTerm, terms.TermMonths, s.Engine.MaxTermMonths)
	}
	return nil
}

func (s *SimulationService) boundIterations(n int) int {
	minIter := s.Engine.MinIterations
	if minIter <= 0 {
		minIter = 100
	}
	if n <= 0 {
		n = s.Engine.DefaultIterations
	}
	if n < minIter {
		n = minIter
	}
	if s.Engine.MaxIterations > 0 && n > s.Engine.MaxIterations {
		n = s.Engine.MaxIterations
	}
	return n
}

func clampPct(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func parseSeed(raw string) *int64 {
	if raw == "" {
		return nil
	}
	seed := int64(0)
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		seed = int64(f)
	}
	return &seed
}

func buildResponse(res *engine.Result, iterations int, deterministic bool) *SimulationResponse {
	base := BaseCase{NPV: res.NPV}
	if !math.IsNaN(res.IRRAnnual) {
		pct := res.IRRAnnual * 100
		base.IRRAnnualPct = &pct
	}
	if res.PaybackFound {
		months := res.PaybackMonths
		base.PaybackMonths = &months
	}
	return &SimulationResponse{
		RunID:         uuid.NewString(),
		Deterministic: deterministic,
		BaseCase:      base,
		MonteCarlo: MonteCarloSummary{
			Iterations:      iterations,
			ProbNegativeNPV: res.MonteCarlo.ProbNegative,
			P5:              res.MonteCarlo.P5,
			P50:             res.MonteCarlo.P50,
			P95:             res.MonteCarlo.P95,
			Samples:         res.MonteCarlo.Samples,
		},
	}
}

// IsValidationError reports whether err is one of the engine's invalid-input
// sentinels, so handlers can map it to a 400 instead of a 500.
func IsValidationError(err error) bool {
	return errors.Is(err, engine.ErrInvalidPrincipal) ||
		errors.Is(err, engine.ErrInvalidTerm) ||
		errors.Is(err, engine.ErrInvalidGrace) ||
		errors.Is(err, engine.ErrUnknownMethod) ||
		errors.Is(err, engine.ErrInvalidIterations) ||
		errors.Is(err, engine.ErrInvalidDelay)
}
