package engine

import "errors"

// Method selects how principal is amortized.
type Method string

const (
	// MethodPrice keeps the total installment constant (annuity).
	MethodPrice Method = "PRICE"
	// MethodSAC keeps the principal amortization constant (declining installment).
	MethodSAC Method = "SAC"
)

var (
	ErrInvalidPrincipal  = errors.New("principal must be positive")
	ErrInvalidTerm       = errors.New("term must be at least one month")
	ErrInvalidGrace      = errors.New("grace months out of range")
	ErrUnknownMethod     = errors.New("unknown amortization method")
	ErrInvalidIterations = errors.New("iterations must be at least 1")
	ErrInvalidDelay      = errors.New("delay months must be non-negative")
)

// LoanTerms describes a single amortizing loan from the lender's side.
// Immutable once built; one value per simulation request.
type LoanTerms struct {
	Principal     float64
	TermMonths    int
	AnnualRatePct float64
	Method        Method
	GraceMonths   int
}

func (t LoanTerms) Validate() error {
	if t.Principal <= 0 {
		return ErrInvalidPrincipal
	}
	if t.TermMonths < 1 {
		return ErrInvalidTerm
	}
	if t.GraceMonths < 0 || t.GraceMonths > t.TermMonths {
		return ErrInvalidGrace
	}
	if t.Method != MethodPrice && t.Method != MethodSAC {
		return ErrUnknownMethod
	}
	return nil
}

// RiskParams drives the stochastic pass. Percent fields are expected to be
// pre-clamped to [0,100] by the caller.
type RiskParams struct {
	AnnualDefaultPct    float64
	LossGivenDefaultPct float64
	DelayProbabilityPct float64
	DelayMonths         int
	Iterations          int
	// Seed makes the run reproducible; nil draws a time-based seed.
	Seed *int64
}

func (r RiskParams) Validate() error {
	if r.Iterations < 1 {
		return ErrInvalidIterations
	}
	if r.DelayMonths < 0 {
		return ErrInvalidDelay
	}
	return nil
}

// Schedule is the deterministic base path for a loan. CashFlows[0] is the
// disbursement (negative); CashFlows[1..term] are receipts. Outstanding[t]
// is the principal owed at the start of month t, so Outstanding[0] equals
// the principal. Both slices always have length term+1.
type Schedule struct {
	CashFlows   []float64
	Outstanding []float64
}

// Result is the sole artifact returned to the caller: deterministic base
// metrics plus the Monte Carlo distribution.
type Result struct {
	NPV        float64
	IRRMonthly float64 // NaN when no root was bracketed
	IRRAnnual  float64 // NaN when IRRMonthly is NaN
	// PaybackMonths is the first month where cumulative discounted cash flow
	// turns non-negative; meaningful only when PaybackFound.
	PaybackMonths int
	PaybackFound  bool

	MonteCarlo MonteCarloStats
}
