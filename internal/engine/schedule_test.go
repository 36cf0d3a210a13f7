package engine

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestBuildSchedule_ZeroRateRepaysExactlyPrincipal(t *testing.T) {
	for _, method := range []Method{MethodPrice, MethodSAC} {
		terms := LoanTerms{
			Principal:  120000,
			TermMonths: 24,
			Method:     method,
		}
		sched, err := BuildSchedule(terms, 0)
		if err != nil {
			t.Fatalf("%s: err=%v", method, err)
		}
		if len(sched.CashFlows) != terms.TermMonths+1 {
			t.Fatalf("%s: len=%d want=%d", method, len(sched.CashFlows), terms.TermMonths+1)
		}
		total := 0.0
		for _, cf := range sched.CashFlows[1:] {
			total += cf
		}
		if !almostEqual(total, terms.Principal, 1e-6) {
			t.Fatalf("%s: total repaid=%f want=%f", method, total, terms.Principal)
		}
		// At zero rate the last start-of-month balance must equal the last
		// installment, i.e. the balance hits exactly zero at term.
		last := terms.TermMonths
		if !almostEqual(sched.Outstanding[last], sched.CashFlows[last], 1e-6) {
			t.Fatalf("%s: final balance=%f last installment=%f", method, sched.Outstanding[last], sched.CashFlows[last])
		}
	}
}

func TestBuildSchedule_GraceEqualsTermIsInterestOnly(t *testing.T) {
	terms := LoanTerms{
		Principal:     50000,
		TermMonths:    12,
		AnnualRatePct: 10,
		Method:        MethodPrice,
		GraceMonths:   12,
	}
	rate := MonthlyRate(terms.AnnualRatePct)
	sched, err := BuildSchedule(terms, rate)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	for m := 1; m <= terms.TermMonths; m++ {
		if !almostEqual(sched.CashFlows[m], terms.Principal*rate, 1e-9) {
			t.Fatalf("month %d: cf=%f want interest-only %f", m, sched.CashFlows[m], terms.Principal*rate)
		}
		if sched.Outstanding[m] != terms.Principal {
			t.Fatalf("month %d: balance=%f want frozen at %f", m, sched.Outstanding[m], terms.Principal)
		}
	}
}

// The outstanding series returned by BuildSchedule must agree with a balance
// series rebuilt independently from the cash flows alone. The builder fills
// both in one pass, so this guards the single-pass refactor.
func TestBuildSchedule_BalanceSeriesAgreesWithCashFlows(t *testing.T) {
	cases := []LoanTerms{
		{Principal: 100000, TermMonths: 36, AnnualRatePct: 14.5, Method: MethodPrice, GraceMonths: 0},
		{Principal: 100000, TermMonths: 36, AnnualRatePct: 14.5, Method: MethodSAC, GraceMonths: 0},
		{Principal: 250000, TermMonths: 48, AnnualRatePct: 9, Method: MethodPrice, GraceMonths: 6},
		{Principal: 250000, TermMonths: 48, AnnualRatePct: 9, Method: MethodSAC, GraceMonths: 6},
	}
	for _, terms := range cases {
		rate := MonthlyRate(terms.AnnualRatePct)
		sched, err := BuildSchedule(terms, rate)
		if err != nil {
			t.Fatalf("%s grace=%d: err=%v", terms.Method, terms.GraceMonths, err)
		}
		balance := terms.Principal
		for m := 1; m <= terms.TermMonths; m++ {
			if !almostEqual(sched.Outstanding[m], balance, 1e-6) {
				t.Fatalf("%s grace=%d month %d: balance=%f recomputed=%f",
					terms.Method, terms.GraceMonths, m, sched.Outstanding[m], balance)
			}
			amort := sched.CashFlows[m] - balance*rate
			if m > terms.GraceMonths {
				balance -= amort
				if balance < 0 {
					balance = 0
				}
			}
		}
		if !almostEqual(balance, 0, 1e-6) {
			t.Fatalf("%s grace=%d: balance after last installment=%f want 0", terms.Method, terms.GraceMonths, balance)
		}
	}
}

func TestBuildSchedule_Validation(t *testing.T) {
	tests := []struct {
		name  string
		terms LoanTerms
		want  error
	}{
		{"zero principal", LoanTerms{Principal: 0, TermMonths: 12, Method: MethodPrice}, ErrInvalidPrincipal},
		{"negative principal", LoanTerms{Principal: -1, TermMonths: 12, Method: MethodPrice}, ErrInvalidPrincipal},
		{"zero term", LoanTerms{Principal: 100, TermMonths: 0, Method: MethodPrice}, ErrInvalidTerm},
		{"negative grace", LoanTerms{Principal: 100, TermMonths: 12, GraceMonths: -1, Method: MethodPrice}, ErrInvalidGrace},
		{"grace beyond term", LoanTerms{Principal: 100, TermMonths: 12, GraceMonths: 13, Method: MethodPrice}, ErrInvalidGrace},
		{"unknown method", LoanTerms{Principal: 100, TermMonths: 12, Method: Method("BULLET")}, ErrUnknownMethod},
	}
	for _, tt := range tests {
		if _, err := BuildSchedule(tt.terms, 0.01); err != tt.want {
			t.Fatalf("%s: err=%v want=%v", tt.name, err, tt.want)
		}
	}
}
