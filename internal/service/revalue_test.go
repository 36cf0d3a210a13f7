package service

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"loansim/internal/models"
)

func savedScenario(name string, discountPct float64) models.Scenario {
	return models.Scenario{
		Name:              name,
		Principal:         decimal.NewFromInt(100000),
		TermMonths:        12,
		AnnualRatePct:     decimal.NewFromInt(12),
		Method:            "PRICE",
		DiscountAnnualPct: decimal.NewFromFloat(discountPct),
		Iterations:        1000,
	}
}

func TestRevaluerStampsBaseCase(t *testing.T) {
	repo := &stubRepo{}
	for _, sc := range []models.Scenario{
		savedScenario("matched-discount", 12),
		savedScenario("cheap-funding", 8),
	} {
		item := sc
		if err := repo.CreateScenario(context.Background(), &item); err != nil {
			t.Fatalf("seed scenario: %v", err)
		}
	}

	r := &ScenarioRevaluer{Repo: repo}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(repo.valuations) != 2 {
		t.Fatalf("expected 2 valuations, got %d", len(repo.valuations))
	}

	// Discounting at the contract rate prices the loan fairly.
	matched := repo.valuations[1]
	if npv, _ := matched.NPV.Float64(); math.Abs(npv) > 1e-4 {
		t.Fatalf("matched-discount NPV should be ~0, got %v", npv)
	}
	if matched.IRRAnnualPct == nil || math.Abs(*matched.IRRAnnualPct-12) > 1e-4 {
		t.Fatalf("IRR should recover the 12%% contract rate, got %v", matched.IRRAnnualPct)
	}
	if matched.At.IsZero() {
		t.Fatal("valuation timestamp not stamped")
	}

	// A discount below the contract rate makes the loan profitable and
	// recoverable within the term.
	cheap := repo.valuations[2]
	if npv, _ := cheap.NPV.Float64(); npv <= 0 {
		t.Fatalf("cheap-funding NPV should be positive, got %v", npv)
	}
	if cheap.PaybackMonths == nil || *cheap.PaybackMonths < 1 || *cheap.PaybackMonths > 12 {
		t.Fatalf("payback should land within the term, got %v", cheap.PaybackMonths)
	}
}

func TestRevaluerPaginatesBatches(t *testing.T) {
	repo := &stubRepo{}
	for i := 0; i < 7; i++ {
		item := savedScenario(string(rune('a'+i)), 10)
		if err := repo.CreateScenario(context.Background(), &item); err != nil {
			t.Fatalf("seed scenario: %v", err)
		}
	}

	r := &ScenarioRevaluer{Repo: repo, BatchSize: 3}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(repo.valuations) != 7 {
		t.Fatalf("expected all 7 scenarios revalued, got %d", len(repo.valuations))
	}
}

func TestRevaluerSkipsBrokenScenarios(t *testing.T) {
	repo := &stubRepo{}
	good := savedScenario("good", 10)
	bad := savedScenario("bad", 10)
	bad.Method = "BULLET"
	for _, sc := range []models.Scenario{good, bad} {
		item := sc
		if err := repo.CreateScenario(context.Background(), &item); err != nil {
			t.Fatalf("seed scenario: %v", err)
		}
	}

	r := &ScenarioRevaluer{Repo: repo}
	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run should survive a broken row: %v", err)
	}
	if _, ok := repo.valuations[1]; !ok {
		t.Fatal("healthy scenario was not revalued")
	}
	if _, ok := repo.valuations[2]; ok {
		t.Fatal("broken scenario should have been skipped")
	}
}
