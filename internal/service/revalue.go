package service

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"loansim/internal/engine"
	"loansim/internal/models"
	"loansim/internal/repository"
)

// ScenarioRevaluer refreshes the deterministic base-case metrics stored on
// saved scenarios. It never runs the Monte Carlo pass: stochastic outputs
// are not persisted.
type ScenarioRevaluer struct {
	Repo      repository.Repository
	Logger    *zap.Logger
	BatchSize int
}

func (r *ScenarioRevaluer) Run(ctx context.Context) error {
	if r == nil || r.Repo == nil {
		return nil
	}
	batch := r.BatchSize
	if batch <= 0 {
		batch = 200
	}
	asc := true
	offset := 0
	revalued, failed := 0, 0
	for {
		items, err := r.Repo.ListScenarios(ctx, repository.ListScenariosParams{
			Limit:   batch,
			Offset:  offset,
			OrderBy: "id",
			Asc:     &asc,
		})
		if err != nil {
			return err
		}
		if len(items) == 0 {
			break
		}
		for i := range items {
			if err := r.revalue(ctx, &items[i]); err != nil {
				failed++
				if r.Logger != nil {
					r.Logger.Warn("scenario revalue failed", zap.Uint64("id", items[i].ID), zap.Error(err))
				}
				continue
			}
			revalued++
		}
		if len(items) < batch {
			break
		}
		offset += batch
	}
	if r.Logger != nil {
		r.Logger.Info("scenario revaluation complete", zap.Int("revalued", revalued), zap.Int("failed", failed))
	}
	return nil
}

func (r *ScenarioRevaluer) revalue(ctx context.Context, sc *models.Scenario) error {
	terms := ScenarioTerms(sc)
	sched, err := engine.BuildSchedule(terms, engine.MonthlyRate(terms.AnnualRatePct))
	if err != nil {
		return err
	}
	discount := engine.MonthlyRate(sc.DiscountAnnualPct.InexactFloat64())

	valuation := repository.ScenarioValuation{
		NPV: decimal.NewFromFloat(engine.NPV(discount, sched.CashFlows)),
		At:  time.Now().UTC(),
	}
	if irr := engine.IRR(sched.CashFlows); !math.IsNaN(irr) {
		pct := engine.AnnualRate(irr) * 100
		valuation.IRRAnnualPct = &pct
	}
	if months, ok := engine.DiscountedPayback(discount, sched.CashFlows); ok {
		valuation.PaybackMonths = &months
	}
	return r.Repo.UpdateScenarioValuation(ctx, sc.ID, valuation)
}
