package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"loansim/internal/models"
)

type ListScenariosParams struct {
	Limit   int
	Offset  int
	Method  *string
	Search  *string
	OrderBy string
	Asc     *bool
}

// ScenarioValuation carries the deterministic base-case metrics stamped onto
// a scenario row after a revaluation pass.
type ScenarioValuation struct {
	NPV           decimal.Decimal
	IRRAnnualPct  *float64
	PaybackMonths *int
	At            time.Time
}

type Repository interface {
	CreateScenario(ctx context.Context, item *models.Scenario) error
	GetScenario(ctx context.Context, id uint64) (*models.Scenario, error)
	GetScenarioByName(ctx context.Context, name string) (*models.Scenario, error)
	ListScenarios(ctx context.Context, params ListScenariosParams) ([]models.Scenario, error)
	CountScenarios(ctx context.Context, params ListScenariosParams) (int64, error)
	UpdateScenario(ctx context.Context, item *models.Scenario) error
	DeleteScenario(ctx context.Context, id uint64) error
	UpdateScenarioValuation(ctx context.Context, id uint64, v ScenarioValuation) error
}
