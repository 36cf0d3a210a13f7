package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Scenario is a saved parameter set for the simulator. Only inputs and the
// last deterministic base-case valuation live here; Monte Carlo outputs are
// never persisted.
type Scenario struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"type:text"`

	// Loan terms. Money-like values are stored as numeric to avoid float errors.
	Principal     decimal.Decimal `gorm:"type:numeric(30,10);not null"`
	TermMonths    int             `gorm:"not null"`
	AnnualRatePct decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	Method        string          `gorm:"type:varchar(10);not null;default:'PRICE'"`
	GraceMonths   int             `gorm:"not null;default:0"`

	// Valuation and risk parameters.
	DiscountAnnualPct   decimal.Decimal `gorm:"type:numeric(20,10);not null"`
	AnnualDefaultPct    decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0"`
	LossGivenDefaultPct decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0"`
	DelayProbabilityPct decimal.Decimal `gorm:"type:numeric(20,10);not null;default:0"`
	DelayMonths         int             `gorm:"not null;default:0"`
	Iterations          int             `gorm:"not null;default:10000"`
	Seed                *string         `gorm:"type:varchar(40)"`

	Tags datatypes.JSON `gorm:"type:jsonb"`

	// Last deterministic base-case valuation, refreshed by the revalue cron.
	BaseNPV           *decimal.Decimal `gorm:"type:numeric(30,10)"`
	BaseIRRAnnualPct  *float64
	BasePaybackMonths *int
	RevaluedAt        *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime"`
}

func (Scenario) TableName() string {
	return "scenarios"
}
