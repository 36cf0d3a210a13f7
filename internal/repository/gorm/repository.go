package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"loansim/internal/models"
	"loansim/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateScenario(ctx context.Context, item *models.Scenario) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetScenario(ctx context.Context, id uint64) (*models.Scenario, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Scenario
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetScenarioByName(ctx context.Context, name string) (*models.Scenario, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Scenario
	err := s.db.WithContext(ctx).First(&item, "name = ?", strings.TrimSpace(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func scenarioQuery(db *gorm.DB, params repository.ListScenariosParams) *gorm.DB {
	query := db.Model(&models.Scenario{})
	if params.Method != nil && strings.TrimSpace(*params.Method) != "" {
		query = query.Where("method = ?", strings.ToUpper(strings.TrimSpace(*params.Method)))
	}
	if params.Search != nil && strings.TrimSpace(*params.Search) != "" {
		needle := "%" + strings.TrimSpace(*params.Search) + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", needle, needle)
	}
	return query
}

func (s *Store) ListScenarios(ctx context.Context, params repository.ListScenariosParams) ([]models.Scenario, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := scenarioQuery(s.db.WithContext(ctx), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	limit := normalizeLimit(params.Limit, 100)
	offset := normalizeOffset(params.Offset)
	var items []models.Scenario
	if err := query.Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountScenarios(ctx context.Context, params repository.ListScenariosParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := scenarioQuery(s.db.WithContext(ctx), params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) UpdateScenario(ctx context.Context, item *models.Scenario) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) DeleteScenario(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&models.Scenario{}, "id = ?", id).Error
}

func (s *Store) UpdateScenarioValuation(ctx context.Context, id uint64, v repository.ScenarioValuation) error {
	if s == nil || s.db == nil {
		return nil
	}
	updates := map[string]any{
		"base_npv":            v.NPV,
		"base_irr_annual_pct": v.IRRAnnualPct,
		"base_payback_months": v.PaybackMonths,
		"revalued_at":         v.At,
	}
	return s.db.WithContext(ctx).
		Model(&models.Scenario{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "DESC"
	if asc != nil && *asc {
		direction = "ASC"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
