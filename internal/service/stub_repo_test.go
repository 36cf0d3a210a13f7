package service

import (
	"context"

	"loansim/internal/models"
	"loansim/internal/repository"
)

type stubRepo struct {
	scenarios  []models.Scenario
	valuations map[uint64]repository.ScenarioValuation
	listErr    error
}

func (r *stubRepo) CreateScenario(ctx context.Context, item *models.Scenario) error {
	item.ID = uint64(len(r.scenarios) + 1)
	r.scenarios = append(r.scenarios, *item)
	return nil
}

func (r *stubRepo) GetScenario(ctx context.Context, id uint64) (*models.Scenario, error) {
	for i := range r.scenarios {
		if r.scenarios[i].ID == id {
			sc := r.scenarios[i]
			return &sc, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) GetScenarioByName(ctx context.Context, name string) (*models.Scenario, error) {
	for i := range r.scenarios {
		if r.scenarios[i].Name == name {
			sc := r.scenarios[i]
			return &sc, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) ListScenarios(ctx context.Context, params repository.ListScenariosParams) ([]models.Scenario, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	if params.Offset >= len(r.scenarios) {
		return nil, nil
	}
	end := params.Offset + params.Limit
	if params.Limit <= 0 || end > len(r.scenarios) {
		end = len(r.scenarios)
	}
	return r.scenarios[params.Offset:end], nil
}

func (r *stubRepo) CountScenarios(ctx context.Context, params repository.ListScenariosParams) (int64, error) {
	return int64(len(r.scenarios)), nil
}

func (r *stubRepo) UpdateScenario(ctx context.Context, item *models.Scenario) error {
	for i := range r.scenarios {
		if r.scenarios[i].ID == item.ID {
			r.scenarios[i] = *item
			return nil
		}
	}
	return nil
}

func (r *stubRepo) DeleteScenario(ctx context.Context, id uint64) error {
	out := r.scenarios[:0]
	for _, sc := range r.scenarios {
		if sc.ID != id {
			out = append(out, sc)
		}
	}
	r.scenarios = out
	return nil
}

func (r *stubRepo) UpdateScenarioValuation(ctx context.Context, id uint64, v repository.ScenarioValuation) error {
	if r.valuations == nil {
		r.valuations = map[uint64]repository.ScenarioValuation{}
	}
	r.valuations[id] = v
	return nil
}

type stubCache struct {
	data map[string][]byte
	gets int
	sets int
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.gets++
	v, ok := c.data[key]
	return v, ok
}

func (c *stubCache) Set(ctx context.Context, key string, value []byte) {
	c.sets++
	if c.data == nil {
		c.data = map[string][]byte{}
	}
	c.data[key] = value
}
