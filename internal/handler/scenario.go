package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"loansim/internal/models"
	"loansim/internal/repository"
	"loansim/internal/service"
)

var errNameRequired = errors.New("name required")

var scenarioOrderColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"principal":  "principal",
	"npv":        "base_npv",
}

type ScenarioHandler struct {
	Repo        repository.Repository
	Simulations *service.SimulationService
}

func (h *ScenarioHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/scenarios")
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
	group.POST("/:id/simulate", h.simulate)
}

// scenarioRequest is the write payload for saved scenarios. Percent fields
// are percentages, matching the simulation input contract.
type scenarioRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`

	Principal     float64 `json:"principal"`
	TermMonths    int     `json:"term_months"`
	AnnualRatePct float64 `json:"annual_rate_pct"`
	Method        string  `json:"method"`
	GraceMonths   int     `json:"grace_months"`

	DiscountAnnualPct   float64 `json:"discount_annual_pct"`
	AnnualDefaultPct    float64 `json:"annual_default_pct"`
	LossGivenDefaultPct float64 `json:"loss_given_default_pct"`
	DelayProbabilityPct float64 `json:"delay_probability_pct"`
	DelayMonths         int     `json:"delay_months"`
	Iterations          int     `json:"iterations"`
	Seed                string  `json:"seed"`

	Tags []string `json:"tags"`
}

// simulateOverrides lets a stored scenario run with a different sample count
// or seed without mutating the saved row. The body is optional.
type simulateOverrides struct {
	Iterations *int    `json:"iterations"`
	Seed       *string `json:"seed"`
}

// @Summary Create a scenario
// @Tags scenarios
// @Accept json
// @Produce json
// @Success 200 {object} models.Scenario
// @Failure 400 {object} map[string]string
// @Router /api/v1/scenarios [post]
func (h *ScenarioHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	item, err := h.toModel(&req)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	existing, err := h.Repo.GetScenarioByName(c.Request.Context(), item.Name)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if existing != nil {
		Error(c, http.StatusConflict, "scenario name already in use", nil)
		return
	}
	if err := h.Repo.CreateScenario(c.Request.Context(), item); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, item, nil)
}

// @Summary List scenarios
// @Tags scenarios
// @Produce json
// @Param method query string false "filter by amortization method"
// @Param search query string false "match against name and description"
// @Param limit query int false "page size"
// @Param offset query int false "page offset"
// @Success 200 {array} models.Scenario
// @Router /api/v1/scenarios [get]
func (h *ScenarioHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	params := repository.ListScenariosParams{
		Limit:   limit,
		Offset:  offset,
		OrderBy: parseOrder(c.Query("order_by"), scenarioOrderColumns),
		Asc:     boolPtr(strings.EqualFold(c.Query("order"), "asc")),
	}
	if method := strings.ToUpper(strings.TrimSpace(c.Query("method"))); method != "" {
		params.Method = &method
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		params.Search = &search
	}

	items, err := h.Repo.ListScenarios(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountScenarios(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a scenario
// @Tags scenarios
// @Produce json
// @Param id path int true "scenario id"
// @Success 200 {object} models.Scenario
// @Failure 404 {object} map[string]string
// @Router /api/v1/scenarios/{id} [get]
func (h *ScenarioHandler) get(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	Ok(c, item, nil)
}

// @Summary Update a scenario
// @Tags scenarios
// @Accept json
// @Produce json
// @Param id path int true "scenario id"
// @Success 200 {object} models.Scenario
// @Failure 404 {object} map[string]string
// @Router /api/v1/scenarios/{id} [put]
func (h *ScenarioHandler) update(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
	}
	next, err := h.toModel(&req)
	if err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if next.Name != item.Name {
		existing, err := h.Repo.GetScenarioByName(c.Request.Context(), next.Name)
		if err != nil {
			Error(c, http.StatusBadGateway, err.Error(), nil)
			return
		}
		if existing != nil && existing.ID != item.ID {
			Error(c, http.StatusConflict, "scenario name already in use", nil)
			return
		}
	}
	next.ID = item.ID
	next.CreatedAt = item.CreatedAt
	// Parameter edits invalidate the stored base-case valuation; the cron
	// refreshes it on its next pass.
	if err := h.Repo.UpdateScenario(c.Request.Context(), next); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, next, nil)
}

// @Summary Delete a scenario
// @Tags scenarios
// @Produce json
// @Param id path int true "scenario id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/v1/scenarios/{id} [delete]
func (h *ScenarioHandler) delete(c *gin.Context) {
	item, ok := h.load(c)
	if !ok {
		return
	}
	if err := h.Repo.DeleteScenario(c.Request.Context(), item.ID); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, map[string]any{"id": item.ID, "deleted": true}, nil)
}

// @Summary Simulate a stored scenario
// @Description Runs the full simulation for a saved parameter set. The optional body overrides iterations and seed for this run only.
// @Tags scenarios
// @Accept json
// @Produce json
// @Param id path int true "scenario id"
// @Success 200 {object} service.SimulationResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/scenarios/{id}/simulate [post]
func (h *ScenarioHandler) simulate(c *gin.Context) {
	if h.Simulations == nil {
		Error(c, http.StatusInternalServerError, "simulation service unavailable", nil)
		return
	}
	item, ok := h.load(c)
	if !ok {
		return
	}
	req := service.ScenarioRequest(item)

	if c.Request.ContentLength > 0 {
		var overrides simulateOverrides
		if err := c.ShouldBindJSON(&overrides); err != nil {
			Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
			return
		}
		if overrides.Iterations != nil {
			req.Iterations = *overrides.Iterations
		}
		if overrides.Seed != nil {
			req.Seed = *overrides.Seed
		}
	}

	resp, err := h.Simulations.Run(c.Request.Context(), req)
	if err != nil {
		if service.IsValidationError(err) {
			Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, resp, map[string]any{"scenario_id": item.ID, "scenario_name": item.Name})
}

func (h *ScenarioHandler) load(c *gin.Context) (*models.Scenario, bool) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return nil, false
	}
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return nil, false
	}
	item, err := h.Repo.GetScenario(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return nil, false
	}
	if item == nil {
		Error(c, http.StatusNotFound, "scenario not found", nil)
		return nil, false
	}
	return item, true
}

func (h *ScenarioHandler) toModel(req *scenarioRequest) (*models.Scenario, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errNameRequired
	}
	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = "PRICE"
	}
	item := &models.Scenario{
		Name:                name,
		Description:         strings.TrimSpace(req.Description),
		Principal:           decimal.NewFromFloat(req.Principal),
		TermMonths:          req.TermMonths,
		AnnualRatePct:       decimal.NewFromFloat(req.AnnualRatePct),
		Method:              method,
		GraceMonths:         req.GraceMonths,
		DiscountAnnualPct:   decimal.NewFromFloat(req.DiscountAnnualPct),
		AnnualDefaultPct:    decimal.NewFromFloat(req.AnnualDefaultPct),
		LossGivenDefaultPct: decimal.NewFromFloat(req.LossGivenDefaultPct),
		DelayProbabilityPct: decimal.NewFromFloat(req.DelayProbabilityPct),
		DelayMonths:         req.DelayMonths,
		Iterations:          req.Iterations,
	}
	if seed := strings.TrimSpace(req.Seed); seed != "" {
		item.Seed = &seed
	}
	if len(req.Tags) > 0 {
		tags, err := tagsJSON(req.Tags)
		if err != nil {
			return nil, err
		}
		item.Tags = tags
	}
	return item, nil
}

func tagsJSON(tags []string) (datatypes.JSON, error) {
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			cleaned = append(cleaned, tag)
		}
	}
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
