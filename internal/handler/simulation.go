package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loansim/internal/service"
)

type SimulationHandler struct {
	Simulations *service.SimulationService
}

func (h *SimulationHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/simulations", h.run)
}

// @Summary Run a cash-flow simulation
// @Description Builds the amortization schedule, values the base case and runs the Monte Carlo risk pass.
// @Tags simulations
// @Accept json
// @Produce json
// @Param request body service.SimulationRequest true "loan terms, discount rate and risk parameters"
// @Success 200 {object} service.SimulationResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/simulations [post]
func (h *SimulationHandler) run(c *gin.Context) {
	if h.Simulations == nil {
		Error(c, http.StatusInternalServerError, "simulation service unavailable", nil)
		return
	}
	var req service.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body: "+err.Error(), nil)
		return
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
	Ok(c, resp, nil)
}
