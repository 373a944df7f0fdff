package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

// PlannerHandler exposes the working draft and its dashboard.
type PlannerHandler struct {
	planner PlannerService
	logger  *zap.Logger
}

// NewPlannerHandler constructs the draft HTTP adapter.
func NewPlannerHandler(planner PlannerService, logger *zap.Logger) *PlannerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlannerHandler{planner: planner, logger: logger}
}

// GetDraft returns the current draft configuration.
func (h *PlannerHandler) GetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.planner.Draft())
}

// PutDraft replaces the draft with the request body.
func (h *PlannerHandler) PutDraft(c *gin.Context) {
	var cfg models.BusinessConfiguration
	if err := c.ShouldBindJSON(&cfg); err != nil {
		h.logger.Warn("invalid draft payload", zap.Error(err))
		abortWithError(c, http.StatusBadRequest, "invalid configuration body")
		return
	}
	c.JSON(http.StatusOK, h.planner.UpdateDraft(cfg))
}

// ResetDraft restores the default configuration.
func (h *PlannerHandler) ResetDraft(c *gin.Context) {
	c.JSON(http.StatusOK, h.planner.ResetDraft())
}

// Dashboard evaluates the draft.
func (h *PlannerHandler) Dashboard(c *gin.Context) {
	months, ok := monthsParam(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "months must be an integer between 0 and 120")
		return
	}
	c.JSON(http.StatusOK, h.planner.DraftDashboard(months))
}
