package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

// ScenarioHandler exposes saved scenarios and the comparator.
type ScenarioHandler struct {
	scenarios ScenarioService
	planner   PlannerService
	logger    *zap.Logger
}

// NewScenarioHandler constructs the scenario HTTP adapter.
func NewScenarioHandler(scenarios ScenarioService, planner PlannerService, logger *zap.Logger) *ScenarioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScenarioHandler{scenarios: scenarios, planner: planner, logger: logger}
}

// scenarioRequest carries an optional name and configuration. A missing
// configuration means "use the current draft".
type scenarioRequest struct {
	Name   string                        `json:"name"`
	Config *models.BusinessConfiguration `json:"config"`
}

func (h *ScenarioHandler) bindScenario(c *gin.Context) (scenarioRequest, bool) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid scenario payload", zap.Error(err))
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return req, false
	}
	return req, true
}

func (h *ScenarioHandler) configOrDraft(req scenarioRequest) models.BusinessConfiguration {
	if req.Config != nil {
		return *req.Config
	}
	return h.planner.Draft()
}

func (h *ScenarioHandler) fail(c *gin.Context, msg string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Debug(msg, zap.Error(err))
	}
	abortWithError(c, status, err.Error())
}

// List returns saved scenarios, oldest first.
func (h *ScenarioHandler) List(c *gin.Context) {
	list, err := h.scenarios.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list scenarios failed", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// Create saves the draft, or the supplied configuration, under a name.
func (h *ScenarioHandler) Create(c *gin.Context) {
	req, ok := h.bindScenario(c)
	if !ok {
		return
	}
	scenario, err := h.scenarios.Save(c.Request.Context(), req.Name, h.configOrDraft(req))
	if err != nil {
		h.fail(c, "save scenario failed", err)
		return
	}
	c.JSON(http.StatusCreated, scenario)
}

// Update overwrites a scenario with the draft, or the supplied configuration.
func (h *ScenarioHandler) Update(c *gin.Context) {
	req, ok := h.bindScenario(c)
	if !ok {
		return
	}
	scenario, err := h.scenarios.Update(c.Request.Context(), c.Param("id"), req.Name, h.configOrDraft(req))
	if err != nil {
		h.fail(c, "update scenario failed", err)
		return
	}
	c.JSON(http.StatusOK, scenario)
}

// Delete removes a scenario.
func (h *ScenarioHandler) Delete(c *gin.Context) {
	if err := h.scenarios.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete scenario failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Load copies a scenario's configuration into the draft.
func (h *ScenarioHandler) Load(c *gin.Context) {
	scenario, err := h.scenarios.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "load scenario failed", err)
		return
	}
	c.JSON(http.StatusOK, h.planner.LoadScenario(scenario))
}

// Comparison evaluates every saved scenario, with the draft first unless
// includeDraft=false.
func (h *ScenarioHandler) Comparison(c *gin.Context) {
	includeDraft := true
	if raw := c.Query("includeDraft"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "includeDraft must be a boolean")
			return
		}
		includeDraft = v
	}

	var draft *models.BusinessConfiguration
	if includeDraft {
		cfg := h.planner.Draft()
		draft = &cfg
	}

	cmp, err := h.scenarios.Compare(c.Request.Context(), draft)
	if err != nil {
		h.fail(c, "compare scenarios failed", err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}
