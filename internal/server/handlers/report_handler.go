package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler exposes narrative reports and the spreadsheet export.
type ReportHandler struct {
	reports   ReportService
	planner   PlannerService
	scenarios ScenarioService
	logger    *zap.Logger
}

// NewReportHandler constructs the reporting HTTP adapter.
func NewReportHandler(reports ReportService, planner PlannerService, scenarios ScenarioService, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{reports: reports, planner: planner, scenarios: scenarios, logger: logger}
}

// Generate narrates a strategy report for the draft.
func (h *ReportHandler) Generate(c *gin.Context) {
	months, ok := monthsParam(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "months must be an integer between 0 and 120")
		return
	}

	cfg, dashboard := h.planner.DraftWithDashboard(months)
	report, err := h.reports.GenerateStrategy(c.Request.Context(), cfg, dashboard)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		h.logger.Warn("report generation failed", zap.Error(err))
		abortWithError(c, status, err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// Export writes the draft projection and the comparison to the spreadsheet.
func (h *ReportHandler) Export(c *gin.Context) {
	months, ok := monthsParam(c)
	if !ok {
		abortWithError(c, http.StatusBadRequest, "months must be an integer between 0 and 120")
		return
	}

	ctx := c.Request.Context()
	draft, dashboard := h.planner.DraftWithDashboard(months)
	cmp, err := h.scenarios.Compare(ctx, &draft)
	if err != nil {
		h.logger.Error("export comparison failed", zap.Error(err))
		abortWithError(c, statusFor(err), err.Error())
		return
	}

	if err := h.reports.ExportProjection(ctx, dashboard, cmp); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		h.logger.Warn("export failed", zap.Error(err))
		abortWithError(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "exported",
		"months":    len(dashboard.Projection),
		"scenarios": len(cmp.Rows),
	})
}
