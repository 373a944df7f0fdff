package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/terrazza/bizplanner/internal/domain/models"
	"github.com/terrazza/bizplanner/internal/service/reporting"
	"github.com/terrazza/bizplanner/internal/service/scenarios"
)

// maxMonths bounds the projection horizon accepted over HTTP.
const maxMonths = 120

// PlannerService is the draft surface the HTTP layer depends on.
type PlannerService interface {
	Draft() models.BusinessConfiguration
	UpdateDraft(cfg models.BusinessConfiguration) models.BusinessConfiguration
	ResetDraft() models.BusinessConfiguration
	LoadScenario(scenario models.Scenario) models.BusinessConfiguration
	DraftDashboard(months int) models.Dashboard
	DraftWithDashboard(months int) (models.BusinessConfiguration, models.Dashboard)
}

// ScenarioService is the scenario surface the HTTP layer depends on.
type ScenarioService interface {
	List(ctx context.Context) ([]models.Scenario, error)
	Get(ctx context.Context, id string) (models.Scenario, error)
	Save(ctx context.Context, name string, cfg models.BusinessConfiguration) (models.Scenario, error)
	Update(ctx context.Context, id, name string, cfg models.BusinessConfiguration) (models.Scenario, error)
	Delete(ctx context.Context, id string) error
	Compare(ctx context.Context, draft *models.BusinessConfiguration) (models.Comparison, error)
}

// ReportService is the reporting surface the HTTP layer depends on.
type ReportService interface {
	GenerateStrategy(ctx context.Context, cfg models.BusinessConfiguration, dashboard models.Dashboard) (models.StrategyReport, error)
	ExportProjection(ctx context.Context, dashboard models.Dashboard, comparison models.Comparison) error
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrScenarioNotFound):
		return http.StatusNotFound
	case errors.Is(err, scenarios.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, reporting.ErrNarratorUnavailable), errors.Is(err, reporting.ErrSheetsUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// monthsParam reads ?months=N. Absent means -1 so the service picks its default.
func monthsParam(c *gin.Context) (int, bool) {
	raw, ok := c.GetQuery("months")
	if !ok || raw == "" {
		return -1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > maxMonths {
		return 0, false
	}
	return n, true
}
