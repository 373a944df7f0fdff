package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/terrazza/bizplanner/internal/domain/models"
	"github.com/terrazza/bizplanner/internal/engine"
	"github.com/terrazza/bizplanner/internal/repository/memory"
	"github.com/terrazza/bizplanner/internal/service/planner"
	"github.com/terrazza/bizplanner/internal/service/reporting"
	"github.com/terrazza/bizplanner/internal/service/scenarios"
)

type stubNarrator struct{ err error }

func (stubNarrator) Name() string { return "stub" }

func (s stubNarrator) Generate(context.Context, string) (string, error) {
	return "## 전략", s.err
}

type testEnv struct {
	router  *gin.Engine
	planner *planner.Service
}

func newTestEnv(t *testing.T, opts reporting.Options) testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)

	rates := engine.DefaultLaborRates()
	plannerSvc := planner.NewService(rates, 10, nil, logger)
	scenarioSvc := scenarios.NewService(memory.NewRepository(), rates, nil, logger)
	reportSvc := reporting.NewService(opts, logger)

	ph := NewPlannerHandler(plannerSvc, logger)
	sh := NewScenarioHandler(scenarioSvc, plannerSvc, logger)
	rh := NewReportHandler(reportSvc, plannerSvc, scenarioSvc, logger)

	r := gin.New()
	r.GET("/draft", ph.GetDraft)
	r.PUT("/draft", ph.PutDraft)
	r.POST("/draft/reset", ph.ResetDraft)
	r.GET("/dashboard", ph.Dashboard)
	r.GET("/scenarios", sh.List)
	r.POST("/scenarios", sh.Create)
	r.PUT("/scenarios/:id", sh.Update)
	r.DELETE("/scenarios/:id", sh.Delete)
	r.POST("/scenarios/:id/load", sh.Load)
	r.GET("/comparison", sh.Comparison)
	r.POST("/report", rh.Generate)
	r.POST("/export", rh.Export)

	return testEnv{router: r, planner: plannerSvc}
}

func (e testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

func TestDraftRoundTrip(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})

	w := env.do(t, http.MethodGet, "/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.DefaultConfiguration(), decode[models.BusinessConfiguration](t, w))

	cfg := models.DefaultConfiguration()
	cfg.Cafe.SeatCount = 80
	w = env.do(t, http.MethodPut, "/draft", cfg)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 80.0, env.planner.Draft().Cafe.SeatCount)

	w = env.do(t, http.MethodPost, "/draft/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 60.0, env.planner.Draft().Cafe.SeatCount)
}

func TestPutDraft_InvalidBody(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})
	req := httptest.NewRequest(http.MethodPut, "/draft", bytes.NewBufferString(`{"cafe":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})

	w := env.do(t, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	dash := decode[models.Dashboard](t, w)
	assert.Len(t, dash.Projection, 10)
	assert.Equal(t, "M+5", dash.BreakLabel)
	assert.InDelta(t, 16150288, dash.Summary.NetProfit, 1e-6)

	w = env.do(t, http.MethodGet, "/dashboard?months=0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"projection":[]`)
	assert.Contains(t, w.Body.String(), `"breakEven":null`)
	assert.Contains(t, w.Body.String(), `"payback":5`)

	for _, q := range []string{"-1", "abc", "121"} {
		w = env.do(t, http.MethodGet, "/dashboard?months="+q, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}

func TestScenarioLifecycle(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})

	w := env.do(t, http.MethodPost, "/scenarios", map[string]any{"name": "base"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Scenario](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.DefaultConfiguration(), created.Config)

	alt := models.DefaultConfiguration()
	alt.Wine.DailyTables = 8
	w = env.do(t, http.MethodPut, "/scenarios/"+created.ID, map[string]any{"name": "wine heavy", "config": alt})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Scenario](t, w)
	assert.Equal(t, "wine heavy", updated.Name)
	assert.Equal(t, 8.0, updated.Config.Wine.DailyTables)

	w = env.do(t, http.MethodGet, "/scenarios", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Scenario](t, w), 1)

	w = env.do(t, http.MethodPost, "/scenarios/"+created.ID+"/load", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 8.0, env.planner.Draft().Wine.DailyTables)

	w = env.do(t, http.MethodDelete, "/scenarios/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodDelete, "/scenarios/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodPost, "/scenarios/"+created.ID+"/load", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateScenario_EmptyBodyUsesDraft(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})

	w := env.do(t, http.MethodPost, "/scenarios", map[string]any{"name": "base"})
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[models.Scenario](t, w)

	cfg := models.DefaultConfiguration()
	cfg.Cafe.PriceLatte = 6000
	env.planner.UpdateDraft(cfg)

	w = env.do(t, http.MethodPut, "/scenarios/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[models.Scenario](t, w)
	assert.Equal(t, "base", updated.Name)
	assert.Equal(t, 6000.0, updated.Config.Cafe.PriceLatte)
}

func TestCreateScenario_EmptyName(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})
	w := env.do(t, http.MethodPost, "/scenarios", map[string]any{"name": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateScenario_Missing(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})
	w := env.do(t, http.MethodPut, "/scenarios/missing", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestComparison(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})

	w := env.do(t, http.MethodGet, "/comparison?includeDraft=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"rows":[],"bestRevenue":null,"bestProfit":null,"bestMargin":null,"fastestPayback":null}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/comparison", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cmp := decode[models.Comparison](t, w)
	require.Len(t, cmp.Rows, 1)
	assert.True(t, cmp.Rows[0].IsDraft)
	assert.Equal(t, models.PaybackAt(5), cmp.Rows[0].PaybackMonths)

	w = env.do(t, http.MethodGet, "/comparison?includeDraft=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReport(t *testing.T) {
	env := newTestEnv(t, reporting.Options{Narrator: stubNarrator{}})

	w := env.do(t, http.MethodPost, "/report", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decode[models.StrategyReport](t, w)
	assert.Equal(t, "## 전략", report.Content)
	assert.Equal(t, "stub", report.Provider)
	assert.Equal(t, "M+5", report.Snapshot.BreakEven)
}

func TestReport_Unavailable(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})
	w := env.do(t, http.MethodPost, "/report", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestReport_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t, reporting.Options{Narrator: stubNarrator{err: errors.New("timeout")}})
	w := env.do(t, http.MethodPost, "/report", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestExport_Unavailable(t *testing.T) {
	env := newTestEnv(t, reporting.Options{})
	w := env.do(t, http.MethodPost, "/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

type recordingSheets struct{ ranges []string }

func (r *recordingSheets) ReplaceRange(_ context.Context, sheetRange string, _ [][]interface{}) error {
	r.ranges = append(r.ranges, sheetRange)
	return nil
}

func (r *recordingSheets) AppendRow(_ context.Context, sheetRange string, _ []interface{}) error {
	r.ranges = append(r.ranges, sheetRange)
	return nil
}

func TestExport(t *testing.T) {
	sheets := &recordingSheets{}
	env := newTestEnv(t, reporting.Options{Sheets: sheets})

	w := env.do(t, http.MethodPost, "/export?months=12", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"exported","months":12,"scenarios":1}`, w.Body.String())
	assert.Len(t, sheets.ranges, 3)
}
