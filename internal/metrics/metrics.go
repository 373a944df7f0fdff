package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder counts planner activity. A nil *Recorder is safe to use and records nothing.
type Recorder struct {
	evaluations *prometheus.CounterVec
	scenarioOps *prometheus.CounterVec
	reports     *prometheus.CounterVec
}

// New creates the planner counters and registers them on reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizplanner_evaluations_total",
			Help: "Number of configurations run through the financial engine",
		}, []string{"source"}),
		scenarioOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizplanner_scenario_operations_total",
			Help: "Number of scenario store operations by type",
		}, []string{"op"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bizplanner_report_generations_total",
			Help: "Number of narrative report generations by outcome",
		}, []string{"status"}),
	}

	for _, c := range []prometheus.Collector{r.evaluations, r.scenarioOps, r.reports} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Evaluation counts one engine run. source is "dashboard" or "comparison".
func (r *Recorder) Evaluation(source string, n int) {
	if r == nil || n <= 0 {
		return
	}
	r.evaluations.WithLabelValues(source).Add(float64(n))
}

// ScenarioOp counts one store operation ("save", "update", "delete", "list", "load").
func (r *Recorder) ScenarioOp(op string) {
	if r == nil {
		return
	}
	r.scenarioOps.WithLabelValues(op).Inc()
}

// Report counts one narrative generation attempt.
func (r *Recorder) Report(err error) {
	if r == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.reports.WithLabelValues(status).Inc()
}
