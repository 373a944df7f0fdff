package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := New(reg)
	require.NoError(t, err)

	r.Evaluation("comparison", 3)
	r.Evaluation("dashboard", 1)
	r.Evaluation("dashboard", 0)
	r.ScenarioOp("save")
	r.ScenarioOp("save")
	r.Report(nil)
	r.Report(errors.New("boom"))

	assert.Equal(t, 3.0, testutil.ToFloat64(r.evaluations.WithLabelValues("comparison")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.evaluations.WithLabelValues("dashboard")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.scenarioOps.WithLabelValues("save")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reports.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.reports.WithLabelValues("error")))
}

func TestRecorder_DoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Evaluation("dashboard", 1)
		r.ScenarioOp("save")
		r.Report(nil)
	})
}
