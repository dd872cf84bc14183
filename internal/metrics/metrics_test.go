package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveSolve(t *testing.T) {
	m := New()

	m.ObserveSolve(OutcomeSuccess, 3, 2, 1, 5*time.Millisecond)
	m.ObserveSolve(OutcomeSuccess, 2, 0, 1, time.Millisecond)
	m.ObserveSolve(OutcomeMalformed, 0, 0, 0, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.solves.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.solves.WithLabelValues(OutcomeMalformed)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.unreachable))
	assert.Equal(t, 1, testutil.CollectAndCount(m.solveDuration), "one histogram series")

	var sample dto.Metric
	require.NoError(t, m.solveDuration.Write(&sample))
	assert.Equal(t, uint64(2), sample.GetHistogram().GetSampleCount())
	assert.InDelta(t, 0.006, sample.GetHistogram().GetSampleSum(), 1e-9)

	var nodes dto.Metric
	require.NoError(t, m.graphNodes.Write(&nodes))
	assert.Equal(t, uint64(2), nodes.GetHistogram().GetSampleCount())
	assert.Equal(t, 5.0, nodes.GetHistogram().GetSampleSum())
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveSolve(OutcomeSuccess, 1, 1, 0, time.Second)
		m.ObserveBatch(3, 1)
		m.ObserveRequest("/", 200)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest("/api/dijkstra", http.StatusBadRequest)
	m.ObserveBatch(4, 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `pathfinder_http_requests_total{code="400",route="/api/dijkstra"} 1`)
	assert.Contains(t, body, "pathfinder_batch_failures_total 1")
}
