// Package metrics exposes Prometheus collectors for the route service and
// its HTTP boundary. All collectors live under the "pathfinder" namespace.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pathfinder"

// Outcome labels for solve observations.
const (
	OutcomeSuccess   = "success"
	OutcomeMalformed = "malformed"
	OutcomeRejected  = "rejected"
)

// Recorder is the set of observations the service layer emits.
// A nil *Metrics satisfies it and records nothing.
type Recorder interface {
	ObserveSolve(outcome string, nodes, edges, unreachable int, d time.Duration)
	ObserveBatch(size, failed int)
}

// Metrics holds every collector and the registry they are registered with.
type Metrics struct {
	registry *prometheus.Registry

	requests      *prometheus.CounterVec
	solves        *prometheus.CounterVec
	solveDuration prometheus.Histogram
	graphNodes    prometheus.Histogram
	graphEdges    prometheus.Histogram
	unreachable   prometheus.Counter
	batchSize     prometheus.Histogram
	batchFailures prometheus.Counter
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
		solves: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solves_total",
			Help:      "Shortest-path computations by outcome",
		}, []string{"outcome"}),
		solveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent building the graph, relaxing and reconstructing paths",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		graphNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Declared node count of solved graphs",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		graphEdges: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Edge count of solved graphs",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		unreachable: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unreachable_nodes_total",
			Help:      "Nodes found unreachable from the start node",
		}),
		batchSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Requests per batch call",
			Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}),
		batchFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_failures_total",
			Help:      "Batch items that failed validation or computation",
		}),
	}
}

// ObserveSolve records one computation.
func (m *Metrics) ObserveSolve(outcome string, nodes, edges, unreachable int, d time.Duration) {
	if m == nil {
		return
	}
	m.solves.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSuccess {
		return
	}
	m.solveDuration.Observe(d.Seconds())
	m.graphNodes.Observe(float64(nodes))
	m.graphEdges.Observe(float64(edges))
	m.unreachable.Add(float64(unreachable))
}

// ObserveBatch records a batch call and its failed item count.
func (m *Metrics) ObserveBatch(size, failed int) {
	if m == nil {
		return
	}
	m.batchSize.Observe(float64(size))
	m.batchFailures.Add(float64(failed))
}

// ObserveRequest records an HTTP response.
func (m *Metrics) ObserveRequest(route string, code int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
