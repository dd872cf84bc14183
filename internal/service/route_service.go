package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vanshika/pathfinder/internal/builder"
	"github.com/vanshika/pathfinder/internal/config"
	"github.com/vanshika/pathfinder/internal/dijkstra"
	"github.com/vanshika/pathfinder/internal/domain"
	"github.com/vanshika/pathfinder/internal/metrics"
)

const tracerName = "github.com/vanshika/pathfinder/internal/service"

// NetworkSource is the read-only contract for loading named networks.
type NetworkSource interface {
	LoadNetwork(ctx context.Context, name string) (domain.Network, error)
	ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error)
}

// Settings are the builder policies applied to every request.
type Settings struct {
	MaxNodes   int
	Duplicates builder.DuplicatePolicy
	Endpoints  builder.EndpointPolicy
}

// SettingsFromConfig parses the solver section of the configuration.
func SettingsFromConfig(cfg config.SolverConfig) (Settings, error) {
	dup, err := builder.ParseDuplicatePolicy(cfg.DuplicatePolicy)
	if err != nil {
		return Settings{}, err
	}
	endpoints, err := builder.ParseEndpointPolicy(cfg.EndpointPolicy)
	if err != nil {
		return Settings{}, err
	}
	return Settings{MaxNodes: cfg.MaxNodes, Duplicates: dup, Endpoints: endpoints}, nil
}

// RouteService validates requests, assembles graphs and runs the engine.
// It holds no per-request state and is safe for concurrent use.
type RouteService struct {
	settings Settings
	networks NetworkSource
	metrics  metrics.Recorder
	tracer   trace.Tracer
	nowFn    func() time.Time
}

// NewRouteService constructs a RouteService. networks may be nil, in which
// case network operations return ErrNoNetworkSource.
func NewRouteService(settings Settings, networks NetworkSource) *RouteService {
	return &RouteService{
		settings: settings,
		networks: networks,
		metrics:  (*metrics.Metrics)(nil),
		tracer:   otel.Tracer(tracerName),
		nowFn:    time.Now,
	}
}

// WithMetrics sets the recorder that observes every solve.
func (s *RouteService) WithMetrics(rec metrics.Recorder) {
	if rec != nil {
		s.metrics = rec
	}
}

// WithTracer overrides the tracer (used primarily in tests).
func (s *RouteService) WithTracer(tracer trace.Tracer) {
	if tracer != nil {
		s.tracer = tracer
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (s *RouteService) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		s.nowFn = nowFn
	}
}

// HasNetworkSource reports whether named networks can be served.
func (s *RouteService) HasNetworkSource() bool {
	return s.networks != nil
}

func (s *RouteService) builderOptions() []builder.Option {
	return []builder.Option{
		builder.WithMaxNodes(s.settings.MaxNodes),
		builder.WithDuplicatePolicy(s.settings.Duplicates),
		builder.WithEndpointPolicy(s.settings.Endpoints),
	}
}

// Solve computes distances and paths for every declared node of req.
//
// Malformed edges yield ErrMalformedEdge before any graph is built. Every other
// failure is a *ComputationError.
func (s *RouteService) Solve(ctx context.Context, req RouteRequest) (domain.Result, error) {
	_, span := s.tracer.Start(ctx, "route.solve", trace.WithAttributes(
		attribute.Int("route.nodes", req.Nodes),
		attribute.Int("route.edges", req.EdgeCount()),
		attribute.String("route.start", string(req.StartNode)),
	))
	defer span.End()
	started := s.nowFn()

	if err := builder.Validate(req.Edges); err != nil {
		err = fmt.Errorf("%w: %w", ErrMalformedEdge, err)
		s.fail(span, metrics.OutcomeMalformed, err)
		return domain.Result{}, err
	}

	g, stats, err := builder.Build(req.Nodes, req.Edges, s.builderOptions()...)
	if err != nil {
		err = &ComputationError{Op: "build graph", Err: err}
		s.fail(span, metrics.OutcomeRejected, err)
		return domain.Result{}, err
	}
	span.SetAttributes(attribute.Int("route.duplicate_edges", stats.Duplicates), attribute.Int("route.ignored_edges", stats.Ignored))

	return s.run(span, g, req.StartNode, started)
}

// SolveNetwork loads a named network from the configured source and solves it from start.
func (s *RouteService) SolveNetwork(ctx context.Context, name string, start domain.NodeID) (domain.Result, error) {
	if s.networks == nil {
		return domain.Result{}, ErrNoNetworkSource
	}
	ctx, span := s.tracer.Start(ctx, "route.solve_network", trace.WithAttributes(
		attribute.String("route.network", name),
		attribute.String("route.start", string(start)),
	))
	defer span.End()

	network, err := s.networks.LoadNetwork(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Result{}, err
	}
	started := s.nowFn()

	g, _, err := builder.FromEdges(network.Nodes, network.Edges, s.builderOptions()...)
	if err != nil {
		err = &ComputationError{Op: "build network " + name, Err: err}
		s.fail(span, metrics.OutcomeRejected, err)
		return domain.Result{}, err
	}
	return s.run(span, g, start, started)
}

// ListNetworks returns the networks available from the configured source.
func (s *RouteService) ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error) {
	if s.networks == nil {
		return nil, ErrNoNetworkSource
	}
	return s.networks.ListNetworks(ctx)
}

func (s *RouteService) run(span trace.Span, g *domain.Graph, start domain.NodeID, started time.Time) (domain.Result, error) {
	res, err := dijkstra.Solve(g, start)
	if err != nil {
		err = &ComputationError{Op: "shortest paths", Err: err}
		s.fail(span, metrics.OutcomeRejected, err)
		return domain.Result{}, err
	}

	unreachable := res.UnreachableCount()
	span.SetAttributes(attribute.Int("route.unreachable", unreachable))
	s.metrics.ObserveSolve(metrics.OutcomeSuccess, g.NodeCount(), g.EdgeCount(), unreachable, s.nowFn().Sub(started))
	return res, nil
}

func (s *RouteService) fail(span trace.Span, outcome string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.metrics.ObserveSolve(outcome, 0, 0, 0, 0)
}
