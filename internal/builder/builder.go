// Package builder validates raw graph descriptions and assembles them into
// adjacency graphs ready for the shortest-path engine.
package builder

import (
	"fmt"
	"math"

	"github.com/vanshika/pathfinder/internal/domain"
)

// EdgeRecord is an edge as received from a caller. Nil fields were absent in the input.
type EdgeRecord struct {
	Source *domain.NodeID
	Target *domain.NodeID
	Weight *float64
}

// Stats reports what a build did with the supplied edges.
type Stats struct {
	Nodes      int
	Edges      int
	Duplicates int
	Ignored    int
}

// Validate reports ErrMalformedEdge for the first record lacking a source, target or weight.
// It runs before any graph is built.
func Validate(edges []EdgeRecord) error {
	for i, e := range edges {
		if missing := e.missingField(); missing != "" {
			return fmt.Errorf("%w: edge %d has no %s", ErrMalformedEdge, i, missing)
		}
	}
	return nil
}

func (e EdgeRecord) missingField() string {
	switch {
	case e.Source == nil || *e.Source == "":
		return "source"
	case e.Target == nil || *e.Target == "":
		return "target"
	case e.Weight == nil:
		return "weight"
	}
	return ""
}

// Build declares nodes "1".."nodeCount" and inserts every edge under graph[source][target].
func Build(nodeCount int, edges []EdgeRecord, opts ...Option) (*domain.Graph, Stats, error) {
	cfg := applyOptions(opts)
	if nodeCount <= 0 {
		return nil, Stats{}, fmt.Errorf("%w: got %d", ErrInvalidNodeCount, nodeCount)
	}
	if cfg.MaxNodes > 0 && nodeCount > cfg.MaxNodes {
		return nil, Stats{}, fmt.Errorf("%w: %d > %d", ErrTooManyNodes, nodeCount, cfg.MaxNodes)
	}
	if err := Validate(edges); err != nil {
		return nil, Stats{}, err
	}

	g := domain.NewGraph(nodeCount)
	for i := 1; i <= nodeCount; i++ {
		g.AddNode(domain.NodeLabel(i))
	}

	b := assembler{graph: g, opts: cfg, seen: make(map[[2]domain.NodeID]struct{}, len(edges))}
	for i, rec := range edges {
		if err := b.add(i, domain.Edge{Source: *rec.Source, Target: *rec.Target, Weight: *rec.Weight}); err != nil {
			return nil, Stats{}, err
		}
	}
	if err := checkTotalWeight(g); err != nil {
		return nil, Stats{}, err
	}
	b.stats.Nodes = g.NodeCount()
	b.stats.Edges = g.EdgeCount()
	return g, b.stats, nil
}

// FromEdges builds a graph over an explicit node list instead of "1".."N".
func FromEdges(nodes []domain.NodeID, edges []domain.Edge, opts ...Option) (*domain.Graph, Stats, error) {
	cfg := applyOptions(opts)
	if len(nodes) == 0 {
		return nil, Stats{}, fmt.Errorf("%w: got 0", ErrInvalidNodeCount)
	}
	if cfg.MaxNodes > 0 && len(nodes) > cfg.MaxNodes {
		return nil, Stats{}, fmt.Errorf("%w: %d > %d", ErrTooManyNodes, len(nodes), cfg.MaxNodes)
	}

	g := domain.NewGraph(len(nodes))
	for _, id := range nodes {
		if id == "" {
			return nil, Stats{}, fmt.Errorf("%w: empty node id", ErrMalformedEdge)
		}
		g.AddNode(id)
	}

	b := assembler{graph: g, opts: cfg, seen: make(map[[2]domain.NodeID]struct{}, len(edges))}
	for i, e := range edges {
		if e.Source == "" || e.Target == "" {
			return nil, Stats{}, fmt.Errorf("%w: edge %d has an empty endpoint", ErrMalformedEdge, i)
		}
		if err := b.add(i, e); err != nil {
			return nil, Stats{}, err
		}
	}
	if err := checkTotalWeight(g); err != nil {
		return nil, Stats{}, err
	}
	b.stats.Nodes = g.NodeCount()
	b.stats.Edges = g.EdgeCount()
	return g, b.stats, nil
}

// checkTotalWeight rejects graphs whose summed weights are not finite. Every
// shortest path is simple, so a finite total bounds every reported distance.
func checkTotalWeight(g *domain.Graph) error {
	total := 0.0
	for _, e := range g.Edges() {
		total += e.Weight
	}
	if math.IsInf(total, 1) {
		return fmt.Errorf("%w: %d edges", ErrWeightOverflow, g.EdgeCount())
	}
	return nil
}

func applyOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

type assembler struct {
	graph *domain.Graph
	opts  Options
	seen  map[[2]domain.NodeID]struct{}
	stats Stats
}

func (b *assembler) add(i int, e domain.Edge) error {
	if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
		return fmt.Errorf("%w: edge %d (%s→%s) weight=%v", ErrInvalidWeight, i, e.Source, e.Target, e.Weight)
	}

	if !b.graph.HasNode(e.Source) || !b.graph.HasNode(e.Target) {
		if b.opts.Endpoints == EndpointIgnore {
			b.stats.Ignored++
			return nil
		}
		return fmt.Errorf("%w: edge %d (%s→%s)", ErrUnknownNode, i, e.Source, e.Target)
	}

	key := [2]domain.NodeID{e.Source, e.Target}
	if _, dup := b.seen[key]; dup {
		b.stats.Duplicates++
		switch b.opts.Duplicates {
		case DuplicateReject:
			return fmt.Errorf("%w: edge %d (%s→%s)", ErrDuplicateEdge, i, e.Source, e.Target)
		case DuplicateKeepMin:
			if current, _ := b.graph.Weight(e.Source, e.Target); current <= e.Weight {
				return nil
			}
		}
	}
	b.seen[key] = struct{}{}
	b.graph.SetEdge(e.Source, e.Target, e.Weight)
	return nil
}
