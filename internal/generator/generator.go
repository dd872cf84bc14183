package generator

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/vanshika/pathfinder/internal/builder"
	"github.com/vanshika/pathfinder/internal/domain"
	"github.com/vanshika/pathfinder/internal/service"
)

// Edge is one directed edge in the request wire format. Nil fields were
// absent in the file and make the request malformed.
type Edge struct {
	Source *domain.NodeID `json:"source"`
	Target *domain.NodeID `json:"target"`
	Weight *float64       `json:"weight"`
}

// Request mirrors the body accepted by POST /api/dijkstra.
type Request struct {
	Nodes     int    `json:"nodes"`
	Edges     []Edge `json:"edges"`
	StartNode string `json:"start_node"`
}

// RouteRequest converts the wire form into a service request. Field presence
// is carried over unchanged so validation sees missing values.
func (r Request) RouteRequest() service.RouteRequest {
	req := service.RouteRequest{
		Nodes:     r.Nodes,
		StartNode: domain.NodeID(r.StartNode),
		Edges:     make([]builder.EdgeRecord, 0, len(r.Edges)),
	}
	for _, e := range r.Edges {
		req.Edges = append(req.Edges, builder.EdgeRecord{Source: e.Source, Target: e.Target, Weight: e.Weight})
	}
	return req
}

func newEdge(source, target int, weight float64) Edge {
	src := domain.NodeLabel(source)
	dst := domain.NodeLabel(target)
	return Edge{Source: &src, Target: &dst, Weight: &weight}
}

// Dataset contains the generated requests.
type Dataset struct {
	Requests []Request `json:"requests"`
}

// Generator produces random, reproducible route requests.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumRequests <= 0 {
		cfg.NumRequests = DefaultConfig().NumRequests
	}
	if cfg.NumNodes <= 0 {
		cfg.NumNodes = DefaultConfig().NumNodes
	}
	if cfg.OutDegree <= 0 {
		cfg.OutDegree = DefaultConfig().OutDegree
	}
	if cfg.MaxWeight <= 0 {
		cfg.MaxWeight = DefaultConfig().MaxWeight
	}
	if cfg.DisconnectedChance < 0 {
		cfg.DisconnectedChance = 0
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises NumRequests graphs. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	requests := make([]Request, g.cfg.NumRequests)
	for i := range requests {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		requests[i] = g.Request()
	}
	return Dataset{Requests: requests}, nil
}

// Request draws a single graph with integer weights in [0, MaxWeight] and a
// random start node. Node labels are "1".."NumNodes".
func (g *Generator) Request() Request {
	n := g.cfg.NumNodes
	isolated := make([]bool, n+1)
	for v := 1; v <= n; v++ {
		isolated[v] = g.rand.Float64() < g.cfg.DisconnectedChance
	}

	edgeCount := int(float64(n) * g.cfg.OutDegree)
	edges := make([]Edge, 0, edgeCount)
	for i := 0; i < edgeCount; i++ {
		src := 1 + g.rand.Intn(n)
		dst := 1 + g.rand.Intn(n)
		if isolated[dst] {
			continue
		}
		edges = append(edges, newEdge(src, dst, float64(g.rand.Intn(g.cfg.MaxWeight+1))))
	}

	return Request{
		Nodes:     n,
		Edges:     edges,
		StartNode: strconv.Itoa(1 + g.rand.Intn(n)),
	}
}
