package dijkstra

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/vanshika/pathfinder/internal/domain"
)

var (
	// ErrNilGraph is returned when no graph is supplied.
	ErrNilGraph = errors.New("dijkstra: graph is nil")
	// ErrStartNotFound is returned when the start node is not declared in the graph.
	ErrStartNotFound = errors.New("dijkstra: start node not found")
)

// Run computes minimum distances and predecessors from start to every declared node.
//
// Unreachable nodes keep distance +Inf and predecessor domain.NoPredecessor.
// Edges pointing at undeclared nodes are skipped.
func Run(g *domain.Graph, start domain.NodeID) (domain.Distances, domain.Predecessors, error) {
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.HasNode(start) {
		return nil, nil, fmt.Errorf("%w: %q", ErrStartNotFound, start)
	}

	nodes := g.Nodes()
	dist := make(domain.Distances, len(nodes))
	prev := make(domain.Predecessors, len(nodes))
	for _, id := range nodes {
		dist[id] = math.Inf(1)
		prev[id] = domain.NoPredecessor
	}
	dist[start] = 0

	pq := make(frontier, 0, len(nodes))
	heap.Push(&pq, entry{dist: 0, node: start})

	for pq.Len() > 0 {
		cur := heap.Pop(&pq).(entry)
		if cur.dist > dist[cur.node] {
			continue // stale
		}

		for neighbor, w := range g.Neighbors(cur.node) {
			best, declared := dist[neighbor]
			if !declared {
				continue
			}
			candidate := cur.dist + w
			if candidate < best {
				dist[neighbor] = candidate
				prev[neighbor] = cur.node
				heap.Push(&pq, entry{dist: candidate, node: neighbor})
			}
		}
	}

	return dist, prev, nil
}

// Solve runs the relaxation and reconstructs the path to every declared node.
func Solve(g *domain.Graph, start domain.NodeID) (domain.Result, error) {
	dist, prev, err := Run(g, start)
	if err != nil {
		return domain.Result{}, err
	}

	order := g.Nodes()
	paths := make(map[domain.NodeID]domain.Path, len(order))
	for _, id := range order {
		paths[id] = ReconstructPath(prev, start, id)
	}

	return domain.Result{
		Start:        start,
		Order:        order,
		Distances:    dist,
		Predecessors: prev,
		Paths:        paths,
	}, nil
}
