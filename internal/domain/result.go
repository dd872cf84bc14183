package domain

import (
	"math"
	"strings"
)

// PathSeparator joins hops when a path is rendered for humans.
const PathSeparator = " → "

// Distances maps each node to its minimum cost from the start node.
// Unreachable nodes hold +Inf.
type Distances map[NodeID]float64

// Predecessors maps each node to the node preceding it on its best-known path.
type Predecessors map[NodeID]NodeID

// Path is an ordered sequence of nodes from start to a target, inclusive.
// An empty path means the target is unreachable.
type Path []NodeID

// String renders the path with PathSeparator between hops.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, id := range p {
		parts[i] = string(id)
	}
	return strings.Join(parts, PathSeparator)
}

// Hops returns the number of edges along the path.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Result bundles the output of one shortest-path computation.
type Result struct {
	Start        NodeID
	Order        []NodeID
	Distances    Distances
	Predecessors Predecessors
	Paths        map[NodeID]Path
}

// Reachable reports whether id has a finite distance from the start node.
func (r Result) Reachable(id NodeID) bool {
	d, ok := r.Distances[id]
	return ok && !math.IsInf(d, 1)
}

// UnreachableCount returns how many declared nodes cannot be reached.
func (r Result) UnreachableCount() int {
	count := 0
	for _, id := range r.Order {
		if !r.Reachable(id) {
			count++
		}
	}
	return count
}
