package domain

import "strconv"

// NodeID identifies a vertex. Integer labels are carried in their decimal string form.
type NodeID string

// NoPredecessor marks a node that has no predecessor (the start node, or a node never reached).
const NoPredecessor NodeID = ""

// NodeLabel returns the label of the i-th declared node (1-based), e.g. NodeLabel(3) == "3".
func NodeLabel(i int) NodeID {
	return NodeID(strconv.Itoa(i))
}

// Edge is a directed, weighted connection from Source to Target.
type Edge struct {
	Source NodeID
	Target NodeID
	Weight float64
}

// Graph is an adjacency mapping from node to neighbor to edge weight.
// Nodes keep their declaration order so callers can render results deterministically.
type Graph struct {
	order []NodeID
	adj   map[NodeID]map[NodeID]float64
}

// NewGraph returns an empty graph sized for n nodes.
func NewGraph(n int) *Graph {
	if n < 0 {
		n = 0
	}
	return &Graph{
		order: make([]NodeID, 0, n),
		adj:   make(map[NodeID]map[NodeID]float64, n),
	}
}

// AddNode declares id with an empty neighbor mapping. Re-declaring a node is a no-op.
func (g *Graph) AddNode(id NodeID) {
	if _, ok := g.adj[id]; ok {
		return
	}
	g.adj[id] = make(map[NodeID]float64)
	g.order = append(g.order, id)
}

// HasNode reports whether id was declared.
func (g *Graph) HasNode(id NodeID) bool {
	if g == nil {
		return false
	}
	_, ok := g.adj[id]
	return ok
}

// SetEdge stores weight under graph[source][target], replacing any previous weight.
// The source must already be declared; SetEdge reports false otherwise.
func (g *Graph) SetEdge(source, target NodeID, weight float64) bool {
	neighbors, ok := g.adj[source]
	if !ok {
		return false
	}
	neighbors[target] = weight
	return true
}

// Weight returns the weight of source→target if the edge exists.
func (g *Graph) Weight(source, target NodeID) (float64, bool) {
	neighbors, ok := g.adj[source]
	if !ok {
		return 0, false
	}
	w, ok := neighbors[target]
	return w, ok
}

// Neighbors returns the outgoing adjacency of id. The returned map must not be modified.
func (g *Graph) Neighbors(id NodeID) map[NodeID]float64 {
	return g.adj[id]
}

// Nodes returns the declared nodes in declaration order.
func (g *Graph) Nodes() []NodeID {
	return append([]NodeID(nil), g.order...)
}

// NodeCount returns the number of declared nodes.
func (g *Graph) NodeCount() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// EdgeCount returns the number of distinct (source, target) pairs.
func (g *Graph) EdgeCount() int {
	if g == nil {
		return 0
	}
	count := 0
	for _, neighbors := range g.adj {
		count += len(neighbors)
	}
	return count
}

// Edges lists every edge, sources in declaration order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for _, source := range g.order {
		for target, w := range g.adj[source] {
			edges = append(edges, Edge{Source: source, Target: target, Weight: w})
		}
	}
	return edges
}
