// Package dijkstra computes single-source shortest paths over a domain.Graph
// with non-negative edge weights and reconstructs the optimal route to every
// declared node.
//
// The frontier is a binary min-heap of (distance, node) entries ordered by
// distance, ties broken by node id. Improving a node's distance pushes a new
// entry instead of decreasing a key in place; entries whose distance is
// greater than the recorded best are discarded when popped.
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E); the heap may hold one entry per successful relaxation.
//
// Negative weights are a precondition violation. They are rejected upstream by
// the builder package and are not checked here.
package dijkstra
