package service

import (
	"github.com/vanshika/pathfinder/internal/builder"
	"github.com/vanshika/pathfinder/internal/domain"
)

// RouteRequest is the inbound description of one shortest-path computation:
// a node count, the edge list as received, and the start node.
type RouteRequest struct {
	Nodes     int
	Edges     []builder.EdgeRecord
	StartNode domain.NodeID
}

// EdgeCount returns the number of edge records in the request.
func (r RouteRequest) EdgeCount() int {
	return len(r.Edges)
}

// NewEdge is a convenience constructor for a fully populated edge record.
func NewEdge(source, target domain.NodeID, weight float64) builder.EdgeRecord {
	return builder.EdgeRecord{Source: &source, Target: &target, Weight: &weight}
}

// BatchOutcome pairs a batch item with its result or failure.
type BatchOutcome struct {
	Index  int
	Result domain.Result
	Err    error
}
