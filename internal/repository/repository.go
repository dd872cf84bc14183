package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vanshika/pathfinder/internal/domain"
	"github.com/vanshika/pathfinder/internal/graph"
)

// ErrNetworkNotFound indicates no nodes are tagged with the requested network name.
var ErrNetworkNotFound = errors.New("network not found")

// Repository loads route networks from the graph database. It only reads.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// LoadNetwork fetches the nodes and ROUTE relationships of a named network.
// Relationships with a missing weight are reported as malformed rather than defaulted.
func (r *Repository) LoadNetwork(ctx context.Context, name string) (domain.Network, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Network{}, errors.New("network name is required")
	}
	params := map[string]any{"network": name}

	nodesRes, err := r.client.ExecuteRead(ctx, networkNodesCypher, params)
	if err != nil {
		return domain.Network{}, fmt.Errorf("network nodes query: %w", err)
	}
	if len(nodesRes.Records) == 0 {
		return domain.Network{}, fmt.Errorf("%w: %s", ErrNetworkNotFound, name)
	}

	network := domain.Network{Name: name}
	for _, rec := range nodesRes.Records {
		id := toString(rec["id"])
		if id == "" {
			continue
		}
		network.Nodes = append(network.Nodes, domain.NodeID(id))
	}

	edgesRes, err := r.client.ExecuteRead(ctx, networkEdgesCypher, params)
	if err != nil {
		return domain.Network{}, fmt.Errorf("network edges query: %w", err)
	}
	for i, rec := range edgesRes.Records {
		weight, ok := toFloat64(rec["weight"])
		if !ok {
			return domain.Network{}, fmt.Errorf("network %s: route %d has no numeric weight", name, i)
		}
		network.Edges = append(network.Edges, domain.Edge{
			Source: domain.NodeID(toString(rec["source"])),
			Target: domain.NodeID(toString(rec["target"])),
			Weight: weight,
		})
	}

	return network, nil
}

// ListNetworks returns every network name with its node and route counts.
func (r *Repository) ListNetworks(ctx context.Context) ([]domain.NetworkSummary, error) {
	res, err := r.client.ExecuteRead(ctx, listNetworksCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list networks query: %w", err)
	}

	summaries := make([]domain.NetworkSummary, 0, len(res.Records))
	for _, rec := range res.Records {
		summaries = append(summaries, domain.NetworkSummary{
			Name:      toString(rec["network"]),
			NodeCount: toInt64(rec["nodeCount"]),
			EdgeCount: toInt64(rec["edgeCount"]),
		})
	}
	return summaries, nil
}

func toString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case fmt.Stringer:
		return v.String()
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func toFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func toInt64(val any) int64 {
	switch v := val.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

const networkNodesCypher = `
MATCH (n:RouteNode {network: $network})
RETURN n.id AS id
ORDER BY n.id
`

const networkEdgesCypher = `
MATCH (a:RouteNode {network: $network})-[r:ROUTE]->(b:RouteNode {network: $network})
RETURN a.id AS source, b.id AS target, r.weight AS weight
ORDER BY source, target
`

const listNetworksCypher = `
MATCH (n:RouteNode)
WITH n.network AS network, count(n) AS nodeCount
OPTIONAL MATCH (:RouteNode {network: network})-[r:ROUTE]->(:RouteNode {network: network})
RETURN network, nodeCount, count(r) AS edgeCount
ORDER BY network
`
