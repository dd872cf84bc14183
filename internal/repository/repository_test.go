package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/pathfinder/internal/domain"
	"github.com/vanshika/pathfinder/internal/graph"
)

func TestRepository_LoadNetwork(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.PushReadResult(graph.Result{Records: []graph.Record{
		{"id": "a"}, {"id": int64(2)}, {"id": nil},
	}})
	mem.PushReadResult(graph.Result{Records: []graph.Record{
		{"source": "a", "target": int64(2), "weight": int64(4)},
		{"source": int64(2), "target": "a", "weight": 1.5},
	}})

	network, err := New(mem).LoadNetwork(context.Background(), " metro ")
	require.NoError(t, err)

	assert.Equal(t, "metro", network.Name)
	assert.Equal(t, []domain.NodeID{"a", "2"}, network.Nodes)
	assert.Equal(t, []domain.Edge{
		{Source: "a", Target: "2", Weight: 4},
		{Source: "2", Target: "a", Weight: 1.5},
	}, network.Edges)

	calls := mem.ReadCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, networkNodesCypher, calls[0].Query)
	assert.Equal(t, networkEdgesCypher, calls[1].Query)
	assert.Equal(t, "metro", calls[1].Params["network"])
}

func TestRepository_LoadNetworkNotFound(t *testing.T) {
	mem := graph.NewMemoryClient()

	_, err := New(mem).LoadNetwork(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNetworkNotFound)
	assert.Len(t, mem.ReadCalls(), 1, "edges are not queried for an unknown network")
}

func TestRepository_LoadNetworkRejectsMissingWeight(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.PushReadResult(graph.Result{Records: []graph.Record{{"id": "a"}, {"id": "b"}}})
	mem.PushReadResult(graph.Result{Records: []graph.Record{{"source": "a", "target": "b"}}})

	_, err := New(mem).LoadNetwork(context.Background(), "metro")
	assert.ErrorContains(t, err, "no numeric weight")
}

func TestRepository_LoadNetworkValidation(t *testing.T) {
	mem := graph.NewMemoryClient()
	_, err := New(mem).LoadNetwork(context.Background(), "  ")
	assert.Error(t, err)
	assert.Empty(t, mem.ReadCalls())

	failing := graph.NewMemoryClient().WithError(errors.New("bolt down"))
	_, err = New(failing).LoadNetwork(context.Background(), "metro")
	assert.ErrorContains(t, err, "bolt down")
}

func TestRepository_ListNetworks(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.PushReadResult(graph.Result{Records: []graph.Record{
		{"network": "metro", "nodeCount": int64(12), "edgeCount": int64(30)},
		{"network": "rail", "nodeCount": int64(4), "edgeCount": int64(0)},
	}})

	got, err := New(mem).ListNetworks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.NetworkSummary{
		{Name: "metro", NodeCount: 12, EdgeCount: 30},
		{Name: "rail", NodeCount: 4},
	}, got)
}
