package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/pathfinder/internal/builder"
	"github.com/vanshika/pathfinder/internal/domain"
)

func TestBatchSolver_SolveAll(t *testing.T) {
	svc, rec := newTestService(t)
	batch, err := NewBatchSolver(svc, 2)
	require.NoError(t, err)
	defer batch.Release()

	reqs := []RouteRequest{
		{Nodes: 3, StartNode: "1", Edges: []builder.EdgeRecord{NewEdge("1", "2", 1), NewEdge("2", "3", 2)}},
		{Nodes: 2, StartNode: "9"},
		{Nodes: 2, StartNode: "2", Edges: []builder.EdgeRecord{NewEdge("2", "1", 4)}},
	}

	outcomes, err := batch.SolveAll(context.Background(), reqs)
	require.Len(t, outcomes, 3)

	var taskErr *TaskError
	require.ErrorAs(t, err, &taskErr)
	assert.Len(t, taskErr.Errors, 1)

	assert.NoError(t, outcomes[0].Err)
	assert.Equal(t, 3.0, outcomes[0].Result.Distances["3"])
	assert.Error(t, outcomes[1].Err)
	assert.Equal(t, 1, outcomes[1].Index)
	assert.Equal(t, domain.Path{"2", "1"}, outcomes[2].Result.Paths["1"])

	require.Len(t, rec.batches, 1)
	assert.Equal(t, [2]int{3, 1}, rec.batches[0])
}

func TestBatchSolver_Empty(t *testing.T) {
	svc, _ := newTestService(t)
	batch, err := NewBatchSolver(svc, 0)
	require.NoError(t, err)
	defer batch.Release()

	assert.Equal(t, 4, batch.Workers())
	outcomes, err := batch.SolveAll(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestBatchSolver_Cancelled(t *testing.T) {
	svc, _ := newTestService(t)
	batch, err := NewBatchSolver(svc, 1)
	require.NoError(t, err)
	defer batch.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := batch.SolveAll(ctx, []RouteRequest{{Nodes: 1, StartNode: "1"}, {Nodes: 1, StartNode: "1"}})
	assert.ErrorIs(t, err, context.Canceled)
	for _, out := range outcomes {
		assert.ErrorIs(t, out.Err, context.Canceled)
	}
}
