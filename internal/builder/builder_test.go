package builder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/pathfinder/internal/domain"
)

func rec(source, target string, weight float64) EdgeRecord {
	s, t := domain.NodeID(source), domain.NodeID(target)
	return EdgeRecord{Source: &s, Target: &t, Weight: &weight}
}

func TestBuild_DeclaresNumberedNodes(t *testing.T) {
	g, stats, err := Build(3, []EdgeRecord{rec("1", "2", 1), rec("2", "3", 2)})
	require.NoError(t, err)

	assert.Equal(t, []domain.NodeID{"1", "2", "3"}, g.Nodes())
	assert.Equal(t, 2, stats.Edges)
	assert.Equal(t, 3, stats.Nodes)

	w, ok := g.Weight("2", "3")
	require.True(t, ok)
	assert.Equal(t, 2.0, w)

	_, ok = g.Weight("3", "2")
	assert.False(t, ok, "edges are directed")
	assert.Empty(t, g.Neighbors("3"))
}

func TestBuild_NoEdges(t *testing.T) {
	g, _, err := Build(2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, g.NodeCount())
	assert.Zero(t, g.EdgeCount())
}

func TestBuild_MalformedEdge(t *testing.T) {
	s, tg := domain.NodeID("1"), domain.NodeID("2")
	w := 1.0
	empty := domain.NodeID("")

	cases := map[string]EdgeRecord{
		"missing source": {Target: &tg, Weight: &w},
		"missing target": {Source: &s, Weight: &w},
		"missing weight": {Source: &s, Target: &tg},
		"empty source":   {Source: &empty, Target: &tg, Weight: &w},
	}
	for name, edge := range cases {
		t.Run(name, func(t *testing.T) {
			g, _, err := Build(2, []EdgeRecord{rec("1", "2", 1), edge})
			require.ErrorIs(t, err, ErrMalformedEdge)
			assert.Nil(t, g)
		})
	}
}

func TestBuild_InvalidInputs(t *testing.T) {
	_, _, err := Build(0, nil)
	assert.ErrorIs(t, err, ErrInvalidNodeCount)

	_, _, err = Build(-4, nil)
	assert.ErrorIs(t, err, ErrInvalidNodeCount)

	_, _, err = Build(10, nil, WithMaxNodes(5))
	assert.ErrorIs(t, err, ErrTooManyNodes)

	_, _, err = Build(2, []EdgeRecord{rec("1", "2", -1)})
	assert.ErrorIs(t, err, ErrInvalidWeight)
}

func TestBuild_ZeroWeightAllowed(t *testing.T) {
	g, _, err := Build(2, []EdgeRecord{rec("1", "2", 0)})
	require.NoError(t, err)
	w, ok := g.Weight("1", "2")
	assert.True(t, ok)
	assert.Zero(t, w)
}

func TestBuild_DuplicatePolicies(t *testing.T) {
	edges := []EdgeRecord{rec("1", "2", 5), rec("1", "2", 3), rec("1", "2", 7)}

	g, stats, err := Build(2, edges)
	require.NoError(t, err)
	w, _ := g.Weight("1", "2")
	assert.Equal(t, 7.0, w, "default keeps the last weight")
	assert.Equal(t, 2, stats.Duplicates)

	g, _, err = Build(2, edges, WithDuplicatePolicy(DuplicateKeepMin))
	require.NoError(t, err)
	w, _ = g.Weight("1", "2")
	assert.Equal(t, 3.0, w)

	_, _, err = Build(2, edges, WithDuplicatePolicy(DuplicateReject))
	assert.ErrorIs(t, err, ErrDuplicateEdge)
}

func TestBuild_EndpointPolicies(t *testing.T) {
	edges := []EdgeRecord{rec("1", "2", 1), rec("1", "9", 1), rec("7", "1", 1)}

	_, _, err := Build(2, edges)
	assert.ErrorIs(t, err, ErrUnknownNode)

	g, stats, err := Build(2, edges, WithEndpointPolicy(EndpointIgnore))
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Ignored)
	assert.Equal(t, 1, g.EdgeCount())
	assert.False(t, g.HasNode("9"))
}

func TestFromEdges(t *testing.T) {
	nodes := []domain.NodeID{"a", "b", "c"}
	g, stats, err := FromEdges(nodes, []domain.Edge{
		{Source: "a", Target: "b", Weight: 2},
		{Source: "b", Target: "c", Weight: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, nodes, g.Nodes())
	assert.Equal(t, 2, stats.Edges)

	_, _, err = FromEdges(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidNodeCount)

	_, _, err = FromEdges(nodes, []domain.Edge{{Source: "a", Target: "", Weight: 1}})
	assert.ErrorIs(t, err, ErrMalformedEdge)
}

func TestParsePolicies(t *testing.T) {
	p, err := ParseDuplicatePolicy("keep-min")
	require.NoError(t, err)
	assert.Equal(t, DuplicateKeepMin, p)

	p, err = ParseDuplicatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DuplicateLastWins, p)

	_, err = ParseDuplicatePolicy("sum")
	assert.Error(t, err)

	e, err := ParseEndpointPolicy("IGNORE")
	require.NoError(t, err)
	assert.Equal(t, EndpointIgnore, e)
	assert.Equal(t, "ignore", e.String())

	_, err = ParseEndpointPolicy("warn")
	assert.Error(t, err)
}

func TestBuild_WeightOverflow(t *testing.T) {
	_, _, err := Build(3, []EdgeRecord{rec("1", "2", 1e308), rec("2", "3", 1e308)})
	require.ErrorIs(t, err, ErrWeightOverflow)

	g, _, err := Build(3, []EdgeRecord{rec("1", "2", 1e307), rec("2", "3", 1e307)})
	require.NoError(t, err)
	assert.Equal(t, 2, g.EdgeCount())

	_, _, err = FromEdges([]domain.NodeID{"a", "b"}, []domain.Edge{
		{Source: "a", Target: "b", Weight: math.MaxFloat64},
		{Source: "b", Target: "a", Weight: math.MaxFloat64},
	})
	assert.ErrorIs(t, err, ErrWeightOverflow)
}
