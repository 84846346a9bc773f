// Package core_test verifies core.Graph ordering, annotation and cloning contracts.
package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstep/core"
)

// buildDiamond returns A→B(1), B→D(2), A→C(4), C→D(1).
func buildDiamond(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for _, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, g.AddNode(id, nil))
	}
	require.NoError(t, g.AddEdge("A", "B", map[string]interface{}{"weight": 1.0}))
	require.NoError(t, g.AddEdge("B", "D", map[string]interface{}{"weight": 2.0}))
	require.NoError(t, g.AddEdge("A", "C", map[string]interface{}{"weight": 4.0}))
	require.NoError(t, g.AddEdge("C", "D", map[string]interface{}{"weight": 1.0}))

	return g
}

func TestGraph_NodeLifecycle(t *testing.T) {
	g := core.NewGraph()
	assert.ErrorIs(t, g.AddNode("", nil), core.ErrEmptyNodeID)
	require.NoError(t, g.AddNode("X", map[string]interface{}{"label": "x"}))
	assert.ErrorIs(t, g.AddNode("X", nil), core.ErrDuplicateNode)
	assert.True(t, g.HasNode("X"))
	assert.False(t, g.HasNode("Y"))

	n, err := g.Node("X")
	require.NoError(t, err)
	assert.Equal(t, "x", n.Attrs["label"])
	assert.Equal(t, core.StateNone, n.Mark.State)

	_, err = g.Node("Y")
	assert.True(t, errors.Is(err, core.ErrNodeNotFound))
}

func TestGraph_InsertionOrder(t *testing.T) {
	g := core.NewGraph()
	for _, id := range []string{"z", "a", "m"} {
		require.NoError(t, g.AddNode(id, nil))
	}
	require.NoError(t, g.AddEdge("z", "m", nil))
	require.NoError(t, g.AddEdge("z", "a", nil))
	require.NoError(t, g.AddEdge("z", "z", nil)) // self-loop

	assert.Equal(t, []string{"z", "a", "m"}, g.Nodes())
	nbrs, err := g.Neighbors("z")
	require.NoError(t, err)
	assert.Equal(t, []string{"m", "a", "z"}, nbrs)

	// Re-adding keeps position and merges attributes.
	require.NoError(t, g.AddEdge("z", "m", map[string]interface{}{"weight": 7}))
	nbrs, _ = g.Neighbors("z")
	assert.Equal(t, []string{"m", "a", "z"}, nbrs)
	assert.Equal(t, 3, g.EdgeCount())
	e, err := g.Edge("z", "m")
	require.NoError(t, err)
	w, numeric := e.Weight()
	assert.True(t, numeric)
	assert.Equal(t, 7.0, w)
}

func TestGraph_AddEdgeUnknownEndpoint(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddNode("A", nil))
	assert.ErrorIs(t, g.AddEdge("A", "B", nil), core.ErrNodeNotFound)
	assert.ErrorIs(t, g.AddEdge("B", "A", nil), core.ErrNodeNotFound)
	_, err := g.Neighbors("B")
	assert.ErrorIs(t, err, core.ErrNodeNotFound)
}

func TestEdge_WeightResolution(t *testing.T) {
	cases := []struct {
		name    string
		attrs   map[string]interface{}
		want    float64
		numeric bool
	}{
		{"absent", nil, 1, false},
		{"float", map[string]interface{}{"weight": 2.5}, 2.5, true},
		{"int", map[string]interface{}{"weight": 3}, 3, true},
		{"negative", map[string]interface{}{"weight": -1.0}, -1, true},
		{"string", map[string]interface{}{"weight": "heavy"}, 1, false},
		{"bool", map[string]interface{}{"weight": true}, 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := &core.Edge{From: "a", To: "b", Attrs: tc.attrs}
			w, numeric := e.Weight()
			assert.Equal(t, tc.want, w)
			assert.Equal(t, tc.numeric, numeric)
		})
	}
}

func TestGraph_PromoteIsMonotonic(t *testing.T) {
	g := buildDiamond(t)
	g.ResetMarks(false)
	require.NoError(t, g.Promote("A", core.StateVisiting))
	require.NoError(t, g.Promote("A", core.StateVisiting))
	require.NoError(t, g.Promote("A", core.StateVisited))
	assert.ErrorIs(t, g.Promote("A", core.StateVisiting), core.ErrStateRegression)
	assert.Equal(t, core.StateVisited, g.StateOf("A"))
	assert.Equal(t, core.StateNone, g.StateOf("missing"))
}

func TestGraph_ResetMarksRanked(t *testing.T) {
	g := buildDiamond(t)
	g.ResetMarks(true)
	for _, id := range g.Nodes() {
		n, _ := g.Node(id)
		assert.Equal(t, core.StateUnvisited, n.Mark.State)
		assert.True(t, n.Mark.Distance.IsInf())
		assert.False(t, n.Mark.HasParent)
	}
	require.NoError(t, g.Relax("B", 1, "A"))
	assert.Equal(t, core.Distance(1), g.DistanceOf("B"))
}

func TestGraph_CloneIsIndependent(t *testing.T) {
	g := core.NewGraph()
	nested := map[string]interface{}{"pos": []interface{}{1.0, 2.0}}
	require.NoError(t, g.AddNode("A", map[string]interface{}{"meta": nested}))
	require.NoError(t, g.AddNode("B", nil))
	require.NoError(t, g.AddEdge("A", "B", map[string]interface{}{"weight": 2.0}))

	c := g.Clone()
	c.ResetMarks(true)
	require.NoError(t, c.AddNode("C", nil))
	require.NoError(t, c.AddEdge("A", "C", nil))
	cn, _ := c.Node("A")
	cn.Attrs["meta"].(map[string]interface{})["pos"].([]interface{})[0] = 99.0

	on, _ := g.Node("A")
	assert.Equal(t, core.StateNone, on.Mark.State)
	assert.Equal(t, 1.0, on.Attrs["meta"].(map[string]interface{})["pos"].([]interface{})[0])
	assert.False(t, g.HasNode("C"))
	nbrs, _ := g.Neighbors("A")
	assert.Equal(t, []string{"B"}, nbrs)
}
