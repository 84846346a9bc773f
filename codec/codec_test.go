package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvstep/codec"
	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/engine"
	"github.com/katalvlaran/lvstep/stepper"
)

const sample = `{
  "nodes": [
    {"id": 1, "x": 10, "y": 20},
    {"id": 2, "label": "two"},
    {"id": "c", "state": "visited", "distance": 5}
  ],
  "edges": [
    {"from": 1, "to": 2, "directed": false, "weight": 3},
    {"from": 2, "to": "c", "directed": true},
    {"from": "c", "to": 1}
  ]
}`

func TestDecode(t *testing.T) {
	g, err := codec.Decode([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "c"}, g.Nodes())
	assert.Equal(t, 4, g.EdgeCount())
	assert.True(t, g.HasEdge("1", "2"))
	assert.True(t, g.HasEdge("2", "1"))
	assert.True(t, g.HasEdge("2", "c"))
	assert.False(t, g.HasEdge("c", "2"))
	assert.True(t, g.HasEdge("c", "1"))

	n, err := g.Node("1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), n.Attrs["x"])
	assert.NotContains(t, n.Attrs, "id")

	c, err := g.Node("c")
	require.NoError(t, err)
	assert.NotContains(t, c.Attrs, "state")
	assert.NotContains(t, c.Attrs, "distance")
	assert.Equal(t, core.StateNone, c.Mark.State)

	e, err := g.Edge("2", "1")
	require.NoError(t, err)
	w, ok := e.Weight()
	assert.True(t, ok)
	assert.Equal(t, 3.0, w)
	assert.NotContains(t, e.Attrs, "directed")
	assert.NotContains(t, e.Attrs, "from")
}

func TestDecode_NumericIDs(t *testing.T) {
	for raw, want := range map[string]string{`1`: "1", `2.5`: "2.5", `1.0`: "1", `"x"`: "x"} {
		g, err := codec.Decode([]byte(`{"nodes":[{"id":` + raw + `}],"edges":[]}`))
		require.NoError(t, err, raw)
		assert.Equal(t, []string{want}, g.Nodes(), raw)
	}
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"NotJSON":        `{"nodes": [`,
		"MissingID":      `{"nodes":[{"label":"x"}],"edges":[]}`,
		"EmptyID":        `{"nodes":[{"id":""}],"edges":[]}`,
		"ObjectID":       `{"nodes":[{"id":{"a":1}}],"edges":[]}`,
		"DuplicateID":    `{"nodes":[{"id":"a"},{"id":"a"}],"edges":[]}`,
		"UnknownFrom":    `{"nodes":[{"id":"a"}],"edges":[{"from":"z","to":"a"}]}`,
		"UnknownTo":      `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"z"}]}`,
		"DirectedString": `{"nodes":[{"id":"a"}],"edges":[{"from":"a","to":"a","directed":"no"}]}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode([]byte(in))
			assert.ErrorIs(t, err, codec.ErrInvalidGraph)
		})
	}
}

func TestEncode_CollapsesReciprocalPairs(t *testing.T) {
	g, err := codec.Decode([]byte(sample))
	require.NoError(t, err)
	doc := codec.ToDocument(g)

	require.Len(t, doc.Edges, 3)
	first := doc.Edges[0]
	assert.Equal(t, "1", first["from"])
	assert.Equal(t, "2", first["to"])
	assert.Equal(t, false, first["directed"])
	assert.Equal(t, int64(3), first["weight"])
	assert.Equal(t, true, doc.Edges[1]["directed"])
	assert.Equal(t, true, doc.Edges[2]["directed"])

	// Unannotated nodes carry no traversal keys.
	assert.NotContains(t, doc.Nodes[0], "state")
	assert.NotContains(t, doc.Nodes[0], "distance")
}

func TestEncode_RoundTripShape(t *testing.T) {
	in := `{"nodes":[{"id":"a","label":"A"},{"id":"b"}],"edges":[{"from":"a","to":"b","directed":false,"weight":2}]}`
	g, err := codec.Decode([]byte(in))
	require.NoError(t, err)
	out, err := codec.Encode(g)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestEncode_Annotations(t *testing.T) {
	g, err := codec.Decode([]byte(`{"nodes":[{"id":"A"},{"id":"B"},{"id":"C"}],
		"edges":[{"from":"A","to":"B","weight":2}]}`))
	require.NoError(t, err)

	st, err := engine.Start(g, "dijkstra", stepper.Params{Source: "A", Target: "C"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ { // init, pop A, expand A
		_, err = engine.Step(st)
		require.NoError(t, err)
	}

	raw, err := codec.Encode(st.Graph)
	require.NoError(t, err)
	var doc struct {
		Nodes []map[string]interface{} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	byID := map[string]map[string]interface{}{}
	for _, n := range doc.Nodes {
		byID[n["id"].(string)] = n
	}
	assert.Equal(t, "visited", byID["A"]["state"])
	assert.Equal(t, 0.0, byID["A"]["distance"])
	assert.Nil(t, byID["A"]["parent"])

	assert.Equal(t, "visiting", byID["B"]["state"])
	assert.Equal(t, 2.0, byID["B"]["distance"])
	assert.Equal(t, "A", byID["B"]["parent"])

	assert.Equal(t, "unvisited", byID["C"]["state"])
	assert.Contains(t, byID["C"], "distance")
	assert.Nil(t, byID["C"]["distance"])
}

func TestEncode_BFSOmitsDistance(t *testing.T) {
	g, err := codec.Decode([]byte(`{"nodes":[{"id":"A"}],"edges":[]}`))
	require.NoError(t, err)
	st, err := engine.Start(g, "bfs", stepper.Params{Source: "A"})
	require.NoError(t, err)
	_, err = engine.Step(st)
	require.NoError(t, err)

	doc := codec.ToDocument(st.Graph)
	assert.Equal(t, "visiting", doc.Nodes[0]["state"])
	assert.NotContains(t, doc.Nodes[0], "distance")
	assert.NotContains(t, doc.Nodes[0], "parent")
}
