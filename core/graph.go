// File: graph.go
// Role: Node and edge lifecycle, neighbor enumeration, weight resolution.
// Determinism:
//   - Every enumeration follows insertion order; nothing depends on map iteration.

package core

import (
	"encoding/json"
	"fmt"
	"math"
)

// AddNode inserts a node with the given attributes.
//
// Implementation:
//   - Stage 1: Validate non-empty ID (ErrEmptyNodeID) and uniqueness (ErrDuplicateNode).
//   - Stage 2: Register the node at the end of the insertion order.
//
// The attrs map is stored as given; callers that keep mutating it should pass a copy.
//
// Complexity: O(1) amortized.
func (g *Graph) AddNode(id string, attrs map[string]interface{}) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, id)
	}
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	g.nodes[id] = &Node{ID: id, Attrs: attrs}
	g.order = append(g.order, id)

	return nil
}

// HasNode reports whether the node ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]

	return ok
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}

	return n, nil
}

// Nodes returns all node IDs in insertion order. The slice is a copy.
// Complexity: O(V)
func (g *Graph) Nodes() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)

	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// AddEdge inserts the directed edge from→to, or updates the attributes of an
// existing one in place (its position in the neighbor order is kept).
//
// Both endpoints must already exist (ErrNodeNotFound).
//
// Complexity: O(1) amortized plus O(len(attrs)) on update.
func (g *Graph) AddEdge(from, to string, attrs map[string]interface{}) error {
	if from == "" || to == "" {
		return ErrEmptyNodeID
	}
	if !g.HasNode(from) {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, from)
	}
	if !g.HasNode(to) {
		return fmt.Errorf("%w: %q", ErrNodeNotFound, to)
	}

	k := edgeKey{from: from, to: to}
	if e, ok := g.edges[k]; ok {
		for key, v := range attrs {
			e.Attrs[key] = v
		}

		return nil
	}

	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	g.edges[k] = &Edge{From: from, To: to, Attrs: attrs}
	g.edgeOrder = append(g.edgeOrder, k)
	g.out[from] = append(g.out[from], to)

	return nil
}

// HasEdge reports whether the directed edge from→to exists.
func (g *Graph) HasEdge(from, to string) bool {
	_, ok := g.edges[edgeKey{from: from, to: to}]

	return ok
}

// Edge returns the directed edge from→to.
func (g *Graph) Edge(from, to string) (*Edge, error) {
	e, ok := g.edges[edgeKey{from: from, to: to}]
	if !ok {
		return nil, fmt.Errorf("%w: %s→%s", ErrEdgeNotFound, from, to)
	}

	return e, nil
}

// Edges returns all edges in insertion order. The pointers are live.
// Complexity: O(E)
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edgeOrder))
	for _, k := range g.edgeOrder {
		out = append(out, g.edges[k])
	}

	return out
}

// EdgeCount returns the number of directed edges.
func (g *Graph) EdgeCount() int { return len(g.edgeOrder) }

// Neighbors returns the successors of id in edge insertion order.
// The returned slice is a copy, so callers may mutate the graph while ranging over it.
//
// Complexity: O(out-degree)
func (g *Graph) Neighbors(id string) ([]string, error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	succ := g.out[id]
	ids := make([]string, len(succ))
	copy(ids, succ)

	return ids, nil
}

// Weight resolves the numeric weight of e.
//
// A missing or non-numeric "weight" attribute resolves to DefaultWeight.
// The second result reports whether the attribute was numeric.
func (e *Edge) Weight() (float64, bool) {
	raw, ok := e.Attrs[WeightKey]
	if !ok {
		return DefaultWeight, false
	}
	w, ok := toFloat(raw)
	if !ok || math.IsNaN(w) {
		return DefaultWeight, false
	}

	return w, true
}

// toFloat converts the numeric kinds that can appear in decoded attributes.
func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
