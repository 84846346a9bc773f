// File: methods_clone.go
// Role: Deep copies of graphs and attribute values.
// Determinism:
//   - The clone keeps node, edge and neighbor insertion order.

package core

// Clone returns a deep copy of the Graph: nodes, annotations, edges, neighbor order
// and all attribute values (nested maps and slices are copied recursively).
//
// The clone shares no mutable memory with g, so a traversal may mutate it freely
// while the caller keeps using the original.
//
// Complexity: O(V + E + size of attributes)
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		order:     make([]string, len(g.order)),
		nodes:     make(map[string]*Node, len(g.nodes)),
		edgeOrder: make([]edgeKey, len(g.edgeOrder)),
		edges:     make(map[edgeKey]*Edge, len(g.edges)),
		out:       make(map[string][]string, len(g.out)),
	}
	copy(clone.order, g.order)
	copy(clone.edgeOrder, g.edgeOrder)

	for id, n := range g.nodes {
		clone.nodes[id] = &Node{ID: n.ID, Attrs: CloneAttrs(n.Attrs), Mark: n.Mark}
	}
	for k, e := range g.edges {
		clone.edges[k] = &Edge{From: e.From, To: e.To, Attrs: CloneAttrs(e.Attrs)}
	}
	for id, succ := range g.out {
		s := make([]string, len(succ))
		copy(s, succ)
		clone.out[id] = s
	}

	return clone
}

// CloneAttrs deep-copies an attribute map. A nil map yields an empty, non-nil map.
func CloneAttrs(attrs map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		out[k] = cloneValue(v)
	}

	return out
}

// cloneValue copies the container kinds produced by JSON decoding; scalars are immutable.
func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return CloneAttrs(t)
	case []interface{}:
		s := make([]interface{}, len(t))
		for i := range t {
			s[i] = cloneValue(t[i])
		}
		return s
	case []string:
		s := make([]string, len(t))
		copy(s, t)
		return s
	default:
		return v
	}
}
