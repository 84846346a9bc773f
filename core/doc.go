// Package core provides the working graph that stepwise traversals operate on.
//
// The Graph G = (V,E) is directed and keeps everything in insertion order:
//
//   - Nodes carry arbitrary attributes (map[string]interface{}) plus an
//     Annotation {State, Distance, Parent} written by traversals.
//   - Edges carry arbitrary attributes; the "weight" attribute is resolved by
//     Edge.Weight (absent or non-numeric ⇒ 1).
//   - At most one edge per ordered pair; self-loops are allowed.
//   - Neighbors(id) enumerates successors in edge insertion order.
//
// Why no locks?
//
//	A Graph is owned by exactly one traversal. Callers never share the input
//	graph with a traversal: they pass a Clone, which shares no memory with the
//	original (attribute maps and slices are copied recursively).
//
// Annotations:
//
//	State moves monotonically None → Unvisited → Visiting → Visited.
//	Promote enforces this and returns ErrStateRegression otherwise.
//	Distance is meaningful only when Ranked is true; +∞ marks unreached nodes.
//
// Persistence:
//
//	MarshalJSON/UnmarshalJSON give a lossless form (order, attributes,
//	annotations) so a traversal can be suspended between steps and resumed
//	by another process.
//
// Complexity:
//
//	AddNode, AddEdge, HasNode, HasEdge: O(1) amortized.
//	Neighbors: O(out-degree). Nodes, Edges: O(V), O(E). Clone: O(V+E).
package core
