// File: types.go
// Role: Node, Edge, Annotation and Graph declarations, sentinel errors, NewGraph.
// Determinism:
//   - Nodes() and Edges() follow insertion order; Neighbors() follows edge insertion order.
// Ownership:
//   - A Graph is owned by exactly one traversal at a time; there is no internal locking.

package core

import (
	"errors"
	"math"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyNodeID indicates that a node ID is the empty string.
	ErrEmptyNodeID = errors.New("core: node ID is empty")

	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("core: node not found")

	// ErrDuplicateNode indicates AddNode was called for an ID that is already present.
	ErrDuplicateNode = errors.New("core: duplicate node")

	// ErrEdgeNotFound indicates an operation referenced a non-existent edge.
	ErrEdgeNotFound = errors.New("core: edge not found")
)

// WeightKey is the edge attribute consulted by weighted traversals.
const WeightKey = "weight"

// DefaultWeight is used for edges whose weight attribute is absent or non-numeric.
const DefaultWeight = 1.0

// State is the visitation state of a node during a traversal.
//
// The zero value StateNone means the node has not been annotated yet.
// Transitions are monotonic: Unvisited → Visiting → Visited.
type State uint8

const (
	StateNone      State = iota // not yet annotated by a traversal
	StateUnvisited              // annotated, not discovered
	StateVisiting               // discovered, waiting in a frontier
	StateVisited                // popped and finalized
)

var stateNames = [...]string{"", "unvisited", "visiting", "visited"}

// String returns the lower-case wire name of s ("" for StateNone).
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}

	return "invalid"
}

// ParseState converts a wire name back into a State.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}

	return StateNone, false
}

// Distance is a best-known path cost. Unreached nodes carry Infinity.
type Distance float64

// Infinity is the distance of a node that has not been reached.
var Infinity = Distance(math.Inf(1))

// IsInf reports whether d is +∞.
func (d Distance) IsInf() bool { return math.IsInf(float64(d), 1) }

// Annotation is the mutable per-node record written by traversals.
//
// Ranked is set by traversals that track Distance and Parent (Dijkstra);
// BFS and DFS only touch State.
type Annotation struct {
	State     State
	Distance  Distance
	Parent    string
	HasParent bool
	Ranked    bool
}

// Node is a vertex with arbitrary caller attributes plus a traversal annotation.
type Node struct {
	// ID uniquely identifies the node within its Graph.
	ID string

	// Attrs holds caller-supplied attributes. Clone deep-copies it.
	Attrs map[string]interface{}

	// Mark is the traversal annotation.
	Mark Annotation
}

// Edge is a directed connection From→To with arbitrary attributes.
type Edge struct {
	From  string
	To    string
	Attrs map[string]interface{}
}

// edgeKey identifies an edge by its ordered endpoints.
type edgeKey struct {
	from, to string
}

// Graph is a directed graph with insertion-ordered nodes and neighbors.
//
// At most one edge exists per ordered pair (from, to); self-loops are allowed.
// Graph has no locks: it is meant to be owned by a single traversal, and
// copied with Clone when a private working copy is needed.
type Graph struct {
	order []string         // node insertion order
	nodes map[string]*Node // node ID → Node

	edgeOrder []edgeKey           // edge insertion order
	edges     map[edgeKey]*Edge   // (from,to) → Edge
	out       map[string][]string // from → neighbor IDs in edge insertion order
}

// NewGraph creates an empty Graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]*Node),
		edges: make(map[edgeKey]*Edge),
		out:   make(map[string][]string),
	}
}
