// File: annotate.go
// Role: Traversal annotations: reset, monotonic state promotion, distance/parent updates.

package core

import (
	"errors"
	"fmt"
)

// ErrStateRegression is returned when a node would move backwards
// (e.g. Visited → Visiting).
var ErrStateRegression = errors.New("core: node state cannot move backwards")

// ResetMarks annotates every node as Unvisited. With ranked=true it also sets
// Distance=+∞ and clears Parent, enabling distance tracking.
//
// Complexity: O(V)
func (g *Graph) ResetMarks(ranked bool) {
	for _, id := range g.order {
		n := g.nodes[id]
		n.Mark = Annotation{State: StateUnvisited, Ranked: ranked}
		if ranked {
			n.Mark.Distance = Infinity
		}
	}
}

// Promote moves the node to state s. Moving to the same state is a no-op;
// moving to an earlier state returns ErrStateRegression.
func (g *Graph) Promote(id string, s State) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	if s < n.Mark.State {
		return fmt.Errorf("%w: %q %s → %s", ErrStateRegression, id, n.Mark.State, s)
	}
	n.Mark.State = s

	return nil
}

// StateOf returns the annotation state of id (StateNone for unknown IDs).
func (g *Graph) StateOf(id string) State {
	if n, ok := g.nodes[id]; ok {
		return n.Mark.State
	}

	return StateNone
}

// Relax records a better distance and parent for id.
func (g *Graph) Relax(id string, d Distance, parent string) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	n.Mark.Distance = d
	n.Mark.Parent = parent
	n.Mark.HasParent = true
	n.Mark.Ranked = true

	return nil
}

// DistanceOf returns the tracked distance of id, or Infinity when unknown.
func (g *Graph) DistanceOf(id string) Distance {
	if n, ok := g.nodes[id]; ok && n.Mark.Ranked {
		return n.Mark.Distance
	}

	return Infinity
}

// SetDistance records d for id without touching its parent.
func (g *Graph) SetDistance(id string, d Distance) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	n.Mark.Distance = d
	n.Mark.Ranked = true

	return nil
}
