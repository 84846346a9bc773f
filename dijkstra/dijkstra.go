package dijkstra

import (
	"fmt"

	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/stepper"
)

// Start validates the options, copies g, checks edge weights and returns a
// runner positioned at Init.
//
// Errors:
//   - stepper.ErrInvalidParameter: nil graph, or Source/Target empty or absent.
//   - ErrNegativeWeight: some edge resolves to a weight below zero.
func Start(g *core.Graph, opts ...Option) (*stepper.Runner, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	alg := New()
	st, err := stepper.Start(alg, g, o.Params())
	if err != nil {
		return nil, err
	}

	return stepper.NewRunner(alg, st)
}

// Prepare validates Dijkstra-specific parameters on the working copy.
//
// Preconditions and validation (in order):
//  1. Target must be non-empty (stepper.ErrInvalidParameter).
//  2. Target must exist in g (stepper.ErrInvalidParameter).
//  3. No edge may resolve to a negative weight (ErrNegativeWeight), reachable or not.
//
// Complexity: O(E)
func (Algorithm) Prepare(g *core.Graph, p stepper.Params) error {
	if p.Target == "" {
		return fmt.Errorf("%w: target is empty", stepper.ErrInvalidParameter)
	}
	if !g.HasNode(p.Target) {
		return fmt.Errorf("%w: target %q not in graph", stepper.ErrInvalidParameter, p.Target)
	}
	for _, e := range g.Edges() {
		if w, _ := e.Weight(); w < 0 {
			return fmt.Errorf("%w: edge %s→%s weight=%v", ErrNegativeWeight, e.From, e.To, w)
		}
	}

	return nil
}

// CheckState implements stepper.StateChecker: a restored state must still name
// a target present in its graph, otherwise the run could only end "unreachable".
func (Algorithm) CheckState(s *stepper.State) error {
	if s.Target == "" {
		return fmt.Errorf("%w: dijkstra state has no target", stepper.ErrCorruptState)
	}
	if !s.Graph.HasNode(s.Target) {
		return fmt.Errorf("%w: target %q not in graph", stepper.ErrCorruptState, s.Target)
	}

	return nil
}

// Seed runs the Init phase.
//
// Implementation:
//   - Stage 1: Clear any previous shortest path.
//   - Stage 2: Annotate every node Unvisited with distance +∞ and no parent.
//   - Stage 3: Set dist(source)=0, push (0, source) and promote the source to Visiting.
//
// Complexity: O(V)
func (Algorithm) Seed(s *stepper.State) error {
	s.ShortestPath = nil
	s.Graph.ResetMarks(true)
	if err := s.Graph.SetDistance(s.Source, 0); err != nil {
		return err
	}
	s.Frontier.Push(s.Source, 0)

	return s.Graph.Promote(s.Source, core.StateVisiting)
}

// Settle stops the run when the target has been popped, recording the path.
// A popped node's distance is final, so the path is a shortest one.
//
// Complexity: O(1), or O(path length) when the target is settled.
func (Algorithm) Settle(s *stepper.State) (bool, error) {
	if s.Current != s.Target {
		return false, nil
	}
	s.ShortestPath = Reconstruct(s.Graph, s.Current)

	return true, nil
}

// Expand relaxes every outgoing edge of s.Current.
//
// Implementation:
//   - Stage 1: Read base = dist(Current) and enumerate successors in edge insertion order.
//   - Stage 2: Skip Visited successors; their distances are final.
//   - Stage 3: Resolve the edge weight (absent or non-numeric ⇒ 1) and form base + w.
//   - Stage 4: Only a strictly shorter candidate updates distance and parent,
//     pushes (candidate, node) and promotes the node to Visiting. Equal
//     candidates keep the first parent found.
//
// We use the lazy decrease-key strategy: older entries for the same node stay
// in the heap and are discarded as stale when popped (see stepper.Runner.Advance).
//
// Complexity: O(out-degree(Current) · log F), F = frontier size ≤ V + E.
func (Algorithm) Expand(s *stepper.State) error {
	from := s.Current
	base := s.Graph.DistanceOf(from)
	neighbors, err := s.Graph.Neighbors(from)
	if err != nil {
		return fmt.Errorf("dijkstra: neighbors of %q: %w", from, err)
	}
	for _, nbr := range neighbors {
		if s.Graph.StateOf(nbr) == core.StateVisited {
			continue
		}
		e, err := s.Graph.Edge(from, nbr)
		if err != nil {
			return fmt.Errorf("dijkstra: edge %s→%s: %w", from, nbr, err)
		}
		w, _ := e.Weight()
		cand := base + core.Distance(w)
		if cand >= s.Graph.DistanceOf(nbr) {
			continue
		}
		if err = s.Graph.Relax(nbr, cand, from); err != nil {
			return err
		}
		s.Frontier.Push(nbr, float64(cand))
		if err = s.Graph.Promote(nbr, core.StateVisiting); err != nil {
			return err
		}
	}

	return nil
}
