package dfs

import (
	"fmt"

	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/stepper"
)

// Seed runs the Init phase of a depth-first traversal.
//
// Implementation:
//   - Stage 1: Annotate every node as Unvisited.
//   - Stage 2: Push the source onto the stack and promote it to Visiting.
//
// Complexity: O(V)
func (Algorithm) Seed(s *stepper.State) error {
	s.Graph.ResetMarks(false)
	s.Frontier.Push(s.Source, 0)

	return s.Graph.Promote(s.Source, core.StateVisiting)
}

// Settle never stops early: DFS runs until the stack is empty.
func (Algorithm) Settle(*stepper.State) (bool, error) { return false, nil }

// Expand runs one Expand phase for s.Current.
//
// Implementation:
//   - Stage 1: Enumerate successors in edge insertion order.
//   - Stage 2: Skip successors already Visiting or Visited.
//   - Stage 3: Push each remaining successor and promote it to Visiting.
//
// Because pushes follow enumeration order, the last successor sits on top of
// the stack and is explored first. A node is pushed at most once, so the
// stack never holds more than V entries.
//
// Complexity: O(out-degree(Current))
func (Algorithm) Expand(s *stepper.State) error {
	neighbors, err := s.Graph.Neighbors(s.Current)
	if err != nil {
		return fmt.Errorf("dfs: neighbors of %q: %w", s.Current, err)
	}
	for _, nbr := range neighbors {
		if s.Graph.StateOf(nbr) != core.StateUnvisited {
			continue
		}
		s.Frontier.Push(nbr, 0)
		if err = s.Graph.Promote(nbr, core.StateVisiting); err != nil {
			return err
		}
	}

	return nil
}
