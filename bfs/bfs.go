package bfs

import (
	"fmt"

	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/stepper"
)

// Seed runs the Init phase of a breadth-first traversal.
//
// Implementation:
//   - Stage 1: Annotate every node of the working graph as Unvisited (no distance tracking).
//   - Stage 2: Enqueue the source and promote it to Visiting.
//
// Preconditions: s.Source exists in s.Graph (checked by stepper.Start).
//
// Complexity: O(V)
func (Algorithm) Seed(s *stepper.State) error {
	s.Graph.ResetMarks(false)
	s.Frontier.Push(s.Source, 0)

	return s.Graph.Promote(s.Source, core.StateVisiting)
}

// Settle never stops early: BFS runs until the queue is empty.
// Complexity: O(1)
func (Algorithm) Settle(*stepper.State) (bool, error) { return false, nil }

// Expand runs one Expand phase for s.Current.
//
// Implementation:
//   - Stage 1: Enumerate successors of the current node in edge insertion order.
//   - Stage 2: Skip every successor that is already Visiting or Visited.
//   - Stage 3: Enqueue each remaining successor and promote it to Visiting, so a
//     node waiting in the queue is never enqueued twice.
//
// Edge weights are never read. The queue therefore holds at most V entries
// over the whole run, and nodes leave it in non-decreasing hop count.
//
// Complexity: O(out-degree(Current)) time, O(out-degree) extra space.
func (Algorithm) Expand(s *stepper.State) error {
	neighbors, err := s.Graph.Neighbors(s.Current)
	if err != nil {
		return fmt.Errorf("bfs: neighbors of %q: %w", s.Current, err)
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
