// Package bfs runs breadth-first search one step at a time over a core.Graph copy.
//
// What
//
//   - Init:   every node becomes Unvisited; the source is enqueued and marked Visiting.
//   - Pop:    the queue head becomes the current node and is marked Visited.
//   - Expand: every Unvisited successor is enqueued and marked Visiting.
//   - The traversal ends when the queue is empty. Edge weights are never read.
//
// Why
//
//	The order in which nodes reach Visited is the artifact a visualization shows:
//	it is non-decreasing in hop count from the source.
//
// Determinism
//
//	Successors are enumerated in edge insertion order, so the visit sequence is
//	fully reproducible (and survives stepper.Marshal / stepper.Unmarshal).
//
// Complexity (V = |nodes|, E = |edges|)
//
//   - Per step: Init O(V), Pop O(1), Expand O(out-degree of the current node).
//   - Whole run: 1 + 2·(reachable V) + 1 steps, O(V + E) time, O(V) frontier.
//
// Usage
//
//	r, err := bfs.Start(g, "A")
//	for more := true; more && err == nil; {
//		more, err = r.Advance()
//	}
package bfs
