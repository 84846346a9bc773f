// Package dfs runs stack-based depth-first search one step at a time.
//
// The phases are those of package bfs with a stack in place of the queue:
//
//	Init:   all nodes Unvisited; push source, mark it Visiting.
//	Pop:    the stack top becomes current and is marked Visited.
//	Expand: push every Unvisited successor (in enumeration order), mark Visiting.
//
// Because a node is marked Visiting when pushed, it is pushed at most once. The
// resulting order is the iterative "mark on push" DFS, which can differ from the
// recursive pre-order on graphs where a node is reachable along several branches.
//
// Complexity: O(V + E) over a full run, O(out-degree) per Expand step.
package dfs
