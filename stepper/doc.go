// Package stepper runs graph traversals one discrete step at a time.
//
// Every traversal shares the same three-phase machine:
//
//	Init   → annotate nodes, push the source                       (once)
//	Pop    → take one frontier entry; mark it Visited, set Current
//	Expand → scan Current's successors, push candidates, back to Pop
//
// Only the frontier discipline (FIFO, LIFO, MinPriority) and the Seed, Settle and
// Expand hooks of an Algorithm differ between BFS, DFS and Dijkstra. Phase
// bookkeeping, stale-entry dropping (an entry whose node is already Visited is
// discarded without touching Current) and visitation marking live in Runner.
//
// Resumability:
//
//	State carries everything: phase, current node, frontier (in heap layout for
//	MinPriority, with its insertion counter), the working graph, the shortest
//	path. Marshal/Unmarshal turn it into bytes and back; a restored state
//	advanced by one step behaves exactly like the original advanced by one step.
//
// Errors:
//
//	ErrInvalidParameter – nil graph, empty or unknown source (Start, Prepare).
//	ErrAlreadyFinished  – Advance after completion.
//	ErrCorruptState     – unknown phase/discipline or dangling references.
//
// Concurrency:
//
//	None inside a traversal. A Runner and its State must not be advanced from
//	two goroutines at once; distinct states are independent.
package stepper
