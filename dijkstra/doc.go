// Package dijkstra runs Dijkstra's single-pair shortest-path search one step at a time.
//
// Phases:
//
//	Init:   reject negative weights; distance = +∞, parent = none, state = Unvisited
//	        for every node; push (0, source) and mark it Visiting.
//	Pop:    remove the minimum (distance, node) entry. An entry for a node that is
//	        already Visited is stale and is dropped (lazy deletion instead of
//	        decrease-key). Otherwise the node is Visited; reaching the target
//	        reconstructs the path and ends the run.
//	Expand: relax edges to not-yet-Visited neighbors with candidate = dist + weight;
//	        on strict improvement update distance and parent, push, mark Visiting.
//
// Weights are read from the "weight" edge attribute. A missing, non-numeric or
// NaN value counts as 1. Negative weights fail Start with ErrNegativeWeight.
//
// If the frontier empties before the target is settled, State.ShortestPath
// stays empty: the target is unreachable.
//
// Ordering among equal-distance entries follows insertion order into the heap.
// It is reproducible across Marshal/Unmarshal but carries no meaning.
//
// Complexity:
//
//	– Time:  O((V + E) log E) over a full run; each Expand pushes at most out-degree entries.
//	– Space: O(V + E); the heap may hold one entry per relaxation.
//
// Example usage:
//
//	r, err := dijkstra.Start(g, dijkstra.Source("A"), dijkstra.Target("D"))
//	for more := true; more && err == nil; {
//		more, err = r.Advance()
//	}
//	fmt.Println(r.State().ShortestPath)
package dijkstra
