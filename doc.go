// Package lvstep runs graph traversals one step at a time and lets a client
// pause, serialize and resume them between steps.
//
// What is lvstep?
//
//	A small stepping engine plus the service around it:
//		• Traversals: BFS, DFS, Dijkstra (single source, single target)
//		• Resumable state: every step round-trips through versioned JSON
//		• Sessions: memory, Badger or SQLite stores with TTL
//		• HTTP API: start / step / get / run / delete over gin
//		• CLI: stepgraph serve | stepgraph run
//
// Layout:
//
//	core/     - Graph, Node, Edge, visitation annotations
//	stepper/  - phase machine, frontier disciplines, state (de)serialization
//	bfs/ dfs/ dijkstra/ - the three algorithms as stepper hooks
//	engine/   - name registry, Start / Step / Run over plain values
//	codec/    - the nodes/edges JSON document used on the wire
//	session/  - Store implementations and per-session locks
//	config/   - YAML configuration and logger construction
//	server/   - gin handlers, middleware, metrics
//	cli/      - cobra commands used by cmd/stepgraph
//
// Quick ASCII example:
//
//	    A───B
//	    │   │
//	    C───D
//
//	BFS from A visits A, B, C, D; each Advance is one Init, Pop or Expand.
//
//	go install github.com/katalvlaran/lvstep/cmd/stepgraph@latest
package lvstep
