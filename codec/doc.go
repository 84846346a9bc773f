// Package codec converts the browser's node/edge list into a core.Graph and back.
//
// Wire shape:
//
//	{
//	  "nodes": [{"id": "A", "label": "start", ...}],
//	  "edges": [{"from": "A", "to": "B", "directed": false, "weight": 2, ...}]
//	}
//
// Decoding:
//   - ids may be JSON strings or numbers; numbers become their shortest decimal text.
//   - an edge with "directed": false becomes the pair A→B and B→A; a missing
//     "directed" means a one-way edge.
//   - all other keys are kept as attributes. Annotation keys ("state",
//     "distance", "parent") are dropped so stale annotations cannot leak in.
//
// Encoding:
//   - nodes carry their attributes plus "state" and, for distance-tracking
//     traversals, "distance" (null for +∞) and "parent" (null for none).
//   - a reciprocal pair is emitted once with "directed": false, using the
//     attributes of the first-inserted direction.
package codec
