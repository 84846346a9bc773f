// File: json.go
// Role: Lossless JSON form of a Graph, used to persist traversal state between steps.
// Format:
//   - {"nodes":[{"id","attrs","mark"}...], "edges":[{"from","to","attrs"}...]} in insertion order.
//   - +∞ distances are encoded as null.

package core

import (
	"encoding/json"
	"fmt"
)

type nodeJSON struct {
	ID    string                 `json:"id"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
	Mark  *markJSON              `json:"mark,omitempty"`
}

type markJSON struct {
	State    string   `json:"state"`
	Ranked   bool     `json:"ranked,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	Parent   *string  `json:"parent,omitempty"`
}

type edgeJSON struct {
	From  string                 `json:"from"`
	To    string                 `json:"to"`
	Attrs map[string]interface{} `json:"attrs,omitempty"`
}

type graphJSON struct {
	Nodes []nodeJSON `json:"nodes"`
	Edges []edgeJSON `json:"edges"`
}

// MarshalJSON encodes the graph, its attributes and annotations in insertion order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := graphJSON{
		Nodes: make([]nodeJSON, 0, len(g.order)),
		Edges: make([]edgeJSON, 0, len(g.edgeOrder)),
	}
	for _, id := range g.order {
		n := g.nodes[id]
		nj := nodeJSON{ID: id, Attrs: n.Attrs}
		if n.Mark.State != StateNone || n.Mark.Ranked {
			m := &markJSON{State: n.Mark.State.String(), Ranked: n.Mark.Ranked}
			if n.Mark.Ranked && !n.Mark.Distance.IsInf() {
				d := float64(n.Mark.Distance)
				m.Distance = &d
			}
			if n.Mark.HasParent {
				p := n.Mark.Parent
				m.Parent = &p
			}
			nj.Mark = m
		}
		doc.Nodes = append(doc.Nodes, nj)
	}
	for _, k := range g.edgeOrder {
		e := g.edges[k]
		doc.Edges = append(doc.Edges, edgeJSON{From: e.From, To: e.To, Attrs: e.Attrs})
	}

	return json.Marshal(doc)
}

// UnmarshalJSON rebuilds a graph produced by MarshalJSON, replacing any previous content.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc graphJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("core: decode graph: %w", err)
	}

	fresh := NewGraph()
	for _, nj := range doc.Nodes {
		if err := fresh.AddNode(nj.ID, nj.Attrs); err != nil {
			return fmt.Errorf("core: decode graph: %w", err)
		}
		if nj.Mark == nil {
			continue
		}
		st, ok := ParseState(nj.Mark.State)
		if !ok {
			return fmt.Errorf("core: decode graph: node %q has unknown state %q", nj.ID, nj.Mark.State)
		}
		m := Annotation{State: st, Ranked: nj.Mark.Ranked}
		if nj.Mark.Ranked {
			m.Distance = Infinity
			if nj.Mark.Distance != nil {
				m.Distance = Distance(*nj.Mark.Distance)
			}
		}
		if nj.Mark.Parent != nil {
			m.Parent = *nj.Mark.Parent
			m.HasParent = true
		}
		fresh.nodes[nj.ID].Mark = m
	}
	for _, ej := range doc.Edges {
		if fresh.HasEdge(ej.From, ej.To) {
			return fmt.Errorf("core: decode graph: duplicate edge %s→%s", ej.From, ej.To)
		}
		if err := fresh.AddEdge(ej.From, ej.To, ej.Attrs); err != nil {
			return fmt.Errorf("core: decode graph: %w", err)
		}
	}

	*g = *fresh

	return nil
}
