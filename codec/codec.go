package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/lvstep/core"
)

// ErrInvalidGraph indicates a malformed wire graph.
var ErrInvalidGraph = errors.New("codec: invalid graph")

// Wire keys.
const (
	KeyID       = "id"
	KeyFrom     = "from"
	KeyTo       = "to"
	KeyDirected = "directed"
	KeyState    = "state"
	KeyDistance = "distance"
	KeyParent   = "parent"
)

// reserved node keys are owned by the traversal and never read from input.
var reserved = map[string]bool{KeyID: true, KeyState: true, KeyDistance: true, KeyParent: true}

// Document is the wire form of a graph.
type Document struct {
	Nodes []map[string]interface{} `json:"nodes"`
	Edges []map[string]interface{} `json:"edges"`
}

// Decode parses wire JSON into a new graph.
func Decode(data []byte) (*core.Graph, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGraph, err)
	}

	return FromDocument(doc)
}

// FromDocument builds a graph from an already decoded document.
//
// Errors (all wrap ErrInvalidGraph): missing or non-scalar ids, duplicate node
// ids, edges whose endpoints are unknown, a non-boolean "directed" flag.
func FromDocument(doc Document) (*core.Graph, error) {
	g := core.NewGraph()
	for i, raw := range doc.Nodes {
		id, err := ID(raw[KeyID])
		if err != nil {
			return nil, fmt.Errorf("%w: node #%d: %v", ErrInvalidGraph, i, err)
		}
		attrs := make(map[string]interface{}, len(raw))
		for k, v := range raw {
			if !reserved[k] {
				attrs[k] = normalize(v)
			}
		}
		if err = g.AddNode(id, attrs); err != nil {
			return nil, fmt.Errorf("%w: node #%d: %v", ErrInvalidGraph, i, err)
		}
	}

	for i, raw := range doc.Edges {
		from, err := ID(raw[KeyFrom])
		if err != nil {
			return nil, fmt.Errorf("%w: edge #%d from: %v", ErrInvalidGraph, i, err)
		}
		to, err := ID(raw[KeyTo])
		if err != nil {
			return nil, fmt.Errorf("%w: edge #%d to: %v", ErrInvalidGraph, i, err)
		}
		directed := true
		if v, ok := raw[KeyDirected]; ok && v != nil {
			b, isBool := v.(bool)
			if !isBool {
				return nil, fmt.Errorf("%w: edge #%d: %q must be a boolean", ErrInvalidGraph, i, KeyDirected)
			}
			directed = b
		}
		attrs := make(map[string]interface{}, len(raw))
		for k, v := range raw {
			if k != KeyFrom && k != KeyTo && k != KeyDirected {
				attrs[k] = normalize(v)
			}
		}
		if err = g.AddEdge(from, to, attrs); err != nil {
			return nil, fmt.Errorf("%w: edge #%d: %v", ErrInvalidGraph, i, err)
		}
		if !directed {
			if err = g.AddEdge(to, from, core.CloneAttrs(attrs)); err != nil {
				return nil, fmt.Errorf("%w: edge #%d: %v", ErrInvalidGraph, i, err)
			}
		}
	}

	return g, nil
}

// ID converts a wire id (string or number) into a node key.
func ID(v interface{}) (string, error) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", errors.New("empty id")
		}
		return t, nil
	case json.Number:
		if _, err := t.Int64(); err == nil {
			return t.String(), nil
		}
		f, err := t.Float64()
		if err != nil {
			return "", fmt.Errorf("bad numeric id %q", t)
		}
		return formatFloat(f), nil
	case float64:
		return formatFloat(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case nil:
		return "", errors.New("missing id")
	default:
		return "", fmt.Errorf("id must be a string or number, got %T", v)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// normalize turns json.Number into int64 or float64, recursively.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, x := range t {
			out[k] = normalize(x)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, x := range t {
			out[i] = normalize(x)
		}
		return out
	default:
		return v
	}
}

// ToDocument renders g, including traversal annotations, in wire form.
func ToDocument(g *core.Graph) Document {
	doc := Document{
		Nodes: make([]map[string]interface{}, 0, g.NodeCount()),
		Edges: make([]map[string]interface{}, 0, g.EdgeCount()),
	}
	for _, id := range g.Nodes() {
		n, err := g.Node(id)
		if err != nil {
			continue
		}
		out := core.CloneAttrs(n.Attrs)
		out[KeyID] = id
		if n.Mark.State != core.StateNone {
			out[KeyState] = n.Mark.State.String()
		}
		if n.Mark.Ranked {
			out[KeyDistance] = distanceValue(n.Mark.Distance)
			if n.Mark.HasParent {
				out[KeyParent] = n.Mark.Parent
			} else {
				out[KeyParent] = nil
			}
		}
		doc.Nodes = append(doc.Nodes, out)
	}

	type pair struct{ a, b string }
	emitted := make(map[pair]bool)
	for _, e := range g.Edges() {
		if emitted[pair{e.From, e.To}] || emitted[pair{e.To, e.From}] {
			continue
		}
		emitted[pair{e.From, e.To}] = true
		out := core.CloneAttrs(e.Attrs)
		out[KeyFrom] = e.From
		out[KeyTo] = e.To
		out[KeyDirected] = !g.HasEdge(e.To, e.From)
		doc.Edges = append(doc.Edges, out)
	}

	return doc
}

// distanceValue maps +∞ to nil so it encodes as JSON null.
func distanceValue(d core.Distance) interface{} {
	if d.IsInf() || math.IsNaN(float64(d)) {
		return nil
	}

	return float64(d)
}

// Encode renders g as wire JSON.
func Encode(g *core.Graph) ([]byte, error) {
	return json.Marshal(ToDocument(g))
}
