package stepper

import (
	"encoding/json"
	"fmt"

	"github.com/katalvlaran/lvstep/core"
)

// stateVersion is bumped whenever the persisted layout changes incompatibly.
const stateVersion = 1

type entryJSON struct {
	Node     string  `json:"node"`
	Priority float64 `json:"priority,omitempty"`
	Seq      uint64  `json:"seq"`
}

type frontierJSON struct {
	Discipline string      `json:"discipline"`
	Items      []entryJSON `json:"items"`
	NextSeq    uint64      `json:"next_seq"`
}

type stateJSON struct {
	Version      int             `json:"version"`
	Algorithm    string          `json:"algorithm"`
	Phase        string          `json:"phase"`
	Source       string          `json:"source"`
	Target       string          `json:"target,omitempty"`
	Current      *string         `json:"current,omitempty"`
	Frontier     frontierJSON    `json:"frontier"`
	Graph        json.RawMessage `json:"graph"`
	ShortestPath []string        `json:"shortest_path,omitempty"`
	Steps        int             `json:"steps"`
}

// Marshal converts st into an inert byte form. Unmarshal(Marshal(st)) yields a
// state whose subsequent behavior is identical to st's.
func Marshal(st *State) ([]byte, error) {
	if st == nil || st.Graph == nil {
		return nil, fmt.Errorf("%w: state has no graph", ErrCorruptState)
	}
	g, err := json.Marshal(st.Graph)
	if err != nil {
		return nil, fmt.Errorf("stepper: encode graph: %w", err)
	}

	doc := stateJSON{
		Version:   stateVersion,
		Algorithm: st.Algorithm,
		Phase:     st.Phase.String(),
		Source:    st.Source,
		Target:    st.Target,
		Frontier: frontierJSON{
			Discipline: st.Frontier.Discipline.String(),
			Items:      make([]entryJSON, len(st.Frontier.Items)),
			NextSeq:    st.Frontier.NextSeq,
		},
		Graph:        g,
		ShortestPath: st.ShortestPath,
		Steps:        st.Steps,
	}
	if st.HasCurrent {
		cur := st.Current
		doc.Current = &cur
	}
	for i, e := range st.Frontier.Items {
		doc.Frontier.Items[i] = entryJSON{Node: e.Node, Priority: e.Priority, Seq: e.Seq}
	}

	return json.Marshal(doc)
}

// Unmarshal restores a State produced by Marshal.
//
// Any inconsistency (unknown version, phase or discipline; frontier or current
// node missing from the graph; broken heap order) is reported as ErrCorruptState.
func Unmarshal(data []byte) (*State, error) {
	var doc stateJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if doc.Version != stateVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptState, doc.Version)
	}
	phase, ok := ParsePhase(doc.Phase)
	if !ok {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrCorruptState, doc.Phase)
	}
	disc, ok := ParseDiscipline(doc.Frontier.Discipline)
	if !ok {
		return nil, fmt.Errorf("%w: unknown frontier discipline %q", ErrCorruptState, doc.Frontier.Discipline)
	}
	if len(doc.Graph) == 0 || string(doc.Graph) == "null" {
		return nil, fmt.Errorf("%w: state has no graph", ErrCorruptState)
	}
	g := core.NewGraph()
	if err := json.Unmarshal(doc.Graph, g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	st := &State{
		Algorithm:    doc.Algorithm,
		Phase:        phase,
		Source:       doc.Source,
		Target:       doc.Target,
		Frontier:     Frontier{Discipline: disc, Items: make([]Entry, len(doc.Frontier.Items)), NextSeq: doc.Frontier.NextSeq},
		Graph:        g,
		ShortestPath: doc.ShortestPath,
		Steps:        doc.Steps,
	}
	if doc.Current != nil {
		st.Current, st.HasCurrent = *doc.Current, true
	}
	for i, e := range doc.Frontier.Items {
		st.Frontier.Items[i] = Entry{Node: e.Node, Priority: e.Priority, Seq: e.Seq}
	}

	if err := st.validate(); err != nil {
		return nil, err
	}

	return st, nil
}

// validate checks the cross references between state fields and the graph.
func (s *State) validate() error {
	if !s.Phase.Valid() {
		return fmt.Errorf("%w: unknown phase %d", ErrCorruptState, s.Phase)
	}
	if !s.Graph.HasNode(s.Source) {
		return fmt.Errorf("%w: source %q not in graph", ErrCorruptState, s.Source)
	}
	if s.HasCurrent && !s.Graph.HasNode(s.Current) {
		return fmt.Errorf("%w: current node %q not in graph", ErrCorruptState, s.Current)
	}
	if s.Phase == PhaseExpand && !s.HasCurrent {
		return fmt.Errorf("%w: expand phase without a current node", ErrCorruptState)
	}
	for _, e := range s.Frontier.Items {
		if !s.Graph.HasNode(e.Node) {
			return fmt.Errorf("%w: frontier node %q not in graph", ErrCorruptState, e.Node)
		}
		if e.Seq >= s.Frontier.NextSeq {
			return fmt.Errorf("%w: frontier sequence %d ahead of counter %d", ErrCorruptState, e.Seq, s.Frontier.NextSeq)
		}
	}

	return s.Frontier.validate()
}
