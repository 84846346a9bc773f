package stepper

import (
	"errors"

	"github.com/katalvlaran/lvstep/core"
)

// Sentinel errors for stepwise execution.
var (
	// ErrInvalidParameter is returned by Start when the graph is nil, or a
	// required node ID is empty or absent from the graph.
	ErrInvalidParameter = errors.New("stepper: invalid parameter")

	// ErrAlreadyFinished is returned when Advance is called after it reported
	// completion. It is a caller contract violation, not a data error.
	ErrAlreadyFinished = errors.New("stepper: traversal already finished")

	// ErrCorruptState is returned when a state carries an unknown phase,
	// frontier discipline, or references that do not match its graph.
	ErrCorruptState = errors.New("stepper: corrupt runner state")
)

// Phase is a named step of the traversal state machine.
//
//	Init → Pop           (once)
//	Pop  → Expand | Pop  (stale entry) | Done (frontier empty or target settled)
//	Expand → Pop
type Phase uint8

const (
	PhaseInit   Phase = 1
	PhasePop    Phase = 2
	PhaseExpand Phase = 3
	PhaseDone   Phase = 4
)

var phaseNames = map[Phase]string{
	PhaseInit:   "init",
	PhasePop:    "pop",
	PhaseExpand: "expand",
	PhaseDone:   "done",
}

// String returns the wire name of p.
func (p Phase) String() string {
	if n, ok := phaseNames[p]; ok {
		return n
	}

	return "invalid"
}

// Valid reports whether p is one of the declared phases.
func (p Phase) Valid() bool {
	_, ok := phaseNames[p]

	return ok
}

// ID returns the numeric phase id exposed to visualization clients (Init=1, Pop=2, Expand=3).
func (p Phase) ID() int { return int(p) }

// ParsePhase converts a wire name back into a Phase.
func ParsePhase(name string) (Phase, bool) {
	for p, n := range phaseNames {
		if n == name {
			return p, true
		}
	}

	return 0, false
}

// Params holds the algorithm parameters accepted by Start.
// Target is only consulted by algorithms that stop at a destination.
type Params struct {
	Source string
	Target string
}

// State is the complete, value-transportable state of one traversal.
//
// Everything a runner needs to continue lives here: phase, current node,
// frontier contents, the working graph and (for Dijkstra) the shortest path.
// Marshal/Unmarshal convert it to and from an inert byte form.
type State struct {
	Algorithm string
	Phase     Phase
	Source    string
	Target    string

	// Current is defined only after a successful pop (HasCurrent).
	Current    string
	HasCurrent bool

	Frontier Frontier
	Graph    *core.Graph

	// ShortestPath is filled when a target is settled; empty means unreachable.
	ShortestPath []string

	// Steps counts successful Advance calls.
	Steps int
}

// Finished reports whether the traversal reached its terminal phase.
func (s *State) Finished() bool { return s.Phase == PhaseDone }

// Algorithm supplies the frontier discipline and the per-phase behavior of one
// traversal. Phase bookkeeping, popping, staleness and visitation marking are
// done by Runner.
type Algorithm interface {
	// Name is the registry name stored in State.Algorithm.
	Name() string

	// Discipline selects the frontier order.
	Discipline() Discipline

	// Prepare validates algorithm-specific parameters against the working graph.
	Prepare(g *core.Graph, p Params) error

	// Seed runs the Init phase: annotate nodes and push the source.
	Seed(s *State) error

	// Settle runs after s.Current was popped and marked visited.
	// Returning done=true terminates the traversal.
	Settle(s *State) (done bool, err error)

	// Expand scans the neighbors of s.Current and pushes candidates.
	Expand(s *State) error
}

// StateChecker is implemented by algorithms whose states carry invariants
// beyond the generic ones checked by Unmarshal (e.g. a target node that must
// exist). NewRunner calls CheckState before binding; failures wrap ErrCorruptState.
type StateChecker interface {
	CheckState(s *State) error
}
