package stepper

import (
	"fmt"

	"github.com/katalvlaran/lvstep/core"
)

// Start validates the parameters, takes a private deep copy of g and returns a
// State positioned at PhaseInit. The caller's graph is never mutated.
//
// Errors:
//   - ErrInvalidParameter: g is nil, or Source is empty or absent.
//   - any error returned by alg.Prepare (e.g. a missing target, negative weights).
func Start(alg Algorithm, g *core.Graph, p Params) (*State, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: graph is nil", ErrInvalidParameter)
	}
	if p.Source == "" {
		return nil, fmt.Errorf("%w: source is empty", ErrInvalidParameter)
	}
	if !g.HasNode(p.Source) {
		return nil, fmt.Errorf("%w: source %q not in graph", ErrInvalidParameter, p.Source)
	}

	work := g.Clone()
	if err := alg.Prepare(work, p); err != nil {
		return nil, err
	}

	return &State{
		Algorithm: alg.Name(),
		Phase:     PhaseInit,
		Source:    p.Source,
		Target:    p.Target,
		Frontier:  Frontier{Discipline: alg.Discipline()},
		Graph:     work,
	}, nil
}

// Runner advances one State with one Algorithm.
// It holds no data of its own: discarding a Runner loses nothing that State does not carry.
type Runner struct {
	alg Algorithm
	st  *State
}

// NewRunner binds alg to st after checking they belong together: same
// algorithm name, same frontier discipline and, for algorithms implementing
// StateChecker, their own state invariants.
func NewRunner(alg Algorithm, st *State) (*Runner, error) {
	if st == nil || st.Graph == nil {
		return nil, fmt.Errorf("%w: state has no graph", ErrCorruptState)
	}
	if st.Algorithm != alg.Name() {
		return nil, fmt.Errorf("%w: state belongs to %q, not %q", ErrCorruptState, st.Algorithm, alg.Name())
	}
	if st.Frontier.Discipline != alg.Discipline() {
		return nil, fmt.Errorf("%w: %s frontier for %s", ErrCorruptState, st.Frontier.Discipline, alg.Name())
	}
	if sc, ok := alg.(StateChecker); ok {
		if err := sc.CheckState(st); err != nil {
			return nil, err
		}
	}

	return &Runner{alg: alg, st: st}, nil
}

// State returns the live state. Annotation changes made by Advance are visible immediately.
func (r *Runner) State() *State { return r.st }

// Advance executes exactly one phase and reports whether more work remains.
// Every successful call increments State.Steps.
//
//	Init:   alg.Seed, then Pop.
//	Pop:    empty frontier → Done (false). A popped node that is already
//	        Visited is a stale entry: it is dropped, Current is left unchanged
//	        and the phase stays Pop (true). Otherwise the node becomes Current,
//	        is marked Visited, and alg.Settle decides between Done (false) and Expand.
//	Expand: alg.Expand, then Pop.
//
// Implementation of the Pop phase:
//   - Stage 1: Pop one entry; an empty frontier ends the run.
//   - Stage 2: Drop the entry if its node is already Visited (stale entry).
//   - Stage 3: Set Current, promote it to Visited, then ask alg.Settle.
//
// Errors:
//   - ErrAlreadyFinished: the state is in PhaseDone.
//   - ErrCorruptState: the phase value is unknown; no recovery phase is guessed.
//   - any error from the algorithm hooks, unchanged.
//
// Complexity: Init O(V); Pop O(1) for FIFO/LIFO, O(log F) for MinPriority;
// Expand as documented by the algorithm.
func (r *Runner) Advance() (bool, error) {
	st := r.st
	switch st.Phase {
	case PhaseInit:
		if err := r.alg.Seed(st); err != nil {
			return false, err
		}
		st.Phase = PhasePop
		st.Steps++
		return true, nil

	case PhasePop:
		e, ok := st.Frontier.Pop()
		if !ok {
			st.Phase = PhaseDone
			st.Steps++
			return false, nil
		}
		st.Steps++
		if st.Graph.StateOf(e.Node) == core.StateVisited {
			return true, nil
		}
		st.Current, st.HasCurrent = e.Node, true
		if err := st.Graph.Promote(e.Node, core.StateVisited); err != nil {
			return false, fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
		done, err := r.alg.Settle(st)
		if err != nil {
			return false, err
		}
		if done {
			st.Phase = PhaseDone
			return false, nil
		}
		st.Phase = PhaseExpand
		return true, nil

	case PhaseExpand:
		if err := r.alg.Expand(st); err != nil {
			return false, err
		}
		st.Phase = PhasePop
		st.Steps++
		return true, nil

	case PhaseDone:
		return false, ErrAlreadyFinished

	default:
		return false, fmt.Errorf("%w: unknown phase %d", ErrCorruptState, st.Phase)
	}
}
