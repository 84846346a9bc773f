package engine

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lvstep/bfs"
	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/dfs"
	"github.com/katalvlaran/lvstep/dijkstra"
	"github.com/katalvlaran/lvstep/stepper"
)

var registry = map[string]stepper.Algorithm{
	bfs.Name:      bfs.New(),
	dfs.Name:      dfs.New(),
	dijkstra.Name: dijkstra.New(),
}

// Algorithms returns the registered algorithm names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Lookup returns the algorithm registered under name.
func Lookup(name string) (stepper.Algorithm, error) {
	alg, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown algorithm %q", stepper.ErrInvalidParameter, name)
	}

	return alg, nil
}

// Result describes one executed step.
type Result struct {
	// Finished is true once the traversal has terminated.
	Finished bool

	// Current is the most recently popped node (HasCurrent false before the first pop).
	Current    string
	HasCurrent bool

	// Phase is the phase that was just executed; PhaseID is its numeric id.
	Phase   stepper.Phase
	PhaseID int

	// Graph is the live working graph after the step.
	Graph *core.Graph

	// ShortestPath is set by Dijkstra once the target is settled.
	ShortestPath []string
}

// Start validates params for the named algorithm and returns a fresh state.
// Nothing is returned on error.
func Start(g *core.Graph, name string, p stepper.Params) (*stepper.State, error) {
	alg, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return stepper.Start(alg, g, p)
}

// Step advances st by exactly one phase.
func Step(st *stepper.State) (Result, error) {
	if st == nil {
		return Result{}, fmt.Errorf("%w: nil state", stepper.ErrCorruptState)
	}
	alg, ok := registry[st.Algorithm]
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown algorithm %q", stepper.ErrCorruptState, st.Algorithm)
	}
	r, err := stepper.NewRunner(alg, st)
	if err != nil {
		return Result{}, err
	}

	executed := st.Phase
	if _, err = r.Advance(); err != nil {
		return Result{}, err
	}

	return Result{
		Finished:     st.Finished(),
		Current:      st.Current,
		HasCurrent:   st.HasCurrent,
		Phase:        executed,
		PhaseID:      executed.ID(),
		Graph:        st.Graph,
		ShortestPath: st.ShortestPath,
	}, nil
}

// Run drives a fresh traversal to completion. Each Result holds its own
// snapshot of the graph, so the slice replays the run step by step.
func Run(g *core.Graph, name string, p stepper.Params) ([]Result, error) {
	st, err := Start(g, name, p)
	if err != nil {
		return nil, err
	}
	var out []Result
	for !st.Finished() {
		res, err := Step(st)
		if err != nil {
			return out, err
		}
		res.Graph = res.Graph.Clone()
		res.ShortestPath = append([]string(nil), res.ShortestPath...)
		out = append(out, res)
	}

	return out, nil
}
