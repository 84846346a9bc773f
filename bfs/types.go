package bfs

import (
	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/stepper"
)

// Name is the registry name of the breadth-first traversal.
const Name = "bfs"

// Algorithm implements stepper.Algorithm with a FIFO frontier.
// It is stateless; all progress lives in stepper.State.
type Algorithm struct{}

// New returns the BFS algorithm.
func New() Algorithm { return Algorithm{} }

// Name implements stepper.Algorithm.
func (Algorithm) Name() string { return Name }

// Discipline implements stepper.Algorithm.
func (Algorithm) Discipline() stepper.Discipline { return stepper.FIFO }

// Prepare implements stepper.Algorithm. BFS needs only the source, which
// stepper.Start already validated, and ignores edge weights and targets.
func (Algorithm) Prepare(*core.Graph, stepper.Params) error { return nil }

// Start validates source, copies g and returns a runner positioned at Init.
func Start(g *core.Graph, source string) (*stepper.Runner, error) {
	alg := New()
	st, err := stepper.Start(alg, g, stepper.Params{Source: source})
	if err != nil {
		return nil, err
	}

	return stepper.NewRunner(alg, st)
}
