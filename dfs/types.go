package dfs

import (
	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/stepper"
)

// Name is the registry name of the depth-first traversal.
const Name = "dfs"

// Algorithm implements stepper.Algorithm with a LIFO frontier.
type Algorithm struct{}

// New returns the DFS algorithm.
func New() Algorithm { return Algorithm{} }

// Name implements stepper.Algorithm.
func (Algorithm) Name() string { return Name }

// Discipline implements stepper.Algorithm.
func (Algorithm) Discipline() stepper.Discipline { return stepper.LIFO }

// Prepare implements stepper.Algorithm; nothing beyond the source is required.
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
