package dijkstra

import (
	"errors"

	"github.com/katalvlaran/lvstep/stepper"
)

// Name is the registry name of the shortest-path traversal.
const Name = "dijkstra"

// ErrNegativeWeight indicates that a negative edge weight was detected in the graph.
var ErrNegativeWeight = errors.New("dijkstra: negative edge weight encountered")

// Options configures a stepwise Dijkstra run.
//
// Source – starting node ID (must be non-empty and present in the graph).
// Target – node whose settlement ends the run (must be non-empty and present).
type Options struct {
	Source string
	Target string
}

// Option represents a functional option for configuring Dijkstra.
type Option func(*Options)

// Source sets the starting node ID.
func Source(id string) Option {
	return func(o *Options) {
		o.Source = id
	}
}

// Target sets the node whose settlement terminates the run.
func Target(id string) Option {
	return func(o *Options) {
		o.Target = id
	}
}

// Params converts o into the stepper parameters.
func (o Options) Params() stepper.Params {
	return stepper.Params{Source: o.Source, Target: o.Target}
}

// Algorithm implements stepper.Algorithm with a min-priority frontier keyed by
// tentative distance. Equal distances pop in insertion order.
type Algorithm struct{}

// New returns the Dijkstra algorithm.
func New() Algorithm { return Algorithm{} }

// Name implements stepper.Algorithm.
func (Algorithm) Name() string { return Name }

// Discipline implements stepper.Algorithm.
func (Algorithm) Discipline() stepper.Discipline { return stepper.MinPriority }
