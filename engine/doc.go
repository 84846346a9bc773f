// Package engine is the driving-layer facade over the stepwise traversals.
//
// It maps algorithm names to implementations and exposes the three calls a
// transport needs:
//
//	Start(g, name, params) → *stepper.State     (validated, positioned at Init)
//	Step(state)            → Result             (exactly one phase)
//	Run(g, name, params)   → []Result           (every step, for batch replay)
//
// The state returned by Start is a plain value: persist it with stepper.Marshal
// between calls to Step and restore it with stepper.Unmarshal. The engine keeps
// nothing between calls.
package engine
