package server

import (
	"encoding/json"

	"github.com/katalvlaran/lvstep/codec"
)

// StartRequest is the body of POST /api/sessions and POST /api/run.
//
// Source and Target accept JSON strings or numbers, like node ids in the graph.
// They stay raw until decoded with the same number handling as the graph, so
// large integer ids are matched exactly.
type StartRequest struct {
	Graph     json.RawMessage `json:"graph" binding:"required"`
	Algorithm string          `json:"algorithm" binding:"required"`
	Source    json.RawMessage `json:"source"`
	Target    json.RawMessage `json:"target,omitempty"`
}

// RunLimits caps the graph accepted by POST /api/run. Its response carries a
// full graph snapshot per step, so its size grows with steps × (V + E).
// Edges are counted after undirected edges are expanded into directed pairs.
// Zero fields take DefaultMaxRunNodes and DefaultMaxRunEdges.
type RunLimits struct {
	MaxNodes int
	MaxEdges int
}

// Defaults for RunLimits.
const (
	DefaultMaxRunNodes = 200
	DefaultMaxRunEdges = 2000
)

func (l RunLimits) withDefaults() RunLimits {
	if l.MaxNodes <= 0 {
		l.MaxNodes = DefaultMaxRunNodes
	}
	if l.MaxEdges <= 0 {
		l.MaxEdges = DefaultMaxRunEdges
	}

	return l
}

// SessionResponse describes a session after start, step or snapshot.
//
// PhaseID is the phase just executed for step responses and the phase that
// will run next for start and snapshot responses. Phase always names the next phase.
type SessionResponse struct {
	SessionID    string         `json:"session_id"`
	Algorithm    string         `json:"algorithm"`
	Finished     bool           `json:"finished"`
	CurrentNode  *string        `json:"current_node"`
	PhaseID      int            `json:"phase_id"`
	Phase        string         `json:"phase"`
	Steps        int            `json:"steps"`
	Graph        codec.Document `json:"graph"`
	ShortestPath *[]string      `json:"shortest_path,omitempty"`
}

// RunStep is one entry of a batch run.
type RunStep struct {
	PhaseID      int            `json:"phase_id"`
	Finished     bool           `json:"finished"`
	CurrentNode  *string        `json:"current_node"`
	Graph        codec.Document `json:"graph"`
	ShortestPath *[]string      `json:"shortest_path,omitempty"`
}

// RunResponse is the body returned by POST /api/run.
type RunResponse struct {
	Algorithm    string    `json:"algorithm"`
	Steps        []RunStep `json:"steps"`
	ShortestPath *[]string `json:"shortest_path,omitempty"`
}

// WelcomeResponse is returned by GET /api/grafos.
type WelcomeResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by GET /healthz.
type HealthResponse struct {
	Status     string   `json:"status"`
	Algorithms []string `json:"algorithms"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code,omitempty"`

	// Details provides additional error context (optional).
	Details string `json:"details,omitempty"`
}

// Error codes.
const (
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	CodeGraphTooLarge    = "GRAPH_TOO_LARGE"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeNegativeWeight   = "NEGATIVE_WEIGHT"
	CodeInvalidGraph     = "INVALID_GRAPH"
	CodeAlreadyFinished  = "ALREADY_FINISHED"
	CodeSessionNotFound  = "SESSION_NOT_FOUND"
	CodeCorruptState     = "CORRUPT_STATE"
	CodeInternal         = "INTERNAL_ERROR"
)
