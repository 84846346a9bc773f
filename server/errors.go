package server

import (
	"errors"
	"net/http"

	"github.com/katalvlaran/lvstep/codec"
	"github.com/katalvlaran/lvstep/dijkstra"
	"github.com/katalvlaran/lvstep/session"
	"github.com/katalvlaran/lvstep/stepper"
)

var (
	// errBadRequest marks request-shape failures (binding, ids).
	errBadRequest = errors.New("server: bad request")

	// errGraphTooLarge marks a batch run over a graph above RunLimits.
	errGraphTooLarge = errors.New("server: graph too large for batch run")
)

// classify maps an error to its HTTP status and error code.
func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, CodeRequestTooLarge
	case errors.Is(err, errGraphTooLarge):
		return http.StatusRequestEntityTooLarge, CodeGraphTooLarge
	case errors.Is(err, errBadRequest):
		return http.StatusBadRequest, CodeInvalidRequest
	case errors.Is(err, dijkstra.ErrNegativeWeight):
		return http.StatusBadRequest, CodeNegativeWeight
	case errors.Is(err, codec.ErrInvalidGraph):
		return http.StatusBadRequest, CodeInvalidGraph
	case errors.Is(err, stepper.ErrInvalidParameter):
		return http.StatusBadRequest, CodeInvalidParameter
	case errors.Is(err, stepper.ErrAlreadyFinished):
		return http.StatusConflict, CodeAlreadyFinished
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound, CodeSessionNotFound
	case errors.Is(err, stepper.ErrCorruptState):
		return http.StatusInternalServerError, CodeCorruptState
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
