package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvstep/codec"
	"github.com/katalvlaran/lvstep/core"
	"github.com/katalvlaran/lvstep/dijkstra"
	"github.com/katalvlaran/lvstep/engine"
	"github.com/katalvlaran/lvstep/session"
	"github.com/katalvlaran/lvstep/stepper"
)

var tracer = otel.Tracer("stepgraph.server")

// Handlers serves the traversal session API.
//
// Thread Safety: safe for concurrent use. Steps on one session are serialized
// through locks; distinct sessions run in parallel.
type Handlers struct {
	store   session.Store
	locks   *session.Locks
	metrics *Metrics
	logger  *slog.Logger
	limits  RunLimits
}

// NewHandlers wires the handlers to a session store. Zero limits take the defaults.
func NewHandlers(store session.Store, metrics *Metrics, logger *slog.Logger, limits RunLimits) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handlers{
		store:   store,
		locks:   session.NewLocks(),
		metrics: metrics,
		logger:  logger,
		limits:  limits.withDefaults(),
	}
}

// HandleHome handles GET /.
func (h *Handlers) HandleHome(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the Home Page!")
}

// HandleWelcome handles GET /api/grafos.
func (h *Handlers) HandleWelcome(c *gin.Context) {
	c.JSON(http.StatusOK, WelcomeResponse{Message: "Welcome to the Grafos API!"})
}

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Algorithms: engine.Algorithms()})
}

// HandleStart handles POST /api/sessions.
//
// Decodes the graph, validates the parameters, persists the fresh state and
// returns 201 with the session id. No session is created on error.
func (h *Handlers) HandleStart(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With(slog.String("request_id", requestID), slog.String("handler", "HandleStart"))

	ctx, span := tracer.Start(c.Request.Context(), "session.start")
	defer span.End()

	st, err := h.startState(c, span, nil)
	if err != nil {
		h.fail(c, span, logger, err)
		return
	}

	raw, err := stepper.Marshal(st)
	if err != nil {
		h.fail(c, span, logger, err)
		return
	}
	id := uuid.NewString()
	if err = h.store.Save(ctx, id, raw); err != nil {
		h.fail(c, span, logger, fmt.Errorf("save session: %w", err))
		return
	}
	span.SetAttributes(attribute.String("session.id", id))
	h.metrics.sessionStarted(st.Algorithm)
	logger.Info("session started",
		slog.String("session_id", id),
		slog.String("algorithm", st.Algorithm),
		slog.String("source", st.Source),
		slog.Int("nodes", st.Graph.NodeCount()),
	)

	c.JSON(http.StatusCreated, snapshot(id, st, st.Phase))
}

// HandleStep handles POST /api/sessions/:id/step.
//
// Loads the serialized state, advances exactly one phase and saves it back.
// Returns 409 ALREADY_FINISHED once the traversal has ended.
func (h *Handlers) HandleStep(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	id := c.Param("id")
	logger := h.logger.With(
		slog.String("request_id", requestID),
		slog.String("handler", "HandleStep"),
		slog.String("session_id", id),
	)

	ctx, span := tracer.Start(c.Request.Context(), "session.step",
		trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	unlock := h.locks.Lock(id)
	defer unlock()

	start := time.Now()
	st, err := h.load(ctx, id)
	if err != nil {
		h.fail(c, span, logger, err)
		return
	}
	res, err := engine.Step(st)
	if err != nil {
		h.fail(c, span, logger, err)
		return
	}
	raw, err := stepper.Marshal(st)
	if err != nil {
		h.fail(c, span, logger, err)
		return
	}
	if err = h.store.Save(ctx, id, raw); err != nil {
		h.fail(c, span, logger, fmt.Errorf("save session: %w", err))
		return
	}
	h.metrics.stepDone(st.Algorithm, res.Phase.String(), time.Since(start))
	span.SetAttributes(
		attribute.String("step.phase", res.Phase.String()),
		attribute.Bool("step.finished", res.Finished),
	)
	logger.Debug("step", slog.String("phase", res.Phase.String()), slog.Bool("finished", res.Finished))

	c.JSON(http.StatusOK, snapshot(id, st, res.Phase))
}

// HandleGet handles GET /api/sessions/:id.
func (h *Handlers) HandleGet(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	id := c.Param("id")
	logger := h.logger.With(slog.String("request_id", requestID), slog.String("handler", "HandleGet"))

	ctx, span := tracer.Start(c.Request.Context(), "session.get",
		trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	st, err := h.load(ctx, id)
	if err != nil {
		h.fail(c, span, logger, err)
		return
	}
	c.JSON(http.StatusOK, snapshot(id, st, st.Phase))
}

// HandleDelete handles DELETE /api/sessions/:id.
func (h *Handlers) HandleDelete(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	id := c.Param("id")
	logger := h.logger.With(slog.String("request_id", requestID), slog.String("handler", "HandleDelete"))

	ctx, span := tracer.Start(c.Request.Context(), "session.delete",
		trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	unlock := h.locks.Lock(id)
	defer unlock()

	if err := h.store.Delete(ctx, id); err != nil {
		h.fail(c, span, logger, err)
		return
	}
	logger.Info("session deleted", slog.String("session_id", id))
	c.Status(http.StatusNoContent)
}

// HandleRun handles POST /api/run: the whole traversal in one call, every step included.
//
// Every step carries a full graph snapshot, so graphs above the configured
// RunLimits are rejected with 413 GRAPH_TOO_LARGE before any step runs.
func (h *Handlers) HandleRun(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With(slog.String("request_id", requestID), slog.String("handler", "HandleRun"))

	_, span := tracer.Start(c.Request.Context(), "session.run")
	defer span.End()

	st, err := h.startState(c, span, h.checkRunSize)
	if err != nil {
		h.fail(c, span, logger, err)
		return
	}

	out := RunResponse{Algorithm: st.Algorithm}
	for !st.Finished() {
		start := time.Now()
		res, err := engine.Step(st)
		if err != nil {
			h.fail(c, span, logger, err)
			return
		}
		h.metrics.stepDone(st.Algorithm, res.Phase.String(), time.Since(start))
		out.Steps = append(out.Steps, RunStep{
			PhaseID:      res.PhaseID,
			Finished:     res.Finished,
			CurrentNode:  currentNode(st),
			Graph:        codec.ToDocument(res.Graph),
			ShortestPath: shortestPath(st),
		})
	}
	out.ShortestPath = shortestPath(st)
	span.SetAttributes(attribute.Int("run.steps", len(out.Steps)))

	c.JSON(http.StatusOK, out)
}

// checkRunSize enforces RunLimits on a decoded graph.
func (h *Handlers) checkRunSize(g *core.Graph) error {
	if g.NodeCount() > h.limits.MaxNodes || g.EdgeCount() > h.limits.MaxEdges {
		return fmt.Errorf("%w: %d nodes, %d edges (limit %d nodes, %d edges)",
			errGraphTooLarge, g.NodeCount(), g.EdgeCount(), h.limits.MaxNodes, h.limits.MaxEdges)
	}

	return nil
}

// startState binds a StartRequest and builds a validated state from it.
// check, when set, vets the decoded graph before the traversal is prepared.
func (h *Handlers) startState(c *gin.Context, span trace.Span, check func(*core.Graph) error) (*stepper.State, error) {
	var req StartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	span.SetAttributes(attribute.String("session.algorithm", req.Algorithm))

	g, err := codec.Decode(req.Graph)
	if err != nil {
		return nil, err
	}
	if check != nil {
		if err = check(g); err != nil {
			return nil, err
		}
	}
	p, err := params(req)
	if err != nil {
		return nil, err
	}

	return engine.Start(g, req.Algorithm, p)
}

func params(req StartRequest) (stepper.Params, error) {
	var p stepper.Params
	src, err := rawID(req.Source)
	if err != nil {
		return p, fmt.Errorf("%w: source: %v", stepper.ErrInvalidParameter, err)
	}
	p.Source = src
	if !isNull(req.Target) {
		if p.Target, err = rawID(req.Target); err != nil {
			return p, fmt.Errorf("%w: target: %v", stepper.ErrInvalidParameter, err)
		}
	}

	return p, nil
}

// rawID decodes a JSON id with json.Number, as codec.Decode does for the graph.
func rawID(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return codec.ID(nil)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}

	return codec.ID(v)
}

func isNull(raw json.RawMessage) bool {
	return len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null"
}

// load fetches and decodes the state of id.
func (h *Handlers) load(ctx context.Context, id string) (*stepper.State, error) {
	raw, err := h.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	return stepper.Unmarshal(raw)
}

// fail records err on the span and metrics, logs it and writes the error response.
func (h *Handlers) fail(c *gin.Context, span trace.Span, logger *slog.Logger, err error) {
	status, code := classify(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, code)
	h.metrics.failed(code)

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", slog.String("code", code), slog.String("error", err.Error()))
	} else {
		logger.Warn("request rejected", slog.String("code", code), slog.String("error", err.Error()))
	}

	c.JSON(status, ErrorResponse{Error: http.StatusText(status), Code: code, Details: err.Error()})
}

// snapshot renders st; phase is the phase reported as phase_id.
func snapshot(id string, st *stepper.State, phase stepper.Phase) SessionResponse {
	return SessionResponse{
		SessionID:    id,
		Algorithm:    st.Algorithm,
		Finished:     st.Finished(),
		CurrentNode:  currentNode(st),
		PhaseID:      phase.ID(),
		Phase:        st.Phase.String(),
		Steps:        st.Steps,
		Graph:        codec.ToDocument(st.Graph),
		ShortestPath: shortestPath(st),
	}
}

func currentNode(st *stepper.State) *string {
	if !st.HasCurrent {
		return nil
	}
	cur := st.Current

	return &cur
}

// shortestPath is present only for a finished Dijkstra run; empty means unreachable.
func shortestPath(st *stepper.State) *[]string {
	if st.Algorithm != dijkstra.Name || !st.Finished() {
		return nil
	}
	path := append([]string{}, st.ShortestPath...)

	return &path
}
