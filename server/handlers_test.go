package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/lvstep/session"
)

const diamondGraph = `{
  "nodes": [{"id":"A"},{"id":"B"},{"id":"C"},{"id":"D"}],
  "edges": [
    {"from":"A","to":"B","weight":1},
    {"from":"B","to":"D","weight":2},
    {"from":"A","to":"C","weight":4},
    {"from":"C","to":"D","weight":1}
  ]
}`

type testEnv struct {
	router *gin.Engine
	store  *session.MemoryStore
	reg    *prometheus.Registry
}

func newTestEnv(t *testing.T, maxBody int64) *testEnv {
	t.Helper()

	return newTestEnvWithLimits(t, maxBody, RunLimits{})
}

func newTestEnvWithLimits(t *testing.T, maxBody int64, limits RunLimits) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	env := &testEnv{store: session.NewMemoryStore(0), reg: prometheus.NewRegistry()}
	env.router = NewRouter(Options{
		Store:        env.store,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		CORSOrigin:   "http://localhost:5173",
		MaxBodyBytes: maxBody,
		RunLimits:    limits,
		Registry:     env.reg,
	})

	return env
}

// chainBody is a BFS request over the path 0→1→…→n-1.
func chainBody(n int) string {
	var nodes, edges []string
	for i := 0; i < n; i++ {
		nodes = append(nodes, fmt.Sprintf(`{"id":%d}`, i))
		if i > 0 {
			edges = append(edges, fmt.Sprintf(`{"from":%d,"to":%d}`, i-1, i))
		}
	}

	return fmt.Sprintf(`{"graph":{"nodes":[%s],"edges":[%s]},"algorithm":"bfs","source":0}`,
		strings.Join(nodes, ","), strings.Join(edges, ","))
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func startBody(algorithm, source, target string) string {
	b := fmt.Sprintf(`{"graph":%s,"algorithm":%q,"source":%q`, diamondGraph, algorithm, source)
	if target != "" {
		b += fmt.Sprintf(`,"target":%q`, target)
	}

	return b + "}"
}

func (e *testEnv) start(t *testing.T, algorithm, source, target string) SessionResponse {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/sessions", startBody(algorithm, source, target))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decode[SessionResponse](t, w)
}

func TestWelcomeEndpoints(t *testing.T) {
	env := newTestEnv(t, 0)

	w := env.do(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Welcome to the Home Page!", w.Body.String())

	w = env.do(t, http.MethodGet, "/api/grafos", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Welcome to the Grafos API!"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"bfs", "dfs", "dijkstra"}, decode[HealthResponse](t, w).Algorithms)
}

func TestSession_DijkstraLifecycle(t *testing.T) {
	env := newTestEnv(t, 0)
	started := env.start(t, "dijkstra", "A", "D")
	assert.NotEmpty(t, started.SessionID)
	assert.Equal(t, 1, started.PhaseID)
	assert.False(t, started.Finished)
	assert.Nil(t, started.CurrentNode)
	assert.Len(t, started.Graph.Nodes, 4)

	stepPath := "/api/sessions/" + started.SessionID + "/step"
	var phases []int
	var last SessionResponse
	for i := 0; i < 10 && !last.Finished; i++ {
		w := env.do(t, http.MethodPost, stepPath, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		last = decode[SessionResponse](t, w)
		phases = append(phases, last.PhaseID)
	}
	assert.Equal(t, []int{1, 2, 3, 2, 3, 2}, phases)
	require.True(t, last.Finished)
	require.NotNil(t, last.CurrentNode)
	assert.Equal(t, "D", *last.CurrentNode)
	require.NotNil(t, last.ShortestPath)
	assert.Equal(t, []string{"A", "B", "D"}, *last.ShortestPath)

	for _, n := range last.Graph.Nodes {
		if n["id"] == "D" {
			assert.Equal(t, "visited", n["state"])
			assert.Equal(t, 3.0, n["distance"])
			assert.Equal(t, "B", n["parent"])
		}
	}

	w := env.do(t, http.MethodPost, stepPath, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, CodeAlreadyFinished, decode[ErrorResponse](t, w).Code)

	w = env.do(t, http.MethodGet, "/api/sessions/"+started.SessionID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	snap := decode[SessionResponse](t, w)
	assert.Equal(t, "done", snap.Phase)
	assert.Equal(t, 6, snap.Steps)
}

func TestSession_BFSHasNoShortestPath(t *testing.T) {
	env := newTestEnv(t, 0)
	started := env.start(t, "bfs", "A", "")
	var last SessionResponse
	for i := 0; i < 20 && !last.Finished; i++ {
		w := env.do(t, http.MethodPost, "/api/sessions/"+started.SessionID+"/step", "")
		require.Equal(t, http.StatusOK, w.Code)
		last = decode[SessionResponse](t, w)
	}
	assert.True(t, last.Finished)
	assert.Nil(t, last.ShortestPath)
	assert.NotContains(t, last.Graph.Nodes[0], "distance")
}

func TestStart_Errors(t *testing.T) {
	env := newTestEnv(t, 0)
	negative := strings.Replace(diamondGraph, `"weight":2`, `"weight":-2`, 1)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"EmptyBody", ``, http.StatusBadRequest, CodeInvalidRequest},
		{"NoGraph", `{"algorithm":"bfs","source":"A"}`, http.StatusBadRequest, CodeInvalidRequest},
		{"UnknownAlgorithm", startBody("astar", "A", ""), http.StatusBadRequest, CodeInvalidParameter},
		{"UnknownSource", startBody("bfs", "Z", ""), http.StatusBadRequest, CodeInvalidParameter},
		{"MissingSource", `{"graph":` + diamondGraph + `,"algorithm":"bfs"}`, http.StatusBadRequest, CodeInvalidParameter},
		{"MissingTarget", startBody("dijkstra", "A", ""), http.StatusBadRequest, CodeInvalidParameter},
		{"NegativeWeight", `{"graph":` + negative + `,"algorithm":"dijkstra","source":"A","target":"D"}`,
			http.StatusBadRequest, CodeNegativeWeight},
		{"BadGraph", `{"graph":{"nodes":[{"id":"A"}],"edges":[{"from":"A","to":"Q"}]},"algorithm":"bfs","source":"A"}`,
			http.StatusBadRequest, CodeInvalidGraph},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/sessions", tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, tc.code, decode[ErrorResponse](t, w).Code)
		})
	}
	assert.Zero(t, env.store.Len(), "failed starts must not create sessions")
}

func TestStart_NumericIDs(t *testing.T) {
	env := newTestEnv(t, 0)
	body := `{"graph":{"nodes":[{"id":1},{"id":2}],"edges":[{"from":1,"to":2,"directed":false}]},
		"algorithm":"dijkstra","source":1,"target":2}`
	w := env.do(t, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	started := decode[SessionResponse](t, w)
	require.Len(t, started.Graph.Edges, 1)
	assert.Equal(t, false, started.Graph.Edges[0]["directed"])
}

func TestStart_LargeIntegerIDs(t *testing.T) {
	env := newTestEnv(t, 0)
	body := `{"graph":{"nodes":[{"id":9007199254740993},{"id":9007199254740992}],
		"edges":[{"from":9007199254740993,"to":9007199254740992}]},
		"algorithm":"dijkstra","source":9007199254740993,"target":9007199254740992}`
	w := env.do(t, http.MethodPost, "/api/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/run", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := decode[RunResponse](t, w)
	require.NotNil(t, out.ShortestPath)
	assert.Equal(t, []string{"9007199254740993", "9007199254740992"}, *out.ShortestPath)
}

func TestSession_NotFoundAndDelete(t *testing.T) {
	env := newTestEnv(t, 0)

	w := env.do(t, http.MethodPost, "/api/sessions/nope/step", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeSessionNotFound, decode[ErrorResponse](t, w).Code)

	started := env.start(t, "dfs", "A", "")
	w = env.do(t, http.MethodDelete, "/api/sessions/"+started.SessionID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/sessions/"+started.SessionID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = env.do(t, http.MethodDelete, "/api/sessions/"+started.SessionID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_CorruptState(t *testing.T) {
	env := newTestEnv(t, 0)
	require.NoError(t, env.store.Save(context.Background(), "broken", []byte(`{"version":1,"phase":"warp"}`)))

	w := env.do(t, http.MethodPost, "/api/sessions/broken/step", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeCorruptState, decode[ErrorResponse](t, w).Code)
}

func TestSession_ConcurrentStepsAreSerialized(t *testing.T) {
	env := newTestEnv(t, 0)
	started := env.start(t, "bfs", "A", "")
	stepPath := "/api/sessions/" + started.SessionID + "/step"

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := env.do(t, http.MethodPost, stepPath, "")
			if w.Code == http.StatusOK {
				mu.Lock()
				ok++
				mu.Unlock()
			} else {
				assert.Equal(t, http.StatusConflict, w.Code)
			}
		}()
	}
	wg.Wait()

	// BFS over the diamond takes 1 + 4*2 + 1 steps.
	assert.Equal(t, 10, ok)
	w := env.do(t, http.MethodGet, "/api/sessions/"+started.SessionID, "")
	snap := decode[SessionResponse](t, w)
	assert.True(t, snap.Finished)
	assert.Equal(t, 10, snap.Steps)
}

func TestRun(t *testing.T) {
	env := newTestEnv(t, 0)
	w := env.do(t, http.MethodPost, "/api/run", startBody("dijkstra", "A", "D"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decode[RunResponse](t, w)
	assert.Equal(t, "dijkstra", out.Algorithm)
	require.Len(t, out.Steps, 6)
	assert.Equal(t, 1, out.Steps[0].PhaseID)
	assert.Nil(t, out.Steps[0].CurrentNode)
	assert.True(t, out.Steps[5].Finished)
	require.NotNil(t, out.ShortestPath)
	assert.Equal(t, []string{"A", "B", "D"}, *out.ShortestPath)
	assert.Zero(t, env.store.Len())
}

func TestRun_GraphLimits(t *testing.T) {
	env := newTestEnvWithLimits(t, 0, RunLimits{MaxNodes: 10, MaxEdges: 20})

	w := env.do(t, http.MethodPost, "/api/run", chainBody(10))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, decode[RunResponse](t, w).Steps, 1+2*10+1)

	w = env.do(t, http.MethodPost, "/api/run", chainBody(11))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, CodeGraphTooLarge, decode[ErrorResponse](t, w).Code)

	// Stepwise sessions are not capped: each response holds one snapshot.
	w = env.do(t, http.MethodPost, "/api/sessions", chainBody(11))
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	dense := newTestEnvWithLimits(t, 0, RunLimits{MaxNodes: 100, MaxEdges: 3})
	w = dense.do(t, http.MethodPost, "/api/run", startBody("bfs", "A", ""))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRun_DefaultGraphLimits(t *testing.T) {
	env := newTestEnv(t, 0)
	w := env.do(t, http.MethodPost, "/api/run", chainBody(DefaultMaxRunNodes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, CodeGraphTooLarge, decode[ErrorResponse](t, w).Code)
}

func TestCORSAndRequestID(t *testing.T) {
	env := newTestEnv(t, 0)

	req := httptest.NewRequest(http.MethodOptions, "/api/sessions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/grafos", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = env.do(t, http.MethodGet, "/api/grafos", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestBodyTooLarge(t *testing.T) {
	env := newTestEnv(t, 64)
	w := env.do(t, http.MethodPost, "/api/sessions", startBody("bfs", "A", ""))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, CodeRequestTooLarge, decode[ErrorResponse](t, w).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, 0)
	started := env.start(t, "bfs", "A", "")
	env.do(t, http.MethodPost, "/api/sessions/"+started.SessionID+"/step", "")
	env.do(t, http.MethodPost, "/api/sessions/missing/step", "")

	w := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `stepgraph_sessions_started_total{algorithm="bfs"} 1`)
	assert.Contains(t, body, `stepgraph_steps_total{algorithm="bfs",phase="init"} 1`)
	assert.Contains(t, body, `stepgraph_step_errors_total{code="SESSION_NOT_FOUND"} 1`)
	assert.Contains(t, body, `stepgraph_step_duration_seconds_count{algorithm="bfs"} 1`)
}

func TestTracingSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	env := newTestEnv(t, 0)
	started := env.start(t, "bfs", "A", "")
	env.do(t, http.MethodPost, "/api/sessions/"+started.SessionID+"/step", "")

	names := map[string]bool{}
	for _, s := range rec.Ended() {
		names[s.Name()] = true
	}
	assert.True(t, names["session.start"], "spans: %v", names)
	assert.True(t, names["session.step"], "spans: %v", names)
}

func TestClassify_Unknown(t *testing.T) {
	status, code := classify(fmt.Errorf("boom: %w", bytes.ErrTooLarge))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, CodeInternal, code)
}
