package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/katalvlaran/lvstep/session"
)

// Options configures NewRouter.
type Options struct {
	Store        session.Store
	Logger       *slog.Logger
	CORSOrigin   string
	MaxBodyBytes int64

	// RunLimits caps graphs accepted by POST /api/run.
	RunLimits RunLimits

	// Registry collects the API metrics and is served on /metrics.
	// Nil creates a private registry.
	Registry *prometheus.Registry
}

// NewRouter builds the gin engine with middleware and every route registered.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("stepgraph"))
	r.Use(cors(opts.CORSOrigin))
	r.Use(requestLogger(opts.Logger))
	r.Use(maxBody(opts.MaxBodyBytes))

	h := NewHandlers(opts.Store, NewMetrics(opts.Registry), opts.Logger, opts.RunLimits)
	r.GET("/", h.HandleHome)
	r.GET("/healthz", h.HandleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))
	RegisterRoutes(r.Group("/api"), h)

	return r
}

// RegisterRoutes registers the API routes under rg.
//
// Endpoints:
//
//	GET    /grafos             - welcome message
//	POST   /sessions           - start a traversal session
//	GET    /sessions/:id       - current snapshot
//	POST   /sessions/:id/step  - advance one phase
//	DELETE /sessions/:id       - discard a session
//	POST   /run                - run to completion, all steps returned
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/grafos", h.HandleWelcome)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.HandleStart)
		sessions.GET("/:id", h.HandleGet)
		sessions.POST("/:id/step", h.HandleStep)
		sessions.DELETE("/:id", h.HandleDelete)
	}

	rg.POST("/run", h.HandleRun)
}
