package router

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/hashroute/pkg/history"
	"github.com/vango-dev/hashroute/pkg/query"
)

// DefaultPrefix is stripped from history tokens before parsing.
const DefaultPrefix = "#"

const tracerName = "github.com/vango-dev/hashroute/pkg/router"

// Config configures a Router.
type Config struct {
	// Prefix is stripped from every token. Default: "#".
	Prefix string

	// OnError receives routing failures. Errors are never fatal.
	OnError func(err error)

	// OnUpdate is called after every successful state update.
	OnUpdate func()

	// Logger receives routing logs. Default: slog.Default().
	Logger *slog.Logger

	// Metrics records navigation counters. Nil disables metrics.
	Metrics *Metrics

	// Tracer traces route changes. Default: the global otel tracer.
	Tracer trace.Tracer
}

// Router holds the routing state for one history.
type Router struct {
	config  Config
	history history.History
	logger  *slog.Logger
	tracer  trace.Tracer

	routes   Table
	mounted  bool
	unlisten func()

	hasLocation bool
	location    string
	matched     []Component
	params      *query.Map
	uri         string
}

// New creates a router over h. The router does nothing until Mount.
func New(h history.History, cfg Config) *Router {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Router{
		config:  cfg,
		history: h,
		logger:  logger.With("component", "router"),
		tracer:  tracer,
		params:  query.NewMap(),
	}
}

// Mount registers the history listener and routes the current token.
// Only the first call has any effect.
func (r *Router) Mount(routes Table) {
	if r.mounted {
		return
	}
	r.mounted = true
	r.routes = routes
	r.unlisten = r.history.Listen(r.transition)
	r.logger.Debug("router mounted", "routes", len(routes), "prefix", r.config.Prefix)
	r.transition(r.history.Token())
}

// Dispose removes the history listener. The router keeps its last state
// and can be mounted again.
func (r *Router) Dispose() {
	if !r.mounted {
		return
	}
	if r.unlisten != nil {
		r.unlisten()
		r.unlisten = nil
	}
	r.mounted = false
	r.logger.Debug("router disposed")
}

// Mounted reports whether the listener is registered.
func (r *Router) Mounted() bool {
	return r.mounted
}

// Location returns the last successfully matched path. The second result
// is false before the first match.
func (r *Router) Location() (string, bool) {
	return r.location, r.hasLocation
}

// Params returns the current query params.
func (r *Router) Params() *query.Map {
	return r.params
}

// Matched returns the components of the last match.
func (r *Router) Matched() []Component {
	return r.matched
}

// Prefix returns the configured token prefix.
func (r *Router) Prefix() string {
	return r.config.Prefix
}

// Routes returns the mounted route table.
func (r *Router) Routes() Table {
	return r.routes
}

func (r *Router) handleRouteChange(req NavigationRequest) {
	start := time.Now()
	_, span := r.tracer.Start(context.Background(), "router.route_change",
		trace.WithAttributes(
			attribute.String("router.route", req.Route),
			attribute.String("router.uri", req.URI()),
		),
	)
	defer span.End()

	match, err := r.routes.Match(req.Route)
	if err != nil {
		r.config.Metrics.recordRouteChange(statusNoMatch, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Warn("route change failed", "route", req.Route, "error", err)
		if r.config.OnError != nil {
			r.config.OnError(err)
		}
		return
	}

	status := statusMatched
	if match.Default {
		status = statusDefault
	}
	span.SetAttributes(attribute.Bool("router.default", match.Default))

	r.hasLocation = true
	r.location = match.Location
	r.matched = match.Components
	r.params = req.Params
	r.uri = req.URI()

	r.config.Metrics.recordRouteChange(status, time.Since(start))
	r.logger.Debug("route changed", "location", r.location, "default", match.Default)

	if r.config.OnUpdate != nil {
		r.config.OnUpdate()
	}

	r.Navigate(r.location, r.params)
}
