package bridge

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/hashroute/pkg/router"
)

// Path is where NewHandler is mounted by the CLI and where ClientScript
// connects.
const Path = "/_hashroute/ws"

// Config configures a Handler.
type Config struct {
	// Routes builds the route table for a session's router. Pages receive
	// the router so they can render links.
	Routes func(r *router.Router) router.Table

	// Prefix is the router token prefix. Default: "#".
	Prefix string

	// EventsPerSecond and Burst limit the client frames of every type
	// (hello, hashchange, event) read per connection. Defaults: 20 and 10.
	EventsPerSecond float64
	Burst           int

	// ReadLimit caps the size of an incoming frame. Default: 64 KiB.
	ReadLimit int64

	// WriteTimeout bounds each frame write. Default: 10s.
	WriteTimeout time.Duration

	// Logger receives bridge logs. Default: slog.Default().
	Logger *slog.Logger

	// Metrics is shared by all session routers. Nil disables metrics.
	Metrics *router.Metrics

	// CheckOrigin is passed to the WebSocket upgrader. Nil accepts only
	// same-origin requests.
	CheckOrigin func(r *http.Request) bool
}

// Handler upgrades requests to WebSocket sessions.
type Handler struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHandler creates a bridge handler.
func NewHandler(cfg Config) *Handler {
	if cfg.Routes == nil {
		cfg.Routes = func(*router.Router) router.Table { return nil }
	}
	if cfg.EventsPerSecond <= 0 {
		cfg.EventsPerSecond = 20
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if cfg.ReadLimit <= 0 {
		cfg.ReadLimit = 64 << 10
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     cfg.CheckOrigin,
		},
		logger:   logger.With("component", "bridge"),
		sessions: make(map[string]*Session),
	}
}

// ServeHTTP upgrades the request and runs the session until it ends.
func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", req.RemoteAddr, "error", err)
		return
	}
	defer conn.Close()

	s := newSession(conn, &h.config, h.logger)

	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()
	h.logger.Info("session connected", "session", s.ID, "remote", req.RemoteAddr)

	s.run()

	h.mu.Lock()
	delete(h.sessions, s.ID)
	h.mu.Unlock()
	h.logger.Info("session closed", "session", s.ID)
}

// SessionCount returns the number of live sessions.
func (h *Handler) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Close closes every session's connection.
func (h *Handler) Close() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.sessions {
		s.conn.Close()
	}
}
