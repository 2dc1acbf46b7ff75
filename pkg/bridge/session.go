package bridge

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	hrerrors "github.com/vango-dev/hashroute/internal/errors"
	"github.com/vango-dev/hashroute/pkg/render"
	"github.com/vango-dev/hashroute/pkg/router"
)

// Session is one connected browser: its socket, history mirror and router.
type Session struct {
	ID string

	conn     *websocket.Conn
	config   *Config
	history  *Remote
	router   *router.Router
	routes   router.Table
	renderer *render.Renderer
	handlers render.Handlers
	limiter  *rate.Limiter
	logger   *slog.Logger

	dirty    bool
	writeErr error
}

func newSession(conn *websocket.Conn, cfg *Config, logger *slog.Logger) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		conn:     conn,
		config:   cfg,
		renderer: render.NewRenderer(render.RendererConfig{}),
		handlers: render.Handlers{},
		limiter:  rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), cfg.Burst),
	}
	s.logger = logger.With("session", s.ID)
	s.history = NewRemote(s.send)
	s.router = router.New(s.history, router.Config{
		Prefix:   cfg.Prefix,
		OnError:  s.sendError,
		OnUpdate: func() { s.dirty = true },
		Logger:   s.logger,
		Metrics:  cfg.Metrics,
	})
	s.routes = cfg.Routes(s.router)
	return s
}

// run reads frames until the connection fails or closes.
func (s *Session) run() {
	defer s.router.Dispose()

	if s.config.ReadLimit > 0 {
		s.conn.SetReadLimit(s.config.ReadLimit)
	}
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("bridge read failed", "error", err)
			}
			return
		}
		s.receive(data)

		if s.writeErr != nil {
			s.logger.Warn("bridge write failed", "error", s.writeErr)
			return
		}
	}
}

// receive handles one client frame. Every frame, whatever its type, takes
// a token from the rate limiter before it is decoded.
func (s *Session) receive(data []byte) {
	if !s.limiter.Allow() {
		s.sendError(hrerrors.New("B002").WithDetailf("%d byte frame dropped", len(data)))
		return
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendError(hrerrors.New("B001").WithDetail("malformed JSON frame").Wrap(err))
		return
	}
	s.handle(msg)
	s.flush()
}

func (s *Session) handle(msg Message) {
	switch msg.Type {
	case TypeHello:
		if s.router.Mounted() {
			s.history.Receive(msg.Hash)
			return
		}
		s.history.Seed(msg.Hash)
		s.router.Mount(s.routes)
		s.logger.Debug("session started", "hash", msg.Hash)

	case TypeHashChange:
		if !s.router.Mounted() {
			s.sendError(hrerrors.New("B001").WithDetail("hashchange before hello"))
			return
		}
		s.history.Receive(msg.Hash)

	case TypeEvent:
		s.dispatch(msg.HID, msg.Event)

	default:
		s.sendError(hrerrors.New("B001").WithDetailf("unknown message type %q", msg.Type))
	}
}

// dispatch calls the handler rendered for hid and event.
func (s *Session) dispatch(hid, event string) {
	fn, ok := s.handlers.Lookup(hid, event)
	if !ok {
		s.sendError(hrerrors.New("B003").WithDetailf("no %s handler for %q", event, hid))
		return
	}
	switch h := fn.(type) {
	case func():
		h()
	case func() error:
		if err := h(); err != nil {
			s.sendError(err)
		}
	default:
		s.sendError(hrerrors.New("B003").WithDetailf("unsupported handler %T for %q", fn, hid))
	}
}

// flush sends a render frame if the router state changed.
func (s *Session) flush() {
	if !s.dirty {
		return
	}
	s.dirty = false

	s.renderer.Reset()
	html, err := s.renderer.RenderToString(s.router.Render())
	if err != nil {
		s.sendError(err)
		return
	}
	s.handlers = s.renderer.Handlers()
	s.send(Message{Type: TypeRender, HTML: html})
}

// sendError reports err to the client. The log line keeps the wrapped
// cause, which is not sent over the wire.
func (s *Session) sendError(err error) {
	text := err.Error()
	var herr *hrerrors.Error
	if errors.As(err, &herr) {
		text = herr.FormatCompact()
	}
	s.logger.Warn("bridge error", "code", hrerrors.Code(err), "error", text)
	s.send(Message{Type: TypeError, Error: err.Error()})
}

// send writes msg. The first write error is kept and ends the read loop.
func (s *Session) send(msg Message) {
	if s.writeErr != nil {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.writeErr = err
		return
	}
	if s.config.WriteTimeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.writeErr = err
	}
}
