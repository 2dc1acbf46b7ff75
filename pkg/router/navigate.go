package router

import (
	"strings"

	"github.com/vango-dev/hashroute/pkg/query"
)

// NavigationMode determines how a navigation changes the history.
type NavigationMode int

const (
	// ModePush adds a new history entry.
	ModePush NavigationMode = iota

	// ModeReplace overwrites the current history entry.
	ModeReplace
)

// String returns "push" or "replace".
func (m NavigationMode) String() string {
	if m == ModeReplace {
		return "replace"
	}
	return "push"
}

// NavigationRequest is a decoded navigation: a path and its query params.
type NavigationRequest struct {
	Route  string
	Params *query.Map
}

// URI returns the canonical path?query form of the request.
func (n NavigationRequest) URI() string {
	if qs := query.Encode(n.Params); qs != "" {
		return n.Route + "?" + qs
	}
	return n.Route
}

// ParseToken decodes a raw history token. The prefix is stripped, the path
// is given a leading "/" and the query string is decoded.
func ParseToken(token, prefix string) NavigationRequest {
	rest := strings.TrimPrefix(token, prefix)
	path, qs, _ := strings.Cut(rest, "?")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return NavigationRequest{Route: path, Params: query.Decode(qs)}
}

// Href returns the token for route and params: prefix + route, plus
// "?" and the encoded params when any survive encoding.
func (r *Router) Href(route string, params *query.Map) string {
	href := r.config.Prefix + route
	if qs := query.Encode(params); qs != "" {
		href += "?" + qs
	}
	return href
}

// Navigate points the history at route with params. When route equals the
// current token's route the entry is replaced, otherwise a new entry is
// pushed. Null params are dropped.
func (r *Router) Navigate(route string, params *query.Map) NavigationMode {
	current := strings.TrimPrefix(r.history.Token(), r.config.Prefix)
	oldRoute, _, _ := strings.Cut(current, "?")
	token := r.Href(route, params)

	mode := ModePush
	if oldRoute == route {
		mode = ModeReplace
	}
	r.config.Metrics.recordNavigation(mode)
	r.logger.Debug("navigate", "token", token, "mode", mode.String())

	if mode == ModeReplace {
		r.history.Replace(token)
	} else {
		r.history.Push(token)
	}
	return mode
}

// Listener returns the transition listener the router registers on its
// history. It can also be fed tokens directly.
func (r *Router) Listener() func(token string) {
	return r.transition
}

// transition handles one navigation event. Tokens that decode to the URI
// of the current state are ignored.
func (r *Router) transition(token string) {
	req := ParseToken(token, r.config.Prefix)
	if r.hasLocation && req.URI() == r.uri {
		r.config.Metrics.recordSuppressed()
		r.logger.Debug("navigation suppressed", "uri", r.uri)
		return
	}
	r.handleRouteChange(req)
}
