package router

import (
	"errors"

	hrerrors "github.com/vango-dev/hashroute/internal/errors"
	"github.com/vango-dev/hashroute/pkg/query"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

// ErrNoMatch is wrapped by the error reported when a path matches no route
// and the table has no Default entry.
var ErrNoMatch = errors.New("router: no route matched")

// Component renders a routed page from the current query params.
type Component func(params *query.Map) *vdom.VNode

// RouteEntry is one declaration in a Table: a Named route or the Default.
type RouteEntry interface {
	isRouteEntry()
}

// Named binds a path to a component. Path is compared by exact equality.
type Named struct {
	Path      string
	Component Component
}

// Default renders for every path that no Named entry declares.
type Default struct {
	Component Component
}

func (Named) isRouteEntry()   {}
func (Default) isRouteEntry() {}

// Table is an ordered route declaration.
type Table []RouteEntry

// Match is the result of matching a path against a Table.
type Match struct {
	// Location is the requested path, also when the Default matched.
	Location string

	// Components are the components to render, in order.
	Components []Component

	// Default reports whether the Default entry matched.
	Default bool
}

// Match resolves path against the table.
// When several Named entries share a path the last one wins, as does the
// last Default entry.
func (t Table) Match(path string) (Match, error) {
	named := make(map[string]Component, len(t))
	var fallback Component
	for _, entry := range t {
		switch e := entry.(type) {
		case Named:
			named[e.Path] = e.Component
		case Default:
			fallback = e.Component
		}
	}

	if c, ok := named[path]; ok {
		return Match{Location: path, Components: []Component{c}}, nil
	}
	if fallback != nil {
		return Match{Location: path, Components: []Component{fallback}, Default: true}, nil
	}
	return Match{}, hrerrors.New("R001").
		WithDetailf("no route for %q", path).
		Wrap(ErrNoMatch)
}

// Paths returns the declared Named paths in table order.
func (t Table) Paths() []string {
	var paths []string
	for _, entry := range t {
		if n, ok := entry.(Named); ok {
			paths = append(paths, n.Path)
		}
	}
	return paths
}
