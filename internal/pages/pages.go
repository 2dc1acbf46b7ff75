// Package pages holds the demo application served by hashroute serve.
package pages

import (
	"github.com/vango-dev/hashroute/pkg/query"
	"github.com/vango-dev/hashroute/pkg/router"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

// Linker renders navigation links and reports the current path.
// *router.Router implements it.
type Linker interface {
	Link(display any, href string, params *query.Map, attrs ...any) *vdom.VNode
	Location() (string, bool)
}

// Routes returns the demo route table.
func Routes(l Linker) router.Table {
	return router.Table{
		router.Named{Path: "/", Component: Home(l)},
		router.Named{Path: "/about", Component: About(l)},
		router.Default{Component: NotFound(l)},
	}
}

// Home links to the other pages.
func Home(l Linker) router.Component {
	return func(*query.Map) *vdom.VNode {
		return vdom.Section(
			vdom.Class("page", "page-home"),
			vdom.H1("Home"),
			vdom.Ul(
				vdom.Li(l.Link("About", "/about", query.MapOf(map[string]any{"from": "home"}))),
				vdom.Li(l.Link("A page that does not exist", "/missing", nil)),
			),
		)
	}
}

// About prints the params it was opened with.
func About(l Linker) router.Component {
	return func(params *query.Map) *vdom.VNode {
		return vdom.Section(
			vdom.Class("page", "page-about"),
			vdom.H1("About"),
			vdom.P("Params:"),
			vdom.Pre(vdom.Code(params.String())),
			l.Link("Back home", "/", nil),
		)
	}
}

// NotFound renders for paths no route declares, naming the requested path.
func NotFound(l Linker) router.Component {
	return func(params *query.Map) *vdom.VNode {
		loc, _ := l.Location()
		return vdom.Section(
			vdom.Class("page", "page-not-found"),
			vdom.H1("404"),
			vdom.P("Nothing is routed at ", vdom.Code(loc), "."),
			vdom.If(params.Len() > 0, vdom.Pre(vdom.Code(params.String()))),
			l.Link("Back home", "/", nil),
		)
	}
}
