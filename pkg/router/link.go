package router

import (
	"github.com/vango-dev/hashroute/pkg/query"
	"github.com/vango-dev/hashroute/pkg/vdom"
)

// Link renders an anchor that navigates to href with params when clicked.
// The anchor carries the full token as its href so it also works without
// the click handler. The link to the current location is marked with
// aria-current="page".
func (r *Router) Link(display any, href string, params *query.Map, attrs ...any) *vdom.VNode {
	args := []any{
		vdom.Href(r.Href(href, params)),
		vdom.Data("link", "true"),
		vdom.OnClick(func() { r.Follow(href, params) }),
	}
	if loc, ok := r.Location(); ok && loc == href {
		args = append(args, vdom.AriaCurrent("page"))
	}
	args = append(args, attrs...)
	args = append(args, display)
	return vdom.A(args...)
}

// Follow performs a link activation. A replace does not fire a history
// event, so the new token is routed directly.
func (r *Router) Follow(href string, params *query.Map) NavigationMode {
	mode := r.Navigate(href, params)
	if mode == ModeReplace {
		r.transition(r.history.Token())
	}
	return mode
}

// Render returns a container holding every matched component invoked with
// the current params.
func (r *Router) Render() *vdom.VNode {
	children := make([]any, 0, len(r.matched)+1)
	children = append(children, vdom.Class("router-view"))
	for _, c := range r.matched {
		children = append(children, c(r.params))
	}
	return vdom.Div(children...)
}
