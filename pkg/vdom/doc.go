// Package vdom provides the virtual node tree that routed components return.
//
// A VNode is an element, a text node, a fragment or raw HTML. Elements are
// built with variadic factory functions that accept attributes, event
// handlers, children and plain strings in any order:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    A(Href("#/about"), OnClick(handler), "About"),
//	)
//
// Event handlers are stored in Props under "on"+event and are never rendered
// as HTML attributes; the renderer assigns hydration ids to elements and
// records their handlers so that client events can be dispatched back.
package vdom
