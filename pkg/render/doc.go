// Package render converts VNode trees into HTML.
//
// Rendering escapes text and attribute values, writes void elements without
// closing tags, and renders boolean attributes by name only. Elements that
// carry event handlers get a sequential hydration id (data-hid="h1", ...)
// and their handlers are recorded in a Handlers registry so that a client
// event naming the id can be dispatched back to the Go function:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//	fn, ok := r.Handlers().Lookup("h1", "click")
//
// RenderPage wraps a body tree in a complete HTML document with an optional
// inline client script.
package render
