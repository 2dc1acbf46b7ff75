// Package router implements hash-based client-side routing.
//
// A Router owns a history.History, listens for navigation events on it,
// matches the token's path against a Table of routes, decodes the query
// string into params, and exposes the matched components for rendering.
//
// # Route Tables
//
// Routes are matched by exact string equality. Dynamic data travels in the
// query string, never in the path. At most one Default entry renders for
// paths that match nothing:
//
//	routes := router.Table{
//	    router.Named{Path: "/", Component: Home},
//	    router.Named{Path: "/about", Component: About},
//	    router.Default{Component: NotFound},
//	}
//
// # Tokens
//
// A token is the URL fragment as the history reports it:
//
//	#/about?tab=team&tags[]=go
//
// The prefix ("#" by default) is stripped, the rest is split at the first
// "?", the path gets a leading "/" and the query is decoded with package
// query.
//
// # Usage
//
//	h := history.NewMemory("#/")
//	r := router.New(h, router.Config{
//	    OnError:  func(err error) { log.Println(err) },
//	    OnUpdate: func() { repaint(r.Render()) },
//	})
//	r.Mount(routes)
//	defer r.Dispose()
//
//	r.Navigate("/about", query.MapOf(map[string]any{"tab": "team"}))
//
// A Router is driven from a single goroutine: the history delivers one
// event at a time and no method may be called concurrently.
package router
