// Package bridge runs routers on the server for browsers connected over a
// WebSocket.
//
// The browser keeps the real URL fragment. It reports the fragment on
// connect (hello) and on every hashchange, and forwards clicks on elements
// that carry a data-hid attribute. The server owns one Router per
// connection, backed by a Remote history that mirrors the browser's
// fragment and turns Push and Replace into frames the client applies.
//
// Frames are JSON text messages:
//
//	client → server  {"type":"hello","hash":"#/about"}
//	                 {"type":"hashchange","hash":"#/about?tab=team"}
//	                 {"type":"event","hid":"h3","event":"click"}
//	server → client  {"type":"render","html":"<div class=\"router-view\">…"}
//	                 {"type":"push","hash":"#/"}
//	                 {"type":"replace","hash":"#/about?tab=team"}
//	                 {"type":"error","error":"R001: No route matched: …"}
//
// All frames for one connection are read and written on that connection's
// goroutine, so each Router sees the single thread of control it expects.
package bridge
