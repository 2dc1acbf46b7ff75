// Package query decodes and encodes URL query strings that use bracketed
// key paths to describe nested values.
//
// A key is a plain token followed by zero or more bracket groups:
//
//	tags[]=go&tags[]=web          → {tags: ["go", "web"]}
//	filter[][name]=a              → {filter: [{name: "a"}]}
//	rows[0][a]=1&rows[1][b]=2     → {rows: [{a: "1"}, {b: "2"}]}
//	sort[field]=name              → {sort: {field: "name"}}
//
// An empty group ([]) and the literal index [0] in last position append to
// the list at the parent path, so repeated keys accumulate. Numeric groups
// address list positions and all other groups address map keys.
//
// Decoded values are trees of Value. Maps keep key insertion order, which
// makes Encode deterministic:
//
//	params := query.Decode("q=router&page=2")
//	params.Set("page", query.Str("3"))
//	query.Encode(params) // "q=router&page=3"
//
// Encode never percent-escapes; escaping on write is left to the caller.
package query
