package query

import (
	"net/url"
	"strconv"
	"strings"
)

// MaxIndex is the largest bracket index read as a list position. Larger
// numeric groups are read as map keys, so a short key cannot force a huge
// Null-padded list.
const MaxIndex = 1000

// segment is one step of a bracket path: a map key or a list index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

func keySegment(k string) segment { return segment{key: k} }
func indexSegment(i int) segment  { return segment{index: i, isIndex: true} }

// appends reports whether the segment is the literal index 0, which in last
// position means "append to the parent list".
func (s segment) appends() bool { return s.isIndex && s.index == 0 }

// Decode parses a query string into a Map.
// Malformed input never fails: a key without "=" decodes to Null, invalid
// percent escapes keep their raw text, and empty pairs are skipped.
func Decode(qs string) *Map {
	root := Obj(NewMap())
	if qs == "" {
		return root.m
	}
	for _, pair := range strings.Split(qs, "&") {
		if pair == "" {
			continue
		}
		key, raw, hasValue := strings.Cut(pair, "=")
		value := Null
		if hasValue {
			value = Str(unescape(raw))
		}
		root = insert(root, parseKey(key), value)
	}
	return root.m
}

// unescape percent-decodes s, falling back to s when it is malformed.
// "+" is kept literally.
func unescape(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// parseKey splits a key such as foo[0][a][] into its bracket path.
// The leading token is always a map key, even when it looks numeric. Text
// that does not form a bracket group is kept as part of the leading token.
func parseKey(key string) []segment {
	open := strings.IndexByte(key, '[')
	if open <= 0 {
		return []segment{keySegment(key)}
	}

	path := []segment{keySegment(key[:open])}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return []segment{keySegment(key)}
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return []segment{keySegment(key)}
		}
		inner := rest[1:end]
		if strings.IndexByte(inner, '[') >= 0 {
			return []segment{keySegment(key)}
		}
		path = append(path, parseGroup(inner))
		rest = rest[end+1:]
	}
	return path
}

// parseGroup classifies the contents of one bracket group.
func parseGroup(inner string) segment {
	if inner == "" {
		return indexSegment(0)
	}
	if isDigits(inner) {
		if n, err := strconv.Atoi(inner); err == nil && n <= MaxIndex {
			return indexSegment(n)
		}
	}
	return keySegment(inner)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// insert writes value into root at path.
//
// Every prefix whose next segment is an index is first coerced to a list.
// A trailing literal index 0 appends to the list at the parent path;
// anything else is written at the exact path.
func insert(root Value, path []segment, value Value) Value {
	for i := 0; i < len(path)-1; i++ {
		if !path[i+1].isIndex {
			continue
		}
		prefix := path[:i+1]
		if getIn(root, prefix).kind != KindList {
			root = setIn(root, prefix, List())
		}
	}

	last := path[len(path)-1]
	if len(path) > 1 && last.appends() {
		parent := path[:len(path)-1]
		list := getIn(root, parent)
		list.items = append(list.items, value)
		return setIn(root, parent, list)
	}
	return setIn(root, path, value)
}

// getIn returns the value at path, or Null when any step is missing.
func getIn(v Value, path []segment) Value {
	for _, seg := range path {
		switch {
		case seg.isIndex && v.kind == KindList:
			if seg.index >= len(v.items) {
				return Null
			}
			v = v.items[seg.index]
		case !seg.isIndex && v.kind == KindMap:
			next, ok := v.m.Get(seg.key)
			if !ok {
				return Null
			}
			v = next
		default:
			return Null
		}
	}
	return v
}

// setIn returns v with leaf stored at path. Missing or mismatched
// containers along the way are replaced; lists are padded with Null up to
// the written index.
func setIn(v Value, path []segment, leaf Value) Value {
	if len(path) == 0 {
		return leaf
	}
	seg := path[0]
	if seg.isIndex {
		if v.kind != KindList {
			v = List()
		}
		for len(v.items) <= seg.index {
			v.items = append(v.items, Null)
		}
		v.items[seg.index] = setIn(v.items[seg.index], path[1:], leaf)
		return v
	}

	if v.kind != KindMap {
		v = Obj(NewMap())
	}
	child, _ := v.m.Get(seg.key)
	v.m.Set(seg.key, setIn(child, path[1:], leaf))
	return v
}
