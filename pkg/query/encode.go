package query

import (
	"strconv"
	"strings"
)

// Encode serializes m as key=value pairs joined by "&", in key order.
// Null entries and empty containers are dropped. Nested values are written
// with bracket keys that Decode reads back to the same tree. Nothing is
// percent-escaped.
func Encode(m *Map) string {
	var pairs []string
	m.Range(func(k string, v Value) bool {
		pairs = appendPairs(pairs, k, v)
		return true
	})
	return strings.Join(pairs, "&")
}

func appendPairs(pairs []string, key string, v Value) []string {
	if v.Empty() {
		return pairs
	}
	switch v.kind {
	case KindString:
		return append(pairs, key+"="+v.str)
	case KindMap:
		v.m.Range(func(k string, child Value) bool {
			pairs = appendPairs(pairs, key+"["+k+"]", child)
			return true
		})
		return pairs
	case KindList:
		if scalarList(v.items) {
			for _, item := range v.items {
				if !item.IsNull() {
					pairs = append(pairs, key+"[]="+item.str)
				}
			}
			return pairs
		}
		for i, item := range v.items {
			pairs = appendPairs(pairs, key+"["+strconv.Itoa(i)+"]", item)
		}
	}
	return pairs
}

// scalarList reports whether every item is a string or null, in which case
// the list can use the repeated k[]=v form.
func scalarList(items []Value) bool {
	for _, item := range items {
		if item.kind == KindList || item.kind == KindMap {
			return false
		}
	}
	return true
}
