package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value.
type Kind uint8

const (
	KindNull   Kind = iota // key present without a value
	KindString             // scalar
	KindList               // ordered sequence
	KindMap                // keyed scope
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	default:
		return "Unknown"
	}
}

// Value is a decoded query value: a string, a list of values, a map of
// values, or null. The zero Value is null.
type Value struct {
	kind  Kind
	str   string
	items []Value
	m     *Map
}

// Null is the null Value.
var Null = Value{}

// Str returns a string Value.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// List returns a list Value holding items in order.
func List(items ...Value) Value {
	return Value{kind: KindList, items: append([]Value(nil), items...)}
}

// Obj returns a map Value backed by m. A nil m yields an empty map.
func Obj(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// Of converts a Go value into a Value.
// nil and false become Null, numbers and true are formatted as strings,
// slices become lists and map[string]any becomes a map with sorted keys.
func Of(v any) Value {
	switch val := v.(type) {
	case nil:
		return Null
	case Value:
		return val
	case *Map:
		return Obj(val)
	case string:
		return Str(val)
	case bool:
		if !val {
			return Null
		}
		return Str("true")
	case int:
		return Str(strconv.Itoa(val))
	case int64:
		return Str(strconv.FormatInt(val, 10))
	case int32:
		return Str(strconv.FormatInt(int64(val), 10))
	case uint:
		return Str(strconv.FormatUint(uint64(val), 10))
	case uint64:
		return Str(strconv.FormatUint(val, 10))
	case float64:
		return Str(strconv.FormatFloat(val, 'f', -1, 64))
	case float32:
		return Str(strconv.FormatFloat(float64(val), 'f', -1, 32))
	case []string:
		items := make([]Value, len(val))
		for i, s := range val {
			items[i] = Str(s)
		}
		return Value{kind: KindList, items: items}
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = Of(item)
		}
		return Value{kind: KindList, items: items}
	case map[string]any:
		return Obj(MapOf(val))
	case fmt.Stringer:
		return Str(val.String())
	default:
		return Str(fmt.Sprintf("%v", val))
	}
}

// Kind returns the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Text returns the scalar string of v, or "" for non-strings.
func (v Value) Text() string { return v.str }

// Items returns the elements of a list Value.
func (v Value) Items() []Value { return v.items }

// Map returns the map of a map Value, or nil.
func (v Value) Map() *Map { return v.m }

// Len returns the number of elements of a list or map, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.items)
	case KindMap:
		return v.m.Len()
	default:
		return 0
	}
}

// Empty reports whether v carries nothing worth encoding: null, or a
// container without elements.
func (v Value) Empty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindList, KindMap:
		return v.Len() == 0
	default:
		return false
	}
}

// Equal reports whether v and o hold the same tree. Map key order is not
// significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == o.str
	case KindList:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(o.items[i]) {
				return false
			}
		}
		return true
	case KindMap:
		return v.m.Equal(o.m)
	}
	return false
}

// String renders v for debugging, e.g. {foo [{a "1"}]}.
func (v Value) String() string {
	var b strings.Builder
	v.writeDebug(&b)
	return b.String()
}

func (v Value) writeDebug(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("nil")
	case KindString:
		b.WriteString(strconv.Quote(v.str))
	case KindList:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(' ')
			}
			item.writeDebug(b)
		}
		b.WriteByte(']')
	case KindMap:
		v.m.writeDebug(b)
	}
}

// MarshalJSON encodes v as JSON: null, string, array or object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindList:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			data, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(data)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case KindMap:
		return v.m.MarshalJSON()
	default:
		return []byte("null"), nil
	}
}

// Map is an insertion-ordered map of Values with unique keys.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]Value)}
}

// MapOf builds a Map from a Go map, converting values with Of.
// Keys are inserted in sorted order.
func MapOf(src map[string]any) *Map {
	m := NewMap()
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.Set(k, Of(src[k]))
	}
	return m
}

// Len returns the number of keys. A nil Map is empty.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Get returns the Value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Null, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Lookup returns the Value stored under key, or Null.
func (m *Map) Lookup(key string) Value {
	v, _ := m.Get(key)
	return v
}

// Set stores v under key. A new key is appended to the key order; an
// existing key keeps its position. The zero Map is ready to use.
func (m *Map) Set(key string, v Value) *Map {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
	return m
}

// Delete removes key.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *Map) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	out := NewMap()
	m.Range(func(k string, v Value) bool {
		out.Set(k, v.clone())
		return true
	})
	return out
}

func (v Value) clone() Value {
	switch v.kind {
	case KindList:
		items := make([]Value, len(v.items))
		for i, item := range v.items {
			items[i] = item.clone()
		}
		return Value{kind: KindList, items: items}
	case KindMap:
		return Obj(v.m.Clone())
	default:
		return v
	}
}

// Equal reports whether m and o hold the same keys and values, ignoring order.
func (m *Map) Equal(o *Map) bool {
	if m.Len() != o.Len() {
		return false
	}
	equal := true
	m.Range(func(k string, v Value) bool {
		ov, ok := o.Get(k)
		if !ok || !v.Equal(ov) {
			equal = false
		}
		return equal
	})
	return equal
}

// String renders m for debugging.
func (m *Map) String() string {
	var b strings.Builder
	m.writeDebug(&b)
	return b.String()
}

func (m *Map) writeDebug(b *strings.Builder) {
	b.WriteByte('{')
	first := true
	m.Range(func(k string, v Value) bool {
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(k)
		b.WriteByte(' ')
		v.writeDebug(b)
		return true
	})
	b.WriteByte('}')
}

// MarshalJSON encodes m as a JSON object in key insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	first := true
	m.Range(func(k string, v Value) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var key, val []byte
		if key, err = json.Marshal(k); err != nil {
			return false
		}
		if val, err = v.MarshalJSON(); err != nil {
			return false
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
