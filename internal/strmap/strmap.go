// Package strmap provides small ordered/unordered string-keyed helpers
// used by the header bag. It is adapted from the message/hashmap package:
// a thin wrapper over a Go map with deterministic join semantics, without
// that package's trimming.
package strmap

import (
	"sort"
	"strings"
)

// Map is a plain string-to-string bag. Unlike message/hashmap.HashMap it does
// not trim keys or values on its own; callers canonicalize before Set.
type Map map[string]string

// New returns an empty Map.
func New() Map {
	return make(Map)
}

// Get returns the value for key and whether it was present.
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Set stores value under key, overwriting any previous value.
func (m Map) Set(key, value string) {
	m[key] = value
}

// Append sets key to value if absent, otherwise folds value onto the
// existing one separated by ", " (the multi-value header semantics).
func (m Map) Append(key, value string) {
	existing, ok := m[key]
	if !ok {
		m[key] = value
		return
	}
	m[key] = existing + ", " + value
}

// Del removes key.
func (m Map) Del(key string) {
	delete(m, key)
}

// Keys returns the map's keys in no particular order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// SortedKeys returns the map's keys sorted lexicographically.
func (m Map) SortedKeys() []string {
	keys := m.Keys()
	sort.Strings(keys)
	return keys
}

// Join renders every "key: value" pair, one per line, separated by sep,
// in sorted key order so output is deterministic.
func (m Map) Join(sep string) string {
	keys := m.SortedKeys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+": "+m[k])
	}
	return strings.Join(lines, sep)
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	c := make(Map, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
