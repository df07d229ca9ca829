// Package header implements the case-insensitive, multi-value header
// containers: Headers, used for parsed requests, which stores every name
// lowercased, and Egress, used by the response writers, which emits names
// as last written. Headers is adapted from message/hashmap, extended with
// the lowercase-key canonicalization and comma-space multi-value folding
// the HTTP parser requires.
package header

import (
	"fmt"
	"strings"

	"github.com/viniciusfeitosa/httpkit/internal/strmap"
)

// Headers is a case-insensitive multi-value header container. Keys are
// always stored lowercased; values are never empty.
type Headers struct {
	m strmap.Map
}

// New returns an empty Headers.
func New() *Headers {
	return &Headers{m: strmap.New()}
}

// canon lowercases a header name for storage and lookup.
func canon(key string) string {
	return strings.ToLower(key)
}

// Get returns the stored value for key (case-insensitive) and whether it
// is present.
func (h *Headers) Get(key string) (string, bool) {
	return h.m.Get(canon(key))
}

// Insert appends value under key using multi-value fold semantics: if the
// key already holds a value, value is appended separated by ", ".
func (h *Headers) Insert(key, value string) {
	h.m.Append(canon(key), value)
}

// Overwrite replaces whatever is stored under key with value.
func (h *Headers) Overwrite(key, value string) {
	h.m.Set(canon(key), value)
}

// InsertIfNotExists stores value under key only if key is not already set.
func (h *Headers) InsertIfNotExists(key, value string) {
	k := canon(key)
	if _, ok := h.m.Get(k); ok {
		return
	}
	h.m.Set(k, value)
}

// Remove deletes key.
func (h *Headers) Remove(key string) {
	h.m.Del(canon(key))
}

// Len returns the number of distinct header names stored.
func (h *Headers) Len() int {
	return len(h.m)
}

// Clone returns a deep-enough copy of h (the underlying map is copied).
func (h *Headers) Clone() *Headers {
	return &Headers{m: h.m.Clone()}
}

// ToLines renders every "key: value" pair (without a line terminator; see
// WriteTo) in sorted key order, which keeps wire output deterministic for
// tests and logs.
func (h *Headers) ToLines() []string {
	keys := h.m.SortedKeys()
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		v, _ := h.m.Get(k)
		lines = append(lines, fmt.Sprintf("%s: %s", k, v))
	}
	return lines
}

// ByteLen reports the wire length of the header section, including the
// trailing "\r\n" after each line but NOT the blank line terminating the
// section (callers add that separately).
func (h *Headers) ByteLen() int {
	total := 0
	for _, line := range h.ToLines() {
		total += len(line) + len(CRLF)
	}
	return total
}

// CRLF is the line terminator used throughout the wire protocol.
const CRLF = "\r\n"

// WriteTo appends each header line, CRLF-terminated, to a byte buffer and
// returns the extended buffer.
func (h *Headers) WriteTo(buf []byte) []byte {
	for _, line := range h.ToLines() {
		buf = append(buf, line...)
		buf = append(buf, CRLF...)
	}
	return buf
}
