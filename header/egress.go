package header

import "strings"

// Egress is the header/trailer container used by the response writers.
// Unlike Headers, which canonicalizes every ingress name to lowercase,
// Egress emits names exactly as last written by the handler — no
// canonicalization on the way out. Lookups and replacement still match
// case-insensitively (HTTP header names are themselves case-insensitive),
// but the spelling that lands on the wire is whichever casing was most
// recently written for that name. Grounded on the Rust original's Headers
// type, which only lowercases while parsing an incoming ProtoHeader and
// otherwise stores handler-supplied keys verbatim.
type Egress struct {
	order  []string          // canonical lowercase keys, first-insertion order
	spell  map[string]string // canonical lowercase -> last-written spelling
	values map[string]string // canonical lowercase -> folded value
}

// NewEgress returns an empty Egress container.
func NewEgress() *Egress {
	return &Egress{
		spell:  make(map[string]string),
		values: make(map[string]string),
	}
}

func canonEgress(key string) string {
	return strings.ToLower(key)
}

// Get returns the stored value for key (case-insensitive) and whether it
// is present.
func (e *Egress) Get(key string) (string, bool) {
	v, ok := e.values[canonEgress(key)]
	return v, ok
}

// Insert appends value under key using multi-value fold semantics, and
// records key's exact spelling as the one to emit for this name.
func (e *Egress) Insert(key, value string) {
	k := canonEgress(key)
	if existing, ok := e.values[k]; ok {
		e.values[k] = existing + ", " + value
	} else {
		e.values[k] = value
		e.order = append(e.order, k)
	}
	e.spell[k] = key
}

// Overwrite replaces whatever is stored under key with value, and records
// key's exact spelling as the one to emit for this name.
func (e *Egress) Overwrite(key, value string) {
	k := canonEgress(key)
	if _, ok := e.values[k]; !ok {
		e.order = append(e.order, k)
	}
	e.values[k] = value
	e.spell[k] = key
}

// InsertIfNotExists stores value under key only if key is not already
// set (case-insensitive check).
func (e *Egress) InsertIfNotExists(key, value string) {
	k := canonEgress(key)
	if _, ok := e.values[k]; ok {
		return
	}
	e.values[k] = value
	e.spell[k] = key
	e.order = append(e.order, k)
}

// Remove deletes key (case-insensitive match).
func (e *Egress) Remove(key string) {
	k := canonEgress(key)
	if _, ok := e.values[k]; !ok {
		return
	}
	delete(e.values, k)
	delete(e.spell, k)
	for i, existing := range e.order {
		if existing == k {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of distinct header names stored.
func (e *Egress) Len() int {
	return len(e.values)
}

// Clone returns a deep-enough copy of e.
func (e *Egress) Clone() *Egress {
	c := NewEgress()
	c.order = append([]string(nil), e.order...)
	for k, v := range e.spell {
		c.spell[k] = v
	}
	for k, v := range e.values {
		c.values[k] = v
	}
	return c
}

// ToLines renders every "Key: value" pair, using each name's
// last-written spelling, in first-insertion order.
func (e *Egress) ToLines() []string {
	lines := make([]string, 0, len(e.order))
	for _, k := range e.order {
		lines = append(lines, e.spell[k]+": "+e.values[k])
	}
	return lines
}

// WriteTo appends each header line, CRLF-terminated, to a byte buffer and
// returns the extended buffer.
func (e *Egress) WriteTo(buf []byte) []byte {
	for _, line := range e.ToLines() {
		buf = append(buf, line...)
		buf = append(buf, CRLF...)
	}
	return buf
}
