// Package path implements the route pattern type: a path compiled from a
// raw string of literal segments and "{label}" single-segment wildcards,
// with the matching/equality algorithm used both for route-conflict
// detection at registration time and route lookup at request time.
//
// Ported faithfully from the Rust original's Path type (server/path.rs),
// including its tolerant trailing-segment behavior: label names are
// irrelevant to matching, and a wildcard pattern matches as soon as every
// one of its segments has been located in order, regardless of what (if
// anything) follows the last one on the concrete side.
package path

import (
	"fmt"
	"strings"
)

// Path is a compiled route pattern.
type Path struct {
	raw         string
	segments    []string
	labels      map[string]int
	hasWildcard bool
}

// Raw returns the original pattern string.
func (p *Path) Raw() string {
	return p.raw
}

// HasWildcard reports whether the pattern contains at least one label.
func (p *Path) HasWildcard() bool {
	return p.hasWildcard
}

// Compile parses raw into a Path. raw must contain no whitespace, braces
// must be balanced and non-nested, and label names must be unique.
func Compile(raw string) (*Path, error) {
	var segments []string
	labels := make(map[string]int)

	var segBuf strings.Builder
	var labelBuf strings.Builder
	inLabel := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			return nil, fmt.Errorf("malformed path %q: whitespace not allowed", raw)
		}

		switch c {
		case '{':
			if inLabel {
				return nil, fmt.Errorf("malformed path %q: nested '{'", raw)
			}
			inLabel = true
			segments = append(segments, segBuf.String())
			segBuf.Reset()
		case '}':
			if !inLabel {
				return nil, fmt.Errorf("malformed path %q: '}' without matching '{'", raw)
			}
			name := labelBuf.String()
			labelBuf.Reset()
			if _, dup := labels[name]; dup {
				return nil, fmt.Errorf("malformed path %q: duplicate label %q", raw, name)
			}
			labels[name] = len(segments) - 1
			inLabel = false
		default:
			if inLabel {
				labelBuf.WriteByte(c)
			} else {
				segBuf.WriteByte(c)
			}
		}
	}

	if inLabel {
		return nil, fmt.Errorf("malformed path %q: unterminated '{'", raw)
	}

	hasWildcard := len(labels) > 0
	if !hasWildcard {
		segments = nil
	} else if segBuf.Len() > 0 {
		// A non-empty trailing literal after the last label is its own
		// segment with no label following it.
		segments = append(segments, segBuf.String())
	}

	return &Path{
		raw:         raw,
		segments:    segments,
		labels:      labels,
		hasWildcard: hasWildcard,
	}, nil
}

// Equal implements the route-conflict/match rule of 4.4. Given pattern p
// and input q (both compiled), they are equal iff:
//  1. their raw strings are byte-equal, or
//  2. both have non-empty segment lists that are element-wise equal
//     (the route-conflict rule — label names don't matter), or
//  3. exactly one side has segments, in which case that side's segments
//     are walked against the other side's raw string as a concrete path.
func (p *Path) Equal(q *Path) bool {
	if p.raw == q.raw {
		return true
	}

	pHas := len(p.segments) > 0
	qHas := len(q.segments) > 0

	switch {
	case pHas && qHas:
		return segmentsEqual(p.segments, q.segments)
	case !pHas && !qHas:
		return false
	case pHas:
		return matchSegmentsAgainstRaw(p.segments, q.raw)
	default:
		return matchSegmentsAgainstRaw(q.segments, p.raw)
	}
}

func segmentsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// matchSegmentsAgainstRaw walks pattern segments left to right over raw, a
// concrete path string, exactly as the Rust original's PartialEq impl
// does: each segment must be found starting at the current cursor (a
// prefix match, not a substring search elsewhere in the string); the
// cursor then advances past it and jumps to the next '/' it can find (or
// stays put if there is none). Matching succeeds as soon as every segment
// has been located this way — nothing requires the concrete string to be
// fully consumed, so a wildcard pattern matches tolerantly past its last
// segment (e.g. "/users/{id}" matches "/users/1/some").
func matchSegmentsAgainstRaw(segments []string, raw string) bool {
	for _, seg := range segments {
		idx := strings.Index(raw, seg)
		if idx != 0 {
			return false
		}
		raw = raw[len(seg):]
		next := strings.IndexByte(raw, '/')
		if next < 0 {
			next = 0
		}
		raw = raw[next:]
	}
	return true
}

// walkSegments performs the same walk as matchSegmentsAgainstRaw, but
// additionally records each label's captured value. Label ordinal i sits
// immediately after segments[i], for every i < numLabels; any further
// segment beyond that (there is at most one, the pattern's trailing
// literal) has no label following it and its value is not captured. A
// label whose wildcard reaches the end of raw with no further '/'
// captures the remainder of raw, not an empty string — the concrete
// path's tolerant trailing bytes are only ignored by the match/equality
// rule above, not by value extraction.
func walkSegments(segments []string, raw string, numLabels int) ([]string, bool) {
	var values []string
	for i, seg := range segments {
		idx := strings.Index(raw, seg)
		if idx != 0 {
			return nil, false
		}
		raw = raw[len(seg):]

		next := strings.IndexByte(raw, '/')
		var value string
		if next < 0 {
			value = raw
		} else {
			value = raw[:next]
		}
		if i < numLabels {
			values = append(values, value)
		}
		if next >= 0 {
			raw = raw[next:]
		}
	}
	return values, true
}

// Labels returns label extraction for a concrete request target matched
// against this pattern, keyed by label name. Returns nil if p has no
// wildcard or the target does not structurally match p.
func (p *Path) Labels(target string) map[string]string {
	if !p.hasWildcard {
		return nil
	}

	values, ok := walkSegments(p.segments, target, len(p.labels))
	if !ok {
		return nil
	}

	result := make(map[string]string, len(p.labels))
	for name, ord := range p.labels {
		if ord < len(values) {
			result[name] = values[ord]
		}
	}
	return result
}
