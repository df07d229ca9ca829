package server

import (
	"fmt"

	"github.com/viniciusfeitosa/httpkit/httpmethod"
	"github.com/viniciusfeitosa/httpkit/path"
	"github.com/viniciusfeitosa/httpkit/request"
	"github.com/viniciusfeitosa/httpkit/response"
)

// Handler serves one matched request. It is handed a request already
// routed (with MatchedPattern/Labels populated) and a fresh response
// scope, which starts in buffered mode and may be converted to chunked
// mode via Scope.Chunked.
type Handler func(w *response.Scope, r *request.Request)

// route pairs a compiled pattern and method with the handler that serves
// it. Routes are kept as an ordered list, never a map, so registration
// order stays observable through conflict detection (the spec explicitly
// preserves linear-scan semantics over a trie).
type route struct {
	method  httpmethod.Method
	pattern *path.Path
	handler Handler
}

// RouteConflictError is returned by AddHandleFunc when a new pattern is
// equivalent (per path.Path.Equal) to an already-registered one under the
// same method.
type RouteConflictError struct {
	Method  httpmethod.Method
	Pattern string
}

func (e *RouteConflictError) Error() string {
	return fmt.Sprintf("route conflict: %s %s already registered", e.Method, e.Pattern)
}

// routeTable is the shared, read-only-after-construction route list. It is
// built on the main goroutine before the accept loop starts and then only
// ever read, never mutated, by the worker goroutines serving connections.
type routeTable struct {
	routes []route
}

func newRouteTable() *routeTable {
	return &routeTable{}
}

// add compiles pattern, checks it for conflict against every already
// registered route under the same method, and appends it. Conflict
// detection and request-time lookup both go through path.Path.Equal.
func (rt *routeTable) add(method httpmethod.Method, rawPattern string, handler Handler) error {
	compiled, err := path.Compile(rawPattern)
	if err != nil {
		return err
	}

	for _, existing := range rt.routes {
		if existing.method != method {
			continue
		}
		if existing.pattern.Equal(compiled) {
			return &RouteConflictError{Method: method, Pattern: rawPattern}
		}
	}

	rt.routes = append(rt.routes, route{method: method, pattern: compiled, handler: handler})
	return nil
}

// find linearly scans for the first route whose method and pattern match
// the concrete request target. Since conflicting registrations are
// rejected, at most one route can match.
func (rt *routeTable) find(method httpmethod.Method, target string) *route {
	concrete, err := path.Compile(target)
	if err != nil {
		// A request target that doesn't compile as a pattern (whitespace,
		// or nested/unbalanced '{'/'}') is treated as simply matching
		// nothing rather than failing the whole request.
		return nil
	}

	for i := range rt.routes {
		r := &rt.routes[i]
		if r.method != method {
			continue
		}
		if r.pattern.Equal(concrete) {
			return r
		}
	}
	return nil
}
