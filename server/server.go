// Package server implements the thin façade the three core subsystems are
// wired into: bind a listener, register handlers under a method and route
// pattern, and serve forever with one worker goroutine per accepted
// connection. Grounded on message/server/server.go's listenAndServe/serve
// split and on the Rust original's server/mod.rs (Server::new binding to
// 127.0.0.1:<port>, list_and_serve's accept loop, handle_connection's
// parse-route-invoke-commit pipeline).
package server

import (
	"fmt"
	"net"

	"github.com/viniciusfeitosa/httpkit/httpmethod"
	"github.com/viniciusfeitosa/httpkit/request"
	"github.com/viniciusfeitosa/httpkit/response"
	"github.com/viniciusfeitosa/httpkit/status"
)

// Server is the façade: a bound listener, a read-only route table, and a
// logging collaborator.
type Server struct {
	listener net.Listener
	routes   *routeTable
	log      Log
}

// New binds a TCP listener to 127.0.0.1:port. It fails with the underlying
// bind error.
func New(port int) (*Server, error) {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		routes:   newRouteTable(),
		log:      NewLog(),
	}, nil
}

// Addr returns the bound listener's address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// AddHandleFunc compiles path_pattern, checks it for a route conflict
// against every already-registered pattern under the same method, and
// appends it to the route list. The route table must be fully built
// before ListAndServe is called — afterward it is shared read-only across
// worker goroutines.
func (s *Server) AddHandleFunc(method httpmethod.Method, pathPattern string, handler Handler) error {
	return s.routes.add(method, pathPattern, handler)
}

// Convenience registration helpers mirroring the teacher router's
// GET/POST/PUT/DELETE shortcuts.
func (s *Server) GET(pattern string, h Handler) error    { return s.AddHandleFunc(httpmethod.GET, pattern, h) }
func (s *Server) POST(pattern string, h Handler) error   { return s.AddHandleFunc(httpmethod.POST, pattern, h) }
func (s *Server) PUT(pattern string, h Handler) error    { return s.AddHandleFunc(httpmethod.PUT, pattern, h) }
func (s *Server) DELETE(pattern string, h Handler) error { return s.AddHandleFunc(httpmethod.DELETE, pattern, h) }
func (s *Server) PATCH(pattern string, h Handler) error  { return s.AddHandleFunc(httpmethod.PATCH, pattern, h) }

// ListAndServe runs the accept loop: for every accepted connection it
// spawns an independent worker goroutine executing the per-connection
// pipeline, and never returns unless Accept itself fails.
func (s *Server) ListAndServe() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.serve(conn)
	}
}

// serve runs the full per-connection pipeline: parse the request, route
// it (falling back to the built-in not-found handler on a miss), invoke
// the handler with a fresh buffered writer, and commit that writer if the
// handler did not.
func (s *Server) serve(conn net.Conn) {
	defer conn.Close()
	connID := newConnID()

	req, err := request.FromReader(conn)
	if err != nil {
		s.log.ParseError(connID, err)
		return
	}
	s.log.Status(connID, req)

	method, _ := httpmethod.Parse(req.Method())
	matched := s.routes.find(method, req.Target())

	scope := response.NewScope(conn)
	defer func() {
		if releaseErr := scope.Release(); releaseErr != nil {
			s.log.WriterError(connID, releaseErr)
		}
	}()

	if matched == nil {
		notFound(scope, req)
		return
	}

	req.MatchedPattern = matched.pattern.Raw()
	req.Labels = matched.pattern.Labels(req.Target())

	matched.handler(scope, req)
}

// notFound is the built-in fallback handler used when no registered route
// matches, grounded on the Rust original's not_found (which serves an
// embedded static HTML page with a 404 status).
func notFound(scope *response.Scope, _ *request.Request) {
	w := scope.Writer()
	_ = w.WriteCode(status.NotFound)
	_ = w.WriteHeader("Content-Type", "text/html")
	_, _ = w.Write(notFoundPage)
}
