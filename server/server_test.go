package server

import (
	"bufio"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusfeitosa/httpkit/httpmethod"
	"github.com/viniciusfeitosa/httpkit/request"
	"github.com/viniciusfeitosa/httpkit/response"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.listener.Close() })
	return s
}

func sendAndRead(t *testing.T, addr net.Addr, raw string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr.String())
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte(raw))
	require.NoError(t, err)
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	out, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(out)
}

func TestServeRoutesLabeledWildcard(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.GET("/user/{id}", func(w *response.Scope, r *request.Request) {
		id := r.Labels["id"]
		_, _ = w.Writer().Write([]byte("The id sended was " + id))
	}))

	go func() { _ = s.ListAndServe() }()

	out := sendAndRead(t, s.Addr(), "GET /user/42 HTTP/1.1\r\nHost: h\r\n\r\n")
	assert.Contains(t, out, "HTTP/1.1 200 OK\r\n")
	assert.Contains(t, out, "The id sended was 42")
}

func TestServeFallsBackToNotFound(t *testing.T) {
	s := newTestServer(t)
	go func() { _ = s.ListAndServe() }()

	out := sendAndRead(t, s.Addr(), "GET /nope HTTP/1.1\r\nHost: h\r\n\r\n")
	assert.Contains(t, out, "HTTP/1.1 404 Not Found\r\n")
}

func TestServeCommitsWriterEvenWhenHandlerNeverFlushes(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.POST("/submit", func(w *response.Scope, r *request.Request) {
		_, _ = w.Writer().Write(r.Body)
	}))
	go func() { _ = s.ListAndServe() }()

	out := sendAndRead(t, s.Addr(), "POST /submit HTTP/1.1\r\nHost: h\r\nContent-Length: 13\r\n\r\nhello world!\n")
	reader := bufio.NewReader(strings.NewReader(out))
	line, _ := reader.ReadString('\n')
	assert.Equal(t, "HTTP/1.1 200 OK\r\n", line)
	assert.Contains(t, out, "hello world!\n")
}

func TestAddHandleFuncRejectsRouteConflict(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.GET("/user/{id}", func(*response.Scope, *request.Request) {}))

	err := s.GET("/user/{name}", func(*response.Scope, *request.Request) {})
	require.Error(t, err)

	var conflict *RouteConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, httpmethod.GET, conflict.Method)
}
