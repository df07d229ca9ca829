package response

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viniciusfeitosa/httpkit/status"
)

func TestWriterFlushDefaults(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	_, _ = w.Write([]byte("PONG"))

	require.NoError(t, w.Flush())

	out := buf.String()
	assert.Contains(t, out, "HTTP/1.1 200 OK\r\n")
	assert.Contains(t, out, "Content-Length: 4\r\n")
	assert.Contains(t, out, "Connection: close\r\n")
	assert.Contains(t, out, "Content-Type: text/plain\r\n")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\r\n\r\nPONG")))
}

func TestWriterFlushOverwritesConnectionToClose(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader("Connection", "keep-alive"))
	require.NoError(t, w.Flush())

	assert.Contains(t, buf.String(), "Connection: close\r\n")
}

func TestWriterDoubleFlushErrors(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Flush())

	err := w.Flush()
	assert.ErrorIs(t, err, ErrWriterAlreadyFlushed)
}

func TestWriterReleaseFlushesOnScopeExit(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteCode(status.NotFound))
	_, _ = w.Write([]byte("nope"))

	require.NoError(t, w.Release())
	assert.Contains(t, buf.String(), "HTTP/1.1 404 Not Found\r\n")

	// Releasing an already-flushed writer is a no-op, not an error.
	assert.NoError(t, w.Release())
}

func TestWriterChunkedConversionStripsContentLength(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader("Content-Length", "999"))

	cw := w.Chunked()
	v, ok := cw.headers.Get("content-length")
	assert.False(t, ok, "got %q", v)

	te, ok := cw.headers.Get("transfer-encoding")
	assert.True(t, ok)
	assert.Equal(t, "chunked", te)

	// The original buffered writer must not also emit on Release.
	assert.NoError(t, w.Release())
	assert.Empty(t, buf.Bytes())
}
