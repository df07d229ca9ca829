package request

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader dribbles out numBytesPerRead bytes at a time, so tests can
// drive the parser across arbitrary read boundaries.
type chunkReader struct {
	data            string
	numBytesPerRead int
	pos             int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if c.pos >= len(c.data) {
		return 0, io.EOF
	}
	n := c.numBytesPerRead
	if remaining := len(c.data) - c.pos; n > remaining {
		n = remaining
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.data[c.pos:c.pos+n])
	c.pos += n
	return n, nil
}

func parseAtChunkSizes(t *testing.T, raw string, sizes []int, check func(t *testing.T, req *Request)) {
	t.Helper()
	for _, size := range sizes {
		req, err := FromReader(&chunkReader{data: raw, numBytesPerRead: size})
		require.NoError(t, err, "chunk size %d", size)
		check(t, req)
	}
}

func TestRequestLineGoodGetRoot(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: localhost:42069\r\nUser-Agent: curl/7.81.0\r\nAccept: */*\r\n\r\n"
	parseAtChunkSizes(t, raw, []int{1, 2, 8, len(raw)}, func(t *testing.T, req *Request) {
		assert.Equal(t, "GET", req.Method())
		assert.Equal(t, "/", req.Target())
		host, ok := req.Headers.Get("host")
		assert.True(t, ok)
		assert.Equal(t, "localhost:42069", host)
		assert.Empty(t, req.Body)
	})
}

func TestRequestHeadersMultiValueFold(t *testing.T) {
	raw := "GET /coffee HTTP/1.1\r\nHost: localhost:42069\r\n" +
		"Set-Person: lane-loves-go\r\nSet-Person: prime-loves-zig\r\nSet-Person: tj-loves-ocaml\r\n\r\n"
	parseAtChunkSizes(t, raw, []int{1, 2, 8, len(raw)}, func(t *testing.T, req *Request) {
		v, ok := req.Headers.Get("set-person")
		assert.True(t, ok)
		assert.Equal(t, "lane-loves-go, prime-loves-zig, tj-loves-ocaml", v)
	})
}

func TestRequestBodyExact(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\nHost: h\r\nContent-Length: 13\r\n\r\nhello world!\n"
	parseAtChunkSizes(t, raw, []int{1, 2, 8, len(raw)}, func(t *testing.T, req *Request) {
		assert.Equal(t, "hello world!\n", string(req.Body))
	})
}

func TestRequestBodySmallerThanContentLength(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\nHost: h\r\nContent-Length: 20\r\n\r\n" + "123456789012345"
	_, err := FromReader(&chunkReader{data: raw, numBytesPerRead: 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBodySmallerThanContentLength)
}

func TestRequestBodyLargerThanContentLengthIsTolerated(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\nHost: h\r\nContent-Length: 5\r\n\r\n" + "hello world, this is extra"
	req, err := FromReader(&chunkReader{data: raw, numBytesPerRead: 4})
	require.NoError(t, err)
	assert.Equal(t, "hello", string(req.Body))
}

func TestRequestLineInvalidPartSize(t *testing.T) {
	raw := "/coffee HTTP/1.1\r\nHost: h\r\n\r\n"
	_, err := FromReader(&chunkReader{data: raw, numBytesPerRead: len(raw)})
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindInvalidLinePartSize, perr.Kind)
}

func TestRequestLineUnknownMethod(t *testing.T) {
	raw := "GOAT / HTTP/1.1\r\nHost: h\r\n\r\n"
	_, err := FromReader(&chunkReader{data: raw, numBytesPerRead: len(raw)})
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindUnknownHttpMethod, perr.Kind)
}

func TestRequestLineUnsupportedVersion(t *testing.T) {
	raw := "GET / HTTP/1.0\r\nHost: h\r\n\r\n"
	_, err := FromReader(&chunkReader{data: raw, numBytesPerRead: len(raw)})
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindUnsupportedHttpVersion, perr.Kind)
}

func TestRequestMalformedHeaderNoColon(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nNotAHeader\r\n\r\n"
	_, err := FromReader(&chunkReader{data: raw, numBytesPerRead: len(raw)})
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindMalformedHeader, perr.Kind)
}

func TestRequestMalformedHeaderTrailingSpaceBeforeColon(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost : localhost:42069\r\n\r\n"
	_, err := FromReader(&chunkReader{data: raw, numBytesPerRead: len(raw)})
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, KindMalformedHeader, perr.Kind)
}

func TestParseAfterDoneIsAlreadyClosedParser(t *testing.T) {
	raw := "GET / HTTP/1.1\r\nHost: h\r\n\r\n"
	req, err := FromReader(&chunkReader{data: raw, numBytesPerRead: len(raw)})
	require.NoError(t, err)

	_, err = req.Parse([]byte("more"))
	assert.ErrorIs(t, err, ErrAlreadyClosedParser)
}

func TestRequestBufferGrowsForLongRequestTarget(t *testing.T) {
	longPath := "/" + string(make([]byte, 2000))
	for i := range longPath {
		if longPath[i] == 0 {
			longPath = longPath[:i] + "a" + longPath[i+1:]
		}
	}
	raw := "GET " + longPath + " HTTP/1.1\r\nHost: h\r\n\r\n"
	req, err := FromReader(&chunkReader{data: raw, numBytesPerRead: 3})
	require.NoError(t, err)
	assert.Equal(t, longPath, req.Target())
}
