// Package response implements the two response-writing modes this server
// supports: a deferred buffered writer (status, headers, and body are
// assembled then committed in a single write) and a streaming chunked
// writer with trailer support. Grounded on the Rust original's
// response/writer.rs, with the deferred-commit shape also echoed by
// message/writer.go's Flush/WriteTo pairing in the teacher repo.
//
// Go has no destructor, so the scope-exit commit guarantee the Rust
// writers get from Drop is implemented here as an explicit Release method
// the server façade calls via defer around every handler invocation.
package response

import (
	"io"

	"github.com/viniciusfeitosa/httpkit/header"
	"github.com/viniciusfeitosa/httpkit/status"
)

// Writer is a deferred-commit buffered response. It accumulates status,
// headers, and body, then emits everything on a single Flush. Header
// names are emitted exactly as the handler wrote them — see header.Egress.
type Writer struct {
	w       io.Writer
	code    status.Code
	headers *header.Egress
	body    []byte
	flushed bool
}

// NewWriter returns a fresh Writer attached to the given byte sink,
// defaulting to status 200.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:       w,
		code:    status.OK,
		headers: header.NewEgress(),
	}
}

// WriteCode sets the response status. Error if already committed.
func (rw *Writer) WriteCode(code status.Code) error {
	if rw.flushed {
		return ErrWriterAlreadyFlushed
	}
	rw.code = code
	return nil
}

// WriteHeader appends/inserts a header using multi-value append semantics.
// Error if already committed.
func (rw *Writer) WriteHeader(key, value string) error {
	if rw.flushed {
		return ErrWriterAlreadyFlushed
	}
	rw.headers.Insert(key, value)
	return nil
}

// WriteBody replaces the body buffer outright. Error if already committed.
func (rw *Writer) WriteBody(body []byte) error {
	if rw.flushed {
		return ErrWriterAlreadyFlushed
	}
	rw.body = append(rw.body[:0], body...)
	return nil
}

// AppendBody extends the body buffer. Error if already committed.
func (rw *Writer) AppendBody(body []byte) error {
	if rw.flushed {
		return ErrWriterAlreadyFlushed
	}
	rw.body = append(rw.body, body...)
	return nil
}

// Write lets Writer satisfy io.Writer by appending to the body buffer;
// this is the common path handlers use (w.Write([]byte("PONG"))).
func (rw *Writer) Write(p []byte) (int, error) {
	if err := rw.AppendBody(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flushed reports whether the writer has already committed.
func (rw *Writer) Flushed() bool {
	return rw.flushed
}

// Flush commits the response exactly once: it overwrites Content-Length
// with the final body length, overwrites Connection to "close" (this
// writer never supports persistent connections), defaults Content-Type to
// text/plain if unset, then emits the response line, headers, the blank
// separator line, and the body.
func (rw *Writer) Flush() error {
	if rw.flushed {
		return ErrWriterAlreadyFlushed
	}

	rw.headers.Overwrite("Content-Length", itoa(len(rw.body)))
	rw.headers.Overwrite("Connection", "close")
	rw.headers.InsertIfNotExists("Content-Type", "text/plain")

	buf := make([]byte, 0, 256+len(rw.body))
	buf = append(buf, responseLine(rw.code)...)
	buf = rw.headers.WriteTo(buf)
	buf = append(buf, crlf...)
	buf = append(buf, rw.body...)

	if _, err := rw.w.Write(buf); err != nil {
		return errWriting(err)
	}
	rw.flushed = true
	return nil
}

// Release guarantees the scope-exit commit: if the writer was never
// explicitly flushed, it flushes now. Any failure is the caller's to log,
// not to propagate — this mirrors the Rust Drop impl's eprintln-and-swallow
// behavior, since by the time Release runs the handler has already
// returned.
func (rw *Writer) Release() error {
	if rw.flushed {
		return nil
	}
	return rw.Flush()
}

// Chunked forcibly consumes the buffered writer's state and returns an
// equivalent ChunkedWriter: Transfer-Encoding is set to chunked, any
// Content-Length is removed, and nothing is emitted on the wire yet. A
// writer that was already flushed yields a fresh chunked writer with empty
// headers, since its buffered state has already been committed.
func (rw *Writer) Chunked() *ChunkedWriter {
	if rw.flushed {
		rw.flushed = true // guard against a later Release double-flush
		return &ChunkedWriter{
			w:        rw.w,
			code:     status.OK,
			headers:  header.NewEgress(),
			trailers: header.NewEgress(),
		}
	}

	rw.flushed = true
	headers := rw.headers.Clone()
	headers.Overwrite("Transfer-Encoding", "chunked")
	headers.Remove("Content-Length")

	return &ChunkedWriter{
		w:        rw.w,
		code:     rw.code,
		headers:  headers,
		trailers: header.NewEgress(),
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
