package response

import (
	"fmt"
	"io"

	"github.com/viniciusfeitosa/httpkit/header"
	"github.com/viniciusfeitosa/httpkit/status"
)

// ChunkedWriter streams a response body as hex-length-framed chunks,
// optionally followed by trailers emitted after the terminating
// zero-length chunk. It never overwrites Connection (see the buffered
// writer's Flush, which always does) — left as whatever the handler set,
// per the design notes' third open question. Header and trailer names
// are emitted exactly as the handler wrote them — see header.Egress.
type ChunkedWriter struct {
	w              io.Writer
	code           status.Code
	headers        *header.Egress
	trailers       *header.Egress
	headersFlushed bool
	closed         bool
}

// WriteCode sets the status. Permitted only before headers are flushed
// and before close.
func (cw *ChunkedWriter) WriteCode(code status.Code) error {
	if cw.headersFlushed {
		return ErrWriterAlreadyFlushed
	}
	if cw.closed {
		return ErrWriterAlreadyClosed
	}
	cw.code = code
	return nil
}

// WriteHeader inserts a response header. Permitted only before headers
// are flushed and before close.
func (cw *ChunkedWriter) WriteHeader(key, value string) error {
	if cw.headersFlushed {
		return ErrWriterAlreadyFlushed
	}
	if cw.closed {
		return ErrWriterAlreadyClosed
	}
	cw.headers.Insert(key, value)
	return nil
}

// WriteTrailer records a trailer to be emitted after the terminating
// chunk. Permitted any time before close.
func (cw *ChunkedWriter) WriteTrailer(key, value string) error {
	if cw.closed {
		return ErrWriterAlreadyClosed
	}
	cw.trailers.Insert(key, value)
	return nil
}

// FlushHeaders emits the response line, headers (defaulting Content-Type
// to text/plain if unset), and the blank separator line. It is idempotent
// in the sense that Write calls it lazily exactly once; calling it twice
// directly is a protocol violation the writer does not itself guard
// against a second time, mirroring the Rust original.
func (cw *ChunkedWriter) FlushHeaders() (int, error) {
	cw.headers.InsertIfNotExists("Content-Type", "text/plain")

	buf := make([]byte, 0, 256)
	buf = append(buf, responseLine(cw.code)...)
	buf = cw.headers.WriteTo(buf)
	buf = append(buf, crlf...)

	if _, err := cw.w.Write(buf); err != nil {
		return 0, errWriting(err)
	}
	cw.headersFlushed = true
	return len(buf), nil
}

// Write emits p as one chunk: headers are flushed first if they have not
// been yet, then the chunk is framed as uppercase hex length, CRLF,
// payload, CRLF. A zero-length payload still writes a valid (empty)
// chunk frame. Returns the total bytes written to the wire, including the
// header bytes if this call flushed them.
func (cw *ChunkedWriter) Write(p []byte) (int, error) {
	if cw.closed {
		return 0, ErrWriterAlreadyClosed
	}

	total := 0
	if !cw.headersFlushed {
		n, err := cw.FlushHeaders()
		if err != nil {
			return 0, err
		}
		total += n
	}

	hex := fmt.Sprintf("%X", len(p))
	frame := make([]byte, 0, len(hex)+len(crlf)*2+len(p))
	frame = append(frame, hex...)
	frame = append(frame, crlf...)
	frame = append(frame, p...)
	frame = append(frame, crlf...)

	if _, err := cw.w.Write(frame); err != nil {
		return 0, errWriting(err)
	}
	total += len(frame)
	return total, nil
}

// Close emits the terminating "0\r\n", all recorded trailers in the same
// "k: v\r\n" wire format as headers, and a final blank line, then
// transitions to closed. If no chunk was ever written, it flushes headers
// first so a zero-body chunked response still has a status line.
func (cw *ChunkedWriter) Close() error {
	if cw.closed {
		return ErrWriterAlreadyClosed
	}

	if !cw.headersFlushed {
		if _, err := cw.FlushHeaders(); err != nil {
			return err
		}
	}

	buf := make([]byte, 0, 64)
	buf = append(buf, '0')
	buf = append(buf, crlf...)
	buf = cw.trailers.WriteTo(buf)
	buf = append(buf, crlf...)

	if _, err := cw.w.Write(buf); err != nil {
		return errWriting(err)
	}
	cw.closed = true
	return nil
}

// Closed reports whether Close has already run.
func (cw *ChunkedWriter) Closed() bool {
	return cw.closed
}

// Release guarantees the scope-exit close: if the writer was never
// explicitly closed, it closes now. Failure is the caller's to log.
func (cw *ChunkedWriter) Release() error {
	if cw.closed {
		return nil
	}
	return cw.Close()
}
