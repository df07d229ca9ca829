package response

import "io"

// Scope owns one connection's response for the lifetime of a handler
// call. It starts as a buffered Writer; a handler may convert it to a
// ChunkedWriter via Chunked. Release commits/closes whichever mode is
// active, giving both writer kinds the scope-exit guarantee the Rust
// original gets from Drop, without requiring the caller (the server
// façade) to know which mode the handler picked.
type Scope struct {
	buffered *Writer
	chunked  *ChunkedWriter
}

// NewScope starts a fresh buffered-mode Scope over the given sink.
func NewScope(w io.Writer) *Scope {
	return &Scope{buffered: NewWriter(w)}
}

// Writer returns the buffered writer. Valid until Chunked is called.
func (s *Scope) Writer() *Writer {
	return s.buffered
}

// Chunked converts the scope to streaming mode and returns the chunked
// writer, per Writer.Chunked's semantics.
func (s *Scope) Chunked() *ChunkedWriter {
	s.chunked = s.buffered.Chunked()
	return s.chunked
}

// Release commits the buffered writer, or closes the chunked writer, if
// the handler didn't already. Call via defer around every handler
// invocation; any error is the caller's to log, not propagate.
func (s *Scope) Release() error {
	if s.chunked != nil {
		return s.chunked.Release()
	}
	return s.buffered.Release()
}
