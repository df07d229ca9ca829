// Package request implements the incremental HTTP/1.1 request parser: a
// re-entrant state machine that consumes a growing byte buffer across the
// request-line, header, and body phases, plus the reader-driven loop that
// feeds it. Grounded on the Rust originals (requests/mod.rs, requests/
// parser.rs, requests/line.rs, header/mod.rs) with the driver shape also
// cross-checked against the httpfromtcp-style Go parsers in the example
// pack.
package request

import (
	"io"

	"github.com/viniciusfeitosa/httpkit/header"
)

// state is the parser's current phase. Transitions are monotone forward;
// the parser never revisits an earlier phase.
type state int

const (
	stateUninitialized state = iota
	stateParsingLine
	stateParsingHeaders
	stateParsingBody
	stateDone
)

// Request is the parsed HTTP request: request line, header bag, and body.
// A Request owns its headers and body bytes outright.
type Request struct {
	Line    *RequestLine
	Headers *header.Headers
	Body    []byte

	// MatchedPattern holds the raw route pattern that matched this
	// request, set by the server façade after routing. Empty until then.
	MatchedPattern string
	// Labels holds label -> value bindings extracted from MatchedPattern
	// against RequestTarget, populated by the server façade after routing.
	Labels map[string]string

	state           state
	contentLength   int
	contentLenKnown bool
	headersDone     bool
}

// New returns a fresh, unstarted Request parser.
func New() *Request {
	return &Request{
		Headers: header.New(),
		state:   stateUninitialized,
	}
}

// Done reports whether the parser has fully consumed a request.
func (r *Request) Done() bool {
	return r.state == stateDone
}

// Method returns the request's method, or "" before the request line has
// been parsed.
func (r *Request) Method() string {
	if r.Line == nil {
		return ""
	}
	return r.Line.Method.String()
}

// Target returns the request's raw path/target, or "" before the request
// line has been parsed.
func (r *Request) Target() string {
	if r.Line == nil {
		return ""
	}
	return r.Line.RequestTarget
}

// Parse drives the state machine over data, a prefix of the remaining
// unconsumed input. It returns how many bytes of that prefix it has
// irreversibly consumed. The caller is expected to shift those bytes out
// of its working buffer and keep the remainder for the next call.
//
// Parse is re-entrant: it may be called repeatedly as more bytes arrive,
// and it never blocks or performs I/O itself.
func (r *Request) Parse(data []byte) (int, error) {
	if r.state == stateDone {
		return 0, ErrAlreadyClosedParser
	}

	if r.state == stateUninitialized {
		r.state = stateParsingLine
	}

	read := 0

	if r.Line == nil {
		n, line, err := parseRequestLine(data)
		if err != nil {
			return 0, err
		}
		if n == 0 {
			// Need more data.
			return 0, nil
		}
		r.Line = line
		r.state = stateParsingHeaders
		read += n
	}

	if !r.headersDone {
		for {
			n, h, err := parseProtoHeader(data[read:])
			if err != nil {
				return 0, err
			}
			if n == 0 {
				// Need more data.
				return read, nil
			}
			read += n

			if n == len(crlf) && h == nil {
				r.headersDone = true
				r.state = stateParsingBody
				break
			}

			r.Headers.Insert(h.Key, h.Value)
		}
	}

	if r.state == stateParsingBody {
		n, err := r.consumeBody(data[read:])
		if err != nil {
			return 0, err
		}
		read += n
	}

	if r.Line != nil && r.headersDone && r.bodyComplete() {
		r.state = stateDone
	}

	return read, nil
}

// bodyComplete reports whether the body phase has accumulated
// content-length bytes. It is false until the body phase has been entered;
// an absent content-length resolves to zero on entry, so such a body is
// complete at once.
func (r *Request) bodyComplete() bool {
	if !r.contentLenKnown {
		return false
	}
	return len(r.Body) >= r.contentLength
}

// consumeBody resolves content-length on first entry, then copies as much
// of data into Body as is still needed.
func (r *Request) consumeBody(data []byte) (int, error) {
	if !r.contentLenKnown {
		cl, err := r.resolveContentLength()
		if err != nil {
			return 0, err
		}
		r.contentLength = cl
		r.contentLenKnown = true
		r.Body = make([]byte, 0, cl)
		if cl == 0 {
			return 0, nil
		}
	}

	remaining := r.contentLength - len(r.Body)
	if remaining <= 0 {
		return 0, nil
	}

	take := remaining
	if take > len(data) {
		take = len(data)
	}
	r.Body = append(r.Body, data[:take]...)
	return take, nil
}

// resolveContentLength reads and validates the content-length header.
// Absence means an effective length of zero.
func (r *Request) resolveContentLength() (int, error) {
	v, ok := r.Headers.Get("content-length")
	if !ok {
		return 0, nil
	}
	n, err := parseNonNegativeInt(v)
	if err != nil {
		return 0, errMalformedContentLengthHeader(v)
	}
	return n, nil
}

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return 0, errEmptyInt
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, errEmptyInt
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

var errEmptyInt = &Error{Kind: "NotAnInteger"}

const initialBufferSize = 8

// FromReader drives a fresh Request's parser against r, growing its working
// buffer as needed, until the request is fully parsed or an error occurs.
// This is the reader-side driver the parser's re-entrancy contract assumes:
// it reads into the tail of a buffer, hands the filled prefix to Parse,
// shifts consumed bytes out, and doubles the buffer when a read didn't
// make room for a full token.
func FromReader(r io.Reader) (*Request, error) {
	req := New()
	buf := make([]byte, initialBufferSize)
	readTo := 0

	for !req.Done() {
		if readTo >= len(buf) {
			grown := make([]byte, len(buf)*2)
			copy(grown, buf)
			buf = grown
		}

		n, err := r.Read(buf[readTo:])
		if n > 0 {
			readTo += n

			consumed, perr := req.Parse(buf[:readTo])
			if perr != nil {
				return nil, perr
			}
			copy(buf, buf[consumed:readTo])
			readTo -= consumed
		}

		if err != nil {
			if err == io.EOF {
				if !req.Done() {
					return nil, ErrBodySmallerThanContentLength
				}
				break
			}
			return nil, errReader(err)
		}
	}

	return req, nil
}
