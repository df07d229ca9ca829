package request

import (
	"bytes"

	"github.com/viniciusfeitosa/httpkit/httpmethod"
)

// RequestLine is the parsed first line of an HTTP request: method, target,
// and version. Version is always "1.1" once accepted.
type RequestLine struct {
	Method        httpmethod.Method
	RequestTarget string
	HttpVersion   string
}

const crlf = "\r\n"

// parseRequestLine consumes one request line from the head of data. It
// returns the number of bytes consumed and the parsed line, or an error.
// A nil line with zero bytes consumed and a nil error means "need more
// data" — data does not yet contain a full line.
func parseRequestLine(data []byte) (int, *RequestLine, error) {
	idx := bytes.Index(data, []byte(crlf))
	if idx < 0 {
		return 0, nil, nil
	}

	totalRead := idx + len(crlf)
	line := data[:idx]

	parts := bytes.Split(line, []byte(" "))
	if len(parts) != 3 {
		return 0, nil, errInvalidLinePartSize(len(parts))
	}

	methodToken := string(parts[0])
	target := string(parts[1])
	versionToken := string(parts[2])

	method, ok := httpmethod.Parse(methodToken)
	if !ok {
		return 0, nil, errUnknownHttpMethod(methodToken)
	}

	if versionToken != "HTTP/1.1" {
		return 0, nil, errUnsupportedHttpVersion(versionToken)
	}

	return totalRead, &RequestLine{
		Method:        method,
		RequestTarget: target,
		HttpVersion:   "1.1",
	}, nil
}
