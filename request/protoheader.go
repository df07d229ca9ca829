package request

import (
	"bytes"
	"strings"
)

// protoHeader is one unprocessed key-value pair as parsed from a single
// header line. The key is already lowercased; the value is trimmed.
type protoHeader struct {
	Key   string
	Value string
}

// isTokenChar reports whether b is a valid RFC 7230 token character:
// ASCII alphanumeric, or one of "!#$%&'*+-.^_`|~".
func isTokenChar(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case strings.IndexByte("!#$%&'*+-.^_`|~", b) >= 0:
		return true
	}
	return false
}

// parseProtoHeader consumes one "key: value\r\n" line from the head of
// data, with a four-way outcome:
//   - (0, nil, nil): no CRLF in data yet, need more data.
//   - (2, nil, nil): the line is empty (just CRLF) — end of headers.
//   - (0, nil, err): the line is malformed.
//   - (n, h, nil): one header was parsed, n bytes consumed.
func parseProtoHeader(data []byte) (int, *protoHeader, error) {
	idx := bytes.Index(data, []byte(crlf))
	if idx < 0 {
		return 0, nil, nil
	}

	if idx == 0 {
		return len(crlf), nil, nil
	}

	original := string(data[:idx])
	trimmedLine := strings.TrimSpace(original)

	colon := strings.IndexByte(trimmedLine, ':')
	if colon < 0 {
		return 0, nil, errMalformedHeader(original)
	}

	key := trimmedLine[:colon]
	value := trimmedLine[colon+1:]

	if len(value) < 1 || len(key) < 1 {
		return 0, nil, errMalformedHeader(original)
	}
	if key[len(key)-1] == ' ' {
		return 0, nil, errMalformedHeader(original)
	}

	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	for i := 0; i < len(key); i++ {
		if !isTokenChar(key[i]) {
			return 0, nil, errMalformedHeader(original)
		}
	}

	return idx + len(crlf), &protoHeader{
		Key:   strings.ToLower(key),
		Value: value,
	}, nil
}
