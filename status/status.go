// Package status holds the small table of status codes this server is able
// to emit, mapping each to its canonical reason-phrase wire form.
package status

// Code is one of the four statuses the response writers know how to render.
type Code int

const (
	OK                  Code = 200
	BadRequest          Code = 400
	NotFound            Code = 404
	InternalServerError Code = 500
)

// reasons maps a Code to its "<code> <reason>" wire text, as it appears
// right after "HTTP/1.1 " on the response line.
var reasons = map[Code]string{
	OK:                  "200 OK",
	BadRequest:          "400 Bad Request",
	NotFound:            "404 Not Found",
	InternalServerError: "500 Internal Server Error",
}

// Text returns the "<code> <reason>" wire form for c. Unknown codes fall
// back to 500, since the writers only ever construct c from this package.
func (c Code) Text() string {
	if t, ok := reasons[c]; ok {
		return t
	}
	return reasons[InternalServerError]
}

func (c Code) String() string {
	return c.Text()
}
