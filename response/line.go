package response

import "github.com/viniciusfeitosa/httpkit/status"

const crlf = "\r\n"

// responseLine renders the fixed version prefix, the status's wire text,
// and the terminating CRLF: "HTTP/1.1 200 OK\r\n".
func responseLine(code status.Code) string {
	return "HTTP/1.1 " + code.Text() + crlf
}
