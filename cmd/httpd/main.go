// Command httpd is a thin demo entrypoint wiring the server façade to a
// handful of example routes, grounded on the teacher repo's cmd/server.go.
package main

import (
	"log"

	"github.com/viniciusfeitosa/httpkit/httpmethod"
	"github.com/viniciusfeitosa/httpkit/request"
	"github.com/viniciusfeitosa/httpkit/response"
	"github.com/viniciusfeitosa/httpkit/server"
	"github.com/viniciusfeitosa/httpkit/status"
)

func main() {
	s, err := server.New(8080)
	if err != nil {
		log.Fatal(err)
	}

	must(s.GET("/ping", pingHandler))
	must(s.GET("/user/{id}", userHandler))
	must(s.AddHandleFunc(httpmethod.POST, "/submit", submitHandler))
	must(s.GET("/stream", streamHandler))

	log.Printf("listening on %s", s.Addr())
	log.Fatal(s.ListAndServe())
}

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func pingHandler(w *response.Scope, _ *request.Request) {
	_, _ = w.Writer().Write([]byte("PONG"))
}

func userHandler(w *response.Scope, r *request.Request) {
	id := r.Labels["id"]
	_, _ = w.Writer().Write([]byte("The id sended was " + id))
}

func submitHandler(w *response.Scope, r *request.Request) {
	_ = w.Writer().WriteCode(status.OK)
	_, _ = w.Writer().Write(r.Body)
}

func streamHandler(w *response.Scope, _ *request.Request) {
	cw := w.Chunked()
	_, _ = cw.Write([]byte("ab"))
	_, _ = cw.Write([]byte("cde"))
	_ = cw.WriteTrailer("X-Content-Length", "5")
	if err := cw.Close(); err != nil {
		log.Printf("error closing chunked writer: %v", err)
	}
}
