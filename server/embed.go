package server

import _ "embed"

//go:embed static/not-found.html
var notFoundPage []byte
