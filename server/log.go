package server

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/viniciusfeitosa/httpkit/request"
)

// Log is the façade's logging collaborator, grounded on message/server/log.go's
// Log interface but backed by zap's structured sugared logger instead of a
// bare fmt.Printf, and tagging every line with a per-connection id so one
// connection's log lines can be correlated across its lifetime.
type Log interface {
	Status(connID string, req *request.Request)
	ParseError(connID string, err error)
	WriterError(connID string, err error)
	Fatal(err error)
}

type zapLog struct {
	s *zap.SugaredLogger
}

// NewLog builds the default Log backed by a zap production logger.
func NewLog() Log {
	logger, err := zap.NewProduction()
	if err != nil {
		logger = zap.NewNop()
	}
	return &zapLog{s: logger.Sugar()}
}

func (l *zapLog) Status(connID string, req *request.Request) {
	l.s.Infow("request",
		"conn", connID,
		"method", req.Method(),
		"target", req.Target(),
	)
}

func (l *zapLog) ParseError(connID string, err error) {
	l.s.Warnw("parse error, closing connection without responding",
		"conn", connID,
		"error", err,
	)
}

func (l *zapLog) WriterError(connID string, err error) {
	l.s.Warnw("error committing response writer on scope exit",
		"conn", connID,
		"error", err,
	)
}

func (l *zapLog) Fatal(err error) {
	l.s.Fatalw("fatal server error", "error", err)
}

// newConnID mints a per-connection correlation id for log lines.
func newConnID() string {
	return uuid.NewString()
}
