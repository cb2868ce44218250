// Package diag defines the error kinds shared across the reconstruction
// pipeline and a sink that records recoverable anomalies.
//
// Entity-level failures (one publisher, one message context, one named
// path) are reported here and the offending entity is skipped; the batch
// continues. Tests assert on the collected warnings instead of capturing
// log output.
package diag

import (
	"context"
	"errors"
	"fmt"

	"github.com/hsgwa/archgraph/internal/ctxlog"
)

var (
	// ErrNotFound reports that a requested named entity does not exist.
	ErrNotFound = errors.New("item not found")
	// ErrMultipleFound reports an ambiguous lookup that matched more than
	// one candidate where exactly one was required.
	ErrMultipleFound = errors.New("multiple items found")
	// ErrInvalidInput reports malformed reader data, such as duplicate
	// node names or an unsupported endpoint combination.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupportedType reports a value that matched no known variant.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Warning is one recoverable anomaly produced during assembly.
type Warning struct {
	// Err carries the error kind (wraps one of the package sentinels).
	Err error
	// Message is a human-readable description.
	Message string
	// Fields holds structured context, alternating key and value.
	Fields []any
}

// Sink collects warnings and mirrors them to the context logger.
// The zero value is not usable; call NewSink.
type Sink struct {
	warnings []Warning
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Warnf records a warning and logs it at Warn level.
func (s *Sink) Warnf(ctx context.Context, err error, format string, args ...any) {
	s.Warn(ctx, err, fmt.Sprintf(format, args...))
}

// Warn records a warning with structured fields and logs it at Warn level.
func (s *Sink) Warn(ctx context.Context, err error, msg string, fields ...any) {
	s.warnings = append(s.warnings, Warning{Err: err, Message: msg, Fields: fields})
	logFields := fields
	if err != nil {
		logFields = append([]any{"error", err}, fields...)
	}
	ctxlog.FromContext(ctx).Warn(msg, logFields...)
}

// Warnings returns all warnings recorded so far, in order.
func (s *Sink) Warnings() []Warning {
	return s.warnings
}

// ByKind returns the warnings whose error matches the given sentinel.
func (s *Sink) ByKind(kind error) []Warning {
	var out []Warning
	for _, w := range s.warnings {
		if errors.Is(w.Err, kind) {
			out = append(out, w)
		}
	}
	return out
}
