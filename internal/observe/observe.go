// Package observe wires structured logging and tracing for the client.
// Storage and transport failures are recoverable by design, so they are
// logged here rather than surfaced as process errors.
package observe

import (
	"context"
	"io"

	"github.com/felixgeelhaar/bolt/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("streetbot")

// Observer bundles the logger and tracer handed to every component.
type Observer struct {
	log *bolt.Logger
}

// New creates an Observer with human-readable console output.
// Unless verbose is set, only warnings and errors are emitted.
func New(out io.Writer, verbose bool) *Observer {
	l := bolt.New(bolt.NewConsoleHandler(out))
	if !verbose {
		l.SetLevel(bolt.WARN)
	}
	return &Observer{log: l}
}

// NewJSON creates an Observer with JSON output for log collection.
func NewJSON(out io.Writer, verbose bool) *Observer {
	l := bolt.New(bolt.NewJSONHandler(out))
	if !verbose {
		l.SetLevel(bolt.WARN)
	}
	return &Observer{log: l}
}

// Nop returns an Observer that discards everything. Components treat the
// observer as required, so tests and library callers use this instead of nil.
func Nop() *Observer {
	return NewJSON(io.Discard, false)
}

// Log returns the underlying logger.
func (o *Observer) Log() *bolt.Logger {
	return o.log
}

// StartSpan starts a tracing span around a user-visible operation.
func (o *Observer) StartSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name)
}
