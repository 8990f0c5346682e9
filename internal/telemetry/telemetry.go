// Package telemetry configures the OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope for all spans.
const TracerName = "github.com/anatolykoptev/pingera-mcp"

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

// Setup installs a global tracer provider for the given exporter name.
// "none" (or empty) leaves the no-op provider in place. "stdout" writes
// spans as JSON to w, or to stderr when w is nil; stdout is reserved for
// the MCP stdio transport.
func Setup(exporter string, w io.Writer) (ShutdownFunc, error) {
	switch exporter {
	case "", "none":
		return func(context.Context) error { return nil }, nil
	case "stdout":
		if w == nil {
			w = os.Stderr
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("stdout trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
		otel.SetTracerProvider(tp)
		return tp.Shutdown, nil
	default:
		return nil, fmt.Errorf("unknown trace exporter %q", exporter)
	}
}

// Tracer returns the tracer used by the tool pipeline.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
