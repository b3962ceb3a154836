// Package tracing provides OpenTelemetry tracing for the report pipeline.
package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the channel-report application.
var tracer = otel.Tracer("channel-report")

// GetTracer returns the global tracer for creating spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "scan.channel")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
