package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation name used by vmkit components.
const tracerName = "vmkit"

// Tracer returns the vmkit tracer from the global provider. Configure the
// provider in main before building view-models or clients.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
