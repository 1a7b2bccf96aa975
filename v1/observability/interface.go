package observability

import "time"

// Observer receives notifications about operations performed by the streaming
// clients. Implementations can forward these to metrics, tracing, or logging
// systems. All clients in this module treat a nil observer as a no-op, so the
// core functions correctly with a discarding sink.
//
// Implementations must be safe for concurrent use: producers, consumer
// workers, and the serializer all report from their own goroutines.
type Observer interface {
	// ObserveOperation is called once per completed operation, on both
	// success and failure paths.
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single observed operation.
type OperationContext struct {
	// Component identifies the reporting client, e.g. "kafka",
	// "schemaregistry".
	Component string

	// Operation is the action performed, e.g. "produce", "consume",
	// "encode", "decode", "fetch_schema".
	Operation string

	// Resource is the primary resource the operation acted on:
	// a topic, a subject, or a schema id rendered as a string.
	Resource string

	// SubResource adds optional detail, e.g. a record name or a
	// partition rendered as a string.
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the failure that ended the operation, or nil on success.
	Error error

	// Size is the payload size in bytes where applicable, otherwise 0.
	Size int64

	// Metadata carries optional operation-specific key-value pairs.
	Metadata map[string]interface{}
}

// NoopObserver is an Observer that discards every observation.
// It is the zero-cost default for callers that do not need telemetry.
type NoopObserver struct{}

// ObserveOperation implements Observer by doing nothing.
func (NoopObserver) ObserveOperation(OperationContext) {}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation implements Observer by calling the wrapped function.
func (f ObserverFunc) ObserveOperation(ctx OperationContext) { f(ctx) }
