package schema_registry

import (
	"time"

	"github.com/fluxfeed/streaming/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track encode and decode operations for metrics
// and tracing.
//
// Notes:
//   - resource: the subject (encode) or schema id (decode)
//   - subResource: the resolved record full name, when known
func (s *Serializer) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "schemaregistry",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    nil,
	})
}
