package kafka

import (
	"time"

	"github.com/fluxfeed/streaming/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track produce, consume, and dispatch operations
// for metrics and tracing.
//
// Notes:
//   - resource: the topic (produce/dispatch) or group id (subscribe)
//   - subResource: the subject or record full name
func (p *Producer) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if p == nil || p.observer == nil {
		return
	}

	p.observer.ObserveOperation(observability.OperationContext{
		Component:   "kafka",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    nil,
	})
}

func (c *Consumer) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "kafka",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    nil,
	})
}
