package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Common error types surfaced by the producer and consumer. They abstract
// away transport details so callers can branch on errors.Is.
var (
	// ErrPublish wraps every publish failure, whether it originated in
	// encoding or in the broker transport.
	ErrPublish = errors.New("publish failed")

	// ErrBrokerUnavailable is returned when the broker cannot be reached.
	ErrBrokerUnavailable = errors.New("broker unavailable")

	// ErrTimeout is returned when a broker operation exceeds its deadline.
	ErrTimeout = errors.New("timeout")

	// ErrInvalidAckLevel is returned for an unrecognized AckLevel value.
	ErrInvalidAckLevel = errors.New("invalid ack level")

	// ErrInvalidCommitPolicy is returned for an unrecognized CommitPolicy value.
	ErrInvalidCommitPolicy = errors.New("invalid commit policy")

	// ErrNoHandler is reported when a decoded record has no registered handler.
	ErrNoHandler = errors.New("no handler registered for record")

	// ErrNotStopped is returned when Start is called on a consumer that is
	// not in the Stopped state.
	ErrNotStopped = errors.New("consumer is not stopped")

	// ErrNoTopics is returned when a consumer is created without any topic.
	ErrNoTopics = errors.New("no topics configured")
)

// classifyTransportError maps a kafka-go transport error onto the package's
// error taxonomy, preserving the original error in the chain.
func classifyTransportError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrBrokerUnavailable, err)
	}
	return err
}
