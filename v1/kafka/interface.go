package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/fluxfeed/streaming/v1/schema_registry"
)

// Encoder serializes a record for a subject into wire-format bytes.
// It is implemented by *schema_registry.Serializer.
type Encoder interface {
	Encode(ctx context.Context, subject string, record interface{}) ([]byte, error)
}

// Decoder deserializes wire-format bytes into a decoded record.
// It is implemented by *schema_registry.Serializer.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (*schema_registry.DecodedRecord, error)
}

// ConsumedMessage is a decoded message delivered to a handler, along with
// its broker coordinates.
type ConsumedMessage struct {
	// Topic, Partition, and Offset locate the message in the broker log.
	Topic     string
	Partition int
	Offset    int64

	// Key is the partitioning key the producer attached, or nil.
	Key []byte

	// Headers carries the message headers, e.g. propagated trace context.
	Headers map[string]string

	// Record is the decoded payload.
	Record *schema_registry.DecodedRecord
}

// Handler processes one decoded message. A non-nil error marks the message
// as failed for commit-policy purposes; it does not stop the consumer.
type Handler func(ctx context.Context, msg ConsumedMessage) error

// messageWriter is the narrow slice of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// messageReader is the narrow slice of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
