package kafka

import (
	"context"
	"time"
)

// Ack levels for published messages. Higher levels trade latency for
// durability.
const (
	// AckNone is fire-and-forget: no broker acknowledgment is awaited.
	// Messages can be silently lost on leader failure.
	AckNone = "none"

	// AckLeader waits for the partition leader to persist the message.
	// Messages can still be lost if the leader crashes before replication.
	AckLeader = "leader"

	// AckAll waits for the full in-sync replica set. This is the only
	// level safe against the loss of a single broker.
	AckAll = "all"
)

// Commit policies controlling when the consumer commits offsets.
const (
	// CommitAlways commits the offset of every received message, including
	// ones that failed to decode or whose handler returned an error. This
	// keeps the stream moving past poison messages at the cost of losing
	// them. This is the default.
	CommitAlways = "always"

	// CommitOnSuccess commits only offsets of messages whose handler
	// returned nil. Failed messages are redelivered after a restart or
	// rebalance, risking reprocessing of everything after them.
	CommitOnSuccess = "on_success"
)

// Default configuration values applied by NewProducer and NewConsumer.
const (
	DefaultWriteTimeout  = 10 * time.Second
	DefaultMaxWait       = 500 * time.Millisecond
	DefaultMinBytes      = 1
	DefaultMaxBytes      = 10 << 20 // 10 MiB
	DefaultMaxAttempts   = 1
	DefaultBatchSize     = 100
	DefaultBatchTimeout  = time.Second
	DefaultWorkers       = 1
	DefaultShutdownGrace = 30 * time.Second
	DefaultQueueDepth    = 100
)

// Config holds configuration for Kafka producers and consumers.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string

	// Topic is the topic a producer publishes to by default, and the
	// single topic a consumer subscribes to when Topics is empty.
	Topic string

	// Topics lists the topics a consumer subscribes to. Takes precedence
	// over Topic when non-empty.
	Topics []string

	// GroupID is the consumer-group identifier. Group membership enables
	// the broker's partition-rebalance semantics.
	GroupID string

	// AckLevel selects the publish acknowledgment level: AckNone,
	// AckLeader, or AckAll. Defaults to AckAll.
	AckLevel string

	// WriteTimeout bounds each publish, including the acknowledgment
	// wait. On expiry the publish fails with ErrTimeout. Defaults to
	// DefaultWriteTimeout.
	WriteTimeout time.Duration

	// CompressionCodec selects the producer compression codec:
	// "gzip", "snappy", "lz4", or "zstd". Empty means uncompressed.
	CompressionCodec string

	// Async enables asynchronous batched writes on the producer.
	// Publish then returns before the broker acknowledges; delivery
	// failures are only visible through the error logger.
	Async bool

	// BatchSize is the maximum number of messages per batch in async mode.
	BatchSize int

	// BatchTimeout is how long an incomplete batch waits before flushing
	// in async mode.
	BatchTimeout time.Duration

	// MaxAttempts is the number of delivery attempts made by the
	// underlying writer before giving up.
	MaxAttempts int

	// Workers is the number of concurrent handler workers in the
	// consumer. Width 1 (the default) preserves broker order within a
	// partition; width N processes messages concurrently and
	// cross-message ordering within a partition is no longer guaranteed.
	Workers int

	// QueueDepth is the size of the consumer's internal message queue
	// between the poll loop and the workers.
	QueueDepth int

	// CommitPolicy selects when offsets are committed: CommitAlways or
	// CommitOnSuccess. Defaults to CommitAlways.
	CommitPolicy string

	// ShutdownGrace is how long Stop waits for in-flight handlers before
	// abandoning them. Defaults to DefaultShutdownGrace.
	ShutdownGrace time.Duration

	// MinBytes, MaxBytes, and MaxWait tune the consumer's fetch requests.
	MinBytes int
	MaxBytes int
	MaxWait  time.Duration

	// StartOffset selects where a new consumer group starts reading:
	// kafka.FirstOffset or kafka.LastOffset.
	StartOffset int64

	// CommitInterval batches offset commits when non-zero. Zero commits
	// synchronously, which is what CommitOnSuccess semantics require.
	CommitInterval time.Duration

	// TLS configures transport encryption to the brokers.
	TLS TLSConfig

	// SASL configures broker authentication.
	SASL SASLConfig

	// ErrorLogger receives internal error messages from the underlying
	// kafka-go writer/reader when no structured Logger is attached.
	ErrorLogger func(msg string, args ...interface{})
}

// TLSConfig holds TLS settings for broker connections.
type TLSConfig struct {
	// Enabled turns TLS on for broker connections.
	Enabled bool

	// CACertPath is the file path to the CA certificate for verifying brokers.
	CACertPath string

	// ClientCertPath is the file path to the client certificate for mTLS.
	ClientCertPath string

	// ClientKeyPath is the file path to the client certificate's private key.
	ClientKeyPath string

	// InsecureSkipVerify disables server certificate verification.
	// Never enable this outside of local development.
	InsecureSkipVerify bool
}

// SASLConfig holds SASL authentication settings for broker connections.
type SASLConfig struct {
	// Enabled turns SASL authentication on.
	Enabled bool

	// Mechanism selects the SASL mechanism:
	// "PLAIN", "SCRAM-SHA-256", or "SCRAM-SHA-512".
	Mechanism string

	// Username for SASL authentication.
	Username string

	// Password for SASL authentication.
	Password string
}

// Logger is an interface that matches the v1/logger.Logger surface used by
// this package. It provides context-aware structured logging with optional
// error and field parameters.
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// applyProducerDefaults fills zero values with producer defaults.
func applyProducerDefaults(cfg Config) Config {
	if cfg.AckLevel == "" {
		cfg.AckLevel = AckAll
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}
	return cfg
}

// applyConsumerDefaults fills zero values with consumer defaults.
func applyConsumerDefaults(cfg Config) Config {
	if len(cfg.Topics) == 0 && cfg.Topic != "" {
		cfg.Topics = []string{cfg.Topic}
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.QueueDepth == 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}
	if cfg.CommitPolicy == "" {
		cfg.CommitPolicy = CommitAlways
	}
	if cfg.ShutdownGrace == 0 {
		cfg.ShutdownGrace = DefaultShutdownGrace
	}
	if cfg.MinBytes == 0 {
		cfg.MinBytes = DefaultMinBytes
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = DefaultMaxWait
	}
	return cfg
}
