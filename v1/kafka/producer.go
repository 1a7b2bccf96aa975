package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fluxfeed/streaming/v1/observability"
	"github.com/fluxfeed/streaming/v1/schema_registry"
)

// Producer serializes records through the schema registry and publishes them
// to Kafka with the configured delivery-acknowledgment level.
//
// Producer performs no internal retries: on a per-message failure, the error
// is surfaced to the caller, and retry policy is the caller's decision.
//
// All methods are safe for concurrent use except Close, which must only be
// called once.
type Producer struct {
	// cfg stores the configuration for this producer
	cfg Config

	// writer is the Kafka writer used for publishing messages. It is
	// built lazily on first use so its error logger picks up the logger
	// attached with WithLogger; writerMu guards the build.
	writer   messageWriter
	writerMu sync.Mutex

	// encoder serializes records into wire-format bytes
	encoder Encoder

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// logger is the optional structured logger
	logger Logger
}

// NewProducer creates a producer publishing through the given encoder.
//
// Example:
//
//	producer, err := kafka.NewProducer(kafka.Config{
//	    Brokers:  []string{"localhost:9092"},
//	    AckLevel: kafka.AckAll,
//	}, serializer)
//	if err != nil {
//	    return err
//	}
//	defer producer.Close()
func NewProducer(cfg Config, encoder Encoder) (*Producer, error) {
	cfg = applyProducerDefaults(cfg)

	// Fail fast on configuration problems; the writer itself is built on
	// first Publish, once WithLogger has had a chance to run, so kafka-go's
	// internal errors reach the structured logger.
	if _, err := requiredAcks(cfg.AckLevel); err != nil {
		return nil, err
	}
	if _, err := createDialer(cfg); err != nil {
		return nil, err
	}

	return &Producer{
		cfg:     cfg,
		encoder: encoder,
	}, nil
}

// getWriter returns the writer, building it on first use with the logger
// attached at that point.
func (p *Producer) getWriter() (messageWriter, error) {
	p.writerMu.Lock()
	defer p.writerMu.Unlock()

	if p.writer != nil {
		return p.writer, nil
	}

	// The topic is set per message in Publish; kafka-go rejects messages
	// that carry a topic when the writer also has one configured.
	writerCfg := p.cfg
	writerCfg.Topic = ""
	writer, err := createWriter(writerCfg, p.logger)
	if err != nil {
		return nil, err
	}
	p.writer = writer
	return writer, nil
}

// WithObserver attaches an observer to the producer for tracking operations.
// Returns the producer for method chaining.
func (p *Producer) WithObserver(observer observability.Observer) *Producer {
	p.observer = observer
	return p
}

// WithLogger attaches a structured logger. Attach it before the first
// Publish: the writer built there routes kafka-go's internal errors (the
// only visibility into Async delivery failures) through it.
// Returns the producer for method chaining.
func (p *Producer) WithLogger(logger Logger) *Producer {
	p.logger = logger
	return p
}

// Publish encodes a record against the subject's latest schema and publishes
// it to the topic, waiting for the acknowledgment level configured in
// AckLevel. A nil return means the broker acknowledged at that level.
//
// The record's natural key (via schema_registry.Keyed) becomes the
// partitioning key; records without one use broker-default partitioning.
//
// Optional headers are attached to the message, e.g. trace context
// extracted with tracer.GetCarrier:
//
//	err := producer.Publish(ctx, "user-registration",
//	    schema_registry.Subject("UserRegistration"), record,
//	    tracerClient.GetCarrier(ctx))
//
// Every failure is wrapped in ErrPublish; the cause remains matchable with
// errors.Is (ErrSerializationMismatch, ErrSchemaResolution,
// ErrBrokerUnavailable, ErrTimeout). Nothing is published when encoding
// fails.
func (p *Producer) Publish(ctx context.Context, topic, subject string, record interface{}, headers ...map[string]string) error {
	start := time.Now()
	var publishErr error
	var msgSize int64

	defer func() {
		p.observeOperation("produce", topic, subject, time.Since(start), publishErr, msgSize)
	}()

	data, err := p.encoder.Encode(ctx, subject, record)
	if err != nil {
		publishErr = fmt.Errorf("%w: encode for topic %q: %w", ErrPublish, topic, err)
		return publishErr
	}
	msgSize = int64(len(data))

	msg := kafka.Message{
		Topic: topic,
		Value: data,
	}

	if keyed, ok := record.(schema_registry.Keyed); ok {
		msg.Key = []byte(keyed.PartitionKey())
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			msg.Headers = append(msg.Headers, kafka.Header{Key: key, Value: []byte(value)})
		}
	}

	writer, err := p.getWriter()
	if err != nil {
		publishErr = fmt.Errorf("%w: topic %q: %w", ErrPublish, topic, err)
		return publishErr
	}

	writeCtx := ctx
	if p.cfg.WriteTimeout > 0 {
		var cancel context.CancelFunc
		writeCtx, cancel = context.WithTimeout(ctx, p.cfg.WriteTimeout)
		defer cancel()
	}

	if err := writer.WriteMessages(writeCtx, msg); err != nil {
		publishErr = fmt.Errorf("%w: topic %q: %w", ErrPublish, topic, classifyTransportError(err))
		if p.logger != nil {
			p.logger.ErrorWithContext(ctx, "Failed to publish message", publishErr, map[string]interface{}{
				"topic":   topic,
				"subject": subject,
			})
		}
		return publishErr
	}

	return nil
}

// Close flushes and closes the underlying writer. A producer that never
// published has no writer to close.
func (p *Producer) Close() error {
	p.writerMu.Lock()
	defer p.writerMu.Unlock()
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
