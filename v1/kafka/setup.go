package kafka

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// requiredAcks maps an ack level to the kafka-go RequiredAcks value.
func requiredAcks(level string) (kafka.RequiredAcks, error) {
	switch level {
	case AckNone:
		return kafka.RequireNone, nil
	case AckLeader:
		return kafka.RequireOne, nil
	case AckAll:
		return kafka.RequireAll, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAckLevel, level)
	}
}

// createErrorLogger creates a kafka-go error logger from the config.
func createErrorLogger(cfg Config, logger Logger) kafka.LoggerFunc {
	// Priority 1: Use the structured logger if provided
	if logger != nil {
		return func(msg string, args ...interface{}) {
			formattedMsg := msg
			if len(args) > 0 {
				formattedMsg = fmt.Sprintf(msg, args...)
			}
			logger.ErrorWithContext(context.Background(), "Kafka internal error", nil, map[string]interface{}{
				"error": formattedMsg,
			})
		}
	}

	// Priority 2: Use custom error logger function
	if cfg.ErrorLogger != nil {
		return kafka.LoggerFunc(cfg.ErrorLogger)
	}

	// Priority 3: Use standard log package
	return func(msg string, args ...interface{}) {
		log.Printf("KAFKA ERROR: "+msg, args...)
	}
}

// createWriter creates a Kafka writer with the given configuration.
func createWriter(cfg Config, logger Logger) (*kafka.Writer, error) {
	acks, err := requiredAcks(cfg.AckLevel)
	if err != nil {
		return nil, err
	}

	dialer, err := createDialer(cfg)
	if err != nil {
		return nil, err
	}

	writerConfig := kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLogger:  createErrorLogger(cfg, logger),
		Dialer:       dialer,
	}

	writerConfig.RequiredAcks = int(acks)

	if cfg.Async {
		writerConfig.Async = true
		writerConfig.BatchSize = cfg.BatchSize
		writerConfig.BatchTimeout = cfg.BatchTimeout
	}

	switch cfg.CompressionCodec {
	case "gzip":
		writerConfig.CompressionCodec = &compress.GzipCodec
	case "snappy":
		writerConfig.CompressionCodec = &compress.SnappyCodec
	case "lz4":
		writerConfig.CompressionCodec = &compress.Lz4Codec
	case "zstd":
		writerConfig.CompressionCodec = &compress.ZstdCodec
	}

	return kafka.NewWriter(writerConfig), nil
}

// createReader creates a Kafka reader subscribed to the configured topics
// with the configured consumer group.
func createReader(cfg Config, logger Logger) (*kafka.Reader, error) {
	dialer, err := createDialer(cfg)
	if err != nil {
		return nil, err
	}

	readerConfig := kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		MaxWait:        cfg.MaxWait,
		StartOffset:    cfg.StartOffset,
		CommitInterval: cfg.CommitInterval,
		ErrorLogger:    createErrorLogger(cfg, logger),
		Dialer:         dialer,
	}

	// A group subscription over multiple topics uses GroupTopics; a single
	// topic can use either form.
	if len(cfg.Topics) == 1 {
		readerConfig.Topic = cfg.Topics[0]
	} else {
		readerConfig.GroupTopics = cfg.Topics
	}

	return kafka.NewReader(readerConfig), nil
}

// createDialer creates a dialer with the configured TLS and SASL settings.
func createDialer(cfg Config) (*kafka.Dialer, error) {
	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	return &kafka.Dialer{
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}, nil
}

// createTLSConfig creates a TLS configuration from the provided config.
func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// createSASLMechanism creates a SASL mechanism from the provided config.
func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}
