package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/fluxfeed/streaming/v1/logger"
	"github.com/fluxfeed/streaming/v1/observability"
	"github.com/fluxfeed/streaming/v1/schema_registry"
)

// FXModule is an fx.Module that provides the Kafka producer and consumer.
//
// The module provides:
//  1. *Producer and *Consumer wired to the schema registry serializer
//  2. Lifecycle management: producer flush/close and consumer graceful stop
//     on application shutdown
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    schema_registry.FXModule,
//	    kafka.FXModule,
//	    fx.Provide(
//	        func() kafka.Config {
//	            return kafka.Config{
//	                Brokers:  []string{"localhost:9092"},
//	                Topics:   []string{"user-registration"},
//	                GroupID:  "stream-core-group",
//	                AckLevel: kafka.AckAll,
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewProducerWithDI,
		NewConsumerWithDI,
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create the Kafka clients.
type KafkaParams struct {
	fx.In

	Config     Config
	Serializer *schema_registry.Serializer
	Logger     *logger.Logger         `optional:"true"`
	Observer   observability.Observer `optional:"true"`
}

// NewProducerWithDI creates a Producer using dependency injection, attaching
// the optional logger and observer when present in the container.
func NewProducerWithDI(params KafkaParams) (*Producer, error) {
	producer, err := NewProducer(params.Config, params.Serializer)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		producer = producer.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		producer = producer.WithObserver(params.Observer)
	}

	return producer, nil
}

// NewConsumerWithDI creates a Consumer using dependency injection, attaching
// the optional logger and observer when present in the container.
func NewConsumerWithDI(params KafkaParams) (*Consumer, error) {
	consumer, err := NewConsumer(params.Config, params.Serializer)
	if err != nil {
		return nil, err
	}

	if params.Logger != nil {
		consumer = consumer.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		consumer = consumer.WithObserver(params.Observer)
	}

	return consumer, nil
}

// KafkaLifecycleParams groups the dependencies needed for Kafka lifecycle
// management.
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Producer  *Producer
	Consumer  *Consumer
}

// RegisterKafkaLifecycle registers the Kafka clients with the fx lifecycle
// system: the consumer starts with the application and both clients shut
// down gracefully with it. Handlers must be registered before the
// application starts.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return params.Consumer.Start(context.Background())
		},
		OnStop: func(ctx context.Context) error {
			params.Consumer.Stop()
			return params.Producer.Close()
		},
	})
}
