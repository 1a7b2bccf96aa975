// Package kafka provides a schema-aware producer and consumer for Apache
// Kafka.
//
// Records are serialized through the schema registry (see
// v1/schema_registry) into the Confluent wire format before publishing, and
// deserialized with the writer's schema on consumption. The consumer
// dispatches decoded records to handlers registered per Avro record name.
//
// Publishing:
//
//	registry, _ := schema_registry.NewClient(schema_registry.Config{URL: "http://localhost:8081"})
//	serializer := schema_registry.NewSerializer(registry, schema_registry.SerializerConfig{})
//
//	producer, err := kafka.NewProducer(kafka.Config{
//		Brokers:  []string{"localhost:9092"},
//		AckLevel: kafka.AckAll,
//	}, serializer)
//	if err != nil {
//		return err
//	}
//	defer producer.Close()
//
//	record := schema_registry.UserRegistration{UserID: "u1", Email: "a@b.com"}
//	err = producer.Publish(ctx, "user-registration",
//		schema_registry.Subject("UserRegistration"), record)
//
// Acknowledgment levels:
//
// AckNone returns without waiting and can silently lose messages on leader
// failure. AckLeader waits for the partition leader and can still lose
// messages if the leader crashes before replication. AckAll waits for the
// full in-sync replica set and is the only level safe against the loss of a
// single broker. The producer never retries; layering bounded backoff on
// top is the caller's decision.
//
// Consuming:
//
//	consumer, err := kafka.NewConsumer(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topics:  []string{"user-registration"},
//		GroupID: "stream-core-group",
//	}, serializer)
//	if err != nil {
//		return err
//	}
//
//	consumer.RegisterHandler("com.fluxfeed.streaming.UserRegistration",
//		func(ctx context.Context, msg kafka.ConsumedMessage) error {
//			user := msg.Record.Value.(schema_registry.UserRegistration)
//			return store(ctx, user)
//		})
//
//	if err := consumer.Start(ctx); err != nil {
//		return err
//	}
//	defer consumer.Stop()
//
// Messages that fail to decode are reported and skipped; the stream keeps
// moving. Config.CommitPolicy decides whether their offsets are committed
// (CommitAlways, the default, loses the poison message) or held back
// (CommitOnSuccess, risks reprocessing after a restart).
//
// Ordering:
//
// With Workers = 1 handlers observe messages in broker-assigned order
// within each partition. Workers > 1 trades that ordering for throughput:
// messages are processed concurrently and may complete out of order.
//
// Distributed Tracing:
//
// Trace context propagates through message headers. On the producer side,
// extract the carrier and pass it to Publish:
//
//	err = producer.Publish(ctx, topic, subject, record, tracerClient.GetCarrier(ctx))
//
// On the consumer side, rebuild the context from the message headers:
//
//	func handle(ctx context.Context, msg kafka.ConsumedMessage) error {
//		ctx = tracerClient.SetCarrierOnContext(ctx, msg.Headers)
//		ctx, span := tracerClient.StartSpan(ctx, "process-message")
//		defer span.End()
//		// ...
//	}
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		schema_registry.FXModule,
//		kafka.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Thread Safety:
//
// Producer methods are safe for concurrent use except Close, which should
// only be called once. Consumer registration and state inspection are safe
// for concurrent use; Start and Stop coordinate through the state machine.
package kafka
