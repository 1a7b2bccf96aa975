// Package tracer provides distributed tracing functionality using OpenTelemetry.
//
// The tracer package offers a simplified interface for implementing
// distributed tracing in Go applications. It abstracts away the complexity of
// OpenTelemetry to provide a clean, easy-to-use API for creating and managing
// trace spans — including propagating trace context through Kafka message
// headers so producer and consumer spans join into a single trace.
//
// Core Features:
//   - Simple span creation and management
//   - Error recording and status tracking
//   - Customizable span attributes
//   - Trace context propagation through message headers
//   - Integration with OpenTelemetry backends over OTLP/HTTP
//
// Basic Usage:
//
//	import (
//		"context"
//		"github.com/fluxfeed/streaming/v1/logger"
//		"github.com/fluxfeed/streaming/v1/tracer"
//	)
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "stream-core"})
//
//	tracerClient := tracer.NewClient(tracer.Config{
//		ServiceName:  "stream-core",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//
//	ctx, span := tracerClient.StartSpan(ctx, "publish-order")
//	defer span.End()
//
//	tracerClient.SetAttributes(span, map[string]interface{}{
//		"messaging.destination": "orders",
//	})
//
//	if err != nil {
//		tracerClient.RecordErrorOnSpan(span, err)
//		return err
//	}
//
// Tracing Across Services:
//
//	// Producer side: carry the trace context in message headers.
//	ctx, span := tracerClient.StartSpan(ctx, "publish-order")
//	defer span.End()
//	err := producer.Publish(ctx, "orders", subject, order, tracerClient.GetCarrier(ctx))
//
//	// Consumer side: rebuild the context from the message headers.
//	func handle(ctx context.Context, msg kafka.ConsumedMessage) error {
//		ctx = tracerClient.SetCarrierOnContext(ctx, msg.Headers)
//		ctx, span := tracerClient.StartSpan(ctx, "handle-order")
//		defer span.End()
//		// ...
//	}
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		tracer.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Thread Safety:
//
// All methods on the Tracer type and Span interface are safe for concurrent
// use by multiple goroutines.
package tracer
