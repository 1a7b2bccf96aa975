// Package observability defines the Observer interface used by all clients
// in this module to report operation telemetry.
//
// The interface is deliberately minimal: a single ObserveOperation method
// receiving an OperationContext value. Concrete sinks live elsewhere, for
// example the Prometheus-backed observer in v1/metrics. Clients hold the
// observer as an optional dependency and fall back to a no-op when none is
// configured, so enabling telemetry never changes client behavior.
//
// Basic Usage:
//
//	obs := observability.ObserverFunc(func(op observability.OperationContext) {
//		log.Printf("%s.%s on %s took %s (err=%v)",
//			op.Component, op.Operation, op.Resource, op.Duration, op.Error)
//	})
//
//	producer, err := kafka.NewProducer(cfg, serializer)
//	if err != nil {
//		return err
//	}
//	producer = producer.WithObserver(obs)
package observability
