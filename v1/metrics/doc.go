// Package metrics provides a Prometheus-backed metrics server and the
// metrics implementation of the observability.Observer interface.
//
// Each service gets an isolated Prometheus registry exposed over HTTP,
// pre-populated with three metric families fed by the observer:
//
//   - streaming_operations_total: counter of operations by component,
//     operation, and status
//   - streaming_operation_duration_seconds: latency histogram by component
//     and operation
//   - streaming_message_bytes: payload size histogram by component and
//     operation
//
// Usage:
//
//	m := metrics.NewMetrics(metrics.Config{
//		Address:                 ":9090",
//		ServiceName:             "stream-core",
//		EnableDefaultCollectors: true,
//	})
//	go m.Server.ListenAndServe()
//
//	producer = producer.WithObserver(m.Observer())
//
// Or with FX, where the observer is injected into every component that
// declares an optional observability.Observer dependency:
//
//	app := fx.New(
//		metrics.FXModule,
//		kafka.FXModule,
//		// ...
//	)
package metrics
