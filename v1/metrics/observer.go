package metrics

import (
	"github.com/fluxfeed/streaming/v1/observability"
)

// Observer returns an observability.Observer that records every observed
// operation into this Metrics instance. Attach it to the producer, consumer,
// and serializer to get per-operation counters, latency histograms, and
// message-size histograms without any code in the hot path knowing about
// Prometheus.
//
// Example:
//
//	m := metrics.NewMetrics(cfg)
//	producer = producer.WithObserver(m.Observer())
//	consumer = consumer.WithObserver(m.Observer())
func (m *Metrics) Observer() observability.Observer {
	return &metricsObserver{metrics: m}
}

// metricsObserver adapts Metrics to the observability.Observer interface.
type metricsObserver struct {
	metrics *Metrics
}

// ObserveOperation implements observability.Observer.
func (o *metricsObserver) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	o.metrics.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.metrics.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Size > 0 {
		o.metrics.messageBytes.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
}
