package metrics

import (
	"context"
	"net/http"

	"go.uber.org/fx"

	"github.com/fluxfeed/streaming/v1/logger"
	"github.com/fluxfeed/streaming/v1/observability"
)

// FXModule defines the Fx module for the metrics package.
//
// The module:
//  1. Provides the NewMetrics factory function to the dependency injection
//     container
//  2. Provides the metrics-backed observability.Observer so the producer,
//     consumer, and serializer pick it up automatically
//  3. Invokes RegisterMetricsLifecycle to manage startup and graceful
//     shutdown of the Prometheus HTTP server
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{
//	            Address:                 ":9090",
//	            ServiceName:             "stream-core",
//	            EnableDefaultCollectors: true,
//	        }
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) observability.Observer { return m.Observer() },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams groups the dependencies needed for metrics
// lifecycle management.
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    *logger.Logger `optional:"true"`
}

// RegisterMetricsLifecycle manages the startup and shutdown lifecycle of the
// Prometheus metrics HTTP server: OnStart launches it in a background
// goroutine, OnStop shuts it down gracefully.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if params.Logger != nil {
					params.Logger.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
						"address": params.Metrics.Server.Addr,
					})
				}

				if err := params.Metrics.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					if params.Logger != nil {
						params.Logger.Error("Error starting Prometheus metrics server", err, nil)
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("Shutting down Prometheus metrics server", nil, nil)
			}
			return params.Metrics.Server.Shutdown(ctx)
		},
	})
}
