package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/fluxfeed/streaming/v1/logger"
)

// FXModule provides a Uber FX module that configures distributed tracing for
// your application. This module registers the tracer client with the
// dependency injection system and sets up proper lifecycle management to
// ensure graceful startup and shutdown of the tracer.
//
// The module:
// 1. Provides the tracer client through the NewClient constructor
// 2. Registers shutdown hooks to cleanly close tracer resources on application termination
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    // other modules...
//	)
//	app.Run()
//
// This module should be included in your main application to enable
// distributed tracing throughout your dependency graph without manual wiring.
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies needed to construct the tracer client
// through dependency injection.
type TracerParams struct {
	fx.In

	Config Config
	Logger *logger.Logger
}

// NewClientWithDI adapts NewClient for use with the FX dependency injection
// container, binding the shared application logger to the package's Logger
// interface.
func NewClientWithDI(params TracerParams) *Tracer {
	return NewClient(params.Config, params.Logger)
}

// RegisterTracerLifecycle registers shutdown hooks for the tracer with the FX
// lifecycle. This function ensures that tracer resources are properly
// released when the application terminates, preventing resource leaks and
// ensuring traces are flushed to exporters.
//
// Parameters:
//   - lc: The FX lifecycle to register hooks with
//   - tracer: The tracer instance to manage lifecycle for
//
// This function is automatically invoked by the FXModule and normally doesn't
// need to be called directly.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if tracer.logger != nil {
				tracer.logger.Info("Shutting down tracer", nil, nil)
			}
			return tracer.Shutdown(ctx)
		},
	})
}
