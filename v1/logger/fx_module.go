package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule defines the Fx module for the logger package.
// It provides the logger factory and registers its lifecycle hooks.
//
// The module:
//  1. Provides the NewLoggerClient factory function to the dependency
//     injection container, making the logger available to other components
//  2. Invokes RegisterLoggerLifecycle to flush buffered logs during shutdown
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    // other modules...
//	)
//
// A logger.Config instance must be available in the dependency injection
// container.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle handles cleanup (sync) of the Zap logger.
// The OnStop hook calls Sync() on the underlying Zap logger so that any
// buffered log entries are flushed before the application terminates.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Zap.Sync() // flushes any buffered logs
		},
	})
}
