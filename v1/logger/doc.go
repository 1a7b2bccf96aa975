// Package logger provides structured, leveled logging built on Uber's Zap.
//
// It wraps zap.Logger behind a small surface (Debug/Info/Warn/Error/Fatal)
// that takes a message, an optional error, and optional field maps, plus
// *WithContext variants that attach trace and span IDs from an
// OpenTelemetry context when tracing integration is enabled.
//
// Basic Usage:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       logger.Info,
//		ServiceName: "stream-core",
//	})
//
//	log.Info("Consumer started", nil, map[string]interface{}{
//		"topics":   []string{"user-registration"},
//		"group_id": "stream-core-group",
//	})
//
//	if err := doWork(); err != nil {
//		log.Error("Work failed", err, nil)
//	}
//
// With trace correlation:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         logger.Info,
//		ServiceName:   "stream-core",
//		EnableTracing: true,
//	})
//
//	// Entries carry trace_id/span_id fields when ctx holds an active span.
//	log.InfoWithContext(ctx, "Message dispatched", nil, nil)
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		fx.Provide(func() logger.Config {
//			return logger.Config{Level: logger.Info, ServiceName: "stream-core"}
//		}),
//	)
//
// The module flushes buffered log entries on application shutdown.
package logger
