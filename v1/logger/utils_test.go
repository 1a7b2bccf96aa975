package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(tracing bool) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &Logger{Zap: zap.New(core), tracingEnabled: tracing}, logs
}

// TestConvertToZapFields verifies error and field maps become structured
// fields, with later maps overriding earlier ones.
func TestConvertToZapFields(t *testing.T) {
	log, logs := newObservedLogger(false)

	log.Info("published", nil,
		map[string]interface{}{"topic": "orders", "attempt": 1},
		map[string]interface{}{"attempt": 2},
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if fields["topic"] != "orders" {
		t.Errorf("expected topic 'orders', got %v", fields["topic"])
	}
	if fields["attempt"] != int64(2) {
		t.Errorf("expected later map to override, got %v", fields["attempt"])
	}
}

// TestErrorFieldAttached verifies a non-nil error is logged as a field.
func TestErrorFieldAttached(t *testing.T) {
	log, logs := newObservedLogger(false)

	log.Error("publish failed", context.DeadlineExceeded, nil)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].ContextMap()["error"] != context.DeadlineExceeded.Error() {
		t.Errorf("expected error field, got %v", entries[0].ContextMap())
	}
}

// TestWithContextNoSpan verifies the *WithContext methods log cleanly when
// the context carries no span.
func TestWithContextNoSpan(t *testing.T) {
	log, logs := newObservedLogger(true)

	log.InfoWithContext(context.Background(), "consumer started", nil, map[string]interface{}{
		"group_id": "stream-core-group",
	})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}

	fields := entries[0].ContextMap()
	if _, ok := fields["trace_id"]; ok {
		t.Error("expected no trace_id without an active span")
	}
	if fields["group_id"] != "stream-core-group" {
		t.Errorf("expected group_id field, got %v", fields)
	}
}
