package tracer

import (
	"context"
	"testing"

	"go.uber.org/fx"
)

// capturingLifecycle records appended hooks without running an fx app.
type capturingLifecycle struct {
	hooks []fx.Hook
}

func (l *capturingLifecycle) Append(h fx.Hook) { l.hooks = append(l.hooks, h) }

// mockLogger records which levels were logged.
type mockLogger struct {
	infoCalled  bool
	errorCalled bool
}

func (m *mockLogger) Info(msg string, err error, fields ...map[string]interface{}) {
	m.infoCalled = true
}
func (m *mockLogger) Debug(msg string, err error, fields ...map[string]interface{}) {}
func (m *mockLogger) Warn(msg string, err error, fields ...map[string]interface{})  {}
func (m *mockLogger) Error(msg string, err error, fields ...map[string]interface{}) {
	m.errorCalled = true
}
func (m *mockLogger) Fatal(msg string, err error, fields ...map[string]interface{}) {}

// TestTracerLifecycleStopHook verifies the stop hook logs through the
// tracer's structured logger and shuts the tracer down.
func TestTracerLifecycleStopHook(t *testing.T) {
	lc := &capturingLifecycle{}
	log := &mockLogger{}

	// No provider configured: Shutdown is a no-op, the hook must still run.
	RegisterTracerLifecycle(lc, &Tracer{logger: log})

	if len(lc.hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(lc.hooks))
	}
	if err := lc.hooks[0].OnStop(context.Background()); err != nil {
		t.Fatalf("unexpected OnStop error: %v", err)
	}
	if !log.infoCalled {
		t.Error("expected shutdown to log through the structured logger")
	}
}

// TestTracerLifecycleStopWithoutLogger verifies the stop hook tolerates a
// tracer built without a logger.
func TestTracerLifecycleStopWithoutLogger(t *testing.T) {
	lc := &capturingLifecycle{}

	RegisterTracerLifecycle(lc, &Tracer{})

	if len(lc.hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(lc.hooks))
	}
	if err := lc.hooks[0].OnStop(context.Background()); err != nil {
		t.Fatalf("unexpected OnStop error: %v", err)
	}
}
