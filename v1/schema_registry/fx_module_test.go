package schema_registry

import (
	"context"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fluxfeed/streaming/v1/logger"
)

// capturingLifecycle records appended hooks without running an fx app.
type capturingLifecycle struct {
	hooks []fx.Hook
}

func (l *capturingLifecycle) Append(h fx.Hook) { l.hooks = append(l.hooks, h) }

// TestLifecycleHooksUseInjectedLogger verifies the start and stop hooks log
// through the structured logger when one is in the container.
func TestLifecycleHooksUseInjectedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	lc := &capturingLifecycle{}

	RegisterSchemaRegistryLifecycle(SchemaRegistryLifecycleParams{
		Lifecycle: lc,
		Registry:  newFakeRegistry(),
		Logger:    &logger.Logger{Zap: zap.New(core)},
	})

	if len(lc.hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(lc.hooks))
	}
	if err := lc.hooks[0].OnStart(context.Background()); err != nil {
		t.Fatalf("unexpected OnStart error: %v", err)
	}
	if err := lc.hooks[0].OnStop(context.Background()); err != nil {
		t.Fatalf("unexpected OnStop error: %v", err)
	}

	if got := len(logs.All()); got != 2 {
		t.Fatalf("expected 2 log entries from the hooks, got %d", got)
	}
}

// TestLifecycleHooksWithoutLogger verifies the hooks run cleanly when no
// logger is in the container.
func TestLifecycleHooksWithoutLogger(t *testing.T) {
	lc := &capturingLifecycle{}

	RegisterSchemaRegistryLifecycle(SchemaRegistryLifecycleParams{
		Lifecycle: lc,
		Registry:  newFakeRegistry(),
	})

	if len(lc.hooks) != 1 {
		t.Fatalf("expected 1 hook, got %d", len(lc.hooks))
	}
	if err := lc.hooks[0].OnStart(context.Background()); err != nil {
		t.Fatalf("unexpected OnStart error: %v", err)
	}
	if err := lc.hooks[0].OnStop(context.Background()); err != nil {
		t.Fatalf("unexpected OnStop error: %v", err)
	}
}
