package schema_registry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fluxfeed/streaming/v1/observability"
)

// TestObserver is a mock observer for testing
type TestObserver struct {
	mu         sync.Mutex
	operations []observability.OperationContext
}

func (t *TestObserver) ObserveOperation(ctx observability.OperationContext) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.operations = append(t.operations, ctx)
}

func (t *TestObserver) GetOperations() []observability.OperationContext {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]observability.OperationContext{}, t.operations...)
}

// TestObserverHelperMethod tests the observeOperation helper method
func TestObserverHelperMethod(t *testing.T) {
	testObserver := &TestObserver{}

	serializer := NewSerializer(newFakeRegistry(), SerializerConfig{}).
		WithObserver(testObserver)

	serializer.observeOperation("encode", "UserRegistration-value", Namespace+".UserRegistration", 100*time.Millisecond, nil, 1024)

	ops := testObserver.GetOperations()
	if len(ops) != 1 {
		t.Fatalf("Expected 1 operation, got %d", len(ops))
	}

	op := ops[0]
	if op.Component != "schemaregistry" {
		t.Errorf("Expected component 'schemaregistry', got %s", op.Component)
	}
	if op.Operation != "encode" {
		t.Errorf("Expected operation 'encode', got %s", op.Operation)
	}
	if op.Resource != "UserRegistration-value" {
		t.Errorf("Expected resource 'UserRegistration-value', got %s", op.Resource)
	}
	if op.SubResource != Namespace+".UserRegistration" {
		t.Errorf("Expected subResource '%s.UserRegistration', got %s", Namespace, op.SubResource)
	}
	if op.Size != 1024 {
		t.Errorf("Expected size 1024, got %d", op.Size)
	}
}

// TestObserverNilObserver tests that operations work without an observer
func TestObserverNilObserver(t *testing.T) {
	serializer := NewSerializer(newFakeRegistry(), SerializerConfig{})

	// Should not panic
	serializer.observeOperation("decode", "17", "", 100*time.Millisecond, nil, 512)
}

// MockLogger for testing
type MockLogger struct {
	InfoCalled  bool
	WarnCalled  bool
	ErrorCalled bool
}

func (m *MockLogger) InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	m.InfoCalled = true
}

func (m *MockLogger) WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	m.WarnCalled = true
}

func (m *MockLogger) ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	m.ErrorCalled = true
}

// TestBuilderChaining tests chaining WithObserver and WithLogger
func TestBuilderChaining(t *testing.T) {
	testObserver := &TestObserver{}
	mockLogger := &MockLogger{}

	serializer := NewSerializer(newFakeRegistry(), SerializerConfig{})

	result := serializer.
		WithObserver(testObserver).
		WithLogger(mockLogger)

	if result != serializer {
		t.Error("builder methods should return the same serializer instance for chaining")
	}
	if serializer.observer != testObserver {
		t.Error("Observer was not attached")
	}
	if serializer.logger != mockLogger {
		t.Error("Logger was not attached")
	}
}

// TestLoggerOnResolution tests that a successful resolution logs
func TestLoggerOnResolution(t *testing.T) {
	registry := newFakeRegistry()
	registry.addSchema(Subject("SensorData"), 3, 1, SensorDataSchema)

	mockLogger := &MockLogger{}
	serializer := NewSerializer(registry, SerializerConfig{}).WithLogger(mockLogger)

	_, err := serializer.Encode(context.Background(), Subject("SensorData"),
		SensorData{SensorID: "s1", Value: 1, Unit: "C", RecordedAt: 1})
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}

	if !mockLogger.InfoCalled {
		t.Error("Expected logger.InfoWithContext to be called on schema resolution")
	}
}
