package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxfeed/streaming/v1/observability"
)

// TestObserverRecordsOperations verifies observed operations land in the
// counter with the right status label.
func TestObserverRecordsOperations(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test-service"})
	observer := m.Observer()

	observer.ObserveOperation(observability.OperationContext{
		Component: "kafka",
		Operation: "produce",
		Duration:  5 * time.Millisecond,
		Size:      256,
	})
	observer.ObserveOperation(observability.OperationContext{
		Component: "kafka",
		Operation: "produce",
		Duration:  5 * time.Millisecond,
		Error:     errors.New("broker unavailable"),
	})

	success := testutil.ToFloat64(m.operationsTotal.WithLabelValues("kafka", "produce", "success"))
	failure := testutil.ToFloat64(m.operationsTotal.WithLabelValues("kafka", "produce", "error"))
	assert.Equal(t, float64(1), success)
	assert.Equal(t, float64(1), failure)
}

// TestObserverSkipsZeroSize verifies the size histogram only records
// operations that carry a payload.
func TestObserverSkipsZeroSize(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test-service"})
	observer := m.Observer()

	observer.ObserveOperation(observability.OperationContext{
		Component: "schemaregistry",
		Operation: "encode",
		Size:      0,
	})
	observer.ObserveOperation(observability.OperationContext{
		Component: "schemaregistry",
		Operation: "encode",
		Size:      512,
	})

	count := testutil.CollectAndCount(m.messageBytes)
	require.Equal(t, 1, count, "only the sized operation should create a series")
}

// TestNewMetricsDefaults verifies the default listen address is applied.
func TestNewMetricsDefaults(t *testing.T) {
	m := NewMetrics(Config{ServiceName: "test-service"})
	assert.Equal(t, DefaultMetricsAddress, m.Server.Addr)
	assert.NotNil(t, m.Registry)
}
