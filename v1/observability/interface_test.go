package observability

import (
	"errors"
	"testing"
	"time"
)

// TestObserverFunc verifies the function adapter forwards the operation
// context unchanged.
func TestObserverFunc(t *testing.T) {
	var got OperationContext
	var observer Observer = ObserverFunc(func(ctx OperationContext) {
		got = ctx
	})

	want := OperationContext{
		Component: "kafka",
		Operation: "produce",
		Resource:  "orders",
		Duration:  42 * time.Millisecond,
		Error:     errors.New("boom"),
		Size:      128,
	}
	observer.ObserveOperation(want)

	if got.Component != want.Component || got.Operation != want.Operation {
		t.Errorf("observer received %+v, want %+v", got, want)
	}
	if got.Size != want.Size || got.Duration != want.Duration {
		t.Errorf("observer received %+v, want %+v", got, want)
	}
	if got.Error == nil {
		t.Error("observer dropped the error")
	}
}

// TestNoopObserver verifies the discarding sink satisfies the interface and
// does not panic.
func TestNoopObserver(t *testing.T) {
	var observer Observer = NoopObserver{}
	observer.ObserveOperation(OperationContext{Component: "schemaregistry", Operation: "encode"})
}
