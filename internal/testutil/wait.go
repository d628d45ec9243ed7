package testutil

import (
	"testing"
	"time"
)

// WaitFor consumes values from an observable subscription channel until one
// satisfies the predicate, failing the test after the timeout. It returns the
// matching value.
func WaitFor[T any](t *testing.T, ch <-chan T, timeout time.Duration, pred func(T) bool) T {
	t.Helper()

	deadline := time.After(timeout)
	for {
		select {
		case v, ok := <-ch:
			if !ok {
				t.Fatalf("subscription closed before a matching value was observed")
			}
			if pred(v) {
				return v
			}
		case <-deadline:
			var zero T
			t.Fatalf("timed out after %v waiting for a matching value", timeout)
			return zero
		}
	}
}
