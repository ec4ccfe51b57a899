package testutil

import (
	"context"
	"testing"
	"time"
)

// deadlineMargin is how long before the test binary's -timeout the context
// returned by TestContext expires.
const deadlineMargin = time.Second

// TestContext returns a context that ends with the test. When the binary runs
// with a -timeout it also expires deadlineMargin before that deadline, so
// blocked HTTP calls fail inside the test.
func TestContext(t *testing.T) context.Context {
	t.Helper()

	deadline, ok := t.Deadline()
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		return ctx
	}
	ctx, cancel := context.WithDeadline(context.Background(), deadline.Add(-deadlineMargin))
	t.Cleanup(cancel)
	return ctx
}
