package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/releaseflow/notify"
)

// announce sends event for a real run. Dry runs stay silent, and a delivery
// failure is only logged.
func announce(ctx context.Context, rt RunType, event notify.Event) {
	if rt.Simulating() {
		return
	}
	state := rt.State()
	event.RunID = state.RunID
	event.Workflow = state.Workflow
	if event.Severity == "" {
		event.Severity = notify.SeverityInfo
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := notify.NotifierFromContext(ctx).Notify(ctx, event); err != nil {
		slog.Warn("failed to send notification", "type", event.Type, "error", err)
	}
}
