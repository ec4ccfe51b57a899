// Package notify announces the outcome of real workflow runs.
//
// Dry runs never notify. Delivery failures are logged and never fail a
// workflow.
//
// Implementations:
//   - SlackNotifier: Posts to a Slack incoming webhook
//   - WebhookNotifier: Posts the Event as JSON to any URL
//   - LogNotifier: Logs events with slog
//   - MultiNotifier: Fans out to several notifiers
//   - NopNotifier: Discards events
//
// Example usage:
//
//	notifier := notify.NewSlackNotifier(webhookURL,
//	    notify.WithSlackChannel("#releases"),
//	)
//	err := notifier.Notify(ctx, notify.Event{
//	    Type:    notify.EventReleaseCreated,
//	    Message: "Released v1.2.0",
//	})
package notify
