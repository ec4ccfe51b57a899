package notify

import (
	"context"
	"log/slog"
	"sort"
)

// LogNotifier writes events to a slog logger. Events log at info level unless
// their severity is warning or error.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier writing to logger. A nil logger means
// whatever slog.Default is when the event arrives.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	logger := n.logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{
		slog.String("event", string(event.Type)),
		slog.String("run_id", event.RunID),
		slog.String("workflow", event.Workflow),
	}
	if event.Step != "" {
		attrs = append(attrs, slog.String("step", event.Step))
	}
	if len(event.Metadata) > 0 {
		keys := make([]string, 0, len(event.Metadata))
		for k := range event.Metadata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		meta := make([]any, 0, len(keys))
		for _, k := range keys {
			meta = append(meta, slog.Any(k, event.Metadata[k]))
		}
		attrs = append(attrs, slog.Group("metadata", meta...))
	}

	logger.LogAttrs(ctx, severityLevel(event.Severity), event.Message, attrs...)
	return nil
}

func severityLevel(severity string) slog.Level {
	switch severity {
	case SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
