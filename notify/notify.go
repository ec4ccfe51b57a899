package notify

import (
	"context"
	"net/http"
	"time"

	rfhttp "github.com/randalmurphal/releaseflow/http"
)

// EventType represents the type of workflow event.
type EventType string

// Event type constants.
const (
	EventRunCompleted   EventType = "run_completed"
	EventRunFailed      EventType = "run_failed"
	EventReleaseCreated EventType = "release_created"
)

// Severity constants.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Event describes a workflow event for notification.
type Event struct {
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id"`
	Workflow  string         `json:"workflow"`
	Step      string         `json:"step,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Notifier sends notifications about workflow events.
type Notifier interface {
	// Notify sends a notification. Callers treat a failure as non-fatal.
	Notify(ctx context.Context, event Event) error
}

// Option configures the HTTP client of a remote notifier.
type Option func(*rfhttp.ClientConfig)

// WithRetryWait sets the initial wait between delivery retries.
func WithRetryWait(d time.Duration) Option {
	return func(c *rfhttp.ClientConfig) { c.RetryWait = d }
}

// WithMaxRetries sets how many times a failed delivery is retried.
func WithMaxRetries(n int) Option {
	return func(c *rfhttp.ClientConfig) { c.MaxRetries = n }
}

func newClient(url, service string, beforeRequest func(*http.Request), opts []Option) *rfhttp.Client {
	cfg := rfhttp.ClientConfig{
		Client:        &http.Client{Timeout: 10 * time.Second},
		BaseURL:       url,
		ServiceName:   service,
		BeforeRequest: beforeRequest,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return rfhttp.NewClient(cfg)
}

type serviceContextKey string

const notifierServiceKey serviceContextKey = "releaseflow.notifier"

// WithNotifier adds a Notifier to the context.
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, notifierServiceKey, n)
}

// NotifierFromContext extracts the Notifier from context.
// Returns NopNotifier if none is configured.
func NotifierFromContext(ctx context.Context) Notifier {
	if n, ok := ctx.Value(notifierServiceKey).(Notifier); ok {
		return n
	}
	return NopNotifier{}
}
