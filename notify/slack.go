package notify

import (
	"context"
	"fmt"
	"sort"

	rfhttp "github.com/randalmurphal/releaseflow/http"
)

// SlackNotifier sends notifications to a Slack incoming webhook.
type SlackNotifier struct {
	WebhookURL string
	Channel    string
	Username   string
	client     *rfhttp.Client
}

// NewSlackNotifier creates a Slack webhook notifier.
func NewSlackNotifier(webhookURL string, opts ...SlackOption) *SlackNotifier {
	n := &SlackNotifier{
		WebhookURL: webhookURL,
		Username:   "releaseflow",
	}
	var clientOpts []Option
	for _, opt := range opts {
		if opt.slack != nil {
			opt.slack(n)
		}
		if opt.client != nil {
			clientOpts = append(clientOpts, opt.client)
		}
	}
	n.client = newClient(webhookURL, "Slack", nil, clientOpts)
	return n
}

// SlackOption configures SlackNotifier.
type SlackOption struct {
	slack  func(*SlackNotifier)
	client Option
}

// WithSlackChannel sets the channel to post to.
func WithSlackChannel(channel string) SlackOption {
	return SlackOption{slack: func(n *SlackNotifier) { n.Channel = channel }}
}

// WithSlackUsername sets the bot username.
func WithSlackUsername(username string) SlackOption {
	return SlackOption{slack: func(n *SlackNotifier) { n.Username = username }}
}

// WithSlackClient applies an HTTP client option.
func WithSlackClient(opt Option) SlackOption {
	return SlackOption{client: opt}
}

// Notify implements Notifier.
func (n *SlackNotifier) Notify(ctx context.Context, event Event) error {
	footer := fmt.Sprintf("Workflow: %s | Run: %s", event.Workflow, event.RunID)
	if event.Step != "" {
		footer += " | Step: " + event.Step
	}

	payload := slackPayload{
		Username: n.Username,
		Channel:  n.Channel,
		Attachments: []slackAttachment{
			{
				Color:     n.colorForSeverity(event.Severity),
				Title:     fmt.Sprintf("%s %s", n.emojiForEvent(event), event.Type),
				Text:      event.Message,
				Footer:    footer,
				Timestamp: event.Timestamp.Unix(),
				Fields:    n.fieldsFromMetadata(event.Metadata),
			},
		},
	}

	if err := n.client.Post(ctx, "", payload, nil); err != nil {
		return fmt.Errorf("send slack message: %w", err)
	}
	return nil
}

func (n *SlackNotifier) emojiForEvent(event Event) string {
	switch event.Type {
	case EventRunCompleted:
		return ":white_check_mark:"
	case EventRunFailed:
		return ":x:"
	case EventReleaseCreated:
		return ":rocket:"
	default:
		return ":loudspeaker:"
	}
}

func (n *SlackNotifier) colorForSeverity(severity string) string {
	switch severity {
	case SeverityError:
		return "danger"
	case SeverityWarning:
		return "warning"
	default:
		return "good"
	}
}

// fieldsFromMetadata renders metadata sorted by key.
func (n *SlackNotifier) fieldsFromMetadata(metadata map[string]any) []slackField {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]slackField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, slackField{
			Title: k,
			Value: fmt.Sprintf("%v", metadata[k]),
			Short: true,
		})
	}
	return fields
}

// Slack webhook payload types
type slackPayload struct {
	Username    string            `json:"username,omitempty"`
	Channel     string            `json:"channel,omitempty"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color     string       `json:"color,omitempty"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Footer    string       `json:"footer,omitempty"`
	Timestamp int64        `json:"ts,omitempty"`
	Fields    []slackField `json:"fields,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}
