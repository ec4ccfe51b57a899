package notify

import (
	"context"
	"fmt"
	"net/http"

	rfhttp "github.com/randalmurphal/releaseflow/http"
)

// WebhookNotifier posts events as JSON to a generic HTTP webhook.
type WebhookNotifier struct {
	URL     string
	Headers map[string]string
	client  *rfhttp.Client
}

// NewWebhookNotifier creates a webhook notifier. Failed deliveries are
// retried with backoff.
func NewWebhookNotifier(url string, headers map[string]string, opts ...Option) *WebhookNotifier {
	n := &WebhookNotifier{URL: url, Headers: headers}
	n.client = newClient(url, "webhook", func(req *http.Request) {
		for k, v := range n.Headers {
			req.Header.Set(k, v)
		}
	}, opts)
	return n
}

// Notify implements Notifier.
func (n *WebhookNotifier) Notify(ctx context.Context, event Event) error {
	if err := n.client.Post(ctx, "", event, nil); err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	return nil
}
