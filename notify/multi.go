package notify

import (
	"context"
	"errors"
	"fmt"
)

// MultiNotifier delivers each event to every configured destination in order.
type MultiNotifier struct {
	notifiers []Notifier
}

// NewMultiNotifier returns a fan-out notifier. Nil entries are skipped.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	m := &MultiNotifier{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// Notify implements Notifier. A failing destination does not stop the
// others; all failures are joined into the returned error.
func (m *MultiNotifier) Notify(ctx context.Context, event Event) error {
	var errs []error
	for i, n := range m.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d: %w", i+1, err))
		}
	}
	return errors.Join(errs...)
}

// NopNotifier drops every event.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, Event) error { return nil }
