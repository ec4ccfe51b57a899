package jira

import (
	"context"
	"errors"
	"fmt"

	"github.com/randalmurphal/releaseflow/issue"
)

// Tracker adapts Client to issue.Tracker.
type Tracker struct {
	client *Client
}

// NewTracker wraps a client.
func NewTracker(client *Client) *Tracker {
	return &Tracker{client: client}
}

// Name implements issue.Tracker.
func (t *Tracker) Name() string { return "Jira" }

// Search returns issues of the configured project in q.Status.
func (t *Tracker) Search(ctx context.Context, q issue.Query) ([]issue.Issue, error) {
	issues, err := t.client.SearchAll(ctx, SearchJQL(q.Status, t.client.Project()))
	if err != nil {
		return nil, &issue.RemoteError{Tracker: t.Name(), Op: "search", Err: err}
	}

	out := make([]issue.Issue, len(issues))
	for i, ji := range issues {
		out[i] = issue.Issue{Key: ji.Key, Summary: ji.Fields.Summary}
	}
	return out, nil
}

// Transition moves key through the transition named status.
func (t *Tracker) Transition(ctx context.Context, key, status string) error {
	err := t.client.TransitionIssueByName(ctx, key, status)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrTransitionNotFound):
		return fmt.Errorf("%w: %q on %s", issue.ErrInvalidTransition, status, key)
	default:
		return &issue.RemoteError{Tracker: t.Name(), Op: "transition", Err: err}
	}
}

// SearchJQL builds the query used to find issues by status.
func SearchJQL(status, project string) string {
	return fmt.Sprintf("status = %q AND project = %s", status, project)
}
