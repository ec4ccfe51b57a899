package issue

import (
	"context"
	"errors"
	"fmt"
)

// Tracker errors.
var (
	// ErrNotConfigured indicates the tracker a step needs has no configuration.
	ErrNotConfigured = errors.New("issue tracker is not configured")

	// ErrInvalidTransition indicates the requested status is not reachable for the issue.
	ErrInvalidTransition = errors.New("transition not found for issue")
)

// Query filters issues in a Search call. Trackers use the fields they understand:
// Jira filters by Status, GitHub and GitLab by Labels.
type Query struct {
	Status string
	Labels []string
}

// Tracker is the interface every issue tracker adapter implements.
type Tracker interface {
	// Name identifies the tracker in logs and dry-run output ("Jira", "GitHub", ...).
	Name() string

	// Search returns issues matching the query.
	Search(ctx context.Context, q Query) ([]Issue, error)

	// Transition moves the issue identified by key to status.
	Transition(ctx context.Context, key, status string) error
}

// RemoteError wraps a failure talking to a tracker's API.
type RemoteError struct {
	Tracker string // Tracker name
	Op      string // Operation that failed (e.g., "search", "transition")
	Err     error  // Underlying error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Tracker, e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
