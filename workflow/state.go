package workflow

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/randalmurphal/releaseflow/issue"
	"github.com/randalmurphal/releaseflow/version"
)

const runIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// PreparedRelease is the release computed by PrepareRelease and published
// by Release.
type PreparedRelease struct {
	Version    version.Version
	Tag        string
	Notes      string // Changelog entry body, used as release notes
	Prerelease bool
}

// State is the mutable state threaded through a workflow's steps.
// It lives only as long as one invocation of the workflow.
type State struct {
	// RunID identifies the run in logs and traces.
	RunID    string
	Workflow string

	Issue   issue.Selection
	Release *PreparedRelease

	StartTime time.Time
}

// NewState creates the initial state for a run of the named workflow.
func NewState(workflow string) State {
	return State{
		RunID:     generateRunID(workflow),
		Workflow:  workflow,
		StartTime: time.Now(),
	}
}

// WithRunID sets a custom run ID
func (s State) WithRunID(runID string) State {
	s.RunID = runID
	return s
}

// WithIssue selects i.
func (s State) WithIssue(i issue.Issue) State {
	s.Issue = issue.Selected(i)
	return s
}

// RequireIssue returns the selected issue or ErrNoIssueSelected.
func (s State) RequireIssue() (issue.Issue, error) {
	i, ok := s.Issue.Get()
	if !ok {
		return issue.Issue{}, ErrNoIssueSelected
	}
	return i, nil
}

// RequireRelease returns the prepared release or ErrReleaseNotPrepared.
func (s State) RequireRelease() (*PreparedRelease, error) {
	if s.Release == nil {
		return nil, ErrReleaseNotPrepared
	}
	return s.Release, nil
}

// Summary returns a human-readable summary of the state
func (s State) Summary() string {
	selected := "no issue"
	if i, ok := s.Issue.Get(); ok {
		selected = i.String()
	}
	release := "not prepared"
	if s.Release != nil {
		release = s.Release.Tag
	}
	return fmt.Sprintf("Run %s [%s]: %s, release %s (%s)",
		s.RunID, s.Workflow, selected, release, time.Since(s.StartTime).Round(time.Millisecond))
}

// generateRunID creates a unique run ID
func generateRunID(workflow string) string {
	timestamp := time.Now().Format("2006-01-02")
	suffix, err := nanoid.Generate(runIDAlphabet, 8)
	if err != nil {
		// Fallback to timestamp-based suffix on entropy failure
		suffix = fmt.Sprintf("%x", time.Now().UnixNano())
	}
	if workflow == "" {
		return timestamp + "-" + suffix
	}
	return fmt.Sprintf("%s-%s-%s", timestamp, workflow, suffix)
}
