package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/issue"
)

// placeholderIssue is selected by dry runs instead of asking a tracker or
// reading the branch.
var placeholderIssue = issue.Issue{Key: "123", Summary: "Fake Issue"}

// stepNames maps a tracker to its Select and Transition step names.
var stepNames = map[rfcontext.TrackerKind][2]string{
	rfcontext.TrackerJira:   {"SelectJiraIssue", "TransitionJiraIssue"},
	rfcontext.TrackerGitHub: {"SelectGitHubIssue", "TransitionGitHubIssue"},
	rfcontext.TrackerGitLab: {"SelectGitLabIssue", "TransitionGitLabIssue"},
}

// SelectIssue lists issues from a tracker and asks the user to pick one.
// Jira is queried by Status, GitHub and GitLab by Labels.
type SelectIssue struct {
	Tracker rfcontext.TrackerKind
	Status  string
	Labels  []string
}

// Name implements Step.
func (s *SelectIssue) Name() string { return stepNames[s.Tracker][0] }

// Run implements Step.
func (s *SelectIssue) Run(ctx context.Context, rt RunType) (RunType, error) {
	tracker, err := rfcontext.Tracker(ctx, s.Tracker)
	if err != nil {
		return rt, err
	}
	state := rt.State()

	if rt.Simulating() {
		if err := rt.Describe("Would query %s for issues %s and prompt you to select one", tracker.Name(), s.filter()); err != nil {
			return rt, err
		}
		return rt.WithState(state.WithIssue(placeholderIssue)), nil
	}

	issues, err := tracker.Search(ctx, issue.Query{Status: s.Status, Labels: s.Labels})
	if err != nil {
		return rt, err
	}
	slog.Debug("found issues", "tracker", tracker.Name(), "count", len(issues))

	choices := make([]string, len(issues))
	for i, iss := range issues {
		choices[i] = iss.String()
	}
	choice, err := rfcontext.Selector(ctx).Select("Select an issue", choices)
	if err != nil {
		return rt, err
	}
	for i, c := range choices {
		if c == choice {
			fmt.Fprintf(rfcontext.Output(ctx), "Selected issue %s\n", issues[i])
			return rt.WithState(state.WithIssue(issues[i])), nil
		}
	}
	return rt, fmt.Errorf("selected %q is not one of the issues", choice)
}

func (s *SelectIssue) filter() string {
	if s.Status != "" {
		return fmt.Sprintf("with status %q", s.Status)
	}
	if len(s.Labels) > 0 {
		return "labeled " + strings.Join(s.Labels, ", ")
	}
	return "that are open"
}

// TransitionIssue moves the selected issue to Status.
type TransitionIssue struct {
	Tracker rfcontext.TrackerKind
	Status  string
}

// Name implements Step.
func (s *TransitionIssue) Name() string { return stepNames[s.Tracker][1] }

// Run implements Step.
func (s *TransitionIssue) Run(ctx context.Context, rt RunType) (RunType, error) {
	selected, err := rt.State().RequireIssue()
	if err != nil {
		return rt, err
	}
	tracker, err := rfcontext.Tracker(ctx, s.Tracker)
	if err != nil {
		return rt, err
	}

	if rt.Simulating() {
		return rt, rt.Describe("Would transition %s issue %s to %s", tracker.Name(), selected.Key, s.Status)
	}

	if err := tracker.Transition(ctx, selected.Key, s.Status); err != nil {
		return rt, err
	}
	fmt.Fprintf(rfcontext.Output(ctx), "%s issue %s transitioned to %s\n", tracker.Name(), selected.Key, s.Status)
	return rt, nil
}
