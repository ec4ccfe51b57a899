package workflow

import (
	"context"
	"fmt"

	"github.com/randalmurphal/releaseflow/config"
	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/version"
)

// Step is one action of a workflow.
//
// Run receives the run and returns it, possibly with updated state. A step
// must return the same mode it was given.
type Step interface {
	Name() string
	Run(ctx context.Context, rt RunType) (RunType, error)
}

// FromConfig builds the step described by sc.
func FromConfig(sc config.StepConfig) (Step, error) {
	switch sc.Type {
	case config.StepSelectJiraIssue:
		return &SelectIssue{Tracker: rfcontext.TrackerJira, Status: sc.Status}, nil
	case config.StepTransitionJiraIssue:
		return &TransitionIssue{Tracker: rfcontext.TrackerJira, Status: sc.Status}, nil
	case config.StepSelectGitHubIssue:
		return &SelectIssue{Tracker: rfcontext.TrackerGitHub, Labels: sc.Labels}, nil
	case config.StepTransitionGitHubIssue:
		return &TransitionIssue{Tracker: rfcontext.TrackerGitHub, Status: sc.Status}, nil
	case config.StepSelectGitLabIssue:
		return &SelectIssue{Tracker: rfcontext.TrackerGitLab, Labels: sc.Labels}, nil
	case config.StepTransitionGitLabIssue:
		return &TransitionIssue{Tracker: rfcontext.TrackerGitLab, Status: sc.Status}, nil
	case config.StepSelectIssueFromBranch:
		return &SelectIssueFromBranch{}, nil
	case config.StepSwitchBranches:
		return &SwitchBranches{}, nil
	case config.StepRebaseBranch:
		return &RebaseBranch{To: sc.To}, nil
	case config.StepBumpVersion:
		return &BumpVersion{Rule: version.Rule(sc.Rule), Label: sc.Label}, nil
	case config.StepCommand:
		return &Command{Command: sc.Command, Variables: sc.Variables}, nil
	case config.StepPrepareRelease:
		return &PrepareRelease{ChangelogPath: sc.ChangelogPath, PrereleaseLabel: sc.PrereleaseLabel}, nil
	case config.StepRelease:
		return &Release{}, nil
	}
	return nil, &config.UnknownStepError{Type: sc.Type}
}

// FromWorkflow builds every step of a workflow, in order.
func FromWorkflow(name string, steps []config.StepConfig) ([]Step, error) {
	out := make([]Step, 0, len(steps))
	for i, sc := range steps {
		step, err := FromConfig(sc)
		if err != nil {
			return nil, fmt.Errorf("workflow %s step %d: %w", name, i+1, err)
		}
		out = append(out, step)
	}
	return out, nil
}
