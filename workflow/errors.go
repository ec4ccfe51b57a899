package workflow

import "fmt"

// Workflow errors. Each carries advice shown to the user.
var (
	// ErrNoIssueSelected indicates a step needs an issue but none was selected.
	ErrNoIssueSelected error = &guidedError{
		msg: "no issue selected",
		suggestion: "You must call SelectJiraIssue, SelectGitHubIssue, SelectGitLabIssue or " +
			"SelectIssueFromBranch before calling this step.",
	}

	// ErrReleaseNotPrepared indicates Release ran before PrepareRelease.
	ErrReleaseNotPrepared error = &guidedError{
		msg:        "PrepareRelease needs to occur before this step",
		suggestion: "You must call the PrepareRelease step before this one.",
	}

	// ErrNothingToRelease indicates no commit since the last release implies
	// a version change.
	ErrNothingToRelease error = &guidedError{
		msg: "no releasable changes since the last release",
		suggestion: "PrepareRelease needs at least one `feat`, `fix` or breaking change " +
			"Conventional Commit since the last stable tag.",
	}
)

type guidedError struct {
	msg        string
	suggestion string
}

func (e *guidedError) Error() string      { return e.msg }
func (e *guidedError) Suggestion() string { return e.suggestion }

// StepFailedError reports the step that halted a workflow.
type StepFailedError struct {
	Index int    // 1-based position in the workflow
	Step  string // Step type
	Err   error

	run RunType // The run as it was before the step
}

func (e *StepFailedError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Step, e.Err)
}

func (e *StepFailedError) Unwrap() error {
	return e.Err
}
