package git

import (
	"errors"
	"fmt"
)

// Git operation errors.
var (
	// ErrNotGitRepo indicates the path is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrNotOnBranch indicates HEAD is detached or cannot be resolved to a branch.
	ErrNotOnBranch = errors.New("not on the tip of a git branch")

	// ErrBadBranchName indicates a branch name does not follow the issue naming convention.
	ErrBadBranchName = errors.New("bad branch name")

	// ErrUncommittedChanges indicates the working tree has changes that are not ignored.
	ErrUncommittedChanges = errors.New("uncommitted changes")

	// ErrBranchExists indicates the branch already exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound indicates the branch does not exist.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrNoRemote indicates the repository has no configured remotes.
	ErrNoRemote = errors.New("no git remote configured")

	// ErrNothingToStage indicates AddFiles was called without paths.
	ErrNothingToStage = errors.New("nothing to stage")
)

// Error wraps a git command error with context.
type Error struct {
	Op     string // Operation that failed (e.g., "rebase", "list branches")
	Cmd    string // Git command that was run
	Output string // Combined stdout/stderr output
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IncompleteCheckoutError reports a switch where HEAD was moved but the
// working tree could not be updated to match. The repository needs manual
// attention: HEAD points at Branch while the files may not.
type IncompleteCheckoutError struct {
	Branch string
	Err    error
}

func (e *IncompleteCheckoutError) Error() string {
	return fmt.Sprintf("could not complete checkout of %s: %v", e.Branch, e.Err)
}

func (e *IncompleteCheckoutError) Unwrap() error {
	return e.Err
}

// MissingAncestorError reports a history walk that reached a commit whose
// parent is not available locally, usually because the clone is shallow.
type MissingAncestorError struct {
	Commit string // Commit whose ancestry could not be followed
	Err    error
}

func (e *MissingAncestorError) Error() string {
	msg := "commit history is incomplete"
	if e.Commit != "" {
		msg += " at " + e.Commit
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MissingAncestorError) Unwrap() error {
	return e.Err
}
