package workflow

import (
	"context"
	"fmt"
	"log/slog"

	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/git"
)

// SelectIssueFromBranch selects the issue named by the current branch.
type SelectIssueFromBranch struct{}

// Name implements Step.
func (s *SelectIssueFromBranch) Name() string { return "SelectIssueFromBranch" }

// Run implements Step.
func (s *SelectIssueFromBranch) Run(ctx context.Context, rt RunType) (RunType, error) {
	state := rt.State()
	if rt.Simulating() {
		if err := rt.Describe("Would attempt to parse current branch name to select current issue"); err != nil {
			return rt, err
		}
		return rt.WithState(state.WithIssue(placeholderIssue)), nil
	}

	repo, err := rfcontext.OpenRepo(ctx)
	if err != nil {
		return rt, err
	}
	branch, err := repo.CurrentBranch()
	if err != nil {
		return rt, err
	}
	selected, err := git.IssueFromBranchName(branch)
	if err != nil {
		return rt, fmt.Errorf("%q: %w", branch, err)
	}

	slog.Debug("selected issue from branch", "branch", branch, "issue", selected.Key)
	return rt.WithState(state.WithIssue(selected)), nil
}

// SwitchBranches switches to the branch named after the selected issue,
// creating it from a base branch the user picks when it does not exist.
type SwitchBranches struct{}

// Name implements Step.
func (s *SwitchBranches) Name() string { return "SwitchBranches" }

// Run implements Step.
func (s *SwitchBranches) Run(ctx context.Context, rt RunType) (RunType, error) {
	selected, err := rt.State().RequireIssue()
	if err != nil {
		return rt, err
	}
	branch := git.BranchNameFromIssue(selected)

	if rt.Simulating() {
		return rt, rt.Describe("Would switch to or create a branch named %s", branch)
	}

	repo, err := rfcontext.OpenRepo(ctx)
	if err != nil {
		return rt, err
	}
	out := rfcontext.Output(ctx)

	if repo.BranchExists(branch) {
		fmt.Fprintf(out, "Found existing branch named %s, switching to it.\n", branch)
		return rt, repo.SwitchTo(branch)
	}

	// Refuse before prompting or creating anything.
	clean, err := repo.IsClean()
	if err != nil {
		return rt, err
	}
	if !clean {
		return rt, git.ErrUncommittedChanges
	}

	branches, err := repo.LocalBranches()
	if err != nil {
		return rt, err
	}
	fmt.Fprintf(out, "Creating a new branch called %s\n", branch)
	base, err := rfcontext.Selector(ctx).Select("Which branch do you want to base off of?", branches)
	if err != nil {
		return rt, err
	}
	if err := repo.CreateBranch(branch, base); err != nil {
		return rt, err
	}
	return rt, repo.SwitchTo(branch)
}

// RebaseBranch rebases the current branch onto To, then switches to To.
type RebaseBranch struct {
	To string
}

// Name implements Step.
func (s *RebaseBranch) Name() string { return "RebaseBranch" }

// Run implements Step.
func (s *RebaseBranch) Run(ctx context.Context, rt RunType) (RunType, error) {
	if rt.Simulating() {
		return rt, rt.Describe("Would rebase current branch onto %s", s.To)
	}

	repo, err := rfcontext.OpenRepo(ctx)
	if err != nil {
		return rt, err
	}
	if err := repo.Rebase(s.To); err != nil {
		return rt, err
	}
	out := rfcontext.Output(ctx)
	fmt.Fprintf(out, "Rebased current branch onto %s\n", s.To)

	if err := repo.SwitchTo(s.To); err != nil {
		return rt, err
	}
	fmt.Fprintf(out, "Switched to branch %s, don't forget to push!\n", s.To)
	return rt, nil
}
