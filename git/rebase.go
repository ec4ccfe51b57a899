package git

import "log/slog"

// Rebase replays the current branch onto the local branch onto.
//
// HEAD must resolve to a commit and onto must exist as a local branch
// (ErrBranchNotFound otherwise). If git reports a failure the in-progress
// rebase is aborted so the repository returns to its previous state, and the
// rebase error is returned.
func (g *Context) Rebase(onto string) error {
	if _, err := g.HeadCommit(); err != nil {
		return err
	}
	if !g.BranchExists(onto) {
		return ErrBranchNotFound
	}

	if _, err := g.runGit("rebase", onto); err != nil {
		if _, abortErr := g.runGit("rebase", "--abort"); abortErr != nil {
			slog.Warn("failed to abort rebase", "onto", onto, "error", abortErr)
		}
		return &Error{Op: "rebase", Cmd: "git rebase " + onto, Output: commandOutput(err), Err: err}
	}
	return nil
}
