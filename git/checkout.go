package git

import (
	"strings"
)

// StatusEntry is one line of `git status --porcelain`.
type StatusEntry struct {
	Code string // Two-letter status code, e.g. " M", "??", "!!"
	Path string
}

// Ignored reports whether the entry is only present because of ignore rules.
func (e StatusEntry) Ignored() bool {
	return e.Code == "!!"
}

// Status enumerates the working tree, including ignored paths.
func (g *Context) Status() ([]StatusEntry, error) {
	out, err := g.runGit("status", "--porcelain", "--ignored")
	if err != nil {
		return nil, &Error{Op: "status", Cmd: "git status --porcelain --ignored", Err: err}
	}

	var entries []StatusEntry
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 3 {
			continue
		}
		entries = append(entries, StatusEntry{
			Code: line[:2],
			Path: strings.TrimSpace(line[3:]),
		})
	}
	return entries, nil
}

// IsClean reports whether every status entry is ignored.
func (g *Context) IsClean() (bool, error) {
	entries, err := g.Status()
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if !e.Ignored() {
			return false, nil
		}
	}
	return true, nil
}

// SwitchTo moves HEAD to refs/heads/<branch> and force-updates the working
// tree to match.
//
// The working tree is checked first: any entry that is not ignored returns
// ErrUncommittedChanges and HEAD is left alone. If HEAD has been moved but
// the working tree update then fails, an *IncompleteCheckoutError is
// returned and HEAD stays on the new branch.
func (g *Context) SwitchTo(branch string) error {
	clean, err := g.IsClean()
	if err != nil {
		return err
	}
	if !clean {
		return ErrUncommittedChanges
	}

	ref := "refs/heads/" + branch
	if _, err := g.runGit("symbolic-ref", "HEAD", ref); err != nil {
		return &Error{Op: "set HEAD", Cmd: "git symbolic-ref HEAD " + ref, Output: commandOutput(err), Err: err}
	}

	if _, err := g.runGit("reset", "--hard", "HEAD"); err != nil {
		return &IncompleteCheckoutError{Branch: branch, Err: err}
	}
	return nil
}
