package git

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Context manages git operations for a repository.
//
// A Context is cheap to open and is meant to be created for a single
// operation. Nothing in the package keeps one alive between workflow steps.
type Context struct {
	repoPath string        // Top level of the working tree
	workDir  string        // Directory commands run in (defaults to repoPath)
	runner   CommandRunner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// NewContext discovers the repository containing dir and returns a context
// rooted at its top level. Returns ErrNotGitRepo if dir is not inside a
// working tree.
func NewContext(dir string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		workDir: absPath,
		runner:  NewExecRunner(),
	}
	for _, opt := range opts {
		opt(g)
	}

	top, err := g.runGit("rev-parse", "--show-toplevel")
	if err != nil || top == "" {
		return nil, ErrNotGitRepo
	}
	g.repoPath = top
	g.workDir = top

	return g, nil
}

// RepoPath returns the top level of the working tree.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// CurrentBranch returns the short name of the branch HEAD points at.
// Returns ErrNotOnBranch when HEAD is detached.
func (g *Context) CurrentBranch() (string, error) {
	branch, err := g.runGit("symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil || branch == "" {
		return "", ErrNotOnBranch
	}
	return branch, nil
}

// HeadCommit returns the current HEAD commit SHA.
func (g *Context) HeadCommit() (string, error) {
	sha, err := g.runGit("rev-parse", "--verify", "HEAD")
	if err != nil {
		return "", &Error{Op: "resolve HEAD", Cmd: "git rev-parse --verify HEAD", Err: err}
	}
	return sha, nil
}

// BranchExists reports whether a local branch with the given name exists.
func (g *Context) BranchExists(name string) bool {
	_, err := g.runGit("show-ref", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// LocalBranches lists the short names of all local branches.
// Remote-tracking branches are not included.
func (g *Context) LocalBranches() ([]string, error) {
	out, err := g.runGit("for-each-ref", "--format=%(refname:short)", "refs/heads/")
	if err != nil {
		return nil, &Error{Op: "list branches", Cmd: "git for-each-ref refs/heads/", Err: err}
	}
	return splitLines(out), nil
}

// CreateBranch creates a local branch pointing at the tip of base.
func (g *Context) CreateBranch(name, base string) error {
	if _, err := g.runGit("branch", name, base); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrBranchExists
		}
		return &Error{Op: "create branch", Cmd: "git branch " + name + " " + base, Err: err}
	}
	return nil
}

// AddFiles stages the given paths, relative to the repository root.
func (g *Context) AddFiles(paths ...string) error {
	if len(paths) == 0 {
		return ErrNothingToStage
	}
	args := append([]string{"add", "--"}, paths...)
	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "stage files", Cmd: "git add", Err: err}
	}
	return nil
}

// Tags lists every tag name in the repository.
func (g *Context) Tags() ([]string, error) {
	out, err := g.runGit("tag", "--list")
	if err != nil {
		return nil, &Error{Op: "list tags", Cmd: "git tag --list", Err: err}
	}
	return splitLines(out), nil
}

// RemoteURL returns the URL of the named remote.
func (g *Context) RemoteURL(remote string) (string, error) {
	url, err := g.runGit("remote", "get-url", remote)
	if err != nil {
		return "", &Error{Op: "get remote URL", Cmd: "git remote get-url " + remote, Err: err}
	}
	return url, nil
}

// FirstRemoteURL returns the URL of the first configured remote, preferring
// "origin" when it exists. Returns ErrNoRemote if there are no remotes.
func (g *Context) FirstRemoteURL() (string, error) {
	out, err := g.runGit("remote")
	if err != nil {
		return "", &Error{Op: "list remotes", Cmd: "git remote", Err: err}
	}
	remotes := splitLines(out)
	if len(remotes) == 0 {
		return "", ErrNoRemote
	}

	name := remotes[0]
	for _, r := range remotes {
		if r == "origin" {
			name = r
			break
		}
	}
	return g.RemoteURL(name)
}

// runGit executes a git command and returns stdout.
func (g *Context) runGit(args ...string) (string, error) {
	return g.runner.Run(g.workDir, "git", args...)
}

// commandOutput extracts the captured output of a failed command, if any.
func commandOutput(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Output
	}
	return ""
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
