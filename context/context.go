package context

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/issue"
	"github.com/randalmurphal/releaseflow/prompt"
)

// These helpers carry releaseflow services in a context.Context so workflow
// steps running as flowgraph nodes can reach them.

// serviceContextKey is a private type for context keys to avoid collisions
type serviceContextKey string

// Context keys for releaseflow services
const (
	runnerServiceKey   serviceContextKey = "releaseflow.runner"
	dirServiceKey      serviceContextKey = "releaseflow.dir"
	selectorServiceKey serviceContextKey = "releaseflow.selector"
	releaserServiceKey serviceContextKey = "releaseflow.releaser"
	outputServiceKey   serviceContextKey = "releaseflow.output"
	packageServiceKey  serviceContextKey = "releaseflow.package"
)

// TrackerKind names an issue tracker a workflow step can talk to.
type TrackerKind string

// Tracker kinds.
const (
	TrackerJira   TrackerKind = "jira"
	TrackerGitHub TrackerKind = "github"
	TrackerGitLab TrackerKind = "gitlab"
)

// trackerServiceKey is distinct per kind.
func trackerServiceKey(kind TrackerKind) serviceContextKey {
	return serviceContextKey("releaseflow.tracker." + string(kind))
}

// WithRunner adds a command runner to the context.
// Git operations and Command steps run through it.
func WithRunner(ctx context.Context, runner git.CommandRunner) context.Context {
	return context.WithValue(ctx, runnerServiceKey, runner)
}

// Runner extracts command runner from context.
// Returns nil if not set - callers should fall back to ExecRunner.
func Runner(ctx context.Context) git.CommandRunner {
	if runner, ok := ctx.Value(runnerServiceKey).(git.CommandRunner); ok {
		return runner
	}
	return nil
}

// GetRunner returns the command runner from context, or a default ExecRunner.
func GetRunner(ctx context.Context) git.CommandRunner {
	if runner := Runner(ctx); runner != nil {
		return runner
	}
	return git.NewExecRunner()
}

// WithDir sets the directory steps operate in.
func WithDir(ctx context.Context, dir string) context.Context {
	return context.WithValue(ctx, dirServiceKey, dir)
}

// Dir returns the working directory for steps, "." when unset.
func Dir(ctx context.Context) string {
	if dir, ok := ctx.Value(dirServiceKey).(string); ok && dir != "" {
		return dir
	}
	return "."
}

// OpenRepo opens the repository containing Dir(ctx) with the context's
// runner. A fresh git.Context is returned on every call.
func OpenRepo(ctx context.Context) (*git.Context, error) {
	return git.NewContext(Dir(ctx), git.WithRunner(GetRunner(ctx)))
}

// WithTracker adds the issue tracker for kind.
func WithTracker(ctx context.Context, kind TrackerKind, tracker issue.Tracker) context.Context {
	return context.WithValue(ctx, trackerServiceKey(kind), tracker)
}

// Tracker returns the issue tracker for kind, or an error wrapping
// issue.ErrNotConfigured.
func Tracker(ctx context.Context, kind TrackerKind) (issue.Tracker, error) {
	if tracker, ok := ctx.Value(trackerServiceKey(kind)).(issue.Tracker); ok && tracker != nil {
		return tracker, nil
	}
	return nil, fmt.Errorf("%s: %w", kind, issue.ErrNotConfigured)
}

// WithSelector adds the prompt used to ask the user for choices.
func WithSelector(ctx context.Context, sel prompt.Selector) context.Context {
	return context.WithValue(ctx, selectorServiceKey, sel)
}

// Selector returns the selector from context, or a terminal prompt.
func Selector(ctx context.Context) prompt.Selector {
	if sel, ok := ctx.Value(selectorServiceKey).(prompt.Selector); ok && sel != nil {
		return sel
	}
	return prompt.NewTerminal()
}

// WithReleaser adds the release publisher.
func WithReleaser(ctx context.Context, r forge.Releaser) context.Context {
	return context.WithValue(ctx, releaserServiceKey, r)
}

// Releaser returns the release publisher, or forge.ErrNoReleaser.
func Releaser(ctx context.Context) (forge.Releaser, error) {
	if r, ok := ctx.Value(releaserServiceKey).(forge.Releaser); ok && r != nil {
		return r, nil
	}
	return nil, forge.ErrNoReleaser
}

// WithOutput sets where step output (command output, dry-run lines) goes.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputServiceKey, w)
}

// Output returns the output writer, os.Stdout when unset.
func Output(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputServiceKey).(io.Writer); ok && w != nil {
		return w
	}
	return os.Stdout
}

// WithPackageName sets the package name used in release tags.
func WithPackageName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, packageServiceKey, name)
}

// PackageName returns the package name, "" for single-package projects.
func PackageName(ctx context.Context) string {
	name, _ := ctx.Value(packageServiceKey).(string)
	return name
}
