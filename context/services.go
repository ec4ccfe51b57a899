package context

import (
	"context"
	"io"

	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/issue"
	"github.com/randalmurphal/releaseflow/notify"
	"github.com/randalmurphal/releaseflow/prompt"
)

// Services wraps all releaseflow services for convenient injection
type Services struct {
	Dir         string            // Directory inside the repository
	Runner      git.CommandRunner // Optional command runner (defaults to ExecRunner)
	Jira        issue.Tracker
	GitHub      issue.Tracker
	GitLab      issue.Tracker
	Selector    prompt.Selector
	Releaser    forge.Releaser
	Notifier    notify.Notifier
	Out         io.Writer
	PackageName string
}

// InjectAll adds all configured services to the context
func (s *Services) InjectAll(ctx context.Context) context.Context {
	if s.Dir != "" {
		ctx = WithDir(ctx, s.Dir)
	}
	if s.Runner != nil {
		ctx = WithRunner(ctx, s.Runner)
	}
	if s.Jira != nil {
		ctx = WithTracker(ctx, TrackerJira, s.Jira)
	}
	if s.GitHub != nil {
		ctx = WithTracker(ctx, TrackerGitHub, s.GitHub)
	}
	if s.GitLab != nil {
		ctx = WithTracker(ctx, TrackerGitLab, s.GitLab)
	}
	if s.Selector != nil {
		ctx = WithSelector(ctx, s.Selector)
	}
	if s.Releaser != nil {
		ctx = WithReleaser(ctx, s.Releaser)
	}
	if s.Notifier != nil {
		ctx = notify.WithNotifier(ctx, s.Notifier)
	}
	if s.Out != nil {
		ctx = WithOutput(ctx, s.Out)
	}
	if s.PackageName != "" {
		ctx = WithPackageName(ctx, s.PackageName)
	}
	return ctx
}
