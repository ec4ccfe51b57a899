package context

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/randalmurphal/releaseflow/config"
	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/issue"
	"github.com/randalmurphal/releaseflow/jira"
	"github.com/randalmurphal/releaseflow/notify"
	"github.com/randalmurphal/releaseflow/prompt"
)

// Config configures NewServices
type Config struct {
	Project  *config.Project // Parsed project file (required)
	Dir      string          // Directory inside the repository (default: ".")
	Runner   git.CommandRunner
	Selector prompt.Selector
	Out      io.Writer

	// JiraOptions are passed to jira.NewClient.
	JiraOptions []jira.ClientOption
}

// NewServices creates Services for the tracker sections of the project.
//
// Clients are built on first use, so a workflow that never talks to a tracker
// (or a dry run, which never does) works without credentials. GitHub and
// GitLab repositories left out of the config are inferred from the first git
// remote. The releaser is GitHub when configured, else GitLab.
func NewServices(cfg Config) *Services {
	s := &Services{
		Dir:         cfg.Dir,
		Runner:      cfg.Runner,
		Selector:    cfg.Selector,
		Out:         cfg.Out,
		PackageName: cfg.Project.PackageName,
	}
	if s.Dir == "" {
		s.Dir = "."
	}

	p := cfg.Project
	if p.Jira != nil {
		jiraCfg := *p.Jira
		s.Jira = &lazyTracker{name: "Jira", lazy: newLazy(func() (issue.Tracker, error) {
			client, err := jira.NewClient(&jiraCfg, cfg.JiraOptions...)
			if err != nil {
				return nil, fmt.Errorf("Jira: %w", err)
			}
			return jira.NewTracker(client), nil
		})}
	}
	if p.GitHub != nil {
		gh := *p.GitHub
		client := &lazyForge{name: "GitHub", lazy: newLazy(func() (forgeClient, error) {
			if gh.Owner != "" && gh.Repo != "" {
				return forge.NewGitHub(gh.Token, gh.Owner, gh.Repo)
			}
			remote, err := s.remoteURL()
			if err != nil {
				return nil, err
			}
			return forge.NewGitHubFromURL(gh.Token, remote)
		})}
		s.GitHub = client
		s.Releaser = client
	}
	if p.GitLab != nil {
		gl := *p.GitLab
		client := &lazyForge{name: "GitLab", lazy: newLazy(func() (forgeClient, error) {
			if gl.Project != "" {
				return forge.NewGitLab(gl.Token, gl.URL, gl.Project)
			}
			remote, err := s.remoteURL()
			if err != nil {
				return nil, err
			}
			baseURL := gl.URL
			if baseURL == "" {
				baseURL = forge.InstanceURL(remote)
			}
			project, err := forge.ProjectPathFromURL(remote)
			if err != nil {
				return nil, err
			}
			return forge.NewGitLab(gl.Token, baseURL, project)
		})}
		s.GitLab = client
		if s.Releaser == nil {
			s.Releaser = client
		}
	}

	s.Notifier = newNotifier(p.Notify)
	return s
}

// newNotifier returns the notifier for the notify section, or nil when none
// is configured.
func newNotifier(cfg *config.NotifyConfig) notify.Notifier {
	if cfg == nil {
		return nil
	}
	var notifiers []notify.Notifier
	if cfg.Log {
		notifiers = append(notifiers, notify.NewLogNotifier(nil))
	}
	if cfg.Slack != nil && cfg.Slack.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewSlackNotifier(cfg.Slack.WebhookURL,
			notify.WithSlackChannel(cfg.Slack.Channel)))
	}
	if cfg.Webhook != nil && cfg.Webhook.URL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.Webhook.URL, cfg.Webhook.Headers))
	}
	switch len(notifiers) {
	case 0:
		return nil
	case 1:
		return notifiers[0]
	}
	return notify.NewMultiNotifier(notifiers...)
}

func (s *Services) remoteURL() (string, error) {
	runner := s.Runner
	if runner == nil {
		runner = git.NewExecRunner()
	}
	repo, err := git.NewContext(s.Dir, git.WithRunner(runner))
	if err != nil {
		return "", err
	}
	return repo.FirstRemoteURL()
}

// lazy builds a value once and caches the result, including a failure.
type lazy[T any] struct {
	once  sync.Once
	build func() (T, error)
	value T
	err   error
}

func newLazy[T any](build func() (T, error)) *lazy[T] {
	return &lazy[T]{build: build}
}

func (l *lazy[T]) get() (T, error) {
	l.once.Do(func() {
		l.value, l.err = l.build()
	})
	return l.value, l.err
}

type lazyTracker struct {
	name string
	lazy *lazy[issue.Tracker]
}

func (t *lazyTracker) Name() string { return t.name }

func (t *lazyTracker) Search(ctx context.Context, q issue.Query) ([]issue.Issue, error) {
	tr, err := t.lazy.get()
	if err != nil {
		return nil, err
	}
	return tr.Search(ctx, q)
}

func (t *lazyTracker) Transition(ctx context.Context, key, status string) error {
	tr, err := t.lazy.get()
	if err != nil {
		return err
	}
	return tr.Transition(ctx, key, status)
}

// forgeClient is a hosting platform client: *forge.GitHub or *forge.GitLab.
type forgeClient interface {
	issue.Tracker
	forge.Releaser
}

type lazyForge struct {
	name string
	lazy *lazy[forgeClient]
}

func (f *lazyForge) Name() string { return f.name }

func (f *lazyForge) Search(ctx context.Context, q issue.Query) ([]issue.Issue, error) {
	c, err := f.lazy.get()
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, q)
}

func (f *lazyForge) Transition(ctx context.Context, key, status string) error {
	c, err := f.lazy.get()
	if err != nil {
		return err
	}
	return c.Transition(ctx, key, status)
}

func (f *lazyForge) CreateRelease(ctx context.Context, r forge.Release) (string, error) {
	c, err := f.lazy.get()
	if err != nil {
		return "", err
	}
	return c.CreateRelease(ctx, r)
}
