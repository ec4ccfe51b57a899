package forge

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	rfhttp "github.com/randalmurphal/releaseflow/http"
	"github.com/randalmurphal/releaseflow/issue"
)

const githubPageSize = 100

// GitHub implements issue.Tracker and Releaser for a GitHub repository.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHub creates a GitHub client authenticated with a personal access
// token or GitHub App token.
func NewGitHub(token, owner, repo string) (*GitHub, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub: %w", ErrTokenRequired)
	}
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("GitHub: %w: owner and repo", ErrRepoRequired)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return &GitHub{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// NewGitHubFromURL creates a GitHub client from a remote URL.
// Example: "https://github.com/acme/widgets.git"
func NewGitHubFromURL(token, remoteURL string) (*GitHub, error) {
	owner, repo, err := ParseRepoFromURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}
	return NewGitHub(token, owner, repo)
}

// Name implements issue.Tracker.
func (g *GitHub) Name() string { return "GitHub" }

// Search lists open issues carrying every label in q.Labels. Pull requests,
// which the issues API also returns, are skipped.
func (g *GitHub) Search(ctx context.Context, q issue.Query) ([]issue.Issue, error) {
	it := rfhttp.NewPageIterator(func(ctx context.Context, page int) ([]*github.Issue, bool, error) {
		opts := &github.IssueListByRepoOptions{
			State:       "open",
			Labels:      q.Labels,
			ListOptions: github.ListOptions{Page: page + 1, PerPage: githubPageSize},
		}
		issues, resp, err := g.client.Issues.ListByRepo(ctx, g.owner, g.repo, opts)
		if err != nil {
			return nil, false, err
		}
		return issues, resp.NextPage != 0, nil
	})

	all, err := it.Take(ctx, 0)
	if err != nil {
		return nil, &issue.RemoteError{Tracker: g.Name(), Op: "search", Err: err}
	}

	var out []issue.Issue
	for _, gi := range all {
		if gi.IsPullRequest() {
			continue
		}
		out = append(out, issue.Issue{Key: strconv.Itoa(gi.GetNumber()), Summary: gi.GetTitle()})
	}
	return out, nil
}

// Transition sets the issue state. GitHub only knows "open" and "closed".
func (g *GitHub) Transition(ctx context.Context, key, status string) error {
	if status != "open" && status != "closed" {
		return fmt.Errorf("%w: GitHub issues can only be open or closed, not %q", issue.ErrInvalidTransition, status)
	}
	number, err := issueNumber(g.Name(), key)
	if err != nil {
		return err
	}

	_, _, err = g.client.Issues.Edit(ctx, g.owner, g.repo, number, &github.IssueRequest{State: github.String(status)})
	if err != nil {
		return &issue.RemoteError{Tracker: g.Name(), Op: "transition", Err: err}
	}
	return nil
}

// CreateRelease implements Releaser.
func (g *GitHub) CreateRelease(ctx context.Context, r Release) (string, error) {
	rel := &github.RepositoryRelease{
		TagName:    github.String(r.Tag),
		Name:       github.String(r.name()),
		Body:       github.String(r.Body),
		Prerelease: github.Bool(r.Prerelease),
	}
	if r.Target != "" {
		rel.TargetCommitish = github.String(r.Target)
	}

	created, _, err := g.client.Repositories.CreateRelease(ctx, g.owner, g.repo, rel)
	if err != nil {
		return "", fmt.Errorf("create GitHub release %s: %w", r.Tag, err)
	}
	return created.GetHTMLURL(), nil
}
