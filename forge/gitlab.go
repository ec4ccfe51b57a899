package forge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xanzy/go-gitlab"

	rfhttp "github.com/randalmurphal/releaseflow/http"
	"github.com/randalmurphal/releaseflow/issue"
)

const gitlabPageSize = 100

// GitLab implements issue.Tracker and Releaser for a GitLab project.
type GitLab struct {
	client    *gitlab.Client
	projectID string // Numeric ID or "namespace/project"
}

// NewGitLab creates a GitLab client.
// baseURL is the instance URL (empty for gitlab.com).
// projectID can be a numeric ID or a "namespace/project" path.
func NewGitLab(token, baseURL, projectID string) (*GitLab, error) {
	if token == "" {
		return nil, fmt.Errorf("GitLab: %w", ErrTokenRequired)
	}
	if projectID == "" {
		return nil, fmt.Errorf("GitLab: %w: project", ErrRepoRequired)
	}

	var opts []gitlab.ClientOptionFunc
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}
	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &GitLab{client: client, projectID: projectID}, nil
}

// NewGitLabFromURL creates a GitLab client from a remote URL, deriving the
// instance URL for self-hosted installations.
// Example: "git@gitlab.example.com:platform/tools/widgets.git"
func NewGitLabFromURL(token, remoteURL string) (*GitLab, error) {
	projectID, err := ProjectPathFromURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}
	return NewGitLab(token, InstanceURL(remoteURL), projectID)
}

// InstanceURL returns the https URL of a self-hosted GitLab instance, or ""
// for gitlab.com.
func InstanceURL(remoteURL string) string {
	host := remoteURL
	if _, rest, ok := strings.Cut(host, "://"); ok {
		host = rest
	}
	if _, rest, ok := strings.Cut(host, "@"); ok {
		host = rest
	}
	if i := strings.IndexAny(host, ":/"); i >= 0 {
		host = host[:i]
	}
	if host == "" || host == "gitlab.com" {
		return ""
	}
	return "https://" + host
}

// Name implements issue.Tracker.
func (g *GitLab) Name() string { return "GitLab" }

// Search lists opened issues carrying every label in q.Labels.
func (g *GitLab) Search(ctx context.Context, q issue.Query) ([]issue.Issue, error) {
	it := rfhttp.NewPageIterator(func(ctx context.Context, page int) ([]*gitlab.Issue, bool, error) {
		opts := &gitlab.ListProjectIssuesOptions{
			State:       gitlab.Ptr("opened"),
			ListOptions: gitlab.ListOptions{Page: page + 1, PerPage: gitlabPageSize},
		}
		if len(q.Labels) > 0 {
			opts.Labels = gitlab.Ptr(gitlab.LabelOptions(q.Labels))
		}
		issues, resp, err := g.client.Issues.ListProjectIssues(g.projectID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, false, err
		}
		return issues, resp.NextPage != 0, nil
	})

	all, err := it.Take(ctx, 0)
	if err != nil {
		return nil, &issue.RemoteError{Tracker: g.Name(), Op: "search", Err: err}
	}

	out := make([]issue.Issue, len(all))
	for i, gi := range all {
		out[i] = issue.Issue{Key: strconv.Itoa(gi.IID), Summary: gi.Title}
	}
	return out, nil
}

// Transition applies a state event. GitLab only knows "close" and "reopen".
func (g *GitLab) Transition(ctx context.Context, key, status string) error {
	if status != "close" && status != "reopen" {
		return fmt.Errorf("%w: GitLab issues can only be closed or reopened, not %q", issue.ErrInvalidTransition, status)
	}
	iid, err := issueNumber(g.Name(), key)
	if err != nil {
		return err
	}

	_, _, err = g.client.Issues.UpdateIssue(g.projectID, iid,
		&gitlab.UpdateIssueOptions{StateEvent: gitlab.Ptr(status)}, gitlab.WithContext(ctx))
	if err != nil {
		return &issue.RemoteError{Tracker: g.Name(), Op: "transition", Err: err}
	}
	return nil
}

// CreateRelease implements Releaser. Prerelease has no GitLab equivalent and
// is ignored.
func (g *GitLab) CreateRelease(ctx context.Context, r Release) (string, error) {
	opts := &gitlab.CreateReleaseOptions{
		Name:        gitlab.Ptr(r.name()),
		TagName:     gitlab.Ptr(r.Tag),
		Description: gitlab.Ptr(r.Body),
	}
	if r.Target != "" {
		opts.Ref = gitlab.Ptr(r.Target)
	}

	rel, _, err := g.client.Releases.CreateRelease(g.projectID, opts, gitlab.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("create GitLab release %s: %w", r.Tag, err)
	}
	return rel.Links.Self, nil
}
