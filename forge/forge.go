package forge

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/releaseflow/issue"
)

// Kind identifies a hosting platform.
type Kind string

// Supported platforms.
const (
	KindGitHub Kind = "github"
	KindGitLab Kind = "gitlab"
)

// Release describes a release to publish.
type Release struct {
	Tag        string // Tag to create or attach to (e.g., "v1.2.0")
	Name       string // Display name; defaults to Tag
	Body       string // Release notes (markdown)
	Prerelease bool
	Target     string // Branch or commit the tag is created from; empty means default branch
}

func (r Release) name() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Tag
}

// Releaser publishes releases.
type Releaser interface {
	// CreateRelease publishes r and returns its web URL.
	CreateRelease(ctx context.Context, r Release) (string, error)
}

// DetectKind guesses the platform from a remote URL.
func DetectKind(remoteURL string) (Kind, error) {
	lower := strings.ToLower(remoteURL)

	switch {
	case strings.Contains(lower, "github"):
		return KindGitHub, nil
	case strings.Contains(lower, "gitlab"):
		return KindGitLab, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownForge, remoteURL)
}

// ParseRepoFromURL extracts owner and repo from a git remote URL. For nested
// GitLab groups the owner is the immediate parent group.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	// SSH URLs: git@github.com:owner/repo.git
	if strings.HasPrefix(remoteURL, "git@") {
		_, path, ok := strings.Cut(remoteURL, ":")
		if !ok {
			return "", "", fmt.Errorf("%w: %s", ErrInvalidRemoteURL, remoteURL)
		}
		return splitOwnerRepo(path, remoteURL)
	}

	// https://host/owner/repo.git, ssh://git@host/owner/repo.git
	trimmed := remoteURL
	if _, rest, ok := strings.Cut(trimmed, "://"); ok {
		trimmed = rest
	}
	_, path, ok := strings.Cut(trimmed, "/")
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRemoteURL, remoteURL)
	}
	return splitOwnerRepo(path, remoteURL)
}

func splitOwnerRepo(path, remoteURL string) (string, string, error) {
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[len(parts)-2] == "" || parts[len(parts)-1] == "" {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidRemoteURL, remoteURL)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// ProjectPathFromURL returns the full namespace path of a remote
// ("group/subgroup/project"), which GitLab accepts as a project ID.
func ProjectPathFromURL(remoteURL string) (string, error) {
	if _, _, err := ParseRepoFromURL(remoteURL); err != nil {
		return "", err
	}

	var path string
	if strings.HasPrefix(remoteURL, "git@") {
		_, path, _ = strings.Cut(remoteURL, ":")
	} else {
		trimmed := remoteURL
		if _, rest, ok := strings.Cut(trimmed, "://"); ok {
			trimmed = rest
		}
		_, path, _ = strings.Cut(trimmed, "/")
	}
	return strings.TrimSuffix(strings.Trim(path, "/"), ".git"), nil
}

// issueNumber parses a numeric issue key.
func issueNumber(tracker, key string) (int, error) {
	n, err := strconv.Atoi(key)
	if err != nil || n <= 0 {
		return 0, &issue.RemoteError{Tracker: tracker, Op: "transition", Err: fmt.Errorf("issue key %q is not a number", key)}
	}
	return n, nil
}
