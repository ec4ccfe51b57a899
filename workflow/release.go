package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/randalmurphal/releaseflow/changelog"
	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/notify"
	"github.com/randalmurphal/releaseflow/version"
)

// BumpVersion applies a version rule to every metadata file of the project.
type BumpVersion struct {
	Rule  version.Rule
	Label string // Pre-release label for the pre rule
}

// Name implements Step.
func (s *BumpVersion) Name() string { return "BumpVersion" }

// Run implements Step.
func (s *BumpVersion) Run(ctx context.Context, rt RunType) (RunType, error) {
	rule, err := version.ParseRule(string(s.Rule))
	if err != nil {
		return rt, err
	}
	files, current, err := currentVersion(ctx)
	if err != nil {
		return rt, err
	}
	next, err := version.Bump(current, rule, s.Label)
	if err != nil {
		return rt, err
	}

	if rt.Simulating() {
		return rt, rt.Describe("Would bump version from %s to %s in %s", current, next, fileNames(files))
	}

	written, err := version.WriteVersion(files, next)
	if err != nil {
		return rt, err
	}
	if err := stage(ctx, written...); err != nil {
		return rt, err
	}
	fmt.Fprintf(rfcontext.Output(ctx), "Bumped version from %s to %s\n", current, next)
	return rt, nil
}

// PrepareRelease computes the next version from the Conventional Commits made
// since the last stable release, writes it to the metadata files and adds a
// changelog entry. The result is recorded for Release and Command steps.
type PrepareRelease struct {
	ChangelogPath   string // Defaults to CHANGELOG.md
	PrereleaseLabel string // When set, a pre-release with this label is prepared
}

// Name implements Step.
func (s *PrepareRelease) Name() string { return "PrepareRelease" }

func (s *PrepareRelease) changelogPath(dir string) string {
	path := s.ChangelogPath
	if path == "" {
		path = changelog.DefaultPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// Run implements Step.
func (s *PrepareRelease) Run(ctx context.Context, rt RunType) (RunType, error) {
	files, current, err := currentVersion(ctx)
	if err != nil {
		return rt, err
	}
	pkg := rfcontext.PackageName(ctx)
	path := s.changelogPath(rfcontext.Dir(ctx))
	state := rt.State()

	if rt.Simulating() {
		if err := rt.Describe("Would bump version %s from commits since the last release and add an entry to %s",
			current, filepath.Base(path)); err != nil {
			return rt, err
		}
		state.Release = &PreparedRelease{
			Version:    current,
			Tag:        version.TagName(current, pkg),
			Prerelease: s.PrereleaseLabel != "",
		}
		return rt.WithState(state), nil
	}

	repo, err := rfcontext.OpenRepo(ctx)
	if err != nil {
		return rt, err
	}
	tag, err := version.LastStableTag(repo, pkg)
	if err != nil {
		return rt, err
	}
	messages, err := repo.CommitMessagesSince(tag)
	if err != nil {
		return rt, err
	}
	rule, ok := version.RuleFromCommits(messages)
	if !ok {
		return rt, ErrNothingToRelease
	}
	slog.Debug("release rule from commits", "since", tag, "commits", len(messages), "rule", rule)

	var next version.Version
	if s.PrereleaseLabel != "" {
		next, err = version.BumpPreRelease(current, rule, s.PrereleaseLabel)
	} else {
		next, err = version.Bump(current, rule, "")
	}
	if err != nil {
		return rt, err
	}

	entry := changelog.NewEntry(next, time.Now(), messages)
	written, err := version.WriteVersion(files, next)
	if err != nil {
		return rt, err
	}
	if err := changelog.Insert(path, entry); err != nil {
		return rt, err
	}
	if err := repo.AddFiles(append(written, path)...); err != nil {
		return rt, err
	}

	state.Release = &PreparedRelease{
		Version:    next,
		Tag:        version.TagName(next, pkg),
		Notes:      entry.Body(),
		Prerelease: !next.IsStable(),
	}
	fmt.Fprintf(rfcontext.Output(ctx), "Prepared release %s\n", state.Release.Tag)
	return rt.WithState(state), nil
}

// Release publishes the prepared release on the configured forge.
type Release struct{}

// Name implements Step.
func (s *Release) Name() string { return "Release" }

// Run implements Step.
func (s *Release) Run(ctx context.Context, rt RunType) (RunType, error) {
	prepared, err := rt.State().RequireRelease()
	if err != nil {
		return rt, err
	}
	releaser, err := rfcontext.Releaser(ctx)
	if err != nil {
		return rt, err
	}

	if rt.Simulating() {
		return rt, rt.Describe("Would create release %s", prepared.Tag)
	}

	url, err := releaser.CreateRelease(ctx, forge.Release{
		Tag:        prepared.Tag,
		Name:       prepared.Tag,
		Body:       prepared.Notes,
		Prerelease: prepared.Prerelease,
	})
	if err != nil {
		return rt, err
	}
	fmt.Fprintf(rfcontext.Output(ctx), "Created release %s: %s\n", prepared.Tag, url)
	announce(ctx, rt, notify.Event{
		Type:     notify.EventReleaseCreated,
		Step:     s.Name(),
		Message:  "Created release " + prepared.Tag,
		Metadata: map[string]any{"tag": prepared.Tag, "url": url},
	})
	return rt, nil
}

func currentVersion(ctx context.Context) ([]*version.MetadataFile, version.Version, error) {
	files, err := version.FindMetadata(rfcontext.Dir(ctx))
	if err != nil {
		return nil, version.Version{}, err
	}
	current, err := version.CurrentVersion(files)
	if err != nil {
		return nil, version.Version{}, err
	}
	return files, current, nil
}

func fileNames(files []*version.MetadataFile) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = string(f.Format)
	}
	return strings.Join(names, ", ")
}

// stage adds paths to the index. Projects outside a git repository are
// versioned without staging.
func stage(ctx context.Context, paths ...string) error {
	repo, err := rfcontext.OpenRepo(ctx)
	if errors.Is(err, git.ErrNotGitRepo) {
		slog.Debug("not a git repository, skipping staging", "files", paths)
		return nil
	}
	if err != nil {
		return err
	}
	return repo.AddFiles(paths...)
}
