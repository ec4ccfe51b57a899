package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/notify"
	"github.com/randalmurphal/releaseflow/testutil"
	"github.com/randalmurphal/releaseflow/version"
)

const packageJSON = `{
  "name": "demo",
  "version": "0.4.1"
}
`

func TestBumpVersion(t *testing.T) {
	repo := testutil.SetupTestRepoWithFiles(t, map[string]string{"Cargo.toml": cargoToml})
	env := newTestEnv(t, repo)

	step := &BumpVersion{Rule: version.RuleMinor}
	_, err := step.Run(env.ctx, Real(NewState("w")))
	require.NoError(t, err)

	assert.Contains(t, testutil.ReadFile(t, repo, "Cargo.toml"), `version = "1.3.0"`)
	assert.Contains(t, env.out.String(), "Bumped version from 1.2.3 to 1.3.0")
}

func TestBumpVersion_OutsideRepo(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "package.json", packageJSON)
	env := newTestEnv(t, dir)

	_, err := (&BumpVersion{Rule: version.RulePre, Label: "rc"}).Run(env.ctx, Real(NewState("w")))
	require.NoError(t, err)
	assert.Contains(t, testutil.ReadFile(t, dir, "package.json"), `"version": "0.4.2-rc.0"`)
}

// releaseRepo returns a repository released as v1.0.0 followed by commits.
func releaseRepo(t *testing.T, messages ...string) string {
	t.Helper()

	repo := testutil.SetupTestRepoWithFiles(t, map[string]string{
		"Cargo.toml": "[package]\nname = \"demo\"\nversion = \"1.0.0\"\n",
	})
	testutil.Tag(t, repo, "v1.0.0")
	for i, msg := range messages {
		testutil.CommitFile(t, repo, "change.txt", string(rune('a'+i))+"\n", msg)
	}
	return repo
}

func TestPrepareRelease_ThenRelease(t *testing.T) {
	repo := releaseRepo(t, "feat: add widgets", "fix: handle nil widgets", "chore: tidy")
	releaser := &forge.MockReleaser{}
	rec := &recordingNotifier{}
	env := newTestEnv(t, repo)
	ctx := rfcontext.WithReleaser(env.ctx, releaser)
	ctx = notify.WithNotifier(ctx, rec)

	steps := []Step{&PrepareRelease{}, &Release{}}
	result, err := NewPipeline("release", steps).Run(ctx, Real(NewState("release")))
	require.NoError(t, err)

	prepared, err := result.State().RequireRelease()
	require.NoError(t, err)
	assert.Equal(t, "v1.1.0", prepared.Tag)
	assert.False(t, prepared.Prerelease)
	assert.Contains(t, prepared.Notes, "add widgets")
	assert.Contains(t, prepared.Notes, "handle nil widgets")
	assert.NotContains(t, prepared.Notes, "tidy")

	assert.Contains(t, testutil.ReadFile(t, repo, "Cargo.toml"), `version = "1.1.0"`)
	assert.Contains(t, testutil.ReadFile(t, repo, "CHANGELOG.md"), "1.1.0")

	require.Len(t, releaser.Releases, 1)
	assert.Equal(t, forge.Release{
		Tag:  "v1.1.0",
		Name: "v1.1.0",
		Body: prepared.Notes,
	}, releaser.Releases[0])
	assert.Contains(t, env.out.String(), "Created release v1.1.0: https://example.com/releases/v1.1.0")

	require.Len(t, rec.events, 2)
	assert.Equal(t, notify.EventReleaseCreated, rec.events[0].Type)
	assert.Equal(t, "https://example.com/releases/v1.1.0", rec.events[0].Metadata["url"])
	assert.Equal(t, notify.EventRunCompleted, rec.events[1].Type)
	assert.Equal(t, "v1.1.0", rec.events[1].Metadata["tag"])
}

func TestPrepareRelease_PreRelease(t *testing.T) {
	repo := releaseRepo(t, "fix: off by one")
	env := newTestEnv(t, repo)

	result, err := (&PrepareRelease{PrereleaseLabel: "rc", ChangelogPath: "CHANGES.md"}).
		Run(env.ctx, Real(NewState("w")))
	require.NoError(t, err)

	prepared, err := result.State().RequireRelease()
	require.NoError(t, err)
	assert.Equal(t, "v1.0.1-rc.0", prepared.Tag)
	assert.True(t, prepared.Prerelease)
	assert.True(t, testutil.FileExists(repo, "CHANGES.md"))
}

func TestPrepareRelease_PackageTags(t *testing.T) {
	repo := testutil.SetupTestRepoWithFiles(t, map[string]string{
		"package.json": packageJSON,
	})
	testutil.Tag(t, repo, "demo/v0.4.1")
	testutil.CommitFile(t, repo, "x.txt", "x\n", "feat!: new API")
	env := newTestEnv(t, repo)
	ctx := rfcontext.WithPackageName(env.ctx, "demo")

	result, err := (&PrepareRelease{}).Run(ctx, Real(NewState("w")))
	require.NoError(t, err)
	assert.Equal(t, "demo/v1.0.0", result.State().Release.Tag)
}

func TestPrepareRelease_NothingToRelease(t *testing.T) {
	repo := releaseRepo(t, "chore: tidy", "docs: explain")
	env := newTestEnv(t, repo)

	result, err := (&PrepareRelease{}).Run(env.ctx, Real(NewState("w")))
	assert.ErrorIs(t, err, ErrNothingToRelease)
	assert.Nil(t, result.State().Release)
	assert.False(t, testutil.FileExists(repo, "CHANGELOG.md"))
}

func TestRelease_Fails(t *testing.T) {
	boom := errors.New("forge down")
	releaser := &forge.MockReleaser{CreateReleaseFunc: func(ctx context.Context, r forge.Release) (string, error) {
		return "", boom
	}}
	env := newTestEnv(t, t.TempDir())
	ctx := rfcontext.WithReleaser(env.ctx, releaser)

	state := NewState("w")
	state.Release = &PreparedRelease{Tag: "v2.0.0", Notes: "notes"}
	_, err := (&Release{}).Run(ctx, Real(state))
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, env.out.String())
}
