package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/releaseflow/command"
	"github.com/randalmurphal/releaseflow/config"
	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/issue"
	"github.com/randalmurphal/releaseflow/testutil"
	"github.com/randalmurphal/releaseflow/version"
)

func TestDryRun_DescribesWithoutSideEffects(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "Cargo.toml", cargoToml)

	runner := git.NewMockRunner()
	tracker := &issue.MockTracker{TrackerName: "Jira"}
	releaser := &forge.MockReleaser{}

	env := newTestEnv(t, dir)
	ctx := rfcontext.WithRunner(env.ctx, runner)
	ctx = rfcontext.WithTracker(ctx, rfcontext.TrackerJira, tracker)
	ctx = rfcontext.WithReleaser(ctx, releaser)

	steps, err := FromWorkflow("release", []config.StepConfig{
		{Type: config.StepSelectJiraIssue, Status: "To Do"},
		{Type: config.StepTransitionJiraIssue, Status: "In Progress"},
		{Type: config.StepSwitchBranches},
		{Type: config.StepRebaseBranch, To: "main"},
		{Type: config.StepBumpVersion, Rule: "minor"},
		{Type: config.StepPrepareRelease},
		{Type: config.StepCommand, Command: "echo $version $key", Variables: map[string]string{
			"$version": "version",
			"$key":     "issue_key",
		}},
		{Type: config.StepRelease},
	})
	require.NoError(t, err)

	var sink = env.out
	result, err := NewPipeline("release", steps).Run(ctx, DryRun(NewState("release"), sink))
	require.NoError(t, err)

	assert.Equal(t, []string{
		`Would query Jira for issues with status "To Do" and prompt you to select one`,
		"Would transition Jira issue 123 to In Progress",
		"Would switch to or create a branch named 123-fake-issue",
		"Would rebase current branch onto main",
		"Would bump version from 1.2.3 to 1.3.0 in Cargo.toml",
		"Would bump version 1.2.3 from commits since the last release and add an entry to CHANGELOG.md",
		"Would run command: echo 1.2.3 123",
		"Would create release v1.2.3",
	}, lines(sink))

	assert.Empty(t, runner.Calls, "a dry run must not run commands")
	assert.Empty(t, tracker.Queries)
	assert.Empty(t, tracker.Transitions)
	assert.Empty(t, releaser.Releases)
	assert.Empty(t, env.selector.Questions)
	assert.Equal(t, cargoToml, testutil.ReadFile(t, dir, "Cargo.toml"))
	assert.False(t, testutil.FileExists(dir, "CHANGELOG.md"))

	selected, err := result.State().RequireIssue()
	require.NoError(t, err)
	assert.Equal(t, issue.Issue{Key: "123", Summary: "Fake Issue"}, selected)
}

// Failures that do not depend on external state are identical in both modes.
func TestStaticFailures_SameInBothModes(t *testing.T) {
	prepared := NewState("w")
	prepared.Release = &PreparedRelease{Tag: "v1.0.0"}

	tests := []struct {
		name  string
		step  Step
		state State
		want  error
	}{
		{"transition without issue", &TransitionIssue{Tracker: rfcontext.TrackerJira, Status: "Done"}, NewState("w"), ErrNoIssueSelected},
		{"select without tracker", &SelectIssue{Tracker: rfcontext.TrackerGitHub}, NewState("w"), issue.ErrNotConfigured},
		{"transition without tracker", &TransitionIssue{Tracker: rfcontext.TrackerGitLab}, NewState("w").WithIssue(placeholderIssue), issue.ErrNotConfigured},
		{"switch without issue", &SwitchBranches{}, NewState("w"), ErrNoIssueSelected},
		{"release before prepare", &Release{}, NewState("w"), ErrReleaseNotPrepared},
		{"release without forge", &Release{}, prepared, forge.ErrNoReleaser},
		{"bad rule", &BumpVersion{Rule: "huge"}, NewState("w"), version.ErrUnknownRule},
		{"bump without metadata", &BumpVersion{Rule: version.RulePatch}, NewState("w"), version.ErrNoMetadataFile},
		{"unknown variable", &Command{Command: "echo $x", Variables: map[string]string{"$x": "nope"}}, NewState("w"), command.ErrUnknownVariable},
		{"issue variable without issue", &Command{Command: "echo $k", Variables: map[string]string{"$k": "issue_key"}}, NewState("w"), ErrNoIssueSelected},
		{"changelog variable before prepare", &Command{Command: "echo $c", Variables: map[string]string{"$c": "changelog_entry"}}, NewState("w"), ErrReleaseNotPrepared},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := git.NewMockRunner()
			env := newTestEnv(t, t.TempDir())
			ctx := rfcontext.WithRunner(env.ctx, runner)

			_, dryErr := tt.step.Run(ctx, DryRun(tt.state, env.out))
			_, realErr := tt.step.Run(ctx, Real(tt.state))

			require.Error(t, dryErr)
			require.Error(t, realErr)
			assert.ErrorIs(t, dryErr, tt.want)
			assert.ErrorIs(t, realErr, tt.want)
			assert.Equal(t, dryErr.Error(), realErr.Error())
			assert.Empty(t, env.out.String())
			assert.Empty(t, runner.Calls)
		})
	}
}
