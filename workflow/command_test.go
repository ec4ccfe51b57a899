package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/releaseflow/command"
	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/issue"
	"github.com/randalmurphal/releaseflow/testutil"
)

func TestCommand_Substitutes(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "Cargo.toml", cargoToml)

	runner := git.NewMockRunner()
	runner.OnCommand("sh", "-c", "git commit -m 'ABC-1: Fix it' && echo ABC-1-fix-it 1.2.3").Return("done", nil)
	env := newTestEnv(t, dir)
	ctx := rfcontext.WithRunner(env.ctx, runner)

	state := NewState("w").WithIssue(issue.Issue{Key: "ABC-1", Summary: "Fix it"})
	step := &Command{
		Command: "git commit -m '$KEY: $SUMMARY' && echo $BRANCH $VERSION",
		Variables: map[string]string{
			"$KEY":     "issue_key",
			"$SUMMARY": "issue_summary",
			"$BRANCH":  "branch",
			"$VERSION": "Version",
		},
	}
	_, err := step.Run(ctx, Real(state))
	require.NoError(t, err)

	require.Len(t, runner.Calls, 1)
	assert.Equal(t, dir, runner.Calls[0].WorkDir)
	assert.Equal(t, "done\n", env.out.String())
}

func TestCommand_ChangelogEntry(t *testing.T) {
	runner := git.NewMockRunner()
	env := newTestEnv(t, t.TempDir())
	ctx := rfcontext.WithRunner(env.ctx, runner)

	state := NewState("w")
	state.Release = &PreparedRelease{Tag: "v1.1.0", Notes: "### Features\n\n- widgets"}
	step := &Command{Command: "notify \"$NOTES\"", Variables: map[string]string{"$NOTES": "changelog_entry"}}

	_, err := step.Run(ctx, DryRun(state, env.out))
	require.NoError(t, err)
	assert.Equal(t, "Would run command: notify \"### Features\n\n- widgets\"\n", env.out.String())
	assert.Empty(t, runner.Calls)
}

func TestCommand_Fails(t *testing.T) {
	runner := git.NewMockRunner()
	runner.OnAnyCommand().Return("", &git.CommandError{Command: "sh", Output: "nope", Err: errors.New("exit status 2")})
	env := newTestEnv(t, t.TempDir())
	ctx := rfcontext.WithRunner(env.ctx, runner)

	_, err := (&Command{Command: "false"}).Run(ctx, Real(NewState("w")))
	var cmdErr *command.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "false", cmdErr.Command)
}
