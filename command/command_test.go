package command

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/randalmurphal/releaseflow/git"
)

func TestParseVariable(t *testing.T) {
	tests := []struct {
		in      string
		want    Variable
		wantErr bool
	}{
		{"version", VarVersion, false},
		{"Version", VarVersion, false},
		{" issue_key ", VarIssueKey, false},
		{"changelog_entry", VarChangelogEntry, false},
		{"commit", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariable(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownVariable) {
				t.Errorf("ParseVariable(%q) error = %v, want ErrUnknownVariable", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseVariable(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestSubstitute(t *testing.T) {
	got := Substitute("git tag {v} -m '{key} {v}' {version}", map[string]string{
		"{v}":       "1.2.3",
		"{version}": "9.9.9",
		"{key}":     "ABC-1",
	})
	want := "git tag 1.2.3 -m 'ABC-1 1.2.3' 9.9.9"
	if got != want {
		t.Errorf("Substitute() = %q, want %q", got, want)
	}
}

func TestRun_Success(t *testing.T) {
	runner := git.NewMockRunner()
	runner.OnCommand("sh", "-c", "echo hi").Return("hi", nil)

	var out bytes.Buffer
	if err := Run(runner, "/repo", "echo hi", &out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.String() != "hi\n" {
		t.Errorf("output = %q, want %q", out.String(), "hi\n")
	}
	if runner.Calls[0].WorkDir != "/repo" {
		t.Errorf("workdir = %q, want /repo", runner.Calls[0].WorkDir)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	var out bytes.Buffer
	err := Run(git.NewExecRunner(), t.TempDir(), "echo partial; exit 3", &out)

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error = %v, want *CommandError", err)
	}
	if cmdErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", cmdErr.ExitCode)
	}
	if !strings.Contains(out.String(), "partial") {
		t.Errorf("output = %q, want the command's stdout", out.String())
	}
}

func TestRun_StartFailure(t *testing.T) {
	runner := git.NewMockRunner()
	runner.OnAnyCommand().Return("", errors.New("sh: not found"))

	err := Run(runner, "/repo", "true", nil)

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) || cmdErr.ExitCode != -1 {
		t.Errorf("error = %v, want *CommandError with ExitCode -1", err)
	}
}
