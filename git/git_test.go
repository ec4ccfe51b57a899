package git

import (
	"errors"
	"path/filepath"
	"testing"
)

func newMockContext(t *testing.T, runner CommandRunner) *Context {
	t.Helper()
	dir := t.TempDir()
	return &Context{repoPath: dir, workDir: dir, runner: runner}
}

func TestNewContext_DiscoversRoot(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "rev-parse", "--show-toplevel").Return("/work/repo", nil)

	sub := filepath.Join(t.TempDir(), "nested")
	g, err := NewContext(sub, WithRunner(runner))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	if g.RepoPath() != "/work/repo" {
		t.Errorf("RepoPath() = %q, want %q", g.RepoPath(), "/work/repo")
	}
	if runner.Calls[0].WorkDir != sub {
		t.Errorf("discovery ran in %q, want %q", runner.Calls[0].WorkDir, sub)
	}
}

func TestNewContext_NotGitRepo(t *testing.T) {
	runner := NewMockRunner()
	runner.OnAnyCommand().Return("", &CommandError{Output: "fatal: not a git repository"})

	_, err := NewContext(t.TempDir(), WithRunner(runner))
	if !errors.Is(err, ErrNotGitRepo) {
		t.Errorf("error = %v, want ErrNotGitRepo", err)
	}
}

func TestCurrentBranch(t *testing.T) {
	t.Run("on branch", func(t *testing.T) {
		runner := NewMockRunner()
		runner.OnCommand("git", "symbolic-ref", "--quiet", "--short", "HEAD").Return("ABC-1-fix", nil)

		got, err := newMockContext(t, runner).CurrentBranch()
		if err != nil {
			t.Fatalf("CurrentBranch: %v", err)
		}
		if got != "ABC-1-fix" {
			t.Errorf("CurrentBranch() = %q, want %q", got, "ABC-1-fix")
		}
	})

	t.Run("detached", func(t *testing.T) {
		runner := NewMockRunner()
		runner.OnAnyCommand().Return("", &CommandError{Err: errors.New("exit status 1")})

		_, err := newMockContext(t, runner).CurrentBranch()
		if !errors.Is(err, ErrNotOnBranch) {
			t.Errorf("error = %v, want ErrNotOnBranch", err)
		}
	})
}

func TestLocalBranches(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "for-each-ref", "--format=%(refname:short)", "refs/heads/").
		Return("main\nfeature/x\n\ndevelop", nil)

	got, err := newMockContext(t, runner).LocalBranches()
	if err != nil {
		t.Fatalf("LocalBranches: %v", err)
	}
	want := []string{"main", "feature/x", "develop"}
	if !argsMatch(got, want) {
		t.Errorf("LocalBranches() = %v, want %v", got, want)
	}
}

func TestCreateBranch_AlreadyExists(t *testing.T) {
	runner := NewMockRunner()
	runner.OnAnyCommand().Return("", &CommandError{Output: "fatal: a branch named 'x' already exists"})

	err := newMockContext(t, runner).CreateBranch("x", "main")
	if !errors.Is(err, ErrBranchExists) {
		t.Errorf("error = %v, want ErrBranchExists", err)
	}
}

func TestAddFiles(t *testing.T) {
	runner := NewMockRunner()
	runner.OnAnyCommand().Return("", nil)
	g := newMockContext(t, runner)

	if err := g.AddFiles(); !errors.Is(err, ErrNothingToStage) {
		t.Errorf("AddFiles() error = %v, want ErrNothingToStage", err)
	}
	if err := g.AddFiles("Cargo.toml", "CHANGELOG.md"); err != nil {
		t.Fatalf("AddFiles: %v", err)
	}
	if !runner.WasCalled("git", "add", "--", "Cargo.toml", "CHANGELOG.md") {
		t.Error("expected git add -- Cargo.toml CHANGELOG.md")
	}
}

func TestFirstRemoteURL(t *testing.T) {
	tests := []struct {
		name    string
		remotes string
		want    string
		wantErr error
	}{
		{"prefers origin", "upstream\norigin", "git@github.com:o/origin.git", nil},
		{"falls back to first", "upstream\nfork", "git@github.com:o/upstream.git", nil},
		{"no remotes", "", "", ErrNoRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewMockRunner()
			runner.OnCommand("git", "remote").Return(tt.remotes, nil)
			runner.OnCommand("git", "remote", "get-url", "origin").Return("git@github.com:o/origin.git", nil)
			runner.OnCommand("git", "remote", "get-url", "upstream").Return("git@github.com:o/upstream.git", nil)

			got, err := newMockContext(t, runner).FirstRemoteURL()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FirstRemoteURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCommitMessage(t *testing.T) {
	tests := []struct {
		raw      string
		ok       bool
		typ      CommitType
		scope    string
		subject  string
		breaking bool
	}{
		{"feat: add thing", true, CommitTypeFeat, "", "add thing", false},
		{"fix(api): handle nil\n\nbody text", true, CommitTypeFix, "api", "handle nil", false},
		{"refactor!: drop v1", true, CommitTypeRefactor, "", "drop v1", true},
		{"Feat: upper type", true, CommitTypeFeat, "", "upper type", false},
		{"chore: bump\n\nBREAKING CHANGE: config renamed", true, CommitTypeChore, "", "bump", true},
		{"Merge branch 'main'", false, "", "", "", false},
		{"", false, "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseCommitMessage(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseCommitMessage(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Type != tt.typ || got.Scope != tt.scope || got.Subject != tt.subject || got.Breaking != tt.breaking {
				t.Errorf("ParseCommitMessage(%q) = %+v", tt.raw, got)
			}
		})
	}
}
