package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupTestRepo(t *testing.T) {
	dir := SetupTestRepo(t)

	if _, err := os.Stat(filepath.Join(dir, ".git")); os.IsNotExist(err) {
		t.Error(".git directory does not exist")
	}
	if !FileExists(dir, "README.md") {
		t.Error("README.md does not exist")
	}
	if got := GetCurrentBranch(t, dir); got != MainBranch {
		t.Errorf("GetCurrentBranch() = %q, want %q", got, MainBranch)
	}
	if sha := GetHeadSHA(t, dir); len(sha) != 40 {
		t.Errorf("SHA length = %d, want 40", len(sha))
	}
}

func TestSetupTestRepoWithFiles(t *testing.T) {
	files := map[string]string{
		"Cargo.toml":   "[package]\nversion = \"1.0.0\"\n",
		"src/lib.rs":   "",
		"CHANGELOG.md": "# Changelog\n",
	}

	dir := SetupTestRepoWithFiles(t, files)

	for path, content := range files {
		if got := ReadFile(t, dir, path); got != content {
			t.Errorf("%s = %q, want %q", path, got, content)
		}
	}
	if log := GitLog(t, dir); len(log) != 2 || log[0] != "Add test files" {
		t.Errorf("GitLog() = %q", log)
	}
}

func TestCommitFileAndBranches(t *testing.T) {
	dir := SetupTestRepo(t)

	CreateBranch(t, dir, "feature")
	CommitFile(t, dir, "a.txt", "a", "feat: a")
	if got := GetCurrentBranch(t, dir); got != "feature" {
		t.Errorf("current branch = %q, want feature", got)
	}

	SwitchBranch(t, dir, MainBranch)
	if FileExists(dir, "a.txt") {
		t.Error("a.txt should not exist on main")
	}
}

func TestWriteIgnored_KeepsTreeClean(t *testing.T) {
	dir := SetupTestRepo(t)
	WriteIgnored(t, dir, "target/out.bin")

	cmd := exec.Command("git", "status", "--porcelain")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git status: %v", err)
	}
	if strings.TrimSpace(string(out)) != "" {
		t.Errorf("status = %q, want clean", out)
	}
}

func TestTagAndShallowClone(t *testing.T) {
	src := SetupTestRepo(t)
	CommitFile(t, src, "a.txt", "a", "second")
	Tag(t, src, "v0.1.0")

	clone := ShallowClone(t, src, 1)
	if !FileExists(clone, filepath.Join(".git", "shallow")) {
		t.Error("clone should be shallow")
	}
	if got, want := GetHeadSHA(t, clone), GetHeadSHA(t, src); got != want {
		t.Errorf("clone HEAD = %s, want %s", got, want)
	}
}

func TestTestContext(t *testing.T) {
	ctx := TestContext(t)
	if ctx.Err() != nil {
		t.Error("context should not be canceled yet")
	}

	testDeadline, ok := t.Deadline()
	ctxDeadline, hasDeadline := ctx.Deadline()
	if ok != hasDeadline {
		t.Fatalf("ctx.Deadline() ok = %v, t.Deadline() ok = %v", hasDeadline, ok)
	}
	if ok && !ctxDeadline.Before(testDeadline) {
		t.Errorf("ctx deadline %v should be before test deadline %v", ctxDeadline, testDeadline)
	}
}
