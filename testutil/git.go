package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// MainBranch is the name of the branch SetupTestRepo starts on.
const MainBranch = "main"

// SetupTestRepo creates a temporary git repository with one commit on
// MainBranch. The repository is removed when the test ends.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	mustGit(t, dir, "init")
	// Independent of the installed git's init.defaultBranch.
	mustGit(t, dir, "symbolic-ref", "HEAD", "refs/heads/"+MainBranch)
	mustGit(t, dir, "config", "user.email", "test@test.com")
	mustGit(t, dir, "config", "user.name", "Test User")

	WriteFile(t, dir, "README.md", "# Test Repository\n")
	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "-m", "Initial commit")

	return dir
}

// SetupTestRepoWithFiles creates a test repo and commits the given files.
func SetupTestRepoWithFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := SetupTestRepo(t)
	for path, content := range files {
		WriteFile(t, dir, path, content)
	}
	mustGit(t, dir, "add", ".")
	mustGit(t, dir, "commit", "-m", "Add test files")

	return dir
}

// CreateBranch creates a new branch and checks it out.
func CreateBranch(t *testing.T, repoDir, branch string) {
	t.Helper()
	mustGit(t, repoDir, "checkout", "-b", branch)
}

// SwitchBranch switches to an existing branch.
func SwitchBranch(t *testing.T, repoDir, branch string) {
	t.Helper()
	mustGit(t, repoDir, "checkout", branch)
}

// CommitFile creates or updates a file and commits it.
func CommitFile(t *testing.T, repoDir, path, content, message string) {
	t.Helper()

	WriteFile(t, repoDir, path, content)
	mustGit(t, repoDir, "add", path)
	mustGit(t, repoDir, "commit", "-m", message)
}

// WriteIgnored writes a file that git ignores through .git/info/exclude,
// leaving the working tree clean.
func WriteIgnored(t *testing.T, repoDir, path string) {
	t.Helper()

	exclude := filepath.Join(repoDir, ".git", "info", "exclude")
	if err := os.MkdirAll(filepath.Dir(exclude), 0o755); err != nil {
		t.Fatalf("failed to create info dir: %v", err)
	}
	f, err := os.OpenFile(exclude, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("failed to open exclude file: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString("\n" + path + "\n"); err != nil {
		t.Fatalf("failed to write exclude file: %v", err)
	}

	WriteFile(t, repoDir, path, "ignored\n")
}

// Tag creates a lightweight tag at HEAD.
func Tag(t *testing.T, repoDir, tag string) {
	t.Helper()
	mustGit(t, repoDir, "tag", tag)
}

// AddRemote adds a remote to the repository.
func AddRemote(t *testing.T, repoDir, name, url string) {
	t.Helper()
	mustGit(t, repoDir, "remote", "add", name, url)
}

// ShallowClone clones src with the given depth and returns the clone's path.
func ShallowClone(t *testing.T, src string, depth int) string {
	t.Helper()

	dst := filepath.Join(t.TempDir(), "clone")
	mustGit(t, "", "clone", "--quiet", "--depth", strconv.Itoa(depth), "file://"+src, dst)
	return dst
}

// GetCurrentBranch returns the current branch name, or "" when detached.
func GetCurrentBranch(t *testing.T, repoDir string) string {
	t.Helper()
	return gitOutput(t, repoDir, "branch", "--show-current")
}

// GetHeadSHA returns the current HEAD SHA.
func GetHeadSHA(t *testing.T, repoDir string) string {
	t.Helper()
	return gitOutput(t, repoDir, "rev-parse", "HEAD")
}

// GitLog returns the subject lines of the current branch, newest first.
func GitLog(t *testing.T, repoDir string) []string {
	t.Helper()
	out := gitOutput(t, repoDir, "log", "--format=%s")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func gitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := gitCommand(dir, args...)
	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return strings.TrimRight(string(output), "\n")
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := gitCommand(dir, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
}

func gitCommand(dir string, args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@test.com",
	)
	return cmd
}
