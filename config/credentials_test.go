package config

import (
	"os"
	"path/filepath"
	"testing"
)

func testResolverConfig() ResolverConfig {
	cfg := DefaultResolverConfig()
	cfg.EnvPrefix = "RFTEST_"
	return cfg
}

func writeYAML(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestResolver_Defaults(t *testing.T) {
	cfg := testResolverConfig()
	cfg.Defaults = map[string]string{KeyNoColor: "false"}

	resolved := NewResolverWithPaths(cfg, "", "").Resolve()

	if got := resolved.Get(KeyNoColor); got != "false" {
		t.Errorf("no_color = %q, want false", got)
	}
	if got := resolved.Source(KeyNoColor); got != SourceDefault {
		t.Errorf("source = %q, want %q", got, SourceDefault)
	}
}

func TestResolver_Precedence(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "global", "config.yaml")
	local := filepath.Join(dir, "repo", ".releaseflow.local.yaml")
	writeYAML(t, global, "github_token: global-token\njira_email: me@example.com\njira_token: global-jira\n")
	writeYAML(t, local, "jira_token: local-jira\n")

	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "")
	t.Setenv("JIRA_API_TOKEN", "")
	t.Setenv("JIRA_EMAIL", "")

	resolver := NewResolverWithPaths(testResolverConfig(), global, local)

	resolved := resolver.Resolve()
	checks := []struct {
		key     string
		want    string
		wantSrc Source
	}{
		{KeyGitHubToken, "global-token", SourceGlobal},
		{KeyJiraEmail, "me@example.com", SourceGlobal},
		{KeyJiraToken, "local-jira", SourceLocal},
	}
	for _, c := range checks {
		got, src := resolved.GetWithSource(c.key)
		if got != c.want || src != c.wantSrc {
			t.Errorf("%s = (%q, %s), want (%q, %s)", c.key, got, src, c.want, c.wantSrc)
		}
	}

	t.Setenv("GIT_TOKEN", "alias-token")
	if got := resolver.Resolve().Get(KeyGitHubToken); got != "alias-token" {
		t.Errorf("alias env should override files, got %q", got)
	}

	t.Setenv("RFTEST_GITHUB_TOKEN", "prefixed-token")
	if got := resolver.Resolve().Get(KeyGitHubToken); got != "prefixed-token" {
		t.Errorf("prefixed env should override alias, got %q", got)
	}

	flagged := resolver.ResolveWithFlags(map[string]string{KeyGitHubToken: "flag-token", KeyJiraEmail: ""})
	if got, src := flagged.GetWithSource(KeyGitHubToken); got != "flag-token" || src != SourceFlag {
		t.Errorf("flag = (%q, %s)", got, src)
	}
	if got := flagged.Get(KeyJiraEmail); got != "me@example.com" {
		t.Errorf("empty flag should not override, got %q", got)
	}
}

func TestResolver_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "config.yaml")
	writeYAML(t, global, "github_token: [unclosed\nbogus_key: 1\n")

	resolver := NewResolverWithPaths(testResolverConfig(), global, "")
	resolver.Resolve()

	if len(resolver.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one parse warning", resolver.Warnings)
	}
}

func TestResolver_UnknownKeyIgnored(t *testing.T) {
	dir := t.TempDir()
	global := filepath.Join(dir, "config.yaml")
	writeYAML(t, global, "api_url: http://example.com\n")

	resolver := NewResolverWithPaths(testResolverConfig(), global, "")
	resolved := resolver.Resolve()

	if got := resolved.Get("api_url"); got != "" {
		t.Errorf("api_url = %q, want ignored", got)
	}
	if len(resolver.Warnings) != 1 {
		t.Errorf("Warnings = %v", resolver.Warnings)
	}
}

func TestResolver_GitRootFinder(t *testing.T) {
	root := t.TempDir()
	writeYAML(t, filepath.Join(root, ".releaseflow.local.yaml"), "gitlab_token: from-local\n")
	t.Setenv("GITLAB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "")

	cfg := testResolverConfig()
	cfg.GlobalConfigDir = ""
	cfg.GitRootFinder = func(string) (string, error) { return root, nil }

	resolver := NewResolver(cfg, ".")
	if resolver.GitRoot() != root {
		t.Errorf("GitRoot() = %q", resolver.GitRoot())
	}
	if got := resolver.Resolve().Get(KeyGitLabToken); got != "from-local" {
		t.Errorf("gitlab_token = %q", got)
	}
}

func TestResolved_Masked(t *testing.T) {
	r := &Resolved{values: map[string]string{
		KeyGitHubToken: "ghp_abcdefgh1234",
		KeyJiraToken:   "abc",
		KeyJiraEmail:   "me@example.com",
	}}

	if got := r.Masked(KeyGitHubToken); got != "********1234" {
		t.Errorf("Masked(github_token) = %q", got)
	}
	if got := r.Masked(KeyJiraToken); got != "***" {
		t.Errorf("Masked(jira_token) = %q", got)
	}
	if got := r.Masked(KeyJiraEmail); got != "me@example.com" {
		t.Errorf("Masked(jira_email) = %q, emails are shown", got)
	}
}

func TestSaveConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	saver := DefaultResolverConfig().Saver()

	if err := saver.SaveGlobal(KeyGitHubToken, "tok"); err != nil {
		t.Fatalf("SaveGlobal() error = %v", err)
	}
	if err := saver.SaveGlobal(KeyNoColor, "true"); err != nil {
		t.Fatalf("SaveGlobal() error = %v", err)
	}
	if err := saver.SaveGlobal("api_url", "x"); err == nil {
		t.Error("SaveGlobal() should reject unknown keys")
	}

	globalPath := filepath.Join(home, ".config", "releaseflow", "config.yaml")
	info, err := os.Stat(globalPath)
	if err != nil {
		t.Fatalf("global file not written: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("global file mode = %v, want 0600", info.Mode().Perm())
	}

	resolved := NewResolverWithPaths(DefaultResolverConfig(), globalPath, "").Resolve()
	if got := resolved.Get(KeyNoColor); got != "true" {
		t.Errorf("no_color = %q after save", got)
	}

	if err := saver.DeleteGlobalKey(KeyGitHubToken); err != nil {
		t.Fatalf("DeleteGlobalKey() error = %v", err)
	}
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GIT_TOKEN", "")
	resolved = NewResolverWithPaths(DefaultResolverConfig(), globalPath, "").Resolve()
	if got := resolved.Get(KeyGitHubToken); got != "" {
		t.Errorf("github_token = %q after delete", got)
	}

	root := t.TempDir()
	if err := saver.SaveLocal(root, KeyJiraToken, "local"); err != nil {
		t.Fatalf("SaveLocal() error = %v", err)
	}
	if err := saver.SaveLocal("", KeyJiraToken, "local"); err == nil {
		t.Error("SaveLocal() without git root should fail")
	}
}

func TestSource_Where(t *testing.T) {
	r := NewResolverWithPaths(ResolverConfig{}, "/home/me/.config/releaseflow/config.yaml", "")

	tests := []struct {
		src  Source
		want string
	}{
		{SourceGlobal, "global: /home/me/.config/releaseflow/config.yaml"},
		{SourceLocal, "local"},
		{SourceEnv, "env"},
		{SourceDefault, "default"},
	}
	for _, tt := range tests {
		if got := tt.src.Where(r); got != tt.want {
			t.Errorf("%s.Where() = %q, want %q", tt.src, got, tt.want)
		}
	}
}
