package changelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/randalmurphal/releaseflow/version"
)

var releaseDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func TestNewEntry_Sections(t *testing.T) {
	messages := []string{
		"feat(cli): add list command",
		"fix: handle empty config",
		"feat!: rename run flags",
		"chore: tidy",
		"Merge branch 'main'",
	}

	e := NewEntry(version.MustParse("2.0.0"), releaseDate, messages)

	want := "## 2.0.0 - 2026-03-14\n\n" +
		"### Breaking Changes\n\n- rename run flags\n\n" +
		"### Features\n\n- cli: add list command\n\n" +
		"### Fixes\n\n- handle empty config\n"
	if got := e.String(); got != want {
		t.Errorf("String() =\n%q\nwant\n%q", got, want)
	}
}

func TestEntry_EmptyBody(t *testing.T) {
	e := NewEntry(version.MustParse("0.1.1"), releaseDate, []string{"docs: readme"})
	if e.Body() != "" {
		t.Errorf("Body() = %q, want empty", e.Body())
	}
	if got := e.String(); got != "## 0.1.1 - 2026-03-14\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestInsert(t *testing.T) {
	entry := NewEntry(version.MustParse("1.1.0"), releaseDate, []string{"feat: new thing"})

	tests := []struct {
		name     string
		existing *string
		want     string
	}{
		{
			name: "missing file",
			want: "# Changelog\n\n## 1.1.0 - 2026-03-14\n\n### Features\n\n- new thing\n",
		},
		{
			name:     "above previous release",
			existing: strPtr("# Changelog\n\nIntro text.\n\n## 1.0.0 - 2025-01-01\n\n- old\n"),
			want: "# Changelog\n\nIntro text.\n\n" +
				"## 1.1.0 - 2026-03-14\n\n### Features\n\n- new thing\n\n" +
				"## 1.0.0 - 2025-01-01\n\n- old\n",
		},
		{
			name:     "no releases yet",
			existing: strPtr("# Changelog\nNotes"),
			want:     "# Changelog\nNotes\n\n## 1.1.0 - 2026-03-14\n\n### Features\n\n- new thing\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultPath)
			if tt.existing != nil {
				if err := os.WriteFile(path, []byte(*tt.existing), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			if err := Insert(path, entry); err != nil {
				t.Fatalf("Insert: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.want {
				t.Errorf("changelog =\n%q\nwant\n%q", data, tt.want)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
