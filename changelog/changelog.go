// Package changelog builds Keep a Changelog entries from conventional
// commits and inserts them into a changelog file.
package changelog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/version"
)

// DefaultPath is the changelog file used when none is configured.
const DefaultPath = "CHANGELOG.md"

// Section kinds, in the order they are rendered.
const (
	SectionBreaking = "breaking changes"
	SectionFeatures = "features"
	SectionFixes    = "fixes"
)

var sectionOrder = []string{SectionBreaking, SectionFeatures, SectionFixes}

var titleCaser = cases.Title(language.English)

// Entry is one release in the changelog.
type Entry struct {
	Version  version.Version
	Date     time.Time
	Sections map[string][]string // Section kind -> bullet lines
}

// NewEntry groups conventional commit messages into sections.
// Messages that are not conventional commits, or whose type does not
// affect the version, are left out.
func NewEntry(v version.Version, date time.Time, messages []string) Entry {
	e := Entry{Version: v, Date: date, Sections: make(map[string][]string)}
	for _, msg := range messages {
		c, ok := git.ParseCommitMessage(msg)
		if !ok {
			continue
		}

		line := c.Subject
		if c.Scope != "" {
			line = c.Scope + ": " + line
		}

		switch {
		case c.Breaking:
			e.Sections[SectionBreaking] = append(e.Sections[SectionBreaking], line)
		case c.Type == git.CommitTypeFeat:
			e.Sections[SectionFeatures] = append(e.Sections[SectionFeatures], line)
		case c.Type == git.CommitTypeFix:
			e.Sections[SectionFixes] = append(e.Sections[SectionFixes], line)
		}
	}
	return e
}

// Body renders the sections without the version heading.
// This is also used as release notes.
func (e Entry) Body() string {
	var b strings.Builder
	for _, kind := range sectionOrder {
		lines := e.Sections[kind]
		if len(lines) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "### %s\n\n", titleCaser.String(kind))
		for _, line := range lines {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}

// String renders the complete entry including its heading.
func (e Entry) String() string {
	heading := fmt.Sprintf("## %s - %s\n", e.Version, e.Date.Format("2006-01-02"))
	body := e.Body()
	if body == "" {
		return heading
	}
	return heading + "\n" + body
}

// Insert adds entry to the changelog at path, above the newest existing
// release. A missing file is created with a top-level heading.
func Insert(path string, entry Entry) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read changelog: %w", err)
	}

	content := string(data)
	if strings.TrimSpace(content) == "" {
		content = "# Changelog\n"
	}

	updated := insertEntry(content, entry.String())
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write changelog: %w", err)
	}
	return nil
}

func insertEntry(content, entry string) string {
	lines := strings.SplitAfter(content, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "## ") {
			before := strings.Join(lines[:i], "")
			after := strings.Join(lines[i:], "")
			return before + entry + "\n" + after
		}
	}

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return content + "\n" + entry
}
