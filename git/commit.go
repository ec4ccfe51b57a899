package git

import (
	"regexp"
	"strings"
)

// CommitType represents the type of change in a commit.
type CommitType string

const (
	CommitTypeFeat     CommitType = "feat"
	CommitTypeFix      CommitType = "fix"
	CommitTypeDocs     CommitType = "docs"
	CommitTypeStyle    CommitType = "style"
	CommitTypeRefactor CommitType = "refactor"
	CommitTypePerf     CommitType = "perf"
	CommitTypeTest     CommitType = "test"
	CommitTypeBuild    CommitType = "build"
	CommitTypeCI       CommitType = "ci"
	CommitTypeChore    CommitType = "chore"
	CommitTypeRevert   CommitType = "revert"
)

// CommitMessage is a commit message following conventional commits.
type CommitMessage struct {
	Type     CommitType // Type of change (feat, fix, etc.), lower-cased
	Scope    string     // Optional area of the codebase affected
	Subject  string     // Short description from the header line
	Body     string     // Everything after the header, trimmed
	Breaking bool       // "!" in the header or a BREAKING CHANGE footer
}

var headerPattern = regexp.MustCompile(`^([A-Za-z]+)(?:\(([^()]*)\))?(!)?: (.+)$`)

// ParseCommitMessage parses a raw commit message as a conventional commit.
// The second return value is false if the header does not follow the format.
//
// Example: "feat(api)!: drop v1 routes" -> {Type: feat, Scope: api, Breaking: true}
func ParseCommitMessage(raw string) (*CommitMessage, bool) {
	raw = strings.TrimSpace(raw)
	header, body, _ := strings.Cut(raw, "\n")

	m := headerPattern.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return nil, false
	}

	c := &CommitMessage{
		Type:     CommitType(strings.ToLower(m[1])),
		Scope:    m[2],
		Subject:  strings.TrimSpace(m[4]),
		Body:     strings.TrimSpace(body),
		Breaking: m[3] == "!",
	}
	for _, line := range strings.Split(c.Body, "\n") {
		if strings.HasPrefix(line, "BREAKING CHANGE:") || strings.HasPrefix(line, "BREAKING-CHANGE:") {
			c.Breaking = true
			break
		}
	}
	return c, true
}
