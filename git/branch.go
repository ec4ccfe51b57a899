package git

import (
	"strconv"
	"strings"

	"github.com/randalmurphal/releaseflow/issue"
)

// BranchNameFromIssue derives the working branch name for an issue.
//
// The key and the lower-cased summary are joined with "-" and every space is
// replaced with "-". Only ASCII letters are lower-cased.
//
// Example: {"ABC-123", "Fix Login Bug"} -> "ABC-123-fix-login-bug"
func BranchNameFromIssue(i issue.Issue) string {
	name := i.Key + "-" + asciiLower(i.Summary)
	return strings.ReplaceAll(name, " ", "-")
}

// IssueFromBranchName recovers the issue a branch was created for.
//
// Two key shapes are recognized, tried in order:
//   - numeric first segment, as used by GitHub and GitLab: "123-fix-bug" -> {"123", "fix-bug"}
//   - project prefix plus numeric second segment, as used by Jira:
//     "ABC-123-fix-bug" -> {"ABC-123", "fix-bug"}
//
// Anything else returns ErrBadBranchName. A leading "refs/heads/" is ignored.
// The summary is returned in branch form; original casing and spaces are lost.
func IssueFromBranchName(ref string) (issue.Issue, error) {
	name := strings.TrimPrefix(ref, "refs/heads/")
	parts := strings.Split(name, "-")

	if isUnsigned(parts[0]) {
		return issue.Issue{
			Key:     parts[0],
			Summary: strings.Join(parts[1:], "-"),
		}, nil
	}

	if len(parts) >= 2 && isUnsigned(parts[1]) {
		return issue.Issue{
			Key:     parts[0] + "-" + parts[1],
			Summary: strings.Join(parts[2:], "-"),
		}, nil
	}

	return issue.Issue{}, ErrBadBranchName
}

func isUnsigned(s string) bool {
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
