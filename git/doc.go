// Package git provides the repository operations behind release workflows.
//
// All operations shell out to the git CLI through a CommandRunner, so tests
// can substitute MockRunner or SequentialMockRunner for real execution.
//
// Core types:
//   - Context: a repository opened for one operation (NewContext discovers the root)
//   - CommandRunner: interface for executing git commands (with mocks for testing)
//   - CommitMessage: parsed conventional commit
//
// Branch correlation:
//
//	name := git.BranchNameFromIssue(issue.Issue{Key: "ABC-123", Summary: "Fix bug"})
//	// name == "ABC-123-fix-bug"
//	i, err := git.IssueFromBranchName(name)
//	// i.Key == "ABC-123"
//
// Guarded operations:
//
//	g, err := git.NewContext(".")
//	err = g.SwitchTo("ABC-123-fix-bug")  // ErrUncommittedChanges if the tree is dirty
//	err = g.Rebase("main")               // aborts the rebase on failure
//	msgs, err := g.CommitMessagesSince("v1.2.0")
package git
