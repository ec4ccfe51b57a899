// Package workflow runs the steps of a configured release workflow.
//
// A workflow is an ordered list of steps built from config.StepConfig values
// with FromWorkflow. Every step runs in one of two modes, carried by RunType:
//
//   - Real: the step performs its side effects (tracker writes, branch
//     changes, file edits, commands, releases).
//   - DryRun: the step only describes what it would do, one line per step,
//     and makes no external change.
//
// Checks that do not depend on external state fail the same way in both
// modes, so a dry run surfaces a misconfigured workflow before a real run
// does. A selected issue in dry-run mode is always the placeholder
// 123 "Fake Issue".
//
// Steps:
//   - SelectIssue / TransitionIssue: query and transition Jira, GitHub or
//     GitLab issues
//   - SelectIssueFromBranch: recover the issue from the current branch name
//   - SwitchBranches: switch to or create the branch for the selected issue
//   - RebaseBranch: rebase the current branch onto another and switch to it
//   - BumpVersion: apply a semantic rule to the package version
//   - PrepareRelease: derive the next version from commits, update metadata
//     and the changelog
//   - Release: publish the prepared release on the forge
//   - Command: run a shell command with variable substitution
//
// Example usage:
//
//	steps, err := workflow.FromWorkflow("release", project.Workflows["release"])
//	if err != nil {
//	    return err
//	}
//	rt := workflow.DryRun(workflow.NewState("release"), os.Stdout)
//	_, err = workflow.NewPipeline("release", steps).Run(ctx, rt)
//
// Services (trackers, selector, releaser, command runner) come from the
// context package.
package workflow
