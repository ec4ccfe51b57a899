package errors

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/randalmurphal/releaseflow/command"
	"github.com/randalmurphal/releaseflow/config"
	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/issue"
	"github.com/randalmurphal/releaseflow/jira"
	"github.com/randalmurphal/releaseflow/prompt"
	"github.com/randalmurphal/releaseflow/version"
)

// Describe maps err to a message and suggestion for the user. The full
// error chain is kept in Details. It returns nil for a nil error.
func Describe(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	d := describe(err)
	d.Err = err
	if d.Details == "" {
		d.Details = err.Error()
	}
	return d
}

func describe(err error) *CLIError {
	var (
		incomplete  *git.IncompleteCheckoutError
		missing     *git.MissingAncestorError
		remote      *issue.RemoteError
		badVersion  *version.InvalidVersionError
		commandErr  *command.CommandError
		suggester   Suggester
		gitErr      *git.Error
		pathErr     *fs.PathError
		unknownStep *config.UnknownStepError
	)

	switch {
	case errors.Is(err, ErrBug):
		return &CLIError{
			Message:    "This is a bug in releaseflow.",
			Suggestion: "Please report it, including the output of the same command with --verbose.",
		}

	case errors.As(err, &incomplete):
		return &CLIError{
			Message: "Could not complete checkout of " + incomplete.Branch + ".",
			Suggestion: "Switching branches failed, but HEAD was changed. " +
				"You probably want to git switch back to the branch you were on.",
			NeedsInspection: true,
		}

	case errors.As(err, &missing):
		return &CLIError{
			Message: "The commit history of this repository is incomplete.",
			Suggestion: "The history walk reached a commit whose parent is missing, usually because the clone is shallow.\n" +
				"Run `git fetch --unshallow` (and `git fetch --tags`), then try again.",
			NeedsInspection: true,
		}

	case errors.Is(err, git.ErrNotGitRepo):
		return &CLIError{
			Message:    "Not a Git repo.",
			Suggestion: "We couldn't find a Git repo in the current directory. Maybe you're not running from the project root?",
		}

	case errors.Is(err, git.ErrNotOnBranch):
		return &CLIError{
			Message:    "Not on the tip of a Git branch.",
			Suggestion: "In order to run this step, you need to be on the very tip of a Git branch.",
		}

	case errors.Is(err, git.ErrBadBranchName):
		return &CLIError{
			Message: "Bad branch name.",
			Suggestion: "Branch names must start with the issue key, like `123-fix-login` or `REL-42-add-export`.\n" +
				"Rename the branch or select the issue with a tracker step instead.",
		}

	case errors.Is(err, git.ErrUncommittedChanges):
		return &CLIError{
			Message:    "Uncommitted changes.",
			Suggestion: "You need to commit (or stash) your changes before running this step.",
		}

	case errors.Is(err, git.ErrBranchNotFound):
		return &CLIError{
			Message:    "Branch not found.",
			Suggestion: "Check the `to` field of the RebaseBranch step names an existing local branch.",
		}

	case errors.Is(err, git.ErrNoRemote):
		return &CLIError{
			Message:    "This repository has no git remote.",
			Suggestion: "Add a remote, or set owner/repo (GitHub) or project (GitLab) in releaseflow.yaml.",
		}

	case errors.Is(err, issue.ErrNotConfigured):
		return &CLIError{
			Message:    "The issue tracker this step needs is not configured.",
			Suggestion: "Add the matching jira, github or gitlab section to releaseflow.yaml.",
		}

	case errors.Is(err, issue.ErrInvalidTransition):
		return &CLIError{
			Message: "The requested transition is not available for this issue.",
			Suggestion: "The `status` field of a Transition step must name a transition valid for the issue " +
				"(Jira: a workflow transition name; GitHub: open or closed; GitLab: close or reopen).",
		}

	case errors.Is(err, jira.ErrConfigAPITokenAuth), errors.Is(err, jira.ErrConfigPATAuth),
		errors.Is(err, jira.ErrConfigBasicAuth):
		return &CLIError{
			Message: "No credentials for Jira.",
			Suggestion: "Set JIRA_EMAIL and JIRA_API_TOKEN, or run `releaseflow config set jira_email` " +
				"and `releaseflow config set jira_token`.",
		}

	case errors.As(err, &remote):
		return describeRemote(remote)

	case errors.Is(err, forge.ErrNoReleaser):
		return &CLIError{
			Message:    "No release target is configured.",
			Suggestion: "Add a github or gitlab section to releaseflow.yaml to publish releases.",
		}

	case errors.Is(err, forge.ErrTokenRequired):
		return &CLIError{
			Message:    "No access token for the forge.",
			Suggestion: "Set GITHUB_TOKEN or GITLAB_TOKEN, or run `releaseflow config set`.",
		}

	case errors.Is(err, version.ErrNoMetadataFile):
		return &CLIError{
			Message: "Could not find a supported metadata file to use for versioning.",
			Suggestion: "In order to use version-related steps, you must have one of Cargo.toml, " +
				"pyproject.toml or package.json in your project.",
		}

	case errors.Is(err, version.ErrInvalidMetadata):
		return &CLIError{
			Message: "A metadata file has an unexpected format.",
			Suggestion: "releaseflow reads `package.version` from Cargo.toml, `tool.poetry.version` from " +
				"pyproject.toml and the top level `version` of package.json.",
		}

	case errors.As(err, &badVersion):
		return &CLIError{
			Message:    fmt.Sprintf("Found invalid semantic version %s in %s.", badVersion.Version, badVersion.File),
			Suggestion: "The version must be a valid Semantic Version.",
		}

	case errors.Is(err, version.ErrInvalidPreRelease):
		return &CLIError{
			Message: "Could not increment the pre-release version.",
			Suggestion: "The pre-release component of a version must be in the format of `-<label>.N` " +
				"where <label> is a string and N is an integer. Set `label` on the step when starting a pre-release.",
		}

	case errors.Is(err, version.ErrUnknownRule):
		return &CLIError{
			Message:    "Unknown version rule.",
			Suggestion: "The `rule` of BumpVersion must be one of major, minor, patch, pre or release.",
		}

	case errors.Is(err, command.ErrUnknownVariable):
		return &CLIError{
			Message:    "Unknown command variable.",
			Suggestion: "Command variables must be one of version, issue_key, issue_summary, branch or changelog_entry.",
		}

	case errors.As(err, &commandErr):
		return &CLIError{
			Message:    "Command returned non-zero exit code.",
			Suggestion: "The command failed to execute. Try running it manually to get more information.",
		}

	case errors.Is(err, prompt.ErrUserInput):
		return &CLIError{
			Message:    "Failed to get user input.",
			Suggestion: "This step requires user input, but no user input was provided. Run it again from an interactive terminal.",
		}

	case errors.Is(err, config.ErrNoConfigFile):
		return &CLIError{
			Message:    "No releaseflow configuration found.",
			Suggestion: "Create releaseflow.yaml (or releaseflow.toml) in the repository root.",
		}

	case errors.Is(err, config.ErrUnknownWorkflow):
		return &CLIError{
			Message:    "Unknown workflow.",
			Suggestion: "Run `releaseflow list` to see the workflows defined in releaseflow.yaml.",
		}

	case errors.As(err, &unknownStep):
		return &CLIError{
			Message:    fmt.Sprintf("Unknown step type %q.", unknownStep.Type),
			Suggestion: "Check the spelling of the step `type` in releaseflow.yaml.",
		}

	case errors.As(err, &suggester):
		return &CLIError{Message: suggester.Error(), Suggestion: suggester.Suggestion()}

	case errors.As(err, &gitErr):
		return &CLIError{
			Message: "Unknown Git error.",
			Suggestion: "Something went wrong when interacting with Git that we don't have an explanation for. " +
				"Maybe try performing the operation manually?",
		}

	case errors.As(err, &pathErr):
		return &CLIError{
			Message:    "I/O error on " + pathErr.Path + ".",
			Suggestion: "Check that the file exists and that you have permission to read and write it.",
		}
	}

	return &CLIError{Message: err.Error()}
}

func describeRemote(remote *issue.RemoteError) *CLIError {
	msg := fmt.Sprintf("Trouble communicating with %s.", remote.Tracker)

	switch {
	case IsAuthError(remote.Err):
		return &CLIError{
			Message:    msg,
			Suggestion: "The credentials were rejected. Check the token configured for " + remote.Tracker + ".",
		}
	case IsPermissionError(remote.Err):
		return &CLIError{
			Message:    msg,
			Suggestion: "Your token does not have permission for this operation.",
		}
	case IsConnectionError(remote.Err):
		return &CLIError{
			Message:    msg,
			Suggestion: "Check your network connection and the configured URL, then try again.",
		}
	}

	return &CLIError{
		Message: msg,
		Suggestion: "This occurred during a step that talks to a remote API. " +
			"The problem could be an invalid authentication token or a network issue.",
	}
}
