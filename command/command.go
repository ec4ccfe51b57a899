// Package command runs user-defined shell commands with workflow values
// substituted into them.
package command

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strings"

	"github.com/randalmurphal/releaseflow/git"
)

// Variable names a workflow value that can be substituted into a command.
type Variable string

const (
	VarVersion        Variable = "version"         // Current project version
	VarIssueKey       Variable = "issue_key"       // Key of the selected issue
	VarIssueSummary   Variable = "issue_summary"   // Summary of the selected issue
	VarBranch         Variable = "branch"          // Branch name derived from the selected issue
	VarChangelogEntry Variable = "changelog_entry" // Body of the prepared release
)

var knownVariables = map[Variable]bool{
	VarVersion:        true,
	VarIssueKey:       true,
	VarIssueSummary:   true,
	VarBranch:         true,
	VarChangelogEntry: true,
}

// ErrUnknownVariable indicates a variable name that is not recognized.
var ErrUnknownVariable = errors.New("unknown command variable")

// CommandError reports a command that could not be run or exited non-zero.
type CommandError struct {
	Command  string
	ExitCode int // -1 when the process did not start or was killed
	Err      error
}

func (e *CommandError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("command %q failed: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ParseVariable parses a variable name. Matching ignores case, so "Version"
// and "version" are the same variable.
func ParseVariable(name string) (Variable, error) {
	v := Variable(strings.ToLower(strings.TrimSpace(name)))
	if !knownVariables[v] {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariable, name)
	}
	return v, nil
}

// Substitute replaces every placeholder in command with its value.
// Longer placeholders are replaced first so overlapping keys are stable.
func Substitute(command string, values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, values[k])
	}
	return strings.NewReplacer(pairs...).Replace(command)
}

// Run executes command with `sh -c` in dir and copies its output to out.
func Run(runner git.CommandRunner, dir, command string, out io.Writer) error {
	output, err := runner.Run(dir, "sh", "-c", command)
	if output != "" && out != nil {
		fmt.Fprintln(out, output)
	}
	if err != nil {
		return &CommandError{Command: command, ExitCode: exitCode(err), Err: err}
	}
	return nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
