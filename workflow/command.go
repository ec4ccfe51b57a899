package workflow

import (
	"context"
	"sort"

	"github.com/randalmurphal/releaseflow/command"
	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/git"
)

// Command runs a shell command after substituting workflow values into it.
type Command struct {
	Command string
	// Variables maps text in Command to the variable replacing it,
	// e.g. {"$version": "version"}.
	Variables map[string]string
}

// Name implements Step.
func (s *Command) Name() string { return "Command" }

// Run implements Step.
func (s *Command) Run(ctx context.Context, rt RunType) (RunType, error) {
	placeholders := make([]string, 0, len(s.Variables))
	for p := range s.Variables {
		placeholders = append(placeholders, p)
	}
	sort.Strings(placeholders)

	values := make(map[string]string, len(placeholders))
	for _, p := range placeholders {
		v, err := command.ParseVariable(s.Variables[p])
		if err != nil {
			return rt, err
		}
		value, err := variableValue(ctx, rt.State(), v)
		if err != nil {
			return rt, err
		}
		values[p] = value
	}
	cmd := command.Substitute(s.Command, values)

	if rt.Simulating() {
		return rt, rt.Describe("Would run command: %s", cmd)
	}
	return rt, command.Run(rfcontext.GetRunner(ctx), rfcontext.Dir(ctx), cmd, rfcontext.Output(ctx))
}

func variableValue(ctx context.Context, state State, v command.Variable) (string, error) {
	switch v {
	case command.VarVersion:
		_, current, err := currentVersion(ctx)
		if err != nil {
			return "", err
		}
		return current.String(), nil
	case command.VarIssueKey, command.VarIssueSummary, command.VarBranch:
		selected, err := state.RequireIssue()
		if err != nil {
			return "", err
		}
		switch v {
		case command.VarIssueKey:
			return selected.Key, nil
		case command.VarIssueSummary:
			return selected.Summary, nil
		}
		return git.BranchNameFromIssue(selected), nil
	case command.VarChangelogEntry:
		prepared, err := state.RequireRelease()
		if err != nil {
			return "", err
		}
		return prepared.Notes, nil
	}
	return "", command.ErrUnknownVariable
}
