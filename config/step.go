package config

// Step type names as written in the config file.
const (
	StepSelectJiraIssue       = "SelectJiraIssue"
	StepTransitionJiraIssue   = "TransitionJiraIssue"
	StepSelectGitHubIssue     = "SelectGitHubIssue"
	StepTransitionGitHubIssue = "TransitionGitHubIssue"
	StepSelectGitLabIssue     = "SelectGitLabIssue"
	StepTransitionGitLabIssue = "TransitionGitLabIssue"
	StepSelectIssueFromBranch = "SelectIssueFromBranch"
	StepSwitchBranches        = "SwitchBranches"
	StepRebaseBranch          = "RebaseBranch"
	StepBumpVersion           = "BumpVersion"
	StepCommand               = "Command"
	StepPrepareRelease        = "PrepareRelease"
	StepRelease               = "Release"
)

// requiredFields lists, per step type, the fields that must be non-empty.
var requiredFields = map[string][]string{
	StepSelectJiraIssue:       {"status"},
	StepTransitionJiraIssue:   {"status"},
	StepSelectGitHubIssue:     nil,
	StepTransitionGitHubIssue: {"status"},
	StepSelectGitLabIssue:     nil,
	StepTransitionGitLabIssue: {"status"},
	StepSelectIssueFromBranch: nil,
	StepSwitchBranches:        nil,
	StepRebaseBranch:          {"to"},
	StepBumpVersion:           {"rule"},
	StepCommand:               {"command"},
	StepPrepareRelease:        nil,
	StepRelease:               nil,
}

// StepConfig is one entry of a workflow. Only the fields relevant to Type
// are read.
type StepConfig struct {
	Type string `mapstructure:"type"`

	// Select*/Transition* steps
	Status string   `mapstructure:"status"`
	Labels []string `mapstructure:"labels"`

	// RebaseBranch
	To string `mapstructure:"to"`

	// BumpVersion
	Rule  string `mapstructure:"rule"`
	Label string `mapstructure:"label"`

	// Command: Variables maps placeholder text in Command to a variable name.
	Command   string            `mapstructure:"command"`
	Variables map[string]string `mapstructure:"variables"`

	// PrepareRelease
	ChangelogPath   string `mapstructure:"changelog_path"`
	PrereleaseLabel string `mapstructure:"prerelease_label"`
}

func (s StepConfig) field(name string) string {
	switch name {
	case "status":
		return s.Status
	case "to":
		return s.To
	case "rule":
		return s.Rule
	case "command":
		return s.Command
	}
	return ""
}

// validate checks the type is known and required fields are present.
func (s StepConfig) validate(workflow string, index int) error {
	fields, ok := requiredFields[s.Type]
	if !ok {
		return &UnknownStepError{Workflow: workflow, Index: index, Type: s.Type}
	}
	for _, f := range fields {
		if s.field(f) == "" {
			return &InvalidStepError{Workflow: workflow, Index: index, Type: s.Type, Field: f}
		}
	}
	return nil
}
