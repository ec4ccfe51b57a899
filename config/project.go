package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/randalmurphal/releaseflow/jira"
)

// ProjectConfigName is the base name of the project config file. Any
// extension viper understands is accepted (yaml, yml, toml, json).
const ProjectConfigName = "releaseflow"

// GitHubConfig selects the GitHub repository for issue and release steps.
// Owner and Repo default to the repository's remote.
type GitHubConfig struct {
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
	Token string `mapstructure:"token"`
}

// GitLabConfig selects the GitLab project for issue and release steps.
// URL and Project default to the repository's remote.
type GitLabConfig struct {
	URL     string `mapstructure:"url"`
	Project string `mapstructure:"project"`
	Token   string `mapstructure:"token"`
}

// NotifyConfig lists where the outcome of real runs is announced.
type NotifyConfig struct {
	// Log writes every event to the process logger.
	Log     bool           `mapstructure:"log"`
	Slack   *SlackConfig   `mapstructure:"slack"`
	Webhook *WebhookConfig `mapstructure:"webhook"`
}

// SlackConfig is a Slack incoming webhook.
type SlackConfig struct {
	WebhookURL string `mapstructure:"webhook_url"`
	Channel    string `mapstructure:"channel"`
}

// WebhookConfig is a generic JSON webhook. Header names are case-insensitive.
type WebhookConfig struct {
	URL     string            `mapstructure:"url"`
	Headers map[string]string `mapstructure:"headers"`
}

// Project is the parsed project config file.
type Project struct {
	// PackageName prefixes release tags ("<name>/v1.2.3") when set.
	PackageName string `mapstructure:"package_name"`

	// Workflows maps a workflow name to its ordered steps. Names are
	// case-insensitive.
	Workflows map[string][]StepConfig `mapstructure:"workflows"`

	Jira   *jira.Config  `mapstructure:"-"`
	GitHub *GitHubConfig `mapstructure:"github"`
	GitLab *GitLabConfig `mapstructure:"gitlab"`

	Notify *NotifyConfig `mapstructure:"notify"`

	// File is the path the config was read from.
	File string `mapstructure:"-"`
}

// Load finds and reads releaseflow.{yaml,toml,...} in dir.
func Load(dir string) (*Project, error) {
	v := viper.New()
	v.SetConfigName(ProjectConfigName)
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w in %s", ErrNoConfigFile, dir)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return decode(v)
}

// LoadFile reads an explicit config file.
func LoadFile(path string) (*Project, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Project, error) {
	p := &Project{File: v.ConfigFileUsed()}
	if err := v.Unmarshal(p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.File, err)
	}

	if v.IsSet("jira") {
		cfg := jira.DefaultConfig()
		if err := v.UnmarshalKey("jira", cfg); err != nil {
			return nil, fmt.Errorf("decode %s jira section: %w", p.File, err)
		}
		p.Jira = cfg
	}

	// An empty section ("github: {}") still enables the forge.
	if p.GitHub == nil && v.IsSet("github") {
		p.GitHub = &GitHubConfig{}
	}
	if p.GitLab == nil && v.IsSet("gitlab") {
		p.GitLab = &GitLabConfig{}
	}

	for _, name := range p.WorkflowNames() {
		for i, step := range p.Workflows[name] {
			if err := step.validate(name, i+1); err != nil {
				return nil, err
			}
		}
	}

	return p, nil
}

// WorkflowNames returns the defined workflow names, sorted.
func (p *Project) WorkflowNames() []string {
	names := make([]string, 0, len(p.Workflows))
	for name := range p.Workflows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Workflow returns the steps of the named workflow.
func (p *Project) Workflow(name string) ([]StepConfig, error) {
	steps, ok := p.Workflows[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (defined: %s)", ErrUnknownWorkflow, name, strings.Join(p.WorkflowNames(), ", "))
	}
	return steps, nil
}

// ApplyCredentials fills tracker credentials the project file leaves empty
// from resolved values.
func (p *Project) ApplyCredentials(r *Resolved) {
	if p.Jira != nil {
		if p.Jira.Auth.Email == "" {
			p.Jira.Auth.Email = r.Get(KeyJiraEmail)
		}
		if p.Jira.Auth.Token == "" {
			p.Jira.Auth.Token = r.Get(KeyJiraToken)
		}
	}
	if p.GitHub != nil && p.GitHub.Token == "" {
		p.GitHub.Token = r.Get(KeyGitHubToken)
	}
	if p.GitLab != nil && p.GitLab.Token == "" {
		p.GitLab.Token = r.Get(KeyGitLabToken)
	}
}
