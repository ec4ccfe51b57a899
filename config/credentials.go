package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Credential keys understood by the resolver.
const (
	KeyJiraEmail   = "jira_email"
	KeyJiraToken   = "jira_token"
	KeyGitHubToken = "github_token"
	KeyGitLabToken = "gitlab_token"
	KeyNoColor     = "no_color"
)

// CredentialKeys lists every key that may be stored in the global or local
// credentials file.
var CredentialKeys = []string{KeyJiraEmail, KeyJiraToken, KeyGitHubToken, KeyGitLabToken, KeyNoColor}

// ResolverConfig configures the hierarchical credential resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to key names for environment variable lookup.
	// With EnvPrefix "RELEASEFLOW_", key "github_token" maps to
	// RELEASEFLOW_GITHUB_TOKEN.
	EnvPrefix string

	// EnvAliases maps a key to conventional variables read when the prefixed
	// one is unset, in order of preference (e.g., GITHUB_TOKEN, GIT_TOKEN).
	EnvAliases map[string][]string

	// GlobalConfigDir is the name of the directory under ~/.config/
	// where the global file is stored.
	GlobalConfigDir string

	// GlobalConfigFile is the filename for global config.
	// Defaults to "config.yaml" if empty.
	GlobalConfigFile string

	// LocalConfigName is the filename for local config in the git root.
	LocalConfigName string

	// Defaults provides the default values for configuration keys.
	Defaults map[string]string

	// ValidKeys lists keys accepted from files. If nil, all keys are valid.
	ValidKeys []string

	// GitRootFinder finds the repository root for the local file. Local
	// config is skipped when it is nil or fails.
	GitRootFinder func(startDir string) (string, error)
}

// DefaultResolverConfig returns the settings the releaseflow CLI uses.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		EnvPrefix: "RELEASEFLOW_",
		EnvAliases: map[string][]string{
			KeyGitHubToken: {"GITHUB_TOKEN", "GIT_TOKEN"},
			KeyGitLabToken: {"GITLAB_TOKEN", "GIT_TOKEN"},
			KeyJiraToken:   {"JIRA_API_TOKEN"},
			KeyJiraEmail:   {"JIRA_EMAIL"},
		},
		GlobalConfigDir: "releaseflow",
		LocalConfigName: ".releaseflow.local.yaml",
		ValidKeys:       CredentialKeys,
	}
}

func (c ResolverConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// Resolver handles hierarchical configuration resolution.
type Resolver struct {
	config     ResolverConfig
	globalPath string
	localPath  string
	gitRoot    string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a resolver that looks for the local file in the git
// root containing startDir.
func NewResolver(cfg ResolverConfig, startDir string) *Resolver {
	resolver := &Resolver{config: cfg}

	if cfg.GitRootFinder != nil {
		if root, err := cfg.GitRootFinder(startDir); err == nil && root != "" {
			resolver.gitRoot = root
			if cfg.LocalConfigName != "" {
				resolver.localPath = filepath.Join(root, cfg.LocalConfigName)
			}
		}
	}

	if cfg.GlobalConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			resolver.globalPath = filepath.Join(
				home, ".config", cfg.GlobalConfigDir, cfg.globalConfigFile(),
			)
		}
	}

	return resolver
}

// NewResolverWithPaths creates a resolver with explicit global and local paths.
func NewResolverWithPaths(cfg ResolverConfig, globalPath, localPath string) *Resolver {
	return &Resolver{
		config:     cfg,
		globalPath: globalPath,
		localPath:  localPath,
	}
}

func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	slog.Warn(msg)
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// Keys returns all configuration keys.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// Masked returns the value with everything but the last four characters
// hidden, for display.
func (c *Resolved) Masked(key string) string {
	v := c.values[key]
	if key == KeyNoColor || key == KeyJiraEmail || v == "" {
		return v
	}
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", 8) + v[len(v)-4:]
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > local > global > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for key, value := range r.config.Defaults {
		cfg.set(key, value, SourceDefault)
	}
	r.applyFile(cfg, r.globalPath, SourceGlobal)
	r.applyFile(cfg, r.localPath, SourceLocal)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves config and applies flag overrides.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()

	for key, value := range flags {
		if value != "" {
			cfg.set(key, value, SourceFlag)
		}
	}

	return cfg
}

func (c *Resolved) set(key, value string, src Source) {
	c.values[key] = value
	c.sources[key] = src
}

func (r *Resolver) applyFile(cfg *Resolved, path string, src Source) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return // File doesn't exist - not an error
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for key, value := range parsed {
		if !r.validKey(key) {
			r.warn(fmt.Sprintf("ignoring unknown key %q in %s", key, path))
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.set(key, strVal, src)
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	keys := make(map[string]bool)
	for _, k := range r.config.ValidKeys {
		keys[k] = true
	}
	for k := range r.config.Defaults {
		keys[k] = true
	}
	for k := range cfg.values {
		keys[k] = true
	}

	for key := range keys {
		for _, alias := range r.config.EnvAliases[key] {
			if value := os.Getenv(alias); value != "" {
				cfg.set(key, value, SourceEnv)
				break
			}
		}
		if r.config.EnvPrefix == "" {
			continue
		}
		envKey := r.config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if value := os.Getenv(envKey); value != "" {
			cfg.set(key, value, SourceEnv)
		}
	}

	if _, hasNoColor := os.LookupEnv("NO_COLOR"); hasNoColor {
		cfg.set(KeyNoColor, "true", SourceEnv)
	}
}

func (r *Resolver) validKey(key string) bool {
	return len(r.config.ValidKeys) == 0 || contains(r.config.ValidKeys, key)
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// GlobalPath returns the path to the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local config file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}
