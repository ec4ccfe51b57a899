package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveConfig writes credential values to the global or local file.
type SaveConfig struct {
	// GlobalConfigDir is the directory under ~/.config/ for global config.
	GlobalConfigDir string

	// GlobalConfigFile is the filename. Defaults to "config.yaml".
	GlobalConfigFile string

	// LocalConfigName is the filename for local config in git root.
	LocalConfigName string

	// ValidKeys lists keys that can be saved. If nil, all keys are valid.
	ValidKeys []string
}

// Saver returns a SaveConfig writing the files r reads.
func (c ResolverConfig) Saver() SaveConfig {
	return SaveConfig{
		GlobalConfigDir:  c.GlobalConfigDir,
		GlobalConfigFile: c.GlobalConfigFile,
		LocalConfigName:  c.LocalConfigName,
		ValidKeys:        c.ValidKeys,
	}
}

func (c SaveConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

func (c SaveConfig) checkKey(key string) error {
	if len(c.ValidKeys) > 0 && !contains(c.ValidKeys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(c.ValidKeys, ", "))
	}
	return nil
}

// GlobalPath returns the global file path under the user's home directory.
func (c SaveConfig) GlobalPath() (string, error) {
	if c.GlobalConfigDir == "" {
		return "", fmt.Errorf("global config directory not configured")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", c.GlobalConfigDir, c.globalConfigFile()), nil
}

// SaveGlobal saves a key-value pair to the global config file.
func (c SaveConfig) SaveGlobal(key, value string) error {
	if err := c.checkKey(key); err != nil {
		return err
	}
	configPath, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return err
	}
	return updateFile(configPath, func(m map[string]any) { m[key] = parseValue(value) })
}

// SaveLocal saves a key-value pair to the local config file in the git root.
// The file holds secrets and is written user-readable only; keep it out of
// version control.
func (c SaveConfig) SaveLocal(gitRoot, key, value string) error {
	if gitRoot == "" {
		return fmt.Errorf("git root not found")
	}
	if c.LocalConfigName == "" {
		return fmt.Errorf("local config name not configured")
	}
	if err := c.checkKey(key); err != nil {
		return err
	}

	return updateFile(filepath.Join(gitRoot, c.LocalConfigName),
		func(m map[string]any) { m[key] = parseValue(value) })
}

// DeleteGlobalKey removes a key from the global config.
func (c SaveConfig) DeleteGlobalKey(key string) error {
	configPath, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil // Nothing to delete
	}
	return updateFile(configPath, func(m map[string]any) { delete(m, key) })
}

// updateFile loads a YAML map, applies mutate, and writes it back with 0600.
func updateFile(path string, mutate func(map[string]any)) error {
	var existing map[string]any
	if data, readErr := os.ReadFile(path); readErr == nil {
		if err := yaml.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if existing == nil {
		existing = make(map[string]any)
	}

	mutate(existing)

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// parseValue converts string values to appropriate types for YAML.
func parseValue(value string) any {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}
