package jira

import (
	"time"
)

// AuthType represents the type of authentication to use.
type AuthType string

// Authentication types supported by the Jira client.
const (
	AuthAPIToken AuthType = "api_token" // Cloud: email + API token
	AuthBasic    AuthType = "basic"     // Server: username + password
	AuthPAT      AuthType = "pat"       // Server/DC: Personal Access Token
)

// APIVersion selects the REST API generation.
type APIVersion string

// API versions.
const (
	APIVersionV2 APIVersion = "v2" // Server/DC
	APIVersionV3 APIVersion = "v3" // Cloud
)

// Config is the `jira` section of the project file. Credentials are normally
// filled in from the resolved jira_email/jira_token rather than written here.
type Config struct {
	URL        string          `mapstructure:"url"`     // https://your-domain.atlassian.net
	Project    string          `mapstructure:"project"` // key searched by SelectJiraIssue, e.g. "REL"
	APIVersion APIVersion      `mapstructure:"api_version"`
	Auth       AuthConfig      `mapstructure:"auth"`
	HTTP       HTTPConfig      `mapstructure:"http"`
	RateLimit  RateLimitConfig `mapstructure:"rate_limit"`
}

// AuthConfig selects how requests authenticate. Email and Token serve
// api_token; Token alone serves pat; Username and Password serve basic.
type AuthConfig struct {
	Type     AuthType `mapstructure:"type"`
	Email    string   `mapstructure:"email"`
	Token    string   `mapstructure:"token"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
}

type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig bounds the retries on 429 and 5xx responses.
type RateLimitConfig struct {
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryWaitMin time.Duration `mapstructure:"retry_wait_min"`
	RetryWaitMax time.Duration `mapstructure:"retry_wait_max"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIVersion: APIVersionV3,
		Auth:       AuthConfig{Type: AuthAPIToken},
		HTTP: HTTPConfig{
			Timeout: 30 * time.Second,
		},
		RateLimit: RateLimitConfig{
			MaxRetries:   3,
			RetryWaitMin: 1 * time.Second,
			RetryWaitMax: 30 * time.Second,
		},
	}
}

// Validate checks that the section is complete enough to build a client.
func (c *Config) Validate() error {
	switch {
	case c.URL == "":
		return ErrConfigURLRequired
	case c.Project == "":
		return ErrConfigProjectRequired
	case c.APIVersion != "" && c.APIVersion != APIVersionV2 && c.APIVersion != APIVersionV3:
		return ErrConfigAPIVersionInvalid
	}
	return c.Auth.validate()
}

func (a AuthConfig) validate() error {
	var missing bool
	var err error
	switch a.Type {
	case "":
		return ErrConfigAuthTypeRequired
	case AuthAPIToken:
		missing, err = a.Email == "" || a.Token == "", ErrConfigAPITokenAuth
	case AuthBasic:
		missing, err = a.Username == "" || a.Password == "", ErrConfigBasicAuth
	case AuthPAT:
		missing, err = a.Token == "", ErrConfigPATAuth
	default:
		return ErrConfigAuthTypeInvalid
	}
	if missing {
		return err
	}
	return nil
}

// apiVersion returns the effective API version.
func (c *Config) apiVersion() APIVersion {
	if c.APIVersion == "" {
		return APIVersionV3
	}
	return c.APIVersion
}
