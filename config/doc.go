// Package config loads the two kinds of releaseflow configuration.
//
// The project file, releaseflow.yaml (or .toml) in the repository root, is
// read with viper and defines workflows and tracker sections:
//
//	package_name: widgets
//	jira:
//	  url: https://acme.atlassian.net
//	  project: REL
//	github: {}
//	workflows:
//	  start:
//	    - type: SelectJiraIssue
//	      status: To Do
//	    - type: SwitchBranches
//	    - type: TransitionJiraIssue
//	      status: In Progress
//
// Credentials never need to live in that file. The Resolver merges them from
// layered sources with clear precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables (RELEASEFLOW_GITHUB_TOKEN, then GITHUB_TOKEN, ...)
//  3. Local config (.releaseflow.local.yaml in the git root)
//  4. Global config (~/.config/releaseflow/config.yaml)
//  5. Built-in defaults (lowest priority)
//
// Each resolved value tracks where it came from:
//
//	resolved := config.NewResolver(config.DefaultResolverConfig(), ".").Resolve()
//	token, src := resolved.GetWithSource(config.KeyGitHubToken) // src == config.SourceEnv
//	project.ApplyCredentials(resolved)
package config
