package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/releaseflow/config"
	"github.com/randalmurphal/releaseflow/git"
)

func newConfigCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and store credentials",
		Long: `Show and store the credentials releaseflow uses to talk to issue trackers
and forges.

Values are resolved from, lowest to highest precedence:
  ~/.config/releaseflow/config.yaml   (global)
  .releaseflow.local.yaml             (local, in the git root)
  RELEASEFLOW_* environment variables (GITHUB_TOKEN, GITLAB_TOKEN, JIRA_API_TOKEN
                                       and JIRA_EMAIL are also read)
  command-line flags`,
	}
	cmd.AddCommand(newConfigShowCmd(opts), newConfigSetCmd(opts), newConfigUnsetCmd(opts))
	return cmd
}

func newConfigShowCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show resolved credentials and where each came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := opts.resolver()
			resolved := r.Resolve()
			for _, key := range config.CredentialKeys {
				value, source := resolved.GetWithSource(key)
				if value == "" {
					fmt.Fprintf(opts.stdout, "%-13s (not set)\n", key)
					continue
				}
				fmt.Fprintf(opts.stdout, "%-13s %s (%s)\n", key, resolved.Masked(key), source.Where(r))
			}
			return nil
		},
	}
}

func newConfigSetCmd(opts *globalOptions) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a credential",
		Example: `  releaseflow config set github_token ghp_xxx
  releaseflow config set --local jira_email me@example.com`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			saver := opts.resolverConfig.Saver()
			key, value := args[0], args[1]
			if local {
				root := opts.resolver().GitRoot()
				if root == "" {
					return git.ErrNotGitRepo
				}
				if err := saver.SaveLocal(root, key, value); err != nil {
					return err
				}
				fmt.Fprintf(opts.stdout, "Set %s (local)\n", key)
				return nil
			}
			if err := saver.SaveGlobal(key, value); err != nil {
				return err
			}
			fmt.Fprintf(opts.stdout, "Set %s (global)\n", key)
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "Store in .releaseflow.local.yaml in the git root")
	return cmd
}

func newConfigUnsetCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a credential from the global file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolverConfig.Saver().DeleteGlobalKey(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(opts.stdout, "Unset %s\n", args[0])
			return nil
		},
	}
}
