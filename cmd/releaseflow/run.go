package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/releaseflow/config"
	rfcontext "github.com/randalmurphal/releaseflow/context"
	"github.com/randalmurphal/releaseflow/telemetry"
	"github.com/randalmurphal/releaseflow/workflow"
)

type runOptions struct {
	dryRun bool

	// Credential overrides, highest precedence.
	githubToken string
	gitlabToken string
	jiraEmail   string
	jiraToken   string
}

func newRunCmd(opts *globalOptions) *cobra.Command {
	var ro runOptions
	cmd := &cobra.Command{
		Use:   "run <workflow>",
		Short: "Run a workflow",
		Long: `Run the named workflow from the project config, one step at a time.

The first failing step stops the workflow. Effects of the steps that already
ran are kept.`,
		Example: `  releaseflow run release --dry-run
  releaseflow run start-work`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkflow(cmd.Context(), opts, ro, args[0])
		},
	}
	cmd.Flags().BoolVar(&ro.dryRun, "dry-run", false, "Describe what each step would do without doing it")
	cmd.Flags().StringVar(&ro.githubToken, "github-token", "", "GitHub token (overrides config and environment)")
	cmd.Flags().StringVar(&ro.gitlabToken, "gitlab-token", "", "GitLab token (overrides config and environment)")
	cmd.Flags().StringVar(&ro.jiraEmail, "jira-email", "", "Jira account email")
	cmd.Flags().StringVar(&ro.jiraToken, "jira-token", "", "Jira API token")
	return cmd
}

func (ro runOptions) flags() map[string]string {
	return map[string]string{
		config.KeyGitHubToken: ro.githubToken,
		config.KeyGitLabToken: ro.gitlabToken,
		config.KeyJiraEmail:   ro.jiraEmail,
		config.KeyJiraToken:   ro.jiraToken,
	}
}

func runWorkflow(ctx context.Context, opts *globalOptions, ro runOptions, name string) error {
	project, err := opts.loadProject()
	if err != nil {
		return err
	}
	stepConfigs, err := project.Workflow(name)
	if err != nil {
		return err
	}
	steps, err := workflow.FromWorkflow(name, stepConfigs)
	if err != nil {
		return err
	}

	resolved := opts.resolver().ResolveWithFlags(ro.flags())
	disableColor(resolved)
	project.ApplyCredentials(resolved)

	if err := telemetry.Init(ctx, "releaseflow", Version); err != nil {
		slog.Warn("telemetry disabled", "error", err)
	}
	defer telemetry.Shutdown(context.WithoutCancel(ctx))

	services := rfcontext.NewServices(rfcontext.Config{
		Project: project,
		Dir:     opts.dir,
		Out:     opts.stdout,
	})
	ctx = services.InjectAll(ctx)

	state := workflow.NewState(name)
	rt := workflow.Real(state)
	if ro.dryRun {
		rt = workflow.DryRun(state, opts.stdout)
	}

	slog.Debug("starting workflow", "workflow", name, "run_id", state.RunID, "config", project.File)
	result, err := workflow.NewPipeline(name, steps).Run(ctx, rt)
	slog.Debug("workflow finished", "summary", result.State().Summary())
	return err
}
