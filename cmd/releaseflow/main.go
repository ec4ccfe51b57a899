// Command releaseflow runs the release workflows defined in a project's
// releaseflow.yaml.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/releaseflow/config"
	rferrors "github.com/randalmurphal/releaseflow/errors"
	"github.com/randalmurphal/releaseflow/git"
)

// Version is set at build time.
var Version = "dev"

// globalOptions holds the persistent flags and the output streams.
type globalOptions struct {
	dir        string
	configFile string
	verbose    bool

	stdout io.Writer
	stderr io.Writer

	// resolverConfig is replaced in tests.
	resolverConfig config.ResolverConfig
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code. The first failure
// is rendered to stderr.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts := &globalOptions{
		stdout:         stdout,
		stderr:         stderr,
		resolverConfig: config.DefaultResolverConfig(),
	}
	root := newRootCmd(opts)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprint(stderr, rferrors.Describe(err).Render())
		return 1
	}
	return 0
}

func newRootCmd(opts *globalOptions) *cobra.Command {
	root := &cobra.Command{
		Use:   "releaseflow",
		Short: "Run release workflows defined in releaseflow.yaml",
		Long: `releaseflow runs named workflows of steps: select an issue, switch to its
branch, rebase, bump the version, prepare a changelog entry, publish a release
or run a shell command.

Pass --dry-run to see what a workflow would do without changing anything.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(opts.stderr, opts.verbose)
		},
	}

	root.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "Run as if started in this directory")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Project config file (default: releaseflow.yaml in --dir)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log every step and git command")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// disableColor turns off styling when the user asked for plain output.
func disableColor(resolved *config.Resolved) {
	if resolved.Get(config.KeyNoColor) == "true" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

func (o *globalOptions) loadProject() (*config.Project, error) {
	if o.configFile != "" {
		return config.LoadFile(o.configFile)
	}
	return config.Load(o.dir)
}

func (o *globalOptions) resolver() *config.Resolver {
	cfg := o.resolverConfig
	cfg.GitRootFinder = gitRoot
	return config.NewResolver(cfg, o.dir)
}

func gitRoot(dir string) (string, error) {
	repo, err := git.NewContext(dir)
	if err != nil {
		return "", err
	}
	return repo.RepoPath(), nil
}
