package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the workflows in the project config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := opts.loadProject()
			if err != nil {
				return err
			}
			for _, name := range project.WorkflowNames() {
				steps := project.Workflows[name]
				types := make([]string, len(steps))
				for i, s := range steps {
					types[i] = s.Type
				}
				fmt.Fprintf(opts.stdout, "%s: %s\n", name, strings.Join(types, ", "))
			}
			return nil
		},
	}
}
