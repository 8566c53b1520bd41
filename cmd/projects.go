package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectsCurrent bool

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List all projects",
	Args:  cobra.NoArgs,
	RunE:  runProjects,
}

func init() {
	projectsCmd.Flags().BoolVarP(&projectsCurrent, "current", "c", false, "Only projects with a running activity")
}

func runProjects(cmd *cobra.Command, args []string) error {
	projects, err := tt.Projects(projectsCurrent)
	if err != nil {
		return err
	}
	for _, p := range projects {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
