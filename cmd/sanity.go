package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var sanityCmd = &cobra.Command{
	Use:   "sanity",
	Short: "Look for activities with negative duration or overlaps",
	Args:  cobra.NoArgs,
	RunE:  runSanity,
}

func runSanity(cmd *cobra.Command, args []string) error {
	issues, err := tt.Sanity()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		fmt.Fprintln(out, "No unusual activities.")
		return nil
	}
	fmt.Fprintf(out, "Found %d unusual activities:\n", len(issues))
	for _, is := range issues {
		fmt.Fprintf(out, "  line %d: %s\n    -> %s", is.Line, is.Problem, logFormat.Serialize(is.Activity))
	}
	return nil
}
