package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lastNumber int

var lastCmd = &cobra.Command{
	Use:   "last",
	Short: "List recent distinct activities",
	Long: `List the most recent distinct project/description pairs. The number in
front of each pair can be passed to "ttt continue".`,
	Args: cobra.NoArgs,
	RunE: runLast,
}

func init() {
	lastCmd.Flags().IntVarP(&lastNumber, "number", "n", 10, "Number of pairs to show")
}

func runLast(cmd *cobra.Command, args []string) error {
	pairs, err := tt.Last(lastNumber)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(pairs) == 0 {
		fmt.Fprintln(out, "No activities found.")
		return nil
	}
	// Most recent is printed last and numbered 0.
	for i, p := range pairs {
		fmt.Fprintf(out, "[%d] %-20s %s\n", len(pairs)-1-i, p.Project, p.Description)
	}
	return nil
}
