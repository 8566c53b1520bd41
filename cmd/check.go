package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List the lines of the log that cannot be parsed",
	Args:  cobra.NoArgs,
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	broken, err := tt.Check()
	if err != nil {
		return err
	}
	printParseErrors(cmd.OutOrStdout(), broken)
	return nil
}

func printParseErrors(w io.Writer, broken []storage.Line) {
	if len(broken) == 0 {
		fmt.Fprintln(w, "All lines in the activity log are fine.")
		return
	}
	fmt.Fprintf(w, "Found %d line(s) with parse errors:\n", len(broken))
	for _, l := range broken {
		fmt.Fprintf(w, "  line %d: %v\n    -> %s\n", l.Number, l.Err, l.Raw())
	}
}
