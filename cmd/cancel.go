package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Remove the running activities from the log",
	Args:  cobra.NoArgs,
	RunE:  runCancel,
}

func runCancel(cmd *cobra.Command, args []string) error {
	canceled, err := tt.Cancel()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(canceled) == 0 {
		fmt.Fprintln(out, "No activity to cancel.")
		return nil
	}
	for _, a := range canceled {
		fmt.Fprintf(out, "Canceled activity %s\n", describeActivity(logFormat, a))
	}
	return nil
}
