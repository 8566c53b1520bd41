package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/tracker"
)

var (
	changeProject     string
	changeDescription string
	changeTime        string
)

var changeCmd = &cobra.Command{
	Use:   "change",
	Short: "Change the running activities",
	Args:  cobra.NoArgs,
	RunE:  runChange,
}

func init() {
	changeCmd.Flags().StringVarP(&changeProject, "project", "p", "", "New project")
	changeCmd.Flags().StringVarP(&changeDescription, "description", "d", "", "New description")
	changeCmd.Flags().StringVarP(&changeTime, "time", "t", "", "New start time today (HH:MM)")
}

func runChange(cmd *cobra.Command, args []string) error {
	start, err := parseTimeArg(logFormat, changeTime, tt.Format.In(now()))
	if err != nil {
		return err
	}

	changed, err := tt.Change(tracker.ChangeOptions{
		Project:     optionalString(cmd, "project", changeProject),
		Description: optionalString(cmd, "description", changeDescription),
		Start:       start,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(changed) == 0 {
		fmt.Fprintln(out, "Nothing changed.")
		return nil
	}
	for _, a := range changed {
		fmt.Fprintf(out, "Changed activity to %s\n", describeActivity(logFormat, a))
	}
	return nil
}
