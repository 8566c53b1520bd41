package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/tracker"
)

var (
	continueProject     string
	continueDescription string
	continueTime        string
)

var continueCmd = &cobra.Command{
	Use:   "continue [NUMBER]",
	Short: "Continue a recent activity",
	Long: `Start a new activity with the project and description of a recent one.
NUMBER refers to the numbering shown by "ttt last"; 0, the default, is the
most recent activity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runContinue,
}

func init() {
	continueCmd.Flags().StringVarP(&continueProject, "project", "p", "", "Override the project")
	continueCmd.Flags().StringVarP(&continueDescription, "description", "d", "", "Override the description")
	continueCmd.Flags().StringVarP(&continueTime, "time", "t", "", "Start time today (HH:MM) instead of now")
}

func runContinue(cmd *cobra.Command, args []string) error {
	number := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid activity number %q", args[0])
		}
		number = n
	}
	at, err := parseTimeArg(logFormat, continueTime, tt.Format.In(now()))
	if err != nil {
		return err
	}

	a, stopped, err := tt.Continue(number,
		optionalString(cmd, "project", continueProject),
		optionalString(cmd, "description", continueDescription),
		at)
	if errors.Is(err, tracker.ErrNothingToContinue) {
		fmt.Fprintln(cmd.OutOrStdout(), "No activity to continue.")
		return nil
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reportStopped(out, logFormat, stopped)
	fmt.Fprintf(out, "Started activity %s\n", describeActivity(logFormat, a))
	return nil
}
