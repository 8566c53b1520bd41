package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	startProject     string
	startDescription string
	startTime        string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new activity",
	Long: `Start a new activity. Every running activity is stopped at the
start time of the new one.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

func init() {
	startCmd.Flags().StringVarP(&startProject, "project", "p", "", "Project of the activity")
	startCmd.Flags().StringVarP(&startDescription, "description", "d", "", "Description of the activity")
	startCmd.Flags().StringVarP(&startTime, "time", "t", "", "Start time today (HH:MM) instead of now")
	_ = startCmd.MarkFlagRequired("project")
	_ = startCmd.MarkFlagRequired("description")
}

func runStart(cmd *cobra.Command, args []string) error {
	at, err := parseTimeArg(logFormat, startTime, tt.Format.In(now()))
	if err != nil {
		return err
	}

	a, stopped, err := tt.Start(startProject, startDescription, at)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	reportStopped(out, logFormat, stopped)
	fmt.Fprintf(out, "Started activity %s\n", describeActivity(logFormat, a))
	return nil
}
