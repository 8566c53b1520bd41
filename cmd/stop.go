package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var stopTime string

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop all running activities",
	Args:  cobra.NoArgs,
	RunE:  runStop,
}

func init() {
	stopCmd.Flags().StringVarP(&stopTime, "time", "t", "", "Stop time today (HH:MM) instead of now")
}

func runStop(cmd *cobra.Command, args []string) error {
	at, err := parseTimeArg(logFormat, stopTime, tt.Format.In(now()))
	if err != nil {
		return err
	}

	stopped, err := tt.Stop(at)
	if err != nil {
		return err
	}
	if len(stopped) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No activity to stop.")
		return nil
	}
	reportStopped(cmd.OutOrStdout(), logFormat, stopped)
	return nil
}
