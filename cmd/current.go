package cmd

import (
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "List the running activities",
	Args:  cobra.NoArgs,
	RunE:  runCurrent,
}

func runCurrent(cmd *cobra.Command, args []string) error {
	running, err := tt.Running()
	if err != nil {
		return err
	}
	printRunning(cmd.OutOrStdout(), logFormat, running, now())
	return nil
}
