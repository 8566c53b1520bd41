package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listFilter     filterFlags
	listNoGrouping bool
	listOutput     string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List activities",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listFilter.register(listCmd, true)
	listCmd.Flags().BoolVar(&listNoGrouping, "no_grouping", false, "Do not group activities by date")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "shell", "Output format: shell, json")
}

func runList(cmd *cobra.Command, args []string) error {
	t := tt.Format.In(now())
	filter, err := listFilter.build(t)
	if err != nil {
		return err
	}

	activities, err := tt.List(filter, listFilter.round)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch listOutput {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(activities)
	case "shell":
		printList(out, logFormat, activities, !listNoGrouping, t)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want shell or json)", listOutput)
	}
}
