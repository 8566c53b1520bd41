package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
	"github.com/Tiliavir/trivial-time-tracker/internal/tracker"
)

var reportFilter filterFlags

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show time spent per project and description",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportFilter.register(reportCmd, false)
}

func runReport(cmd *cobra.Command, args []string) error {
	filter, err := reportFilter.build(tt.Format.In(now()))
	if err != nil {
		return err
	}

	r, err := tt.Report(filter, reportFilter.round)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), r)
	return nil
}

func printReport(w io.Writer, r tracker.Report) {
	if len(r.Projects) == 0 {
		fmt.Fprintln(w, "No activities found.")
		return
	}
	for _, p := range r.Projects {
		fmt.Fprintf(w, "%-40s%12s\n", p.Project, timecalc.FormatDuration(p.Total))
		for _, d := range p.Descriptions {
			fmt.Fprintf(w, "    %-36s%12s\n", d.Description, timecalc.FormatDuration(d.Total))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, rule(52))
	fmt.Fprintf(w, "%-40s%12s\n", "Total", timecalc.FormatDuration(r.Total))
}
