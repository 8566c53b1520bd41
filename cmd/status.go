package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
	"github.com/Tiliavir/trivial-time-tracker/internal/tracker"
)

var (
	statusProject string
	statusRound   time.Duration
	statusWatch   bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running activity and recent totals",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusProject, "project", "p", "", "Only projects matching this pattern (* and ? wildcards)")
	statusCmd.Flags().DurationVar(&statusRound, "round", 0, "Round start and end to this duration, e.g. 15m")
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "Print the status again whenever the log changes")
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if err := showStatus(out); err != nil {
		return err
	}
	if !statusWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return storage.Watch(ctx, tt.Path, func() {
		fmt.Fprintln(out)
		if err := showStatus(out); err != nil {
			slog.Warn("could not read activity log", "path", tt.Path, "err", err)
		}
	})
}

func showStatus(w io.Writer) error {
	st, err := tt.Status(statusProject, statusRound)
	if err != nil {
		return err
	}
	printStatus(w, st)
	return nil
}

func printStatus(w io.Writer, st tracker.Status) {
	if st.Project != "" {
		fmt.Fprintf(w, "Project: %s\n", st.Project)
	}
	if st.Current != nil {
		a := st.Current
		fmt.Fprintln(w, "Running:")
		fmt.Fprintf(w, "  Project:     %s\n", a.Project)
		fmt.Fprintf(w, "  Description: %s\n", a.Description)
		fmt.Fprintf(w, "  Since:       %s\n", logFormat.FormatTime(a.Start))
		fmt.Fprintf(w, "  Elapsed:     %s\n", timecalc.FormatDurationHHMMSS(st.Elapsed))
	} else {
		fmt.Fprintln(w, "No activity is currently running.")
	}
	fmt.Fprintf(w, "Today:         %s\n", timecalc.FormatDuration(st.Today))
	fmt.Fprintf(w, "Current week:  %s\n", timecalc.FormatDuration(st.CurrentWeek))
	fmt.Fprintf(w, "Current month: %s\n", timecalc.FormatDuration(st.CurrentMonth))
}
