package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/model"
	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
)

// clock renders the time of day of t at the precision of f.
func clock(f codec.Format, t time.Time) string {
	return t.Format(f.Precision.TimeLayout())
}

// describeActivity renders a one-line summary such as
// `"fix bug" on project "ttt" since 09:15`.
func describeActivity(f codec.Format, a model.Activity) string {
	return fmt.Sprintf("%q on project %q since %s", a.Description, a.Project, f.FormatTime(a.Start))
}

// printList prints activities grouped by day, or as one flat table with the
// date in every row when grouped is false.
func printList(w io.Writer, f codec.Format, activities []model.Activity, grouped bool, now time.Time) {
	if len(activities) == 0 {
		fmt.Fprintln(w, "No activities found.")
		return
	}

	var currentDay string
	for _, a := range activities {
		startStr := clock(f, a.Start)
		endStr := "ongoing"
		if a.End != nil {
			endStr = clock(f, *a.End)
		}
		if !grouped {
			startStr = f.FormatTime(a.Start)
			if a.End != nil {
				endStr = f.FormatTime(*a.End)
			}
		} else if day := a.Start.Format(codec.DateLayout); day != currentDay {
			if currentDay != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, day)
			currentDay = day
		}

		fmt.Fprintf(w, "%s–%s  %-12s %s (%s)\n",
			startStr, endStr, a.Project, a.Description, timecalc.FormatDuration(a.Duration(now)))
	}
}

// printRunning prints the running activities or a notice that there are none.
func printRunning(w io.Writer, f codec.Format, running []model.Activity, now time.Time) {
	if len(running) == 0 {
		fmt.Fprintln(w, "No activity is currently running.")
		return
	}
	for _, a := range running {
		fmt.Fprintf(w, "%s  %-12s %s (%s)\n",
			f.FormatTime(a.Start), a.Project, a.Description, timecalc.FormatDuration(a.Duration(now)))
	}
}

// reportStopped prints one line per activity stopped as a side effect.
func reportStopped(w io.Writer, f codec.Format, stopped []model.Activity) {
	for _, a := range stopped {
		fmt.Fprintf(w, "Stopped activity %q on project %q started at %s (%s)\n",
			a.Description, a.Project, f.FormatTime(a.Start), timecalc.FormatDuration(a.Duration(a.Start)))
	}
}

// rule returns a horizontal line of width n.
func rule(n int) string {
	return strings.Repeat("-", n)
}
