package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/query"
	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
)

// now is replaced in tests.
var now = time.Now

// parseTimeArg parses a clock time like "14:05" (or "14:05:30" at second
// precision) on the day of now. An empty string returns the zero time.
func parseTimeArg(f codec.Format, s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	layouts := []string{f.Precision.TimeLayout(), codec.Minute.TimeLayout(), codec.Second.TimeLayout()}
	for _, layout := range layouts {
		clock, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		return time.Date(now.Year(), now.Month(), now.Day(),
			clock.Hour(), clock.Minute(), clock.Second(), 0, now.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected %s", s, f.Precision.TimeLayout())
}

// parseDateArg parses a YYYY-MM-DD date in loc.
func parseDateArg(name, s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(codec.DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s value %q: %w", name, s, err)
	}
	return d, nil
}

// filterFlags are the selection flags shared by list, report and export.
type filterFlags struct {
	from        string
	to          string
	date        string
	today       bool
	yesterday   bool
	currentWeek bool
	lastWeek    bool
	project     string
	number      int
	round       time.Duration
}

func (ff *filterFlags) register(cmd *cobra.Command, withNumber bool) {
	fs := cmd.Flags()
	fs.StringVar(&ff.from, "from", "", "Begin of date range (YYYY-MM-DD)")
	fs.StringVar(&ff.to, "to", "", "End of date range, inclusive (YYYY-MM-DD)")
	fs.StringVarP(&ff.date, "date", "d", "", "Show a single day (YYYY-MM-DD)")
	fs.BoolVar(&ff.today, "today", false, "Show today")
	fs.BoolVar(&ff.yesterday, "yesterday", false, "Show yesterday")
	fs.BoolVar(&ff.currentWeek, "current_week", false, "Show the current week")
	fs.BoolVar(&ff.lastWeek, "last_week", false, "Show the last week")
	fs.StringVarP(&ff.project, "project", "p", "", "Only projects matching this pattern (* and ? wildcards)")
	fs.DurationVar(&ff.round, "round", 0, "Round start and end to this duration, e.g. 15m")
	if withNumber {
		fs.IntVarP(&ff.number, "number", "n", 0, "Only the last N activities")
	}
	cmd.MarkFlagsMutuallyExclusive("date", "from", "today", "yesterday", "current_week", "last_week")
	cmd.MarkFlagsMutuallyExclusive("date", "to", "today", "yesterday", "current_week", "last_week")
}

// build turns the flags into a query filter relative to now.
func (ff *filterFlags) build(now time.Time) (query.Filter, error) {
	f := query.Filter{Project: ff.project, Number: ff.number}
	loc := now.Location()
	var err error

	switch {
	case ff.date != "":
		f.Date, err = parseDateArg("date", ff.date, loc)
	case ff.today:
		f.Date = timecalc.StartOfDay(now)
	case ff.yesterday:
		f.Date = timecalc.StartOfDay(now).AddDate(0, 0, -1)
	case ff.currentWeek:
		f.From, f.To = timecalc.WeekRange(now)
	case ff.lastWeek:
		f.From, f.To = timecalc.LastWeekRange(now)
	default:
		if ff.from != "" {
			if f.From, err = parseDateArg("from", ff.from, loc); err != nil {
				return query.Filter{}, err
			}
		}
		if ff.to != "" {
			f.To, err = parseDateArg("to", ff.to, loc)
		}
	}
	if err != nil {
		return query.Filter{}, err
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return query.Filter{}, fmt.Errorf("--to %s is before --from %s", ff.to, ff.from)
	}
	return f, nil
}

// optionalString returns a pointer to the flag's value if it was set.
func optionalString(cmd *cobra.Command, name string, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
