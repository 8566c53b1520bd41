// Package query selects activities from the lines of an activity log.
package query

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/Tiliavir/trivial-time-tracker/internal/model"
	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
)

// Filter narrows a set of activities. Zero fields do not filter.
type Filter struct {
	// Date selects a single day and takes precedence over From and To.
	Date time.Time
	From time.Time
	To   time.Time
	// Project is a wildcard pattern; "*" matches any run of characters and
	// "?" a single one.
	Project string
	// Number keeps only the last Number activities after sorting.
	Number int
}

// Activities returns the activities of all parsable lines in file order.
// Unparsable lines are logged and skipped.
func Activities(lines []storage.Line) []model.Activity {
	out := make([]model.Activity, 0, len(lines))
	for i := range lines {
		if !lines[i].OK() {
			slog.Warn("ignoring unparsable line, see `ttt check`", "line", lines[i].Number)
			continue
		}
		out = append(out, lines[i].Activity)
	}
	return out
}

// Running returns the activities that have no end.
func Running(activities []model.Activity) []model.Activity {
	var out []model.Activity
	for _, a := range activities {
		if !a.IsStopped() {
			out = append(out, a)
		}
	}
	return out
}

// Apply filters activities by date and project, sorts them by start and
// keeps the last f.Number of them.
func Apply(activities []model.Activity, f Filter) ([]model.Activity, error) {
	var match glob.Glob
	if f.Project != "" {
		g, err := glob.Compile(wildcardPattern(f.Project))
		if err != nil {
			return nil, fmt.Errorf("invalid project pattern %q: %w", f.Project, err)
		}
		match = g
	}

	from, to := f.From, f.To
	if !f.Date.IsZero() {
		from, to = f.Date, f.Date
	}

	var out []model.Activity
	for _, a := range activities {
		day := timecalc.StartOfDay(a.Start)
		if !from.IsZero() && day.Before(timecalc.StartOfDay(from)) {
			continue
		}
		if !to.IsZero() && day.After(timecalc.StartOfDay(to)) {
			continue
		}
		if match != nil && !match.Match(a.Project) {
			continue
		}
		out = append(out, a)
	}
	SortByStart(out)
	if f.Number > 0 && len(out) > f.Number {
		out = out[len(out)-f.Number:]
	}
	return out, nil
}

// unquoteWildcards turns the quoted "*" and "?" back into wildcards. Escaped
// backslashes are matched first so that a literal backslash before a
// wildcard keeps both.
var unquoteWildcards = strings.NewReplacer(`\\`, `\\`, `\*`, "*", `\?`, "?")

// wildcardPattern quotes every glob metacharacter of pattern except "*" and
// "?", so brackets and braces in project names match literally.
func wildcardPattern(pattern string) string {
	return unquoteWildcards.Replace(glob.QuoteMeta(pattern))
}

// SortByStart sorts activities chronologically, keeping file order for
// equal start times.
func SortByStart(activities []model.Activity) {
	slices.SortStableFunc(activities, func(a, b model.Activity) int {
		return a.Start.Compare(b.Start)
	})
}

// Round returns copies of activities with start and end rounded to d.
func Round(activities []model.Activity, d time.Duration) []model.Activity {
	if d <= 0 {
		return activities
	}
	out := make([]model.Activity, len(activities))
	for i, a := range activities {
		a.Start = timecalc.RoundTo(a.Start, d)
		if a.End != nil {
			end := timecalc.RoundTo(*a.End, d)
			a.End = &end
		}
		out[i] = a
	}
	return out
}

// Pair is a distinct description and project combination.
type Pair struct {
	Description string
	Project     string
}

// RecentPairs returns the distinct description/project pairs ordered by
// when they were last started, most recent last.
//
// For activities started in the order a, b, c, a, c the result is b, a, c.
func RecentPairs(activities []model.Activity) []Pair {
	sorted := slices.Clone(activities)
	SortByStart(sorted)

	seen := map[Pair]bool{}
	var pairs []Pair
	for i := len(sorted) - 1; i >= 0; i-- {
		p := Pair{Description: sorted[i].Description, Project: sorted[i].Project}
		if seen[p] {
			continue
		}
		seen[p] = true
		pairs = append(pairs, p)
	}
	slices.Reverse(pairs)
	return pairs
}

// LastByEnd returns the stopped activity that ended last.
func LastByEnd(activities []model.Activity) (model.Activity, bool) {
	var last model.Activity
	found := false
	for _, a := range activities {
		if !a.IsStopped() {
			continue
		}
		if !found || a.End.After(*last.End) {
			last, found = a, true
		}
	}
	return last, found
}

// LastByStart returns the activity that started last.
func LastByStart(activities []model.Activity) (model.Activity, bool) {
	var last model.Activity
	found := false
	for _, a := range activities {
		if !found || a.Start.After(last.Start) {
			last, found = a, true
		}
	}
	return last, found
}

// Projects returns the sorted distinct project names.
func Projects(activities []model.Activity) []string {
	var names []string
	for _, a := range activities {
		names = append(names, a.Project)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// ParseErrors returns the lines that could not be parsed.
func ParseErrors(lines []storage.Line) []storage.Line {
	var out []storage.Line
	for _, l := range lines {
		if !l.OK() {
			out = append(out, l)
		}
	}
	return out
}
