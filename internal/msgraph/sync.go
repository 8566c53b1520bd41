package msgraph

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/model"
	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
)

// SyncResult holds counters for a sync operation.
type SyncResult struct {
	Imported int
	Skipped  int
	Updated  int
	Errors   int
}

// SyncOptions configures a sync run.
type SyncOptions struct {
	Project  string
	Timezone string
	DryRun   bool
	// Out receives one progress line per event. Nil discards progress.
	Out io.Writer
}

// parseGraphTime parses a Graph API dateTime string in the given timezone.
// Graph returns times like "2026-02-27T09:00:00.0000000" without a zone suffix
// when a Prefer: outlook.timezone header is set.
func parseGraphTime(dt, tz string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano} {
		if t, err := time.Parse(layout, dt); err == nil {
			return t, nil
		}
	}

	loc := time.UTC
	if tz != "" {
		if l, err := time.LoadLocation(tz); err == nil {
			loc = l
		}
	}

	for _, layout := range []string{
		"2006-01-02T15:04:05.0000000",
		"2006-01-02T15:04:05",
	} {
		if t, err := time.ParseInLocation(layout, dt, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse graph time %q", dt)
}

// describe builds a single-line activity description from subject and location.
func describe(event CalendarEvent) string {
	desc := event.Subject
	if event.Location.DisplayName != "" {
		desc += " @ " + event.Location.DisplayName
	}
	return strings.Join(strings.Fields(desc), " ")
}

// shouldSkip returns true if the event should not be imported.
func shouldSkip(event CalendarEvent) bool {
	switch {
	case event.IsCancelled, event.IsAllDay:
		return true
	case event.Sensitivity == "private", event.ShowAs == "free":
		return true
	case event.Start.DateTime == "" || event.End.DateTime == "":
		return true
	}
	return false
}

// MapEventToActivity converts a Graph event into a stopped activity in the
// zone and precision of f.
func MapEventToActivity(event CalendarEvent, f codec.Format, timezone, project string) (model.Activity, error) {
	start, err := parseGraphTime(event.Start.DateTime, timezone)
	if err != nil {
		return model.Activity{}, fmt.Errorf("parsing start time: %w", err)
	}
	end, err := parseGraphTime(event.End.DateTime, timezone)
	if err != nil {
		return model.Activity{}, fmt.Errorf("parsing end time: %w", err)
	}
	a := model.Start(project, describe(event), f.Truncate(f.In(start)))
	a.Stop(f.Truncate(f.In(end)))
	return a, nil
}

// findByStart returns the index of the activity line with the same project
// and start, or -1.
func findByStart(lines []storage.Line, a model.Activity) int {
	for i := range lines {
		l := &lines[i]
		if l.OK() && l.Activity.Project == a.Project && l.Activity.Start.Equal(a.Start) {
			return i
		}
	}
	return -1
}

func sameActivity(a, b model.Activity) bool {
	return a.Description == b.Description &&
		a.End != nil && b.End != nil && a.End.Equal(*b.End)
}

// SyncEvents merges events into lines and returns the updated lines.
// An event whose project and start match an existing activity updates that
// line when end or description differ; otherwise it is appended. In dry-run
// mode lines are returned unmodified.
func SyncEvents(lines []storage.Line, events []CalendarEvent, f codec.Format, opts SyncOptions) ([]storage.Line, SyncResult) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	var result SyncResult

	for _, event := range events {
		if shouldSkip(event) {
			continue
		}

		a, err := MapEventToActivity(event, f, opts.Timezone, opts.Project)
		if err != nil {
			fmt.Fprintf(out, "  ! Error mapping event %q: %v\n", event.Subject, err)
			result.Errors++
			continue
		}
		dur := fmt.Sprintf(" (%s)", timecalc.FormatDuration(a.Duration(a.Start)))

		idx := findByStart(lines, a)
		switch {
		case idx >= 0 && sameActivity(lines[idx].Activity, a):
			fmt.Fprintf(out, "  – Skipped:  %s (already exists)\n", event.Subject)
			result.Skipped++
		case idx >= 0:
			if !opts.DryRun {
				lines[idx].Activity = a
				lines[idx].MarkChanged()
			}
			fmt.Fprintf(out, "  ↑ Updated:  %s%s\n", event.Subject, dur)
			result.Updated++
		default:
			if !opts.DryRun {
				lines = append(lines, storage.NewLineForActivity(a))
			}
			fmt.Fprintf(out, "  ✓ Imported: %s%s\n", event.Subject, dur)
			result.Imported++
		}
	}
	return lines, result
}
