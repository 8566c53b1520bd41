// Package tracker implements the commands that read the activity log, change
// it in memory and write it back.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/model"
	"github.com/Tiliavir/trivial-time-tracker/internal/query"
	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
)

// ErrNothingToContinue is returned by Continue when the log has no activity.
var ErrNothingToContinue = errors.New("no activity has been started before")

// Tracker operates on one activity log file.
type Tracker struct {
	Path   string
	Format codec.Format
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time
}

// New returns a Tracker for the log at path.
func New(path string, f codec.Format) *Tracker {
	return &Tracker{Path: path, Format: f}
}

func (t *Tracker) now() time.Time {
	if t.Now == nil {
		return time.Now()
	}
	return t.Now()
}

// at returns ts, or the current time when ts is zero, truncated to the
// precision of the log.
func (t *Tracker) at(ts time.Time) time.Time {
	if ts.IsZero() {
		ts = t.now()
	}
	return t.Format.Truncate(ts)
}

func (t *Tracker) read() ([]storage.Line, error) {
	return storage.Read(t.Format, t.Path)
}

func (t *Tracker) write(lines []storage.Line) error {
	if err := storage.Write(t.Format, t.Path, lines); err != nil {
		return fmt.Errorf("could not write to file %s: %w", t.Path, err)
	}
	return nil
}

// Activities returns every parsable activity of the log in file order.
func (t *Tracker) Activities() ([]model.Activity, error) {
	lines, err := t.read()
	if err != nil {
		return nil, err
	}
	return query.Activities(lines), nil
}

// Start stops all running activities at the start time and appends a new
// running activity. A missing log file is created. A zero at means now.
func (t *Tracker) Start(project, description string, at time.Time) (model.Activity, []model.Activity, error) {
	lines, err := storage.ReadOrEmpty(t.Format, t.Path)
	if err != nil {
		return model.Activity{}, nil, err
	}
	start := t.at(at)
	stopped := stopRunning(lines, start)

	a := model.Start(project, description, start)
	lines = append(lines, storage.NewLineForActivity(a))
	if err := t.write(lines); err != nil {
		return model.Activity{}, nil, err
	}
	return a, stopped, nil
}

// Stop ends every running activity. A zero at means now.
func (t *Tracker) Stop(at time.Time) ([]model.Activity, error) {
	lines, err := t.read()
	if err != nil {
		return nil, err
	}
	stopped := stopRunning(lines, t.at(at))
	if err := t.write(lines); err != nil {
		return nil, err
	}
	return stopped, nil
}

// ChangeOptions lists the fields to change. Nil and zero fields are kept.
type ChangeOptions struct {
	Project     *string
	Description *string
	Start       time.Time
}

// Change edits all running activities and returns the ones that differ
// afterwards. Only those lines are re-serialized.
func (t *Tracker) Change(opts ChangeOptions) ([]model.Activity, error) {
	lines, err := t.read()
	if err != nil {
		return nil, err
	}
	var start time.Time
	if !opts.Start.IsZero() {
		start = t.Format.Truncate(opts.Start)
	}

	var changed []model.Activity
	for i := range lines {
		l := &lines[i]
		if !l.OK() || l.Activity.IsStopped() {
			continue
		}
		a := &l.Activity
		dirty := false
		if opts.Project != nil && *opts.Project != a.Project {
			a.Project = *opts.Project
			dirty = true
		}
		if opts.Description != nil && *opts.Description != a.Description {
			a.Description = *opts.Description
			dirty = true
		}
		if !start.IsZero() && !start.Equal(a.Start) {
			a.Start = start
			dirty = true
		}
		if dirty {
			l.MarkChanged()
			changed = append(changed, *a)
		}
	}
	if err := t.write(lines); err != nil {
		return nil, err
	}
	return changed, nil
}

// Cancel removes all running activities from the log. Lines that cannot be
// parsed are kept.
func (t *Tracker) Cancel() ([]model.Activity, error) {
	lines, err := t.read()
	if err != nil {
		return nil, err
	}
	kept := lines[:0:0]
	var canceled []model.Activity
	for _, l := range lines {
		if l.OK() && !l.Activity.IsStopped() {
			canceled = append(canceled, l.Activity)
			continue
		}
		kept = append(kept, l)
	}
	if err := t.write(kept); err != nil {
		return nil, err
	}
	return canceled, nil
}

// Continue starts a new activity with the description and project of the
// number-th most recent distinct pair (0 is the latest). Non-nil project or
// description override the pair.
func (t *Tracker) Continue(number int, project, description *string, at time.Time) (model.Activity, []model.Activity, error) {
	lines, err := t.read()
	if err != nil {
		return model.Activity{}, nil, err
	}
	pairs := query.RecentPairs(query.Activities(lines))
	if len(pairs) == 0 {
		return model.Activity{}, nil, ErrNothingToContinue
	}
	if number < 0 || number >= len(pairs) {
		return model.Activity{}, nil, fmt.Errorf("less than %d distinct activities have been logged yet", number+1)
	}
	pair := pairs[len(pairs)-1-number]
	if project != nil {
		pair.Project = *project
	}
	if description != nil {
		pair.Description = *description
	}

	start := t.at(at)
	stopped := stopRunning(lines, start)
	a := model.Start(pair.Project, pair.Description, start)
	lines = append(lines, storage.NewLineForActivity(a))
	if err := t.write(lines); err != nil {
		return model.Activity{}, nil, err
	}
	return a, stopped, nil
}

// stopRunning ends all running activities at end and marks their lines.
// More than one activity may be running when the log was edited by hand.
func stopRunning(lines []storage.Line, end time.Time) []model.Activity {
	var stopped []model.Activity
	for i := range lines {
		l := &lines[i]
		if !l.OK() || l.Activity.IsStopped() {
			continue
		}
		l.Activity.Stop(end)
		l.MarkChanged()
		stopped = append(stopped, l.Activity)
	}
	return stopped
}
