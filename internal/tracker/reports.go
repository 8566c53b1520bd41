package tracker

import (
	"sort"
	"time"

	"github.com/Tiliavir/trivial-time-tracker/internal/model"
	"github.com/Tiliavir/trivial-time-tracker/internal/query"
	"github.com/Tiliavir/trivial-time-tracker/internal/storage"
	"github.com/Tiliavir/trivial-time-tracker/internal/timecalc"
)

// List returns the activities matching filter, sorted by start. Start and
// end are rounded to round first when round > 0.
func (t *Tracker) List(filter query.Filter, round time.Duration) ([]model.Activity, error) {
	activities, err := t.Activities()
	if err != nil {
		return nil, err
	}
	return query.Apply(query.Round(activities, round), filter)
}

// Running returns all running activities in file order.
func (t *Tracker) Running() ([]model.Activity, error) {
	activities, err := t.Activities()
	if err != nil {
		return nil, err
	}
	return query.Running(activities), nil
}

// Last returns the last n distinct description/project pairs, most recent
// last.
func (t *Tracker) Last(n int) ([]query.Pair, error) {
	activities, err := t.Activities()
	if err != nil {
		return nil, err
	}
	pairs := query.RecentPairs(activities)
	if n > 0 && len(pairs) > n {
		pairs = pairs[len(pairs)-n:]
	}
	return pairs, nil
}

// Projects returns the sorted distinct projects, optionally only those with
// a running activity.
func (t *Tracker) Projects(runningOnly bool) ([]string, error) {
	activities, err := t.Activities()
	if err != nil {
		return nil, err
	}
	if runningOnly {
		activities = query.Running(activities)
	}
	return query.Projects(activities), nil
}

// Status summarises the current activity and recent totals.
type Status struct {
	Project      string
	Current      *model.Activity
	Elapsed      time.Duration
	Today        time.Duration
	CurrentWeek  time.Duration
	CurrentMonth time.Duration
}

// Status reports the running activity and the time tracked today, this week
// and this month, limited to projects matching pattern.
func (t *Tracker) Status(pattern string, round time.Duration) (Status, error) {
	now := t.now()
	activities, err := t.List(query.Filter{Project: pattern}, round)
	if err != nil {
		return Status{}, err
	}

	st := Status{Project: pattern}
	today := timecalc.StartOfDay(now)
	monday, _ := timecalc.WeekRange(now)
	month := timecalc.StartOfMonth(now)
	for i, a := range activities {
		if !a.IsStopped() && st.Current == nil {
			st.Current = &activities[i]
			st.Elapsed = a.Duration(now)
		}
		day := timecalc.StartOfDay(a.Start)
		if day.After(today) {
			continue
		}
		d := a.Duration(now)
		if day.Equal(today) {
			st.Today += d
		}
		if !day.Before(monday) {
			st.CurrentWeek += d
		}
		if !day.Before(month) {
			st.CurrentMonth += d
		}
	}
	return st, nil
}

// ProjectReport is the time spent on one project.
type ProjectReport struct {
	Project      string
	Total        time.Duration
	Descriptions []DescriptionReport
}

// DescriptionReport is the time spent on one description within a project.
type DescriptionReport struct {
	Description string
	Total       time.Duration
}

// Report is the result of Report.
type Report struct {
	Projects []ProjectReport
	Total    time.Duration
}

// Report groups the activities matching filter by project and description.
// Running activities count up to now.
func (t *Tracker) Report(filter query.Filter, round time.Duration) (Report, error) {
	now := t.now()
	activities, err := t.List(filter, round)
	if err != nil {
		return Report{}, err
	}

	byProject := map[string]map[string]time.Duration{}
	for _, a := range activities {
		d := a.Duration(now)
		if byProject[a.Project] == nil {
			byProject[a.Project] = map[string]time.Duration{}
		}
		byProject[a.Project][a.Description] += d
	}

	var r Report
	for project, descriptions := range byProject {
		pr := ProjectReport{Project: project}
		for desc, d := range descriptions {
			pr.Descriptions = append(pr.Descriptions, DescriptionReport{Description: desc, Total: d})
			pr.Total += d
		}
		sort.Slice(pr.Descriptions, func(i, j int) bool {
			return pr.Descriptions[i].Description < pr.Descriptions[j].Description
		})
		r.Projects = append(r.Projects, pr)
		r.Total += pr.Total
	}
	sort.Slice(r.Projects, func(i, j int) bool {
		return r.Projects[i].Project < r.Projects[j].Project
	})
	return r, nil
}

// Check returns the lines of the log that could not be parsed.
func (t *Tracker) Check() ([]storage.Line, error) {
	lines, err := t.read()
	if err != nil {
		return nil, err
	}
	return query.ParseErrors(lines), nil
}

// Problem kinds reported by Sanity.
const (
	ProblemNegativeDuration = "negative duration"
	ProblemOverlap          = "overlaps with the following activity"
)

// Issue is one finding of Sanity.
type Issue struct {
	Line     int
	Activity model.Activity
	Problem  string
}

// Sanity looks for activities that end before they start and for stopped
// activities that end after the next activity started.
func (t *Tracker) Sanity() ([]Issue, error) {
	lines, err := t.read()
	if err != nil {
		return nil, err
	}
	var ok []storage.Line
	for _, l := range lines {
		if l.OK() {
			ok = append(ok, l)
		}
	}
	sort.SliceStable(ok, func(i, j int) bool {
		return ok[i].Activity.Start.Before(ok[j].Activity.Start)
	})

	var issues []Issue
	for i, l := range ok {
		a := l.Activity
		if a.End == nil {
			continue
		}
		if a.End.Before(a.Start) {
			issues = append(issues, Issue{Line: l.Number, Activity: a, Problem: ProblemNegativeDuration})
			continue
		}
		if i+1 < len(ok) && a.End.After(ok[i+1].Activity.Start) {
			issues = append(issues, Issue{Line: l.Number, Activity: a, Problem: ProblemOverlap})
		}
	}
	return issues, nil
}
