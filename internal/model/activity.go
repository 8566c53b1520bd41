package model

import "time"

// Activity is one tracked interval of work.
// End is nil while the activity is still running.
type Activity struct {
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end"`
	Project     string     `json:"project"`
	Description string     `json:"description"`
}

// Start creates a running activity. A zero start time means now.
func Start(project, description string, start time.Time) Activity {
	if start.IsZero() {
		start = time.Now()
	}
	return Activity{
		Start:       start,
		Project:     project,
		Description: description,
	}
}

// Stop sets the end of the activity. A zero end time means now.
func (a *Activity) Stop(end time.Time) {
	if end.IsZero() {
		end = time.Now()
	}
	a.End = &end
}

// IsStopped reports whether the activity has an end time.
func (a Activity) IsStopped() bool {
	return a.End != nil
}

// Duration returns end - start, or now - start for a running activity.
// Negative durations are returned as is.
func (a Activity) Duration(now time.Time) time.Duration {
	if a.End != nil {
		return a.End.Sub(a.Start)
	}
	return now.Sub(a.Start)
}
