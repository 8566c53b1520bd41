package timecalc

import (
	"fmt"
	"math"
	"time"
)

// FormatDuration formats d like "1d 2h 05m", "45m" or "30s".
// Negative durations are prefixed with "-".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}
	days := int64(d / (24 * time.Hour))
	hours := int64(d / time.Hour)
	minutes := int64(d / time.Minute)

	s := ""
	if days > 0 {
		s += fmt.Sprintf("%dd ", days)
	}
	if hours > 0 {
		s += fmt.Sprintf("%dh ", hours%24)
	}
	if minutes > 0 {
		return s + fmt.Sprintf("%02dm", minutes%60)
	}
	return s + fmt.Sprintf("%ds", int64(d/time.Second)%60)
}

// FormatDurationHHMMSS formats d as HH:MM:SS.
func FormatDurationHHMMSS(d time.Duration) string {
	seconds := int64(d / time.Second)
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := StartOfDay(t.AddDate(0, 0, -(wd - 1)))
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// LastWeekRange returns the Monday and Sunday of the week before t.
func LastWeekRange(t time.Time) (time.Time, time.Time) {
	return WeekRange(t.AddDate(0, 0, -7))
}

// StartOfMonth returns 00:00 of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// RoundTo rounds t to the nearest multiple of d counted from the Unix epoch
// in t's wall clock. Ties round up. d <= 0 returns t unchanged.
func RoundTo(t time.Time, d time.Duration) time.Time {
	if d <= 0 {
		return t
	}
	_, offset := t.Zone()
	wall := t.Unix() + int64(offset)
	step := int64(d / time.Second)
	if step <= 0 {
		return t
	}
	rounded := int64(math.Floor(float64(wall)/float64(step)+0.5)) * step
	return time.Unix(rounded-int64(offset), 0).In(t.Location())
}
