package storage

import (
	"strings"

	"github.com/Tiliavir/trivial-time-tracker/internal/codec"
	"github.com/Tiliavir/trivial-time-tracker/internal/model"
)

// Line is one physical line of the activity log.
//
// A line read from disk keeps its trimmed text until it is marked changed and
// is written back verbatim as long as it is unchanged. A line without text is
// always re-serialized from its activity.
type Line struct {
	// Number is the 1-based position in the file; 0 for new lines.
	Number int
	// Activity is valid only when Err is nil. Callers may mutate it in place
	// and must call MarkChanged afterwards.
	Activity model.Activity
	// Err holds the parse error of a line that is not an activity.
	Err error

	raw     string
	loaded  bool
	changed bool
}

// NewLine trims text and parses it with f.
func NewLine(f codec.Format, text string, number int) Line {
	raw := strings.TrimSpace(text)
	a, err := f.Parse(raw)
	return Line{
		Number:   number,
		Activity: a,
		Err:      err,
		raw:      raw,
		loaded:   true,
	}
}

// NewLineForActivity returns a changed line for a fresh activity.
func NewLineForActivity(a model.Activity) Line {
	return Line{Activity: a, changed: true}
}

// OK reports whether the line holds an activity.
func (l *Line) OK() bool {
	return l.Err == nil
}

// Changed reports whether the line must be re-serialized on write.
func (l *Line) Changed() bool {
	return l.changed
}

// Raw returns the text read from disk, or "" once the line is changed.
func (l *Line) Raw() string {
	return l.raw
}

// MarkChanged flags the activity for re-serialization. Lines that failed to
// parse have nothing to re-serialize and are left untouched.
func (l *Line) MarkChanged() {
	if l.Err != nil {
		return
	}
	l.changed = true
	l.raw = ""
}

// text returns the bytes written for l, including the newline. A line that
// was not read from disk has no text to replay and is serialized.
func (l *Line) text(f codec.Format) string {
	if l.changed || (!l.loaded && l.Err == nil) {
		return f.Serialize(l.Activity)
	}
	return l.raw + "\n"
}
