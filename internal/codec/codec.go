// Package codec reads and writes the activity line format:
//
//	<start>[ - <end>] | <project> | <description>
//
// Project and description are escaped so that they may contain pipes and
// backslashes.
package codec

import (
	"errors"
	"strings"

	"github.com/Tiliavir/trivial-time-tracker/internal/model"
)

var (
	// ErrGeneralParse is returned for lines without a project segment.
	ErrGeneralParse = errors.New("could not parse activity")
	// ErrDateTimeParse is returned when a timestamp matches neither precision.
	ErrDateTimeParse = errors.New("could not parse date or time of activity")
)

const (
	timeSeparator = " - "
	maxSegments   = 3
)

// Parse decodes one line. Segments after the description are ignored.
func (f Format) Parse(line string) (model.Activity, error) {
	parts := make([]string, 0, maxSegments)
	for seg := range SplitEscaped(line) {
		parts = append(parts, seg)
		if len(parts) == maxSegments {
			break
		}
	}
	if len(parts) < 2 {
		return model.Activity{}, ErrGeneralParse
	}

	startText, endText, hasEnd := strings.Cut(parts[0], timeSeparator)
	start, err := f.ParseTime(strings.TrimSpace(startText))
	if err != nil {
		return model.Activity{}, err
	}
	a := model.Activity{
		Start:   start,
		Project: strings.TrimSpace(parts[1]),
	}
	if hasEnd {
		end, err := f.ParseTime(strings.TrimSpace(endText))
		if err != nil {
			return model.Activity{}, err
		}
		a.End = &end
	}
	if len(parts) > 2 {
		a.Description = strings.TrimSpace(parts[2])
	}
	return a, nil
}

// lineBreaks replaces line breaks so that one activity stays one line.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// Serialize encodes a as one line including the trailing newline. Line
// breaks inside project or description are written as spaces.
func (f Format) Serialize(a model.Activity) string {
	var b strings.Builder
	b.WriteString(f.FormatTime(a.Start))
	if a.End != nil {
		b.WriteString(timeSeparator)
		b.WriteString(f.FormatTime(*a.End))
	}
	b.WriteString(" | ")
	b.WriteString(Escape(singleLine(a.Project)))
	b.WriteString(" | ")
	b.WriteString(Escape(singleLine(a.Description)))
	b.WriteByte('\n')
	return b.String()
}
