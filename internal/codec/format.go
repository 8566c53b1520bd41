package codec

import (
	"fmt"
	"log/slog"
	"time"
)

// Precision is the granularity of timestamps written to one log file.
type Precision int

const (
	// Minute writes timestamps as "2006-01-02 15:04".
	Minute Precision = iota
	// Second writes timestamps as "2006-01-02 15:04:05".
	Second
)

const (
	minuteLayout = "2006-01-02 15:04"
	secondLayout = "2006-01-02 15:04:05"

	// DateLayout is the layout of date arguments and list headers.
	DateLayout = "2006-01-02"
)

// ParsePrecision accepts "minute" or "second". An empty string means Minute.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "", "minute":
		return Minute, nil
	case "second":
		return Second, nil
	}
	return Minute, fmt.Errorf("unknown precision %q (want minute or second)", s)
}

func (p Precision) String() string {
	if p == Second {
		return "second"
	}
	return "minute"
}

// Layout returns the date-time layout for p.
func (p Precision) Layout() string {
	if p == Second {
		return secondLayout
	}
	return minuteLayout
}

// TimeLayout returns the time-of-day part of Layout.
func (p Precision) TimeLayout() string {
	if p == Second {
		return "15:04:05"
	}
	return "15:04"
}

// Unit returns the smallest duration representable at precision p.
func (p Precision) Unit() time.Duration {
	if p == Second {
		return time.Second
	}
	return time.Minute
}

func (p Precision) other() Precision {
	if p == Second {
		return Minute
	}
	return Second
}

// Format carries the settings shared by Parse and Serialize.
// The zero value uses minute precision, the local time zone and slog.Default.
type Format struct {
	Precision Precision
	// Location is the zone parsed timestamps are placed in. Nil means time.Local.
	Location *time.Location
	// Logger receives precision mismatch warnings. Nil means slog.Default().
	Logger *slog.Logger
}

// NewFormat returns a Format with precision p and the default zone and logger.
func NewFormat(p Precision) Format {
	return Format{Precision: p}
}

func (f Format) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

func (f Format) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

// FormatTime renders t with the configured precision.
func (f Format) FormatTime(t time.Time) string {
	return t.Format(f.Precision.Layout())
}

// Truncate drops everything below the configured precision.
func (f Format) Truncate(t time.Time) time.Time {
	return t.Truncate(f.Precision.Unit())
}

// ParseTime parses s at the configured precision, falling back to the other
// precision. A fallback result is rounded to the nearest unit of the
// configured precision (ties round up) and a warning is logged.
func (f Format) ParseTime(s string) (time.Time, error) {
	loc := f.location()
	if t, err := time.ParseInLocation(f.Precision.Layout(), s, loc); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(f.Precision.other().Layout(), s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateTimeParse, s)
	}
	f.logger().Warn("timestamp precision mismatch",
		"text", s,
		"precision", f.Precision.String())
	return t.Round(f.Precision.Unit()), nil
}

// In converts t to the zone of the log.
func (f Format) In(t time.Time) time.Time {
	return t.In(f.location())
}
