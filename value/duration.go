package value

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrNegativeDuration is returned when a duration would be below zero.
var ErrNegativeDuration = errors.New("duration cannot be negative")

// Duration is a non-negative number of whole seconds.
type Duration struct {
	seconds int64
}

func DurationFromSeconds(s int64) (Duration, error) {
	if s < 0 {
		return Duration{}, ErrNegativeDuration
	}
	return Duration{seconds: s}, nil
}

func DurationFromMinutes(m float64) (Duration, error) {
	return DurationFromSeconds(int64(math.Round(m * 60)))
}

func DurationFromHours(h float64) (Duration, error) {
	return DurationFromSeconds(int64(math.Round(h * 3600)))
}

// DurationFrom truncates d to whole seconds; negative values are an error.
func DurationFrom(d time.Duration) (Duration, error) {
	return DurationFromSeconds(int64(d / time.Second))
}

// ParseTimeSpan parses the .NET TimeSpan form used by the *arr APIs,
// "d.hh:mm:ss" or "hh:mm:ss". Fractional seconds are dropped. An empty
// string yields ok == false.
func ParseTimeSpan(s string) (d Duration, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Duration{}, false
	}

	var total int64
	if day, rest, found := strings.Cut(s, "."); found && strings.Contains(rest, ":") {
		n, _ := strconv.ParseInt(day, 10, 64)
		total += n * 86400
		s = rest
	}

	parts := strings.Split(s, ":")
	if len(parts) == 3 {
		h, _ := strconv.ParseInt(parts[0], 10, 64)
		m, _ := strconv.ParseInt(parts[1], 10, 64)
		sec, _, _ := strings.Cut(parts[2], ".")
		secs, _ := strconv.ParseInt(sec, 10, 64)
		total += h*3600 + m*60 + secs
	}

	return Duration{seconds: max(total, 0)}, true
}

func (d Duration) Seconds() int64     { return d.seconds }
func (d Duration) Minutes() float64   { return float64(d.seconds) / 60 }
func (d Duration) Hours() float64     { return float64(d.seconds) / 3600 }
func (d Duration) IsZero() bool       { return d.seconds == 0 }
func (d Duration) Std() time.Duration { return time.Duration(d.seconds) * time.Second }

// Format renders "1d 2h 3m 4s", omitting zero components, or "0s".
func (d Duration) Format() string {
	if d.seconds == 0 {
		return "0s"
	}

	rem := d.seconds
	days := rem / 86400
	rem %= 86400
	hours := rem / 3600
	rem %= 3600
	minutes := rem / 60
	seconds := rem % 60

	var parts []string
	if days > 0 {
		parts = append(parts, strconv.FormatInt(days, 10)+"d")
	}
	if hours > 0 {
		parts = append(parts, strconv.FormatInt(hours, 10)+"h")
	}
	if minutes > 0 {
		parts = append(parts, strconv.FormatInt(minutes, 10)+"m")
	}
	if seconds > 0 {
		parts = append(parts, strconv.FormatInt(seconds, 10)+"s")
	}
	return strings.Join(parts, " ")
}

func (d Duration) String() string {
	return d.Format()
}

func (d Duration) Add(other Duration) Duration {
	return Duration{seconds: d.seconds + other.seconds}
}

// Subtract floors at zero.
func (d Duration) Subtract(other Duration) Duration {
	return Duration{seconds: max(d.seconds-other.seconds, 0)}
}

func (d Duration) Equal(other Duration) bool       { return d.seconds == other.seconds }
func (d Duration) GreaterThan(other Duration) bool { return d.seconds > other.seconds }

func (d Duration) ToMap() map[string]any {
	return map[string]any{
		"seconds":   d.seconds,
		"formatted": d.Format(),
	}
}
