package value

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ISO8601 is the layout used for serialized timestamps.
const ISO8601 = "2006-01-02T15:04:05-07:00"

var timestampLayouts = []string{
	ISO8601,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// Timestamp is an instant in time.
type Timestamp struct {
	t time.Time
}

func Now() Timestamp {
	return Timestamp{t: time.Now()}
}

func TimestampFrom(t time.Time) Timestamp {
	return Timestamp{t: t}
}

func TimestampFromUnix(sec int64) Timestamp {
	return Timestamp{t: time.Unix(sec, 0)}
}

// ParseTimestamp accepts ISO 8601 / RFC 3339 first and falls back to a few
// common date and date-time forms. Strings without a zone are read as UTC.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{t: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (ts Timestamp) Time() time.Time { return ts.t }
func (ts Timestamp) Unix() int64     { return ts.t.Unix() }
func (ts Timestamp) IsZero() bool    { return ts.t.IsZero() }

func (ts Timestamp) ISO8601() string {
	return ts.t.Format(ISO8601)
}

func (ts Timestamp) Format(layout string) string {
	return ts.t.Format(layout)
}

func (ts Timestamp) String() string {
	return ts.ISO8601()
}

func (ts Timestamp) In(loc *time.Location) Timestamp {
	return Timestamp{t: ts.t.In(loc)}
}

func (ts Timestamp) IsPast() bool   { return ts.t.Before(time.Now()) }
func (ts Timestamp) IsFuture() bool { return ts.t.After(time.Now()) }

// DiffFrom is the absolute distance between the two instants in whole
// seconds.
func (ts Timestamp) DiffFrom(other Timestamp) Duration {
	d := ts.Unix() - other.Unix()
	if d < 0 {
		d = -d
	}
	return Duration{seconds: d}
}

// Equal compares at second precision.
func (ts Timestamp) Equal(other Timestamp) bool  { return ts.Unix() == other.Unix() }
func (ts Timestamp) Before(other Timestamp) bool { return ts.t.Before(other.t) }
func (ts Timestamp) After(other Timestamp) bool  { return ts.t.After(other.t) }

func (ts Timestamp) ToMap() map[string]any {
	return map[string]any{
		"unix":    ts.Unix(),
		"iso8601": ts.ISO8601(),
	}
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.ISO8601())
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	if s == "" {
		*ts = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
