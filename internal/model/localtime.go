package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LocalTimeLayout is the zone-less wire format of backend timestamps.
const LocalTimeLayout = "2006-01-02T15:04:05"

// LocalTime is a wall-clock timestamp without a zone. The backend stores
// meeting times as local date-times, so they are never converted.
type LocalTime struct {
	time.Time
}

var localTimeInputLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	LocalTimeLayout,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

// ParseLocalTime parses backend and form inputs. RFC 3339 input keeps its
// wall-clock reading and drops the offset.
func ParseLocalTime(s string) (LocalTime, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LocalTime{}, fmt.Errorf("empty datetime")
	}
	for _, layout := range localTimeInputLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return LocalTime{Time: t}, nil
		}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return NewLocalTime(t), nil
	}
	return LocalTime{}, fmt.Errorf("invalid datetime %q (expected YYYY-MM-DDTHH:MM[:SS])", s)
}

// DatePart returns YYYY-MM-DD, or "" for the zero value.
func (t LocalTime) DatePart() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func (t LocalTime) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LocalTimeLayout)
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(LocalTimeLayout))
}

func (t *LocalTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = LocalTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*t = LocalTime{}
		return nil
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
