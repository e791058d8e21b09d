package dashboard

import (
	"fmt"
	"strings"
	"time"

	"secretary-cli/internal/model"
)

// Filter narrows the meeting list. Every non-empty criterion must match.
type Filter struct {
	Status     model.Status `json:"status,omitempty"`
	Department string       `json:"department,omitempty"`
	Room       string       `json:"room,omitempty"`
	// Date is YYYY-MM-DD, compared against the start time's date.
	Date string `json:"date,omitempty"`
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Validate rejects criteria that could never match anything by accident.
func (f Filter) Validate() error {
	if f.Status != "" && !f.Status.Valid() {
		return fmt.Errorf("invalid status %q", f.Status)
	}
	if strings.TrimSpace(f.Date) != "" {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(f.Date)); err != nil {
			return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", f.Date)
		}
	}
	return nil
}

func (f Filter) Match(m model.Meeting) bool {
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.Department != "" && m.Department != f.Department {
		return false
	}
	if f.Room != "" && m.Room != f.Room {
		return false
	}
	if d := strings.TrimSpace(f.Date); d != "" && m.StartTime.DatePart() != d {
		return false
	}
	return true
}

// FilterMeetings returns the matching meetings in input order. The result is
// always a new slice.
func FilterMeetings(ms []model.Meeting, f Filter) []model.Meeting {
	out := make([]model.Meeting, 0, len(ms))
	for _, m := range ms {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out
}
