package model

import "strings"

type Department struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   LocalTime `json:"createdAt"`
}

type Room struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Capacity is optional; the backend rejects non-positive values.
	Capacity *int   `json:"capacity,omitempty"`
	Location string `json:"location,omitempty"`
}

// Meeting references its department and room by name, not by id. Renaming a
// department or room leaves older meetings pointing at the previous name.
type Meeting struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Department  string    `json:"department"`
	Room        string    `json:"room"`
	Chairman    string    `json:"chairman"`
	Secretary   string    `json:"secretary"`
	StartTime   LocalTime `json:"startTime"`
	EndTime     LocalTime `json:"endTime"`
	Status      Status    `json:"status"`
}

type Statistics struct {
	TotalMeetings     int64 `json:"totalMeetings"`
	ScheduledMeetings int64 `json:"scheduledMeetings"`
	OngoingMeetings   int64 `json:"ongoingMeetings"`
	FinishedMeetings  int64 `json:"finishedMeetings"`

	MeetingsToday     int64 `json:"meetingsToday"`
	MeetingsThisWeek  int64 `json:"meetingsThisWeek"`
	MeetingsThisMonth int64 `json:"meetingsThisMonth"`
	MeetingsThisYear  int64 `json:"meetingsThisYear"`

	ByDepartment map[string]int64 `json:"byDepartment,omitempty"`
	ByRoom       map[string]int64 `json:"byRoom,omitempty"`
	ByStatus     map[string]int64 `json:"byStatus,omitempty"`
}

// PeriodStatistics is returned by the per-date, per-month and per-year
// statistics endpoints.
type PeriodStatistics struct {
	Total     int64 `json:"total"`
	Scheduled int64 `json:"scheduled"`
	Ongoing   int64 `json:"ongoing"`
	Finished  int64 `json:"finished"`
}

func FindDepartment(ds []Department, id int64) (*Department, bool) {
	for i := range ds {
		if ds[i].ID == id {
			return &ds[i], true
		}
	}
	return nil, false
}

func FindRoom(rs []Room, id int64) (*Room, bool) {
	for i := range rs {
		if rs[i].ID == id {
			return &rs[i], true
		}
	}
	return nil, false
}

func FindMeeting(ms []Meeting, id int64) (*Meeting, bool) {
	for i := range ms {
		if ms[i].ID == id {
			return &ms[i], true
		}
	}
	return nil, false
}

// DepartmentNames returns names in cache order, skipping blanks.
func DepartmentNames(ds []Department) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		if n := strings.TrimSpace(d.Name); n != "" {
			out = append(out, d.Name)
		}
	}
	return out
}

func RoomNames(rs []Room) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if n := strings.TrimSpace(r.Name); n != "" {
			out = append(out, r.Name)
		}
	}
	return out
}
