package model

import (
	"fmt"
	"strings"
)

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusOngoing   Status = "ONGOING"
	StatusFinished  Status = "FINISHED"
)

// StatusOrder is the fixed lifecycle order used by the status cycle.
var StatusOrder = []Status{StatusScheduled, StatusOngoing, StatusFinished}

var statusLabels = map[Status]string{
	StatusScheduled: "Đã lên lịch",
	StatusOngoing:   "Đang diễn ra",
	StatusFinished:  "Đã kết thúc",
}

// Next returns the cyclic successor: SCHEDULED -> ONGOING -> FINISHED -> SCHEDULED.
// An unrecognized status restarts the cycle at SCHEDULED.
func (s Status) Next() Status {
	idx := -1
	for i, st := range StatusOrder {
		if st == s {
			idx = i
			break
		}
	}
	return StatusOrder[(idx+1)%len(StatusOrder)]
}

// Label returns the display name, or the raw value for unknown statuses.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts any casing plus a few short aliases used on the command line.
func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SCHEDULED", "SCHEDULE", "PLANNED":
		return StatusScheduled, nil
	case "ONGOING", "LIVE", "RUNNING":
		return StatusOngoing, nil
	case "FINISHED", "DONE", "ENDED":
		return StatusFinished, nil
	case "":
		return "", fmt.Errorf("invalid status: empty")
	default:
		return "", fmt.Errorf("invalid status %q (expected SCHEDULED, ONGOING or FINISHED)", strings.TrimSpace(s))
	}
}
