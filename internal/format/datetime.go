package format

import (
	"fmt"
	"time"

	"secretary-cli/internal/model"
)

// Display layouts follow the vi-VN locale the dashboard ships with.
const (
	dateLayout       = "02/01/2006"
	dateTimeLayout   = "15:04 02/01/2006"
	inputLayout      = "2006-01-02T15:04"
	emptyPlaceholder = "-"
)

var viWeekdays = [...]string{
	time.Sunday:    "Chủ Nhật",
	time.Monday:    "Thứ Hai",
	time.Tuesday:   "Thứ Ba",
	time.Wednesday: "Thứ Tư",
	time.Thursday:  "Thứ Năm",
	time.Friday:    "Thứ Sáu",
	time.Saturday:  "Thứ Bảy",
}

// Date renders a date like 01/05/2024, or "-" when t is zero.
func Date(t model.LocalTime) string {
	if t.IsZero() {
		return emptyPlaceholder
	}
	return t.Format(dateLayout)
}

// DateTime renders 09:00 01/05/2024, or "-" when t is zero.
func DateTime(t model.LocalTime) string {
	if t.IsZero() {
		return emptyPlaceholder
	}
	return t.Format(dateTimeLayout)
}

// DateTimeInput renders the value a datetime-local form field expects
// (2024-05-01T09:00), or "" when t is zero.
func DateTimeInput(t model.LocalTime) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(inputLayout)
}

// Clock renders the long header clock: "09:00 Thứ Tư, 1 tháng 5, 2024".
func Clock(now time.Time) string {
	return fmt.Sprintf("%s %s, %d tháng %d, %d",
		now.Format("15:04"),
		viWeekdays[now.Weekday()],
		now.Day(),
		int(now.Month()),
		now.Year(),
	)
}
