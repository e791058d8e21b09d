package publish

import (
	"bytes"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"secretary-cli/internal/handoff"
	"secretary-cli/internal/model"
)

const (
	icalProductID = "-//secretary//agenda//VI"
	// Meeting times carry no zone, so they are written as floating times.
	icalFloatingLayout = "20060102T150405"
)

// RenderICS renders meetings as one VCALENDAR with a VEVENT per meeting.
// Meetings without a start time are skipped. stamp becomes each DTSTAMP.
func RenderICS(ms []model.Meeting, stamp time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icalProductID)

	for _, m := range ms {
		if m.StartTime.IsZero() {
			continue
		}
		ev := ical.NewEvent()
		ev.Props.SetText(ical.PropUID, strings.ToLower(handoff.MeetingCode(m.ID))+"@secretary")
		ev.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		setFloating(ev.Props, ical.PropDateTimeStart, m.StartTime)
		if !m.EndTime.IsZero() {
			setFloating(ev.Props, ical.PropDateTimeEnd, m.EndTime)
		}
		ev.Props.SetText(ical.PropSummary, m.Title)
		if loc := strings.TrimSpace(m.Room); loc != "" {
			ev.Props.SetText(ical.PropLocation, loc)
		}
		if desc := icalDescription(m); desc != "" {
			ev.Props.SetText(ical.PropDescription, desc)
		}
		if m.Status != "" {
			ev.Props.SetText(ical.PropCategories, m.Status.Label())
		}
		cal.Children = append(cal.Children, ev.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setFloating(props ical.Props, name string, t model.LocalTime) {
	p := ical.NewProp(name)
	p.Value = t.Format(icalFloatingLayout)
	props.Set(p)
}

func icalDescription(m model.Meeting) string {
	var lines []string
	add := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			lines = append(lines, label+": "+v)
		}
	}
	add("Mã", handoff.MeetingCode(m.ID))
	add("Phòng ban", m.Department)
	add("Chủ trì", m.Chairman)
	add("Thư ký", m.Secretary)
	if d := strings.TrimSpace(m.Description); d != "" {
		lines = append(lines, "", d)
	}
	return strings.Join(lines, "\n")
}
