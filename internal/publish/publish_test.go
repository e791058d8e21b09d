package publish

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"

	"secretary-cli/internal/model"
)

func mustTime(t *testing.T, s string) model.LocalTime {
	t.Helper()
	v, err := model.ParseLocalTime(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}

func TestRenderAgendaMarkdown_GroupsByDay(t *testing.T) {
	t.Parallel()

	ms := []model.Meeting{
		{ID: 2, Title: "Review", Department: "IT", StartTime: mustTime(t, "2024-05-02T14:00:00"), Status: model.StatusScheduled},
		{ID: 1, Title: "Standup", Department: "IT", StartTime: mustTime(t, "2024-05-01T09:00:00"), Status: model.StatusFinished},
		{ID: 3, Title: "Retro", StartTime: mustTime(t, "2024-05-02T09:30:00"), Status: model.StatusOngoing},
	}
	md := RenderAgendaMarkdown(ms, RenderOptions{})

	for _, want := range []string{
		"# Lịch họp",
		"## 01/05/2024",
		"### 09:00 Standup (MTG-1)",
		"- Trạng thái: Đã kết thúc",
		"## 02/05/2024",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
	if strings.Index(md, "Retro") > strings.Index(md, "Review") {
		t.Fatalf("expected 09:30 before 14:00:\n%s", md)
	}
	if strings.Count(md, "## 02/05/2024") != 1 {
		t.Fatalf("expected one heading per day:\n%s", md)
	}
}

func TestRenderAgendaMarkdown_Empty(t *testing.T) {
	t.Parallel()

	md := RenderAgendaMarkdown(nil, RenderOptions{Title: "Tuần này"})
	if !strings.HasPrefix(md, "# Tuần này") || !strings.Contains(md, "Chưa có cuộc họp nào") {
		t.Fatalf("unexpected markdown:\n%s", md)
	}
}

func TestRenderHTML_EscapesEntityText(t *testing.T) {
	t.Parallel()

	md := RenderMeetingMarkdown(model.Meeting{ID: 7, Title: "<script>alert(1)</script>", Description: "**not bold**"})
	page, err := RenderHTML("<x>", md)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(page)
	if strings.Contains(s, "<script>") {
		t.Fatalf("raw html leaked:\n%s", s)
	}
	if strings.Contains(s, "<strong>") {
		t.Fatalf("entity text interpreted as markdown:\n%s", s)
	}
	if !strings.Contains(s, "<title>&lt;x&gt;</title>") {
		t.Fatalf("title not escaped:\n%s", s)
	}
}

func TestWriteAgenda_WritesFilesAndRefusesOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ms := []model.Meeting{{ID: 42, Title: "Standup", StartTime: mustTime(t, "2024-05-01T09:00:00")}}

	res, err := WriteAgenda(ms, dir, WriteOptions{HTML: true})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := []string{
		filepath.Join(dir, "agenda.md"),
		filepath.Join(dir, "agenda.html"),
		filepath.Join(dir, "meetings", "MTG-42.md"),
		filepath.Join(dir, "meetings", "MTG-42.html"),
	}
	if len(res.Written) != len(want) {
		t.Fatalf("got %v want %v", res.Written, want)
	}
	for i, p := range want {
		if res.Written[i] != p {
			t.Fatalf("written[%d] = %q, want %q", i, res.Written[i], p)
		}
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
	}

	if _, err := WriteAgenda(ms, dir, WriteOptions{}); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	if _, err := WriteAgenda(ms, dir, WriteOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if _, err := WriteAgenda(ms, " ", WriteOptions{}); err == nil {
		t.Fatalf("expected missing dir error")
	}
}

func TestRenderICS_FloatingTimesAndSkipsUnscheduled(t *testing.T) {
	t.Parallel()

	ms := []model.Meeting{
		{ID: 42, Title: "Kế hoạch, quý 2", Room: "A1", Chairman: "An", StartTime: mustTime(t, "2024-05-01T09:00:00"), EndTime: mustTime(t, "2024-05-01T10:30:00"), Status: model.StatusScheduled},
		{ID: 43, Title: "Chưa xếp lịch"},
	}
	b, err := RenderICS(ms, time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	cal, err := ical.NewDecoder(bytes.NewReader(b)).Decode()
	if err != nil {
		t.Fatalf("decode: %v\n%s", err, string(b))
	}
	var events []*ical.Component
	for _, c := range cal.Children {
		if c.Name == ical.CompEvent {
			events = append(events, c)
		}
	}
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d:\n%s", len(events), string(b))
	}
	ev := events[0]
	if got, _ := ev.Props.Text(ical.PropSummary); got != "Kế hoạch, quý 2" {
		t.Fatalf("unexpected summary %q", got)
	}
	if p := ev.Props.Get(ical.PropDateTimeStart); p == nil || p.Value != "20240501T090000" {
		t.Fatalf("expected floating DTSTART, got %#v", p)
	}
	if p := ev.Props.Get(ical.PropDateTimeEnd); p == nil || p.Value != "20240501T103000" {
		t.Fatalf("expected floating DTEND, got %#v", p)
	}
	if p := ev.Props.Get(ical.PropUID); p == nil || p.Value != "mtg-42@secretary" {
		t.Fatalf("unexpected UID %#v", p)
	}
	if got, _ := ev.Props.Text(ical.PropDescription); !strings.Contains(got, "Chủ trì: An") {
		t.Fatalf("unexpected description %q", got)
	}
}

func TestWriteAgenda_ICS(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ms := []model.Meeting{{ID: 1, Title: "Standup", StartTime: mustTime(t, "2024-05-01T09:00:00")}}
	res, err := WriteAgenda(ms, dir, WriteOptions{ICS: true, Now: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "agenda.ics"))
	if err != nil {
		t.Fatalf("read ics: %v (written %v)", err, res.Written)
	}
	if !strings.HasPrefix(string(b), "BEGIN:VCALENDAR") {
		t.Fatalf("unexpected ics:\n%s", string(b))
	}
}

func TestRenderMeetingMarkdown_StripsControlSequences(t *testing.T) {
	t.Parallel()

	md := RenderMeetingMarkdown(model.Meeting{
		ID:          9,
		Title:       "Họp\x1b[2J giao ban",
		Chairman:    "A\x1b]0;pwned\x07B",
		Description: "desc \x1b[2J\x1b[31mRED\r\nline two\x00",
	})
	for _, bad := range []string{"\x1b", "\x07", "\x00", "\r"} {
		if strings.Contains(md, bad) {
			t.Fatalf("control byte %q leaked:\n%q", bad, md)
		}
	}
	for _, want := range []string{"# Họp giao ban", "- Chủ trì: AB", "desc RED\nline two"} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}
}

func TestRenderMeetingMarkdown_LeadingBlockMarkersStayText(t *testing.T) {
	t.Parallel()

	md := RenderMeetingMarkdown(model.Meeting{
		ID:          5,
		Title:       "Plan",
		Status:      model.Status("ODD_*"),
		Description: "- item\n  + plus\n1. first\n2) second\nheading\n===\n~~~\n!note",
	})
	for _, want := range []string{`\- item`, `\+ plus`, `1\. first`, `2\) second`, "\n\\===", `\~~~`, `\!note`, `- Trạng thái: ODD\_\*`} {
		if !strings.Contains(md, want) {
			t.Fatalf("expected %q in:\n%s", want, md)
		}
	}

	page, err := RenderHTML("Plan", md)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	s := string(page)
	if strings.Contains(s, "<ol") || strings.Contains(s, "<pre") || strings.Count(s, "<ul>") != 1 || strings.Count(s, "<h1") != 1 {
		t.Fatalf("description rendered as markup:\n%s", s)
	}
}
