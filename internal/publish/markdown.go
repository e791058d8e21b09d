package publish

import (
	"bytes"
	"sort"
	"strings"

	"secretary-cli/internal/format"
	"secretary-cli/internal/handoff"
	"secretary-cli/internal/model"
	"secretary-cli/internal/view"
)

type RenderOptions struct {
	// Title heads the agenda; defaults to "Lịch họp".
	Title string
	// Subtitle is an optional line under the title, e.g. the active filter.
	Subtitle string
}

const defaultAgendaTitle = "Lịch họp"

// RenderMeetingMarkdown renders one meeting as a standalone page.
func RenderMeetingMarkdown(m model.Meeting) string {
	var buf bytes.Buffer
	buf.WriteString("# " + escape(m.Title) + "\n\n")
	writeMeetingMeta(&buf, m)
	writeDescription(&buf, m.Description, "##")
	return buf.String()
}

// RenderAgendaMarkdown groups meetings by start date, earliest first. Meetings
// without a start time are listed last.
func RenderAgendaMarkdown(ms []model.Meeting, opt RenderOptions) string {
	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = defaultAgendaTitle
	}

	sorted := append([]model.Meeting(nil), ms...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].StartTime, sorted[j].StartTime
		if a.IsZero() != b.IsZero() {
			return b.IsZero()
		}
		return a.Before(b.Time)
	})

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + escape(title))
	if s := strings.TrimSpace(opt.Subtitle); s != "" {
		writeLn("")
		writeLn("_" + escape(s) + "_")
	}
	if len(sorted) == 0 {
		writeLn("")
		writeLn("Chưa có cuộc họp nào")
		return buf.String()
	}

	day := "\x00"
	for _, m := range sorted {
		d := format.Date(m.StartTime)
		if d != day {
			day = d
			writeLn("")
			writeLn("## " + d)
		}
		writeLn("")
		clock := "--:--"
		if !m.StartTime.IsZero() {
			clock = m.StartTime.Format("15:04")
		}
		writeLn("### " + clock + " " + escape(m.Title) + " (" + handoff.MeetingCode(m.ID) + ")")
		writeLn("")
		writeMeetingMeta(&buf, m)
		writeDescription(&buf, m.Description, "####")
	}
	return buf.String()
}

func writeMeetingMeta(buf *bytes.Buffer, m model.Meeting) {
	line := func(label, v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		buf.WriteString("- " + label + ": " + v + "\n")
	}
	line("Mã", handoff.MeetingCode(m.ID))
	line("Trạng thái", escape(m.Status.Label()))
	line("Phòng ban", escape(m.Department))
	line("Phòng họp", escape(m.Room))
	line("Chủ trì", escape(m.Chairman))
	line("Thư ký", escape(m.Secretary))
	line("Bắt đầu", format.DateTime(m.StartTime))
	line("Kết thúc", format.DateTime(m.EndTime))
}

func writeDescription(buf *bytes.Buffer, desc, heading string) {
	desc = escapeBlock(desc)
	if desc == "" {
		return
	}
	buf.WriteString("\n" + heading + " Mô tả\n\n")
	buf.WriteString(desc + "\n")
}

// mdEscaper covers inline markup anywhere in a line; escapeLeadingMarker
// covers block syntax that only triggers at the start of one.
var mdEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
)

// escape keeps one-line entity text literal when the markdown is rendered,
// in the terminal and as HTML: control sequences are stripped, line breaks
// flattened and markup backslash-escaped.
func escape(s string) string {
	return mdEscaper.Replace(view.Sanitize(s))
}

// escapeBlock is escape for multi-line text. Line breaks survive; each line
// loses its indentation and any leading block marker.
func escapeBlock(s string) string {
	lines := strings.Split(view.SanitizeText(s), "\n")
	for i, l := range lines {
		lines[i] = escapeLeadingMarker(mdEscaper.Replace(strings.TrimLeft(l, " ")))
	}
	return strings.Join(lines, "\n")
}

// escapeLeadingMarker neutralizes list, setext and fence markers ("- ", "+ ",
// "1. ", "2) ", "===", "~~~", "!") at the start of a line.
func escapeLeadingMarker(l string) string {
	if l == "" {
		return l
	}
	switch l[0] {
	case '-', '+', '=', '~', '!':
		return `\` + l
	}
	digits := 0
	for digits < len(l) && l[digits] >= '0' && l[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(l) && (l[digits] == '.' || l[digits] == ')') {
		return l[:digits] + `\` + l[digits:]
	}
	return l
}
