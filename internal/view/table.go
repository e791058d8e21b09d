// Package view turns entity caches into table view-models. Renderers are pure:
// the same input always yields the same rows, and no entity text is ever
// interpreted as markup or terminal control sequences.
package view

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Action string

const (
	ActionJoin   Action = "join"
	ActionStatus Action = "status"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Title is the hover text the action carries in the dashboard.
func (a Action) Title() string {
	switch a {
	case ActionJoin:
		return "Vào phòng họp"
	case ActionStatus:
		return "Đổi trạng thái"
	case ActionEdit:
		return "Sửa"
	case ActionDelete:
		return "Xóa"
	default:
		return string(a)
	}
}

type Column struct {
	Title string
	Width int
}

// Row is one rendered entity. Actions are dispatched by ID, never by position.
type Row struct {
	ID      int64
	Cells   []string
	Actions []Action

	// Placeholder marks the single row shown for an empty collection.
	Placeholder bool
	Icon        string
}

type Table struct {
	Columns []Column
	Rows    []Row
}

// Empty reports whether the table holds only its placeholder row.
func (t Table) Empty() bool {
	return len(t.Rows) == 1 && t.Rows[0].Placeholder
}

// RowByID returns the entity row with the given id.
func (t Table) RowByID(id int64) (Row, bool) {
	for _, r := range t.Rows {
		if !r.Placeholder && r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

func placeholderTable(cols []Column, icon, message string) Table {
	return Table{
		Columns: cols,
		Rows:    []Row{{Placeholder: true, Icon: icon, Cells: []string{message}}},
	}
}

// Sanitize makes entity text safe to place in a terminal cell: escape
// sequences are stripped, control characters dropped and line breaks flattened.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			continue
		}
		space = r == ' '
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// SanitizeText is Sanitize for multi-line text: line breaks survive (CRLF
// becomes LF), tabs become spaces and trailing blanks on each line go.
func SanitizeText(s string) string {
	s = ansi.Strip(strings.ReplaceAll(s, "\r\n", "\n"))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
		case r == '\t':
			r = ' '
		case r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0):
			continue
		}
		b.WriteRune(r)
	}
	lines := strings.Split(b.String(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// orDash renders optional text, "-" when blank.
func orDash(s string) string {
	s = Sanitize(s)
	if s == "" {
		return "-"
	}
	return s
}
