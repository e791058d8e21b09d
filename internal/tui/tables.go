package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"secretary-cli/internal/view"
)

// pageTable pairs a bubbles table with the view-model it was built from so
// the selected row can be mapped back to an entity id.
type pageTable struct {
	tbl table.Model
	vt  view.Table
}

func newPageTable() *pageTable {
	st := table.DefaultStyles()
	st.Header = st.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorMuted).
		BorderBottom(true).
		Bold(true)
	st.Selected = st.Selected.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)
	t := table.New(table.WithFocused(true), table.WithStyles(st), table.WithHeight(10))
	return &pageTable{tbl: t}
}

func (p *pageTable) set(vt view.Table, width int) {
	p.vt = vt
	p.tbl.SetColumns(fitColumns(vt.Columns, width))
	rows := make([]table.Row, 0, len(vt.Rows))
	if !vt.Empty() {
		for _, r := range vt.Rows {
			rows = append(rows, table.Row(padCells(r.Cells, len(vt.Columns))))
		}
	}
	p.tbl.SetRows(rows)
	if c := p.tbl.Cursor(); c < 0 || c >= len(rows) {
		p.tbl.SetCursor(max(len(rows)-1, 0))
	}
}

// selected returns the entity row under the cursor.
func (p *pageTable) selected() (view.Row, bool) {
	if p == nil || p.vt.Empty() {
		return view.Row{}, false
	}
	c := p.tbl.Cursor()
	if c < 0 || c >= len(p.vt.Rows) {
		return view.Row{}, false
	}
	return p.vt.Rows[c], true
}

// selectByID moves the cursor to id when it is present.
func (p *pageTable) selectByID(id int64) {
	for i, r := range p.vt.Rows {
		if !r.Placeholder && r.ID == id {
			p.tbl.SetCursor(i)
			return
		}
	}
}

func (p *pageTable) view() string {
	if p.vt.Empty() {
		row := p.vt.Rows[0]
		msg := row.Cells[0]
		if icon := glyphIcon(row.Icon); icon != "" {
			msg = icon + "  " + msg
		}
		return p.tbl.View() + "\n\n" + styleMuted().Render("  "+msg)
	}
	return p.tbl.View()
}

func padCells(cells []string, n int) []string {
	if len(cells) >= n {
		return cells
	}
	out := make([]string, n)
	copy(out, cells)
	return out
}

// fitColumns shrinks the widest columns until the table fits width.
func fitColumns(cols []view.Column, width int) []table.Column {
	out := make([]table.Column, len(cols))
	total := 0
	for i, c := range cols {
		out[i] = table.Column{Title: c.Title, Width: c.Width}
		// bubbles/table pads each cell by one column on both sides.
		total += c.Width + 2
	}
	for width > 0 && total > width {
		widest := 0
		for i := range out {
			if out[i].Width > out[widest].Width {
				widest = i
			}
		}
		if out[widest].Width <= 4 {
			break
		}
		out[widest].Width--
		total--
	}
	return out
}
