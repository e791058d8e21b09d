package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const maxModalWidth = 76

// modalBodyWidth is the usable content width inside a modal for a terminal
// of the given width.
func modalBodyWidth(width int) int {
	w := width - 8
	if w > maxModalWidth {
		w = maxModalWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().
		Bold(true).
		Width(bodyW).
		Foreground(colorSurfaceFg).
		Background(colorControlBg).
		Padding(0, 1).
		Render(title)
	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1).
		Foreground(colorSurfaceFg).
		Render(content)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

// fitLine forces s to exactly width columns (ANSI-aware).
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(s)
	if w > width {
		if width == 1 {
			return xansi.Cut(s, 0, 1)
		}
		return xansi.Cut(s, 0, width-1) + "…"
	}
	return s + strings.Repeat(" ", width-w)
}

// truncate shortens plain or styled text to width with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return xansi.Truncate(s, width, "…")
}

// placeCenter renders overlay centered within a width x height canvas.
func placeCenter(width, height int, overlay string) string {
	if width <= 0 || height <= 0 {
		return overlay
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay)
}
