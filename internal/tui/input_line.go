package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a single-line field inside a modal body.
func renderInputLine(bodyW int, inputView string, focused bool) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// A stray newline in the input view would wrap the line and look like an
	// inserted newline while typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	bg := colorInputBg
	if focused {
		bg = colorSelectedBg
	}
	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(bg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Terminate styling so a cut sequence can't bleed into the border.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
