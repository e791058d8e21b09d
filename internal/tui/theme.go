package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"secretary-cli/internal/view"
)

// The dashboard must stay readable on light and dark terminals, so colors are
// adaptive and "faint" is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted      lipgloss.TerminalColor = ac("240", "243")
	colorSurfaceBg  lipgloss.TerminalColor = ac("255", "235")
	colorSurfaceFg  lipgloss.TerminalColor = ac("235", "252")
	colorControlBg  lipgloss.TerminalColor = ac("252", "236")
	colorInputBg    lipgloss.TerminalColor = ac("254", "234")
	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
	colorAccent     lipgloss.TerminalColor = ac("27", "62")
	colorAccentFg   lipgloss.TerminalColor = ac("255", "235")

	colorSuccessBg lipgloss.TerminalColor = ac("28", "22")
	colorErrorBg   lipgloss.TerminalColor = ac("196", "160")

	colorScheduled lipgloss.TerminalColor = ac("25", "75")
	colorOngoing   lipgloss.TerminalColor = ac("130", "214")
	colorFinished  lipgloss.TerminalColor = ac("28", "114")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleBadge(b view.Badge) lipgloss.Style {
	st := lipgloss.NewStyle().Bold(true)
	switch b.Kind {
	case "scheduled":
		return st.Foreground(colorScheduled)
	case "ongoing":
		return st.Foreground(colorOngoing)
	case "finished":
		return st.Foreground(colorFinished)
	default:
		return st.Foreground(colorMuted)
	}
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile also honors CLICOLOR, which can disable colors in a
// TUI by accident. Here only NO_COLOR and the ascii profile force monochrome.
func applyColorProfilePreference(profile string) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || profile == "ascii" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	p := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they claim more than the detector reports.
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if p != termenv.Ascii {
			p = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (p == termenv.Ascii || p == termenv.ANSI) {
		p = termenv.ANSI256
	}

	lipgloss.SetColorProfile(p)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) SECRETARY_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SECRETARY_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if dark, ok := colorFGBGDark(); ok {
		lipgloss.SetHasDarkBackground(dark)
	}
}

// colorFGBGDark reads the background from COLORFGBG. Common xterm palettes use
// 0-6 for dark colors and 7-15 for light ones.
func colorFGBGDark() (dark bool, ok bool) {
	v := strings.TrimSpace(os.Getenv("COLORFGBG"))
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return false, false
	}
	return bg < 7, true
}
