package tui

import (
	"os"
	"strings"
	"sync"
)

// Glyph sets for UI affordances. The ascii set helps on fonts that can't
// render the box-drawing or emoji glyphs cleanly.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference uses SECRETARY_TUI_GLYPHS when set, else the profile.
func applyGlyphPreference(profile string) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SECRETARY_TUI_GLYPHS"))) {
	case "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
		return
	case "ascii":
		setGlyphs(glyphSetASCII)
		return
	}
	if profile == "ascii" {
		setGlyphs(glyphSetASCII)
		return
	}
	setGlyphs(glyphSetUnicode)
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphSelected() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}

// glyphIcon maps a placeholder icon to the active set.
func glyphIcon(icon string) string {
	if icon == "" || glyphs() != glyphSetASCII {
		return icon
	}
	return "[ ]"
}
