package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func (f confirmModalFocus) toggle() confirmModalFocus {
	if f == confirmFocusConfirm {
		return confirmFocusCancel
	}
	return confirmFocusConfirm
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	// No borders on the buttons: nested borders inside a colored modal leave
	// background artifacts on some terminals.
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorAccentFg).
		Background(colorErrorBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Background(colorSelectedBg).Foreground(colorSelectedFg).Render(cancelLabel)
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: chuyển   enter: chọn   y: xóa   esc/n: hủy")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}
