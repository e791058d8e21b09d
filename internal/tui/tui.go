// Package tui is the interactive terminal dashboard.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"secretary-cli/internal/dashboard"
)

type Options struct {
	// Profile is "default" or "ascii".
	Profile string

	// Now overrides the clock source.
	Now func() time.Time

	ToastDuration time.Duration
}

func Run(ctx context.Context, ctrl *dashboard.Controller, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference(opts.Profile)
	applyGlyphPreference(opts.Profile)

	m := newAppModel(ctx, ctrl, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	ctrl.SetListener(func(t dashboard.Topic) { p.Send(cacheChangedMsg{topic: t}) })
	defer ctrl.SetListener(nil)

	_, err := p.Run()
	return err
}
