// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
)

// ThemeChangedMsg is sent when the theme provider reports a new theme.
type ThemeChangedMsg struct {
	Theme theme.Theme
}

// watchTheme adapts provider callbacks to a channel holding at most the
// latest theme. The returned func stops the subscription.
func watchTheme(p theme.Provider) (<-chan theme.Theme, func()) {
	ch := make(chan theme.Theme, 1)
	stop := p.OnChange(func(t theme.Theme) {
		for {
			select {
			case ch <- t:
				return
			default:
			}
			// Drop the stale value and try again.
			select {
			case <-ch:
			default:
			}
		}
	})
	return ch, stop
}

// waitForTheme blocks for the next theme change.
func waitForTheme(ch <-chan theme.Theme) tea.Cmd {
	return func() tea.Msg {
		t, ok := <-ch
		if !ok {
			return nil
		}
		return ThemeChangedMsg{Theme: t}
	}
}
