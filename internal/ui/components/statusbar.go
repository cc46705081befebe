// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar shows shortcut hints, or the current notice when there is one.
type StatusBar struct {
	Width    int
	Bindings []key.Binding
	Notice   *Notice
	styles   *styles.Styles
}

// NewStatusBar creates a status bar.
func NewStatusBar(s *styles.Styles) *StatusBar {
	return &StatusBar{Width: 80, styles: s}
}

// SetStyles swaps the style sheet, for theme changes.
func (sb *StatusBar) SetStyles(s *styles.Styles) {
	sb.styles = s
}

// View renders a single line.
func (sb *StatusBar) View() string {
	s := sb.styles
	inner := sb.Width - s.StatusBar.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	if sb.Notice != nil {
		return s.StatusBar.Render(sb.Notice.Render(s, inner))
	}

	var parts []string
	used := 0
	for _, b := range sb.Bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		part := s.ShortcutKey.Render(h.Key) + " " + s.ShortcutDesc.Render(h.Desc)
		w := lipgloss.Width(part) + 2
		if used+w > inner {
			break
		}
		parts = append(parts, part)
		used += w
	}
	return s.StatusBar.Render(util.TruncateWidth(strings.Join(parts, "  "), inner))
}
