// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar above the main pane.
type Header struct {
	Title    string // Page or conversation title
	Subtitle string // Right-aligned status, e.g. the theme or "Typing..."
	Width    int
	styles   *styles.Styles
}

// NewHeader creates a header with the application title.
func NewHeader(s *styles.Styles) *Header {
	return &Header{Title: "Secure Chat", Width: 80, styles: s}
}

// SetStyles swaps the style sheet, for theme changes.
func (h *Header) SetStyles(s *styles.Styles) {
	h.styles = s
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// View renders the title on the left and the subtitle on the right.
func (h *Header) View() string {
	s := h.styles
	inner := h.Width - s.Header.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	sub := ""
	if h.Subtitle != "" {
		sub = s.HeaderSubtitle.Render(h.Subtitle)
	}
	title := s.HeaderTitle.Render(util.TruncateWidth(h.Title, inner-lipgloss.Width(sub)-1))

	gap := inner - lipgloss.Width(title) - lipgloss.Width(sub)
	if gap < 1 {
		gap = 1
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, title, lipgloss.NewStyle().Width(gap).Render(""), sub)
	return s.Header.Width(h.Width - s.Header.GetHorizontalBorderSize()).Render(line)
}
