// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
)

// =============================================================================
// LINE-MODE STYLES
// =============================================================================

// Styles are the line-mode styles for one theme.
type Styles struct {
	Prompt    lipgloss.Style
	Assistant lipgloss.Style
	Title     lipgloss.Style
	Active    lipgloss.Style
	Dim       lipgloss.Style
	Info      lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles builds line-mode styles from the theme palette. Colors
// degrade to plain text when the renderer's profile is Ascii.
func NewStyles(t theme.Theme, r *lipgloss.Renderer) Styles {
	p := styles.PaletteFor(t)
	return Styles{
		Prompt:    r.NewStyle().Foreground(p.Accent).Bold(true),
		Assistant: r.NewStyle().Foreground(p.TextPrimary).Bold(true),
		Title:     r.NewStyle().Foreground(p.TextPrimary).Bold(true),
		Active:    r.NewStyle().Foreground(p.Accent).Bold(true),
		Dim:       r.NewStyle().Foreground(p.TextMuted),
		Info:      r.NewStyle().Foreground(p.Info),
		Success:   r.NewStyle().Foreground(p.Success).Bold(true),
		Warning:   r.NewStyle().Foreground(p.Warning).Bold(true),
		Error:     r.NewStyle().Foreground(p.Error).Bold(true),
	}
}
