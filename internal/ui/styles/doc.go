// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the securechat TUI.

# Color System (colors.go)

Each host theme has its own Palette. Light and dark follow the Teams
colors with the purple brand accent; high contrast uses black surfaces,
white text and yellow/cyan accents.

	p := styles.PaletteFor(theme.Dark)

# Style Sheet (styles.go)

Styles holds every lipgloss style the views use, built from one palette.
Rebuild it when the theme changes:

	s := styles.New(theme.Contrast)
	s.UserBubble.Render("hello")

# Animation (animations.go)

Spinner frame sets for the typing indicator, converted to bubbles spinners
with SpinnerConfig.Spinner.
*/
package styles
