// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
)

// =============================================================================
// PALETTE
// =============================================================================

// Palette is the set of colors for one theme.
type Palette struct {
	// Brand and accents
	Accent      lipgloss.Color
	AccentText  lipgloss.Color
	AccentMuted lipgloss.Color

	// Surfaces
	Surface       lipgloss.Color
	SurfaceDim    lipgloss.Color
	SurfaceBright lipgloss.Color
	Border        lipgloss.Color

	// Text
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	// Message bubbles
	UserBubbleBg      lipgloss.Color
	UserBubbleFg      lipgloss.Color
	AssistantBubbleBg lipgloss.Color
	AssistantBubbleFg lipgloss.Color
	AssistantBorder   lipgloss.Color

	// Suggestion card accents (jokes, ideas, proofreading)
	CardOrange lipgloss.Color
	CardYellow lipgloss.Color
	CardBlue   lipgloss.Color

	// Semantic
	Success lipgloss.Color
	Error   lipgloss.Color
	Warning lipgloss.Color
	Info    lipgloss.Color
	Link    lipgloss.Color
}

// LightPalette is the default Teams light theme.
var LightPalette = Palette{
	Accent:      "#6264A7",
	AccentText:  "#FFFFFF",
	AccentMuted: "#E8EBFA",

	Surface:       "#FFFFFF",
	SurfaceDim:    "#F5F5F5",
	SurfaceBright: "#FAFAFA",
	Border:        "#E5E5E5",

	TextPrimary:   "#242424",
	TextSecondary: "#616161",
	TextMuted:     "#9CA3AF",

	UserBubbleBg:      "#6264A7",
	UserBubbleFg:      "#FFFFFF",
	AssistantBubbleBg: "#F9FAFB",
	AssistantBubbleFg: "#374151",
	AssistantBorder:   "#E5E7EB",

	CardOrange: "#EA580C",
	CardYellow: "#CA8A04",
	CardBlue:   "#2563EB",

	Success: "#15803D",
	Error:   "#C4314B",
	Warning: "#D97706",
	Info:    "#2563EB",
	Link:    "#2563EB",
}

// DarkPalette is the Teams dark theme.
var DarkPalette = Palette{
	Accent:      "#7F85F5",
	AccentText:  "#FFFFFF",
	AccentMuted: "#2F2F4A",

	Surface:       "#171717",
	SurfaceDim:    "#0F0F0F",
	SurfaceBright: "#262626",
	Border:        "#404040",

	TextPrimary:   "#F3F4F6",
	TextSecondary: "#D1D5DB",
	TextMuted:     "#9CA3AF",

	UserBubbleBg:      "#4F52B2",
	UserBubbleFg:      "#FFFFFF",
	AssistantBubbleBg: "#262626",
	AssistantBubbleFg: "#E5E7EB",
	AssistantBorder:   "#404040",

	CardOrange: "#FB923C",
	CardYellow: "#FACC15",
	CardBlue:   "#60A5FA",

	Success: "#22C55E",
	Error:   "#F87171",
	Warning: "#FBBF24",
	Info:    "#60A5FA",
	Link:    "#60A5FA",
}

// ContrastPalette is the Teams high contrast theme.
var ContrastPalette = Palette{
	Accent:      "#FFFF00",
	AccentText:  "#000000",
	AccentMuted: "#1AEBFF",

	Surface:       "#000000",
	SurfaceDim:    "#000000",
	SurfaceBright: "#000000",
	Border:        "#FFFFFF",

	TextPrimary:   "#FFFFFF",
	TextSecondary: "#FFFFFF",
	TextMuted:     "#3FF23F",

	UserBubbleBg:      "#000000",
	UserBubbleFg:      "#FFFF00",
	AssistantBubbleBg: "#000000",
	AssistantBubbleFg: "#FFFFFF",
	AssistantBorder:   "#FFFFFF",

	CardOrange: "#FFFF00",
	CardYellow: "#FFFF00",
	CardBlue:   "#1AEBFF",

	Success: "#3FF23F",
	Error:   "#FF6B6B",
	Warning: "#FFFF00",
	Info:    "#1AEBFF",
	Link:    "#1AEBFF",
}

// PaletteFor returns the palette for t. Unknown themes get LightPalette.
func PaletteFor(t theme.Theme) Palette {
	switch t {
	case theme.Dark:
		return DarkPalette
	case theme.Contrast:
		return ContrastPalette
	default:
		return LightPalette
	}
}

// =============================================================================
// ACCESSIBILITY: Shapes alongside colors
// =============================================================================

// StatusIndicatorSet contains text indicators for status states.
type StatusIndicatorSet struct {
	Success string
	Error   string
	Warning string
	Info    string
	Pending string
	Active  string
}

// StatusIndicators are ASCII so they survive any terminal and carry
// meaning without color.
var StatusIndicators = StatusIndicatorSet{
	Success: "[OK]",
	Error:   "[X]",
	Warning: "[!]",
	Info:    "[i]",
	Pending: "[ ]",
	Active:  "[*]",
}
