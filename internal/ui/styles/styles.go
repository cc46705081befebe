// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
)

// Styles holds all the styled components for one theme.
type Styles struct {
	Theme   theme.Theme
	Palette Palette

	// ==========================================================================
	// APPLICATION AND HEADER
	// ==========================================================================

	App            lipgloss.Style
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderBrand    lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar            lipgloss.Style
	SidebarTitle       lipgloss.Style
	NavItem            lipgloss.Style
	NavItemActive      lipgloss.Style
	NavItemCursor      lipgloss.Style
	SectionHeader      lipgloss.Style
	ConversationItem   lipgloss.Style
	ConversationActive lipgloss.Style
	ConversationTyping lipgloss.Style

	// ==========================================================================
	// PAGES
	// ==========================================================================

	Main            lipgloss.Style
	PageTitle       lipgloss.Style
	PagePanel       lipgloss.Style
	PlaceholderText lipgloss.Style
	FormField       lipgloss.Style
	Button          lipgloss.Style
	ListItem        lipgloss.Style
	ProfileName     lipgloss.Style
	ProfileEmail    lipgloss.Style
	ProfileMeta     lipgloss.Style
	AdminBadge      lipgloss.Style
	SectionTitle    lipgloss.Style

	// ==========================================================================
	// CHAT: EMPTY STATE
	// ==========================================================================

	Greeting           lipgloss.Style
	SuggestionCard     lipgloss.Style
	SuggestionTitle    lipgloss.Style
	SuggestionSubtitle lipgloss.Style
	SuggestionKey      lipgloss.Style
	SeeMore            lipgloss.Style

	// ==========================================================================
	// CHAT: MESSAGES
	// ==========================================================================

	DateSeparator   lipgloss.Style
	UserBubble      lipgloss.Style
	AssistantBubble lipgloss.Style
	AssistantName   lipgloss.Style
	Timestamp       lipgloss.Style
	TypingBubble    lipgloss.Style
	Spinner         lipgloss.Style
	Chip            lipgloss.Style
	ChipKey         lipgloss.Style

	// ==========================================================================
	// CHAT: INPUT AND BANNERS
	// ==========================================================================

	ErrorBanner     lipgloss.Style
	ErrorTitle      lipgloss.Style
	ErrorHint       lipgloss.Style
	Disclaimer      lipgloss.Style
	InputContainer  lipgloss.Style
	InputFocused    lipgloss.Style
	InputBlurred    lipgloss.Style
	Placeholder     lipgloss.Style
	RecordingBadge  lipgloss.Style
	Notice          lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	LinkStyle    lipgloss.Style
}

// New creates the style sheet for t.
func New(t theme.Theme) *Styles {
	s := &Styles{Theme: t, Palette: PaletteFor(t)}
	s.initStyles()
	return s
}

// initStyles initializes all the lip gloss styles from the palette.
func (s *Styles) initStyles() {
	p := s.Palette
	border := lipgloss.RoundedBorder()
	if s.Theme == theme.Contrast {
		border = lipgloss.ThickBorder()
	}

	// App and header
	s.App = lipgloss.NewStyle().
		Foreground(p.TextPrimary)

	s.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary)

	s.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	s.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.AccentText).
		Background(p.Accent).
		Padding(0, 1)

	// Sidebar
	s.Sidebar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.SidebarTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary).
		MarginBottom(1)

	s.NavItem = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		PaddingLeft(1)

	s.NavItemActive = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		PaddingLeft(1)

	s.NavItemCursor = lipgloss.NewStyle().
		Foreground(p.AccentText).
		Background(p.Accent).
		Bold(true).
		PaddingLeft(1)

	s.SectionHeader = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Bold(true).
		MarginTop(1)

	s.ConversationItem = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		PaddingLeft(2)

	s.ConversationActive = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		PaddingLeft(2)

	s.ConversationTyping = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	// Pages
	s.Main = lipgloss.NewStyle().
		Padding(0, 2)

	s.PageTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary).
		MarginBottom(1)

	s.PagePanel = lipgloss.NewStyle().
		Background(p.SurfaceDim).
		BorderStyle(border).
		BorderForeground(p.Border).
		Padding(1, 2)

	s.PlaceholderText = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	s.FormField = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Foreground(p.TextMuted).
		Padding(0, 1)

	s.Button = lipgloss.NewStyle().
		Foreground(p.AccentText).
		Background(p.Accent).
		Bold(true).
		Padding(0, 2)

	s.ListItem = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		PaddingLeft(2)

	s.ProfileName = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary)

	s.ProfileEmail = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	s.ProfileMeta = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	s.AdminBadge = lipgloss.NewStyle().
		Foreground(p.Info).
		Background(p.AccentMuted).
		Bold(true).
		Padding(0, 1)

	s.SectionTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary).
		MarginTop(1)

	// Empty state
	s.Greeting = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary).
		MarginBottom(1)

	s.SuggestionCard = lipgloss.NewStyle().
		BorderStyle(border).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.SuggestionTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary)

	s.SuggestionSubtitle = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	s.SuggestionKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.SeeMore = lipgloss.NewStyle().
		Foreground(p.TextSecondary)

	// Messages
	s.DateSeparator = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		BorderStyle(border).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.UserBubble = lipgloss.NewStyle().
		Foreground(p.UserBubbleFg).
		Background(p.UserBubbleBg).
		Padding(0, 2)
	if s.Theme == theme.Contrast {
		s.UserBubble = s.UserBubble.
			BorderStyle(border).
			BorderForeground(p.Accent)
	}

	s.AssistantBubble = lipgloss.NewStyle().
		Foreground(p.AssistantBubbleFg).
		BorderStyle(border).
		BorderForeground(p.AssistantBorder).
		Padding(0, 1)

	s.AssistantName = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextPrimary)

	s.Timestamp = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	s.TypingBubble = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		BorderStyle(border).
		BorderForeground(p.AssistantBorder).
		Padding(0, 2)

	s.Spinner = lipgloss.NewStyle().
		Foreground(p.Accent)

	s.Chip = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		BorderStyle(border).
		BorderForeground(p.Border).
		Padding(0, 1).
		MarginRight(1)

	s.ChipKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	// Input and banners
	s.ErrorBanner = lipgloss.NewStyle().
		BorderStyle(border).
		BorderForeground(p.Error).
		Padding(0, 1)

	s.ErrorTitle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	s.ErrorHint = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Italic(true)

	s.Disclaimer = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		Align(lipgloss.Center)

	s.InputContainer = lipgloss.NewStyle().
		BorderStyle(border).
		Padding(0, 1)

	s.InputFocused = s.InputContainer.
		BorderForeground(p.Accent)

	s.InputBlurred = s.InputContainer.
		BorderForeground(p.Border)

	s.Placeholder = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	s.RecordingBadge = lipgloss.NewStyle().
		Foreground(p.AccentText).
		Background(p.Error).
		Bold(true).
		Padding(0, 1)

	s.Notice = lipgloss.NewStyle().
		Foreground(p.Info).
		Italic(true)

	// Status bar
	s.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextSecondary).
		Padding(0, 1)

	s.ShortcutKey = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.ShortcutDesc = lipgloss.NewStyle().
		Foreground(p.TextMuted)

	// Accessibility
	s.SuccessStyle = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	s.ErrorStyle = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	s.WarningStyle = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	s.InfoStyle = lipgloss.NewStyle().
		Foreground(p.Info).
		Bold(true)

	s.LinkStyle = lipgloss.NewStyle().
		Foreground(p.Link).
		Underline(true)
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// RenderSuccess renders a success message with its indicator.
func (s *Styles) RenderSuccess(message string) string {
	return s.SuccessStyle.Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func (s *Styles) RenderError(message string) string {
	return s.ErrorStyle.Render(StatusIndicators.Error + " " + message)
}

// RenderWarning renders a warning message with its indicator.
func (s *Styles) RenderWarning(message string) string {
	return s.WarningStyle.Render(StatusIndicators.Warning + " " + message)
}

// RenderInfo renders an info message with its indicator.
func (s *Styles) RenderInfo(message string) string {
	return s.InfoStyle.Render(StatusIndicators.Info + " " + message)
}
