// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
)

// =============================================================================
// PLACEHOLDER PAGES
// =============================================================================

// Profile is the signed-in user shown on the profile page.
type Profile struct {
	Name    string
	Email   string
	M365ID  string
	IsAdmin bool
}

// PageView renders the non-chat pages. Their forms and results are
// placeholders: they render but do nothing.
type PageView struct {
	styles  *styles.Styles
	profile Profile
	width   int
}

// NewPageView creates a page renderer for profile.
func NewPageView(s *styles.Styles, profile Profile) *PageView {
	return &PageView{styles: s, profile: profile, width: 80}
}

// SetStyles swaps the style sheet, for theme changes.
func (pv *PageView) SetStyles(s *styles.Styles) {
	pv.styles = s
}

// SetWidth sets the available width.
func (pv *PageView) SetWidth(w int) {
	pv.width = w
}

// View renders page p. The chat page is not rendered here.
func (pv *PageView) View(p Page) string {
	switch p {
	case PageSearch:
		return pv.search()
	case PageAgents:
		return pv.agents()
	case PagePromptCoach:
		return pv.promptCoach()
	case PageTimeEntry:
		return pv.timeEntry()
	case PageProfile:
		return pv.profileView()
	default:
		return ""
	}
}

func (pv *PageView) panelWidth() int {
	w := pv.width - 4
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (pv *PageView) search() string {
	s := pv.styles
	var b strings.Builder
	b.WriteString(s.PageTitle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(s.PlaceholderText.Render("Search for anything here. (Placeholder results)"))
	b.WriteString("\n\n")
	for _, r := range []string{"Result 1", "Result 2", "Result 3"} {
		b.WriteString(s.ListItem.Render("- " + r))
		b.WriteString("\n")
	}
	return s.PagePanel.Width(pv.panelWidth()).Render(strings.TrimRight(b.String(), "\n"))
}

func (pv *PageView) form(title, intro string, fields []string, button string) string {
	s := pv.styles
	fieldWidth := pv.panelWidth() - s.PagePanel.GetHorizontalFrameSize() - s.FormField.GetHorizontalBorderSize()

	parts := []string{s.PageTitle.Render(title), s.PlaceholderText.Render(intro), ""}
	for _, f := range fields {
		parts = append(parts, s.FormField.Width(fieldWidth).Render(f))
	}
	parts = append(parts, "", s.Button.Render(button))
	return s.PagePanel.Width(pv.panelWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (pv *PageView) timeEntry() string {
	return pv.form("Time Entry",
		"Fill out the form to create a new time entry. (Form is a placeholder)",
		[]string{"Entry Title", "Entry Description"}, "Create")
}

func (pv *PageView) promptCoach() string {
	return pv.form("Prompt Coach", "(Form is a placeholder)",
		[]string{"Agent Name", "Agent Role"}, "Design")
}

func (pv *PageView) agents() string {
	return pv.form("Create Agent", "Design a new agent. (Form is a placeholder)",
		[]string{"Agent Name", "Agent Role"}, "Create")
}

func (pv *PageView) profileView() string {
	s := pv.styles
	p := pv.profile

	header := s.ProfileName.Render(p.Name)
	if p.IsAdmin {
		header += "  " + s.AdminBadge.Render("Admin")
	}
	lines := []string{header, s.ProfileEmail.Render(p.Email)}
	if p.M365ID != "" {
		lines = append(lines, s.ProfileMeta.Render("M365 ID: "+p.M365ID))
	}

	lines = append(lines, s.SectionTitle.Render("App Data"))
	for _, item := range []string{"Recent activity", "Saved forms", "Chat history"} {
		lines = append(lines, s.ListItem.Render("- "+item))
	}
	if p.IsAdmin {
		lines = append(lines, s.SectionTitle.Render("Admin Options"))
		for _, item := range []string{"Manage users", "View audit logs", "App settings"} {
			lines = append(lines, s.ListItem.Render("- "+item))
		}
	}
	return s.PagePanel.Width(pv.panelWidth()).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
