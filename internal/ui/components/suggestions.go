// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/util"
)

// =============================================================================
// SUGGESTIONS
// =============================================================================

// Greeting is shown above the suggestion cards of an empty chat.
const Greeting = "Hi, how can I help?"

// Suggestion is a starter prompt card.
type Suggestion struct {
	Title    string // Prompt text, sent as-is when chosen
	Subtitle string
}

// Suggestions are the starter cards of an empty chat.
var Suggestions = []Suggestion{
	{Title: "Suggest 5 office-friendly jokes", Subtitle: "Have a laugh"},
	{Title: "Come up with 3 ideas business plans for merging technology", Subtitle: "Nearly half way"},
	{Title: "How can I avoid common mistakes when proofreading in...", Subtitle: "Use the source"},
}

// FollowUps are the chips offered after an assistant reply.
var FollowUps = []string{
	"Make them tech industry themed.",
	"Add some puns about meetings.",
	"Give me short one-liners.",
}

// RenderEmptyState renders the greeting and the numbered suggestion cards.
// Cards sit side by side when they fit, stacked otherwise.
func RenderEmptyState(s *styles.Styles, width int) string {
	cols := 3
	cardWidth := (width - 2*cols) / cols
	if cardWidth < 24 {
		cols = 1
		cardWidth = width - 2
	}
	if cardWidth > 40 {
		cardWidth = 40
	}
	textWidth := cardWidth - s.SuggestionCard.GetHorizontalFrameSize()

	cards := make([]string, 0, len(Suggestions))
	for i, sg := range Suggestions {
		title := util.TruncateWidth(sg.Title, textWidth*2)
		body := lipgloss.JoinVertical(lipgloss.Left,
			s.SuggestionKey.Render(fmt.Sprintf("alt+%d", i+1)),
			s.SuggestionTitle.Width(textWidth).Render(title),
			s.SuggestionSubtitle.Render(util.TruncateWidth(sg.Subtitle, textWidth)),
		)
		cards = append(cards, s.SuggestionCard.Width(cardWidth-s.SuggestionCard.GetHorizontalBorderSize()).Render(body))
	}

	var row string
	if cols == 1 {
		row = lipgloss.JoinVertical(lipgloss.Left, cards...)
	} else {
		spaced := make([]string, 0, 2*len(cards))
		for i, c := range cards {
			if i > 0 {
				spaced = append(spaced, "  ")
			}
			spaced = append(spaced, c)
		}
		row = lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
	}

	greeting := s.Greeting.Render(Greeting)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, greeting, row, s.SeeMore.Render("See more")))
}

// RenderChips renders the follow-up chips with their shortcut numbers.
func RenderChips(s *styles.Styles, width int) string {
	var rows []string
	var line []string
	used := 0
	for i, chip := range FollowUps {
		rendered := s.Chip.Render(s.ChipKey.Render(fmt.Sprintf("alt+%d", i+1)) + " " + chip)
		w := lipgloss.Width(rendered)
		if used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, used = nil, 0
		}
		line = append(line, rendered)
		used += w
	}
	if len(line) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return strings.Join(rows, "\n")
}
