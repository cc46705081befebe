// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/components"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/util"
)

// =============================================================================
// LAYOUT
// =============================================================================

// View renders the chat page: messages, banners, input and disclaimer.
func (m Model) View() string {
	parts := []string{m.viewport.View()}
	if banner := m.renderErrorBanner(); banner != "" {
		parts = append(parts, banner)
	}
	if m.recording {
		parts = append(parts, m.styles.RecordingBadge.Render("Listening... esc to stop"))
	}
	parts = append(parts, m.renderInput(), m.renderDisclaimer())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// viewportHeight is what is left after the fixed rows below the messages.
func (m Model) viewportHeight() int {
	h := m.height - (inputHeight + m.styles.InputFocused.GetVerticalFrameSize()) - 1
	if m.state.LastError != nil {
		h -= lipgloss.Height(m.renderErrorBanner())
	}
	if m.recording {
		h--
	}
	if h < 3 {
		h = 3
	}
	return h
}

// bubbleWidth is the maximum width of a message bubble.
func (m Model) bubbleWidth() int {
	w := m.width * 3 / 4
	if w > m.width-2 {
		w = m.width - 2
	}
	if w < 20 {
		w = 20
	}
	return w
}

// syncViewport re-renders the message list. follow scrolls to the end;
// otherwise the view only follows when it already was at the bottom.
func (m *Model) syncViewport(follow bool) {
	if m.width <= 0 || m.styles == nil {
		return
	}
	atBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderContent())
	if follow || atBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// CONTENT
// =============================================================================

func (m *Model) renderContent() string {
	if !m.state.HasMessages() && !m.typingHere() {
		empty := components.RenderEmptyState(m.styles, m.width)
		return lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, empty)
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.styles.DateSeparator.Render("Today")))
	b.WriteString("\n\n")

	if conv := m.state.CurrentConversation; conv != nil {
		for _, msg := range conv.Messages {
			b.WriteString(m.renderMessage(msg))
			b.WriteString("\n\n")
		}
	}

	if m.typingHere() {
		b.WriteString(m.renderTyping())
		b.WriteString("\n\n")
	} else if m.showChips() {
		b.WriteString(components.RenderChips(m.styles, m.width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderMessage(msg model.Message) string {
	if msg.Role == model.RoleUser {
		return m.renderUserMessage(msg)
	}
	return m.renderAssistantMessage(msg)
}

func (m *Model) renderUserMessage(msg model.Message) string {
	s := m.styles
	style := s.UserBubble
	maxText := m.bubbleWidth() - style.GetHorizontalFrameSize()
	if lipgloss.Width(msg.Content) > maxText {
		style = style.Width(m.bubbleWidth() - style.GetHorizontalBorderSize())
	}

	bubble := style.Render(msg.Content)
	if m.timestamps {
		bubble = lipgloss.JoinVertical(lipgloss.Right, bubble, s.Timestamp.Render(formatTime(msg)))
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble)
}

func (m *Model) renderAssistantMessage(msg model.Message) string {
	s := m.styles
	body, ok := m.rendered[msg.ID]
	if !ok {
		body = m.renderer.Render(msg.Content)
		m.rendered[msg.ID] = body
	}

	label := s.AssistantName.Render(AssistantName)
	if m.timestamps {
		label += " " + s.Timestamp.Render(formatTime(msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, s.AssistantBubble.Render(body))
}

func (m Model) renderTyping() string {
	s := m.styles
	return lipgloss.JoinVertical(lipgloss.Left,
		s.AssistantName.Render(AssistantName),
		s.TypingBubble.Render(m.spinner.View()),
	)
}

// showChips reports whether follow-up chips belong under the last message.
func (m Model) showChips() bool {
	conv := m.state.CurrentConversation
	if conv == nil || m.typingHere() {
		return false
	}
	last, ok := conv.LastMessage()
	return ok && last.Role == model.RoleAssistant
}

// =============================================================================
// BANNERS AND INPUT
// =============================================================================

func (m Model) renderErrorBanner() string {
	e := m.state.LastError
	if e == nil {
		return ""
	}
	s := m.styles
	width := m.width - s.ErrorBanner.GetHorizontalBorderSize()
	if width < 10 {
		width = 10
	}
	inner := width - s.ErrorBanner.GetHorizontalPadding()

	title := s.ErrorTitle.Render(util.TruncateWidth(styles.StatusIndicators.Error+" Reply failed: "+e.Err.Error(), inner))
	hint := s.ErrorHint.Render("ctrl+t retry  esc dismiss")
	return s.ErrorBanner.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, title, hint))
}

func (m Model) renderInput() string {
	style := m.styles.InputBlurred
	if m.input.Focused() {
		style = m.styles.InputFocused
	}
	width := m.width - style.GetHorizontalBorderSize()
	if width < 10 {
		width = 10
	}
	return style.Width(width).Render(m.input.View())
}

func (m Model) renderDisclaimer() string {
	width := m.width
	if width < 10 {
		width = 10
	}
	return m.styles.Disclaimer.Width(width).Render(Disclaimer)
}

func formatTime(msg model.Message) string {
	return msg.Timestamp.Format("3:04 PM")
}
