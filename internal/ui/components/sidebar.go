// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/util"
)

// =============================================================================
// SIDEBAR ITEMS
// =============================================================================

// ItemKind identifies what selecting a sidebar item does.
type ItemKind int

const (
	ItemPage         ItemKind = iota // Navigate to a page
	ItemSection                      // Expand or collapse a section
	ItemNewChat                      // Start a new conversation
	ItemConversation                 // Load a conversation
)

// Section names a collapsible group of sidebar items.
type Section int

const (
	SectionAgents Section = iota
	SectionConversations
)

// SidebarItem is one selectable row of the sidebar.
type SidebarItem struct {
	Kind           ItemKind
	Label          string
	Page           Page
	Section        Section
	ConversationID string
	indent         bool
}

// SidebarWidth is the rendered width of the expanded sidebar, border included.
const SidebarWidth = 30

// Brand is the product name shown at the top of the sidebar.
const Brand = "AI Forms"

// =============================================================================
// SIDEBAR COMPONENT
// =============================================================================

// Sidebar is the navigation rail: pages, agents and the session's
// conversations.
type Sidebar struct {
	styles *styles.Styles

	conversations []model.ConversationMeta
	activeID      string
	typing        map[string]bool
	page          Page

	agentsExpanded        bool
	conversationsExpanded bool
	collapsed             bool
	focused               bool

	cursor int
	height int
}

// NewSidebar creates an expanded sidebar with both sections open.
func NewSidebar(s *styles.Styles) *Sidebar {
	return &Sidebar{
		styles:                s,
		typing:                make(map[string]bool),
		agentsExpanded:        true,
		conversationsExpanded: true,
	}
}

// SetStyles swaps the style sheet, for theme changes.
func (sb *Sidebar) SetStyles(s *styles.Styles) {
	sb.styles = s
}

// SetHeight sets the number of rows available.
func (sb *Sidebar) SetHeight(h int) {
	sb.height = h
}

// SetPage marks the current page.
func (sb *Sidebar) SetPage(p Page) {
	sb.page = p
}

// SetConversations replaces the conversation list. activeID is
// highlighted, typing marks conversations with an outstanding reply.
func (sb *Sidebar) SetConversations(convs []model.ConversationMeta, activeID string, typing map[string]bool) {
	sb.conversations = convs
	sb.activeID = activeID
	sb.typing = typing
	if sb.typing == nil {
		sb.typing = make(map[string]bool)
	}
	sb.clampCursor()
}

// Collapsed reports whether the sidebar is hidden.
func (sb *Sidebar) Collapsed() bool {
	return sb.collapsed
}

// ToggleCollapsed hides or shows the sidebar. A hidden sidebar loses focus.
func (sb *Sidebar) ToggleCollapsed() {
	sb.collapsed = !sb.collapsed
	if sb.collapsed {
		sb.focused = false
	}
}

// Focused reports whether keyboard navigation goes to the sidebar.
func (sb *Sidebar) Focused() bool {
	return sb.focused
}

// SetFocused moves keyboard focus to or from the sidebar.
func (sb *Sidebar) SetFocused(f bool) {
	sb.focused = f && !sb.collapsed
}

// Width returns the rendered width, zero when collapsed.
func (sb *Sidebar) Width() int {
	if sb.collapsed {
		return 0
	}
	return SidebarWidth
}

// Items returns the selectable rows in display order.
func (sb *Sidebar) Items() []SidebarItem {
	items := []SidebarItem{
		{Kind: ItemPage, Label: PageChat.String(), Page: PageChat},
		{Kind: ItemPage, Label: PageSearch.String(), Page: PageSearch},
		{Kind: ItemSection, Label: "Agents", Section: SectionAgents},
	}
	if sb.agentsExpanded {
		items = append(items,
			SidebarItem{Kind: ItemPage, Label: PagePromptCoach.String(), Page: PagePromptCoach, indent: true},
			SidebarItem{Kind: ItemPage, Label: PageTimeEntry.String(), Page: PageTimeEntry, indent: true},
			SidebarItem{Kind: ItemPage, Label: "All agents", Page: PageAgents, indent: true},
		)
	}

	items = append(items, SidebarItem{Kind: ItemSection, Label: "Conversations", Section: SectionConversations})
	if sb.conversationsExpanded {
		items = append(items, SidebarItem{Kind: ItemNewChat, Label: "+ New chat", indent: true})
		for _, c := range sb.conversations {
			items = append(items, SidebarItem{
				Kind:           ItemConversation,
				Label:          c.Title,
				ConversationID: c.ID,
				indent:         true,
			})
		}
	}

	items = append(items,
		SidebarItem{Kind: ItemPage, Label: PageAgents.String(), Page: PageAgents},
		SidebarItem{Kind: ItemPage, Label: PageProfile.String(), Page: PageProfile},
	)
	return items
}

// =============================================================================
// NAVIGATION
// =============================================================================

// CursorUp moves the cursor to the previous item.
func (sb *Sidebar) CursorUp() {
	if sb.cursor > 0 {
		sb.cursor--
	}
}

// CursorDown moves the cursor to the next item.
func (sb *Sidebar) CursorDown() {
	if sb.cursor < len(sb.Items())-1 {
		sb.cursor++
	}
}

// Selected returns the highlighted item.
func (sb *Sidebar) Selected() SidebarItem {
	items := sb.Items()
	sb.clampCursor()
	return items[sb.cursor]
}

// Activate applies the highlighted item when it only affects the sidebar
// (sections) and returns it so the caller can handle the rest.
func (sb *Sidebar) Activate() SidebarItem {
	item := sb.Selected()
	if item.Kind == ItemSection {
		switch item.Section {
		case SectionAgents:
			sb.agentsExpanded = !sb.agentsExpanded
		case SectionConversations:
			sb.conversationsExpanded = !sb.conversationsExpanded
		}
		sb.clampCursor()
	}
	return item
}

func (sb *Sidebar) clampCursor() {
	n := len(sb.Items())
	if sb.cursor >= n {
		sb.cursor = n - 1
	}
	if sb.cursor < 0 {
		sb.cursor = 0
	}
}

// =============================================================================
// RENDERING
// =============================================================================

// View renders the sidebar, or nothing when collapsed.
func (sb *Sidebar) View() string {
	if sb.collapsed {
		return ""
	}
	s := sb.styles
	inner := SidebarWidth - s.Sidebar.GetHorizontalFrameSize()

	var b strings.Builder
	b.WriteString(s.HeaderBrand.Render("M") + " " + s.SidebarTitle.Render(Brand))
	b.WriteString("\n\n")

	for i, item := range sb.Items() {
		b.WriteString(sb.renderItem(item, i == sb.cursor && sb.focused, inner))
		b.WriteString("\n")
	}

	style := s.Sidebar.Width(SidebarWidth - s.Sidebar.GetHorizontalBorderSize())
	if sb.height > 0 {
		style = style.Height(sb.height).MaxHeight(sb.height)
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (sb *Sidebar) renderItem(item SidebarItem, highlighted bool, width int) string {
	s := sb.styles
	label := item.Label
	prefix := ""
	if item.indent {
		prefix = "  "
	}

	switch item.Kind {
	case ItemSection:
		arrow := "> "
		if (item.Section == SectionAgents && sb.agentsExpanded) ||
			(item.Section == SectionConversations && sb.conversationsExpanded) {
			arrow = "v "
		}
		label = arrow + label
	case ItemConversation:
		if sb.typing[item.ConversationID] {
			label += " " + StatusTyping
		}
	}

	label = util.TruncateWidth(prefix+label, width-1)
	label = util.PadWidth(label, width-1)

	switch {
	case highlighted:
		return s.NavItemCursor.Render(label)
	case item.Kind == ItemConversation && item.ConversationID == sb.activeID && sb.page == PageChat:
		return s.NavItemActive.Render(label)
	case item.Kind == ItemPage && item.Page == sb.page && item.Label == item.Page.String():
		return s.NavItemActive.Render(label)
	case item.Kind == ItemSection:
		return s.NavItem.Bold(true).Render(label)
	default:
		return s.NavItem.Render(label)
	}
}

// StatusTyping marks a conversation that is waiting for a reply.
const StatusTyping = "..."
