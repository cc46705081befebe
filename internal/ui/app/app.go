// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/markdown"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/speech"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/chat"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/components"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
)

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// Options configures the application model.
type Options struct {
	Theme          theme.Provider
	Renderer       *markdown.Renderer
	Transcriber    speech.Transcriber
	Profile        components.Profile
	ExportDir      string
	ShowTimestamps bool
}

// Model is the main application model.
type Model struct {
	manager *session.Manager
	events  <-chan session.Event
	themes  <-chan theme.Theme
	stop    []func()

	styles *styles.Styles
	keyMap KeyMap

	header    *components.Header
	sidebar   *components.Sidebar
	statusBar *components.StatusBar
	pages     *components.PageView
	chat      chat.Model

	page   components.Page
	width  int
	height int
}

// New creates the application model. Call Close after the program exits.
func New(manager *session.Manager, opts Options) *Model {
	if opts.Theme == nil {
		opts.Theme = theme.NewStatic(theme.Light)
	}
	if opts.Renderer == nil {
		opts.Renderer = markdown.New(opts.Theme.Theme(), markdown.DefaultWidth)
	}

	st := styles.New(opts.Theme.Theme())
	events, unsubscribe := manager.Subscribe()
	themes, stopThemes := watchTheme(opts.Theme)

	m := &Model{
		manager:   manager,
		events:    events,
		themes:    themes,
		stop:      []func(){unsubscribe, stopThemes},
		styles:    st,
		keyMap:    DefaultKeyMap(),
		header:    components.NewHeader(st),
		sidebar:   components.NewSidebar(st),
		statusBar: components.NewStatusBar(st),
		pages:     components.NewPageView(st, opts.Profile),
		chat: chat.New(manager, chat.Options{
			Styles:         st,
			Renderer:       opts.Renderer,
			Transcriber:    opts.Transcriber,
			ExportDir:      opts.ExportDir,
			ShowTimestamps: opts.ShowTimestamps,
		}),
		page:   components.PageChat,
		width:  80,
		height: 24,
	}
	m.layout()
	m.syncChrome()
	return m
}

// Close stops the event and theme subscriptions.
func (m *Model) Close() {
	for _, stop := range m.stop {
		stop()
	}
	m.stop = nil
}

// Page returns the current page.
func (m *Model) Page() components.Page {
	return m.page
}

// Sidebar exposes the sidebar for inspection.
func (m *Model) Sidebar() *components.Sidebar {
	return m.sidebar
}

// Styles returns the active style sheet.
func (m *Model) Styles() *styles.Styles {
	return m.styles
}

// Init starts the event bridges.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.chat.Init(),
		chat.WaitForEvent(m.events),
		waitForTheme(m.themes),
	)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case chat.EventMsg:
		cmd := m.updateChat(msg)
		m.syncChrome()
		return m, tea.Batch(cmd, chat.WaitForEvent(m.events))

	case chat.EventsClosedMsg:
		return m, nil

	case chat.TranscriptMsg:
		cmd := m.updateChat(msg)
		m.syncChrome()
		return m, cmd

	case ThemeChangedMsg:
		m.applyTheme(msg.Theme)
		return m, waitForTheme(m.themes)

	case components.NoticeExpiredMsg:
		if m.statusBar.Notice != nil && m.statusBar.Notice.ID == msg.ID {
			m.statusBar.Notice = nil
		}
		return m, nil
	}

	return m, m.updateChat(msg)
}

// updateChat forwards msg to the chat page and surfaces its notice.
func (m *Model) updateChat(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	if n := m.chat.TakeNotice(); n != nil {
		m.statusBar.Notice = n
		log.Printf("NOTICE | kind=%d message=%q", n.Kind, n.Message)
		return tea.Batch(cmd, n.ExpireCmd())
	}
	return cmd
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.ToggleSidebar):
		m.sidebar.ToggleCollapsed()
		m.layout()
		return m, m.focusMain()

	case key.Matches(msg, m.keyMap.SwitchFocus):
		if m.sidebar.Collapsed() {
			return m, nil
		}
		if m.sidebar.Focused() {
			return m, m.focusMain()
		}
		m.sidebar.SetFocused(true)
		m.chat.Blur()
		m.syncChrome()
		return m, nil
	}

	if m.sidebar.Focused() {
		return m, m.handleSidebarKey(msg)
	}

	if m.page != components.PageChat {
		if key.Matches(msg, m.keyMap.Back) {
			m.setPage(components.PageChat)
		}
		return m, nil
	}

	cmd := m.updateChat(msg)
	m.syncChrome()
	return m, cmd
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Up):
		m.sidebar.CursorUp()
	case key.Matches(msg, m.keyMap.Down):
		m.sidebar.CursorDown()
	case key.Matches(msg, m.keyMap.Back):
		return m.focusMain()
	case key.Matches(msg, m.keyMap.Select):
		return m.activate(m.sidebar.Activate())
	}
	return nil
}

// activate performs a sidebar selection.
func (m *Model) activate(item components.SidebarItem) tea.Cmd {
	switch item.Kind {
	case components.ItemSection:
		return nil
	case components.ItemPage:
		m.setPage(item.Page)
	case components.ItemNewChat:
		m.manager.StartNewConversation()
		m.setPage(components.PageChat)
	case components.ItemConversation:
		if !m.manager.LoadConversation(item.ConversationID) {
			m.statusBar.Notice = components.NewNotice(components.NoticeWarning, "Conversation not found")
			return m.statusBar.Notice.ExpireCmd()
		}
		m.setPage(components.PageChat)
	}
	cmd := m.chat.Refresh()
	return tea.Batch(cmd, m.focusMain())
}

func (m *Model) setPage(p components.Page) {
	m.page = p
	m.syncChrome()
}

func (m *Model) focusMain() tea.Cmd {
	m.sidebar.SetFocused(false)
	m.syncChrome()
	if m.page == components.PageChat {
		return m.chat.Focus()
	}
	return nil
}

func (m *Model) applyTheme(t theme.Theme) {
	if t == m.styles.Theme {
		return
	}
	log.Printf("THEME_APPLIED | theme=%s", t)
	m.styles = styles.New(t)
	m.header.SetStyles(m.styles)
	m.sidebar.SetStyles(m.styles)
	m.statusBar.SetStyles(m.styles)
	m.pages.SetStyles(m.styles)
	m.chat.SetStyles(m.styles)
	m.syncChrome()
}

// =============================================================================
// LAYOUT
// =============================================================================

// chromeHeight is the header plus its border and the status bar.
const chromeHeight = 3

func (m *Model) layout() {
	mainWidth := m.width - m.sidebar.Width()
	mainHeight := m.height - chromeHeight
	if mainHeight < 5 {
		mainHeight = 5
	}
	m.header.SetWidth(m.width)
	m.statusBar.Width = m.width
	m.sidebar.SetHeight(mainHeight)
	m.pages.SetWidth(mainWidth)
	m.chat.SetSize(mainWidth, mainHeight)
}

// syncChrome feeds the header and sidebar from the chat page's snapshot.
func (m *Model) syncChrome() {
	state := m.chat.State()

	metas := make([]model.ConversationMeta, len(state.Conversations))
	typing := make(map[string]bool, len(state.Conversations))
	for i, c := range state.Conversations {
		metas[i] = c.Meta()
		typing[c.ID] = state.IsTypingIn(c.ID)
	}
	activeID := ""
	if state.CurrentConversation != nil {
		activeID = state.CurrentConversation.ID
	}
	m.sidebar.SetConversations(metas, activeID, typing)
	m.sidebar.SetPage(m.page)

	switch {
	case m.page != components.PageChat:
		m.header.Title = m.page.String()
	case state.CurrentConversation != nil:
		m.header.Title = state.CurrentConversation.DisplayTitle()
	default:
		m.header.Title = chat.AssistantName
	}

	switch {
	case m.chat.Recording():
		m.header.Subtitle = "Listening..."
	case state.IsLoading:
		m.header.Subtitle = "Queued..."
	case state.IsTyping:
		m.header.Subtitle = "Typing..."
	default:
		m.header.Subtitle = ""
	}

	m.statusBar.Bindings = m.bindings()
}

func (m *Model) bindings() []key.Binding {
	k := m.keyMap
	if m.sidebar.Focused() {
		return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.ToggleSidebar, k.Quit}
	}
	if m.page != components.PageChat {
		return []key.Binding{k.Back, k.SwitchFocus, k.ToggleSidebar, k.Quit}
	}
	bindings := []key.Binding{k.ToggleSidebar, k.SwitchFocus}
	bindings = append(bindings, m.chat.KeyMap().ShortHelp()...)
	return append(bindings, k.Quit)
}

// View renders the application.
func (m *Model) View() string {
	mainWidth := m.width - m.sidebar.Width()
	mainHeight := m.height - chromeHeight
	if mainHeight < 5 {
		mainHeight = 5
	}

	var main string
	if m.page == components.PageChat {
		main = m.chat.View()
	} else {
		main = lipgloss.Place(mainWidth, mainHeight, lipgloss.Center, lipgloss.Top, m.pages.View(m.page))
	}
	main = lipgloss.NewStyle().Width(mainWidth).MaxHeight(mainHeight).Render(main)

	body := main
	if !m.sidebar.Collapsed() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.statusBar.View())
}
