// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/reply"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/chat"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/components"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestApp(t *testing.T) (*Model, *session.Manager, *theme.Static) {
	t.Helper()
	gen := reply.GeneratorFunc(func(_ context.Context, input string) (string, error) {
		return "reply to " + input, nil
	})
	manager := session.NewManager(gen, session.DefaultConfig())
	t.Cleanup(manager.Close)

	provider := theme.NewStatic(theme.Light)
	m := New(manager, Options{
		Theme:   provider,
		Profile: components.Profile{Name: "Jane Doe", Email: "jane.doe@m365.com", IsAdmin: true},
	})
	t.Cleanup(m.Close)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, manager, provider
}

func press(m *Model, k tea.KeyMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

func typeAndSend(t *testing.T, m *Model, text string) {
	t.Helper()
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
}

// pump feeds session events into the model until one of kind arrives.
func pump(t *testing.T, m *Model, kind session.EventKind) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-m.events:
			m.Update(chat.EventMsg{Event: e})
			if e.Kind == kind {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", kind)
		}
	}
}

func view(m *Model) string {
	return ansi.Strip(m.View())
}

// =============================================================================
// LAYOUT TESTS
// =============================================================================

func TestInitialView(t *testing.T) {
	m, _, _ := newTestApp(t)
	out := view(m)

	for _, want := range []string{components.Brand, "Conversations", components.Greeting, "ctrl+b"} {
		if !strings.Contains(out, want) {
			t.Errorf("initial view missing %q", want)
		}
	}
	if m.Init() == nil {
		t.Error("Init() should start the event bridges")
	}
}

func TestViewFitsWindow(t *testing.T) {
	m, _, _ := newTestApp(t)
	typeAndSend(t, m, "hello")
	pump(t, m, session.EventAssistantMessage)

	out := m.View()
	if h := lipgloss.Height(out); h > 40 {
		t.Errorf("view height %d exceeds window", h)
	}
	for _, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 120 {
			t.Errorf("line width %d exceeds window: %q", w, ansi.Strip(line))
			break
		}
	}
}

func TestToggleSidebar(t *testing.T) {
	m, _, _ := newTestApp(t)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlB})
	if !m.Sidebar().Collapsed() {
		t.Fatal("ctrl+b should collapse the sidebar")
	}
	if strings.Contains(view(m), components.Brand) {
		t.Error("collapsed sidebar still rendered")
	}

	press(m, tea.KeyMsg{Type: tea.KeyCtrlB})
	if m.Sidebar().Collapsed() {
		t.Error("ctrl+b should expand the sidebar")
	}
}

// =============================================================================
// NAVIGATION TESTS
// =============================================================================

// selectItem focuses the sidebar and moves the cursor to label.
func selectItem(t *testing.T, m *Model, label string) {
	t.Helper()
	if !m.Sidebar().Focused() {
		press(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	for i := 0; i < 3*len(m.Sidebar().Items()); i++ {
		press(m, tea.KeyMsg{Type: tea.KeyUp})
	}
	for i := 0; i < len(m.Sidebar().Items()); i++ {
		if m.Sidebar().Selected().Label == label {
			press(m, tea.KeyMsg{Type: tea.KeyEnter})
			return
		}
		press(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	t.Fatalf("sidebar item %q not found", label)
}

func TestNavigateToPages(t *testing.T) {
	m, _, _ := newTestApp(t)

	tests := []struct {
		label string
		page  components.Page
		want  string
	}{
		{"Search", components.PageSearch, "Placeholder results"},
		{"Time Entry", components.PageTimeEntry, "Entry Description"},
		{"Prompt Coach", components.PagePromptCoach, "Agent Role"},
		{"Profile", components.PageProfile, "jane.doe@m365.com"},
		{"Create Agent", components.PageAgents, "Design a new agent"},
	}

	for _, tc := range tests {
		selectItem(t, m, tc.label)
		if m.Page() != tc.page {
			t.Errorf("%s: Page() = %v, want %v", tc.label, m.Page(), tc.page)
		}
		if m.Sidebar().Focused() {
			t.Errorf("%s: focus should return to the page", tc.label)
		}
		if out := view(m); !strings.Contains(out, tc.want) {
			t.Errorf("%s page missing %q", tc.label, tc.want)
		}
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Page() != components.PageChat {
		t.Errorf("esc should return to chat, got %v", m.Page())
	}
}

func TestSidebarLoadsConversation(t *testing.T) {
	m, manager, _ := newTestApp(t)

	typeAndSend(t, m, "first topic")
	pump(t, m, session.EventAssistantMessage)
	firstID := manager.CurrentID()

	selectItem(t, m, "+ New chat")
	if manager.CurrentID() != "" {
		t.Fatal("new chat should clear the active conversation")
	}

	typeAndSend(t, m, "second topic")
	pump(t, m, session.EventAssistantMessage)
	if manager.CurrentID() == firstID {
		t.Fatal("second message should start a new conversation")
	}

	selectItem(t, m, "first topic")
	if manager.CurrentID() != firstID {
		t.Errorf("CurrentID() = %q, want %q", manager.CurrentID(), firstID)
	}
	if !strings.Contains(view(m), "reply to first topic") {
		t.Error("loaded conversation not shown")
	}
}

func TestHeaderShowsConversationTitle(t *testing.T) {
	m, _, _ := newTestApp(t)
	typeAndSend(t, m, "title me")
	pump(t, m, session.EventAssistantMessage)

	first := strings.SplitN(view(m), "\n", 2)[0]
	if !strings.Contains(first, "title me") {
		t.Errorf("header = %q, want conversation title", first)
	}
}

type staticTranscriber string

func (s staticTranscriber) Transcribe(context.Context) (string, error) {
	return string(s), nil
}

func TestHeaderShowsListening(t *testing.T) {
	manager := session.NewManager(reply.GeneratorFunc(func(_ context.Context, input string) (string, error) {
		return input, nil
	}), session.DefaultConfig())
	t.Cleanup(manager.Close)

	m := New(manager, Options{Theme: theme.NewStatic(theme.Light), Transcriber: staticTranscriber("hello")})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("ctrl+r should start a recording")
	}
	if first := strings.SplitN(view(m), "\n", 2)[0]; !strings.Contains(first, "Listening...") {
		t.Errorf("header = %q, want Listening...", first)
	}

	m.Update(cmd())
	if first := strings.SplitN(view(m), "\n", 2)[0]; strings.Contains(first, "Listening...") {
		t.Errorf("header = %q after transcript, want no Listening...", first)
	}
}

// =============================================================================
// THEME AND NOTICE TESTS
// =============================================================================

func TestThemeChangeRestyles(t *testing.T) {
	m, _, provider := newTestApp(t)

	provider.Set(theme.Dark)
	msg := waitForTheme(m.themes)()
	m.Update(msg)

	if m.Styles().Theme != theme.Dark {
		t.Errorf("Styles().Theme = %q, want dark", m.Styles().Theme)
	}
}

func TestWatchThemeKeepsLatest(t *testing.T) {
	provider := theme.NewStatic(theme.Light)
	ch, stop := watchTheme(provider)
	defer stop()

	provider.Set(theme.Dark)
	provider.Set(theme.Contrast)

	msg := waitForTheme(ch)()
	if got := msg.(ThemeChangedMsg).Theme; got != theme.Contrast {
		t.Errorf("theme = %q, want contrast", got)
	}
}

func TestNoticeExpires(t *testing.T) {
	m, _, _ := newTestApp(t)

	// Copy with no reply raises a warning notice.
	press(m, tea.KeyMsg{Type: tea.KeyCtrlY})
	n := m.statusBar.Notice
	if n == nil {
		t.Fatal("expected a notice")
	}
	if !strings.Contains(view(m), "No reply to copy") {
		t.Error("notice not rendered")
	}

	m.Update(components.NoticeExpiredMsg{ID: n.ID + 100})
	if m.statusBar.Notice == nil {
		t.Error("unrelated expiry cleared the notice")
	}
	m.Update(components.NoticeExpiredMsg{ID: n.ID})
	if m.statusBar.Notice != nil {
		t.Error("notice not cleared on expiry")
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestApp(t)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}
