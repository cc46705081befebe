// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/markdown"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/speech"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/components"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
)

// Placeholder is the hint shown in the empty input.
const Placeholder = "Message Secure Chat"

// Disclaimer is shown under the input.
const Disclaimer = "AI-generated content may be incorrect"

// AssistantName labels assistant bubbles.
const AssistantName = "Secure Chat"

// inputHeight is the number of text rows of the input box.
const inputHeight = 3

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures a chat page.
type Options struct {
	Styles         *styles.Styles
	Renderer       *markdown.Renderer
	Transcriber    speech.Transcriber
	ExportDir      string
	ShowTimestamps bool
}

// Model is the Bubble Tea model for the chat page.
type Model struct {
	manager *session.Manager
	state   session.State

	styles      *styles.Styles
	renderer    *markdown.Renderer
	transcriber speech.Transcriber
	exportDir   string
	timestamps  bool

	// Dimensions
	width  int
	height int

	// UI Components
	viewport viewport.Model
	input    textarea.Model
	spinner  spinner.Model
	keyMap   KeyMap
	spinning bool

	// Voice input. recordSeq tags each recording so a late result from
	// a stopped one is ignored.
	recording    bool
	recordSeq    int
	cancelRecord context.CancelFunc

	// Rendered assistant replies by message ID
	rendered map[string]string

	// Notice for the status bar, picked up by the application model
	notice *components.Notice
}

// New creates a chat page bound to manager.
func New(manager *session.Manager, opts Options) Model {
	if opts.Styles == nil {
		opts.Styles = styles.New(theme.Light)
	}
	if opts.Renderer == nil {
		opts.Renderer = markdown.NewPlain(markdown.DefaultWidth)
	}
	if opts.Transcriber == nil {
		opts.Transcriber = speech.Unsupported{}
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	keys := DefaultKeyMap()

	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 8192
	ta.SetHeight(inputHeight)
	ta.KeyMap.InsertNewline = keys.Newline
	ta.Focus()

	sp := spinner.New(spinner.WithSpinner(styles.TypingDots.Spinner()))

	m := Model{
		manager:     manager,
		renderer:    opts.Renderer,
		transcriber: opts.Transcriber,
		exportDir:   opts.ExportDir,
		timestamps:  opts.ShowTimestamps,
		viewport:    viewport.New(80, 20),
		input:       ta,
		spinner:     sp,
		keyMap:      keys,
		rendered:    make(map[string]string),
	}
	m.SetStyles(opts.Styles)
	m.state = manager.Snapshot()
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the snapshot the page last rendered.
func (m Model) State() session.State {
	return m.state
}

// Recording reports whether voice input is active.
func (m Model) Recording() bool {
	return m.recording
}

// KeyMap returns the page's key bindings.
func (m Model) KeyMap() KeyMap {
	return m.keyMap
}

// TakeNotice returns and clears the pending notice.
func (m *Model) TakeNotice() *components.Notice {
	n := m.notice
	m.notice = nil
	return n
}

// SetStyles swaps the style sheet and re-renders with it.
func (m *Model) SetStyles(s *styles.Styles) {
	if s == nil {
		return
	}
	m.styles = s
	m.renderer.SetTheme(s.Theme)
	m.spinner.Style = s.Spinner
	m.input.FocusedStyle.Placeholder = s.Placeholder
	m.input.BlurredStyle.Placeholder = s.Placeholder
	m.input.FocusedStyle.Text = s.App
	m.rendered = make(map[string]string)
	m.syncViewport(false)
}

// SetSize lays the page out in width x height cells.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inner := width - m.styles.InputFocused.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}
	m.input.SetWidth(inner)
	m.renderer.SetWidth(m.bubbleWidth() - m.styles.AssistantBubble.GetHorizontalFrameSize())
	m.rendered = make(map[string]string)

	m.viewport.Width = width
	m.viewport.Height = m.viewportHeight()
	m.syncViewport(true)
}

// Focus gives the input keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes keyboard focus from the input.
func (m *Model) Blur() {
	m.input.Blur()
}

// Refresh re-reads the session snapshot. It returns a spinner tick when a
// reply just became outstanding.
func (m *Model) Refresh() tea.Cmd {
	prevID := m.currentID()
	prevCount := m.messageCount()

	m.state = m.manager.Snapshot()

	follow := m.currentID() != prevID || m.messageCount() != prevCount
	m.viewport.Height = m.viewportHeight()
	m.syncViewport(follow)

	if m.typingHere() && !m.spinning {
		m.spinning = true
		return m.spinner.Tick
	}
	return nil
}

func (m Model) currentID() string {
	if m.state.CurrentConversation == nil {
		return ""
	}
	return m.state.CurrentConversation.ID
}

func (m Model) messageCount() int {
	if m.state.CurrentConversation == nil {
		return 0
	}
	return m.state.CurrentConversation.MessageCount()
}

func (m Model) typingHere() bool {
	id := m.currentID()
	return id != "" && m.state.IsTypingIn(id)
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles key presses, side-effect results and spinner ticks.
// Session events are handled by calling Refresh.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		return m, m.Refresh()

	case spinner.TickMsg:
		if !m.typingHere() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncViewport(false)
		return m, cmd

	case TranscriptMsg:
		return m.handleTranscript(msg), nil

	case CopiedMsg:
		if msg.Err != nil {
			m.notice = components.NewNotice(components.NoticeError, "Copy failed: "+msg.Err.Error())
		} else {
			m.notice = components.NewNotice(components.NoticeSuccess, "Reply copied to clipboard")
		}
		return m, nil

	case ExportedMsg:
		if msg.Err != nil {
			m.notice = components.NewNotice(components.NoticeError, "Export failed: "+msg.Err.Error())
		} else {
			m.notice = components.NewNotice(components.NoticeSuccess, "Exported to "+msg.Path)
		}
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Send):
		return m.submit()

	case key.Matches(msg, m.keyMap.Suggestion):
		m.applySuggestion(suggestionIndex(msg.String()))
		return m, nil

	case key.Matches(msg, m.keyMap.Dismiss):
		if m.recording {
			m.stopRecording()
			return m, nil
		}
		if m.state.LastError != nil {
			m.manager.DismissError()
			return m, m.Refresh()
		}
		return m, nil

	case key.Matches(msg, m.keyMap.Retry):
		if m.state.LastError == nil {
			return m, nil
		}
		if _, err := m.manager.RetryFailed(context.Background()); err != nil {
			m.notice = components.NewNotice(components.NoticeWarning, err.Error())
		}
		return m, m.Refresh()

	case key.Matches(msg, m.keyMap.Voice):
		if m.recording {
			m.stopRecording()
			return m, nil
		}
		ctx, cancel := context.WithCancel(context.Background())
		m.recordSeq++
		m.recording = true
		m.cancelRecord = cancel
		m.viewport.Height = m.viewportHeight()
		return m, TranscribeCmd(ctx, m.transcriber, m.recordSeq)

	case key.Matches(msg, m.keyMap.Copy):
		if conv := m.state.CurrentConversation; conv != nil {
			if reply, ok := conv.LastAssistantMessage(); ok {
				return m, CopyCmd(reply.Content)
			}
		}
		m.notice = components.NewNotice(components.NoticeWarning, "No reply to copy")
		return m, nil

	case key.Matches(msg, m.keyMap.Export):
		if conv := m.state.CurrentConversation; conv != nil && !conv.IsEmpty() {
			return m, ExportCmd(conv, m.exportDir)
		}
		m.notice = components.NewNotice(components.NoticeWarning, "Nothing to export")
		return m, nil

	case key.Matches(msg, m.keyMap.NewChat):
		m.manager.StartNewConversation()
		return m, m.Refresh()

	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the draft. A blank draft is ignored and kept.
func (m Model) submit() (Model, tea.Cmd) {
	draft := m.input.Value()
	if strings.TrimSpace(draft) == "" {
		return m, nil
	}

	_, err := m.manager.SendMessage(context.Background(), draft)
	switch {
	case errors.Is(err, session.ErrEmptyInput):
		return m, nil
	case err != nil:
		m.notice = components.NewNotice(components.NoticeError, err.Error())
		return m, nil
	}

	m.input.Reset()
	return m, m.Refresh()
}

// applySuggestion fills the input from a suggestion card on an empty
// chat, or from a follow-up chip after a reply.
func (m *Model) applySuggestion(i int) {
	if i < 0 {
		return
	}
	switch {
	case !m.state.HasMessages():
		if i < len(components.Suggestions) {
			m.input.SetValue(components.Suggestions[i].Title)
		}
	case m.showChips():
		if i < len(components.FollowUps) {
			m.input.SetValue(components.FollowUps[i])
		}
	}
}

func (m *Model) stopRecording() {
	if m.cancelRecord != nil {
		m.cancelRecord()
		m.cancelRecord = nil
	}
	m.recording = false
	m.viewport.Height = m.viewportHeight()
}

func (m Model) handleTranscript(msg TranscriptMsg) Model {
	if !m.recording || msg.Seq != m.recordSeq {
		return m
	}
	if m.cancelRecord != nil {
		m.cancelRecord()
		m.cancelRecord = nil
	}
	m.recording = false
	m.viewport.Height = m.viewportHeight()

	switch {
	case errors.Is(msg.Err, speech.ErrUnsupported):
		m.notice = components.NewNotice(components.NoticeWarning, "Speech recognition is not supported in this terminal.")
	case errors.Is(msg.Err, context.Canceled):
	case errors.Is(msg.Err, speech.ErrNoSpeech):
		m.notice = components.NewNotice(components.NoticeInfo, "No speech detected")
	case msg.Err != nil:
		m.notice = components.NewNotice(components.NoticeError, "Voice input failed: "+msg.Err.Error())
	default:
		m.input.SetValue(speech.MergeTranscript(m.input.Value(), msg.Text))
	}
	return m
}
