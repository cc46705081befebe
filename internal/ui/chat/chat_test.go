// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/reply"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/speech"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/components"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(context.Context) (string, error) {
	return f.text, f.err
}

type harness struct {
	t       *testing.T
	m       Model
	manager *session.Manager
	events  <-chan session.Event
}

// newHarness builds a 100x30 chat page over a fresh manager.
func newHarness(t *testing.T, gen reply.Generator, opts Options) *harness {
	t.Helper()
	manager := session.NewManager(gen, session.DefaultConfig())
	t.Cleanup(manager.Close)

	events, unsubscribe := manager.Subscribe()
	t.Cleanup(unsubscribe)

	h := &harness{t: t, manager: manager, events: events}
	h.m = New(manager, opts)
	h.m.SetSize(100, 30)
	return h
}

func echo() reply.Generator {
	return reply.GeneratorFunc(func(_ context.Context, input string) (string, error) {
		return "echo: " + input, nil
	})
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.m, cmd = h.m.Update(msg)
	return cmd
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// await feeds events to the page until one of kind arrives.
func (h *harness) await(kind session.EventKind) session.Event {
	h.t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-h.events:
			h.send(EventMsg{Event: e})
			if e.Kind == kind {
				return e
			}
		case <-deadline:
			h.t.Fatalf("timed out waiting for %s", kind)
		}
	}
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

// =============================================================================
// EMPTY STATE
// =============================================================================

func TestEmptyStateShowsGreetingAndCards(t *testing.T) {
	h := newHarness(t, echo(), Options{})

	out := h.view()
	assert.Contains(t, out, components.Greeting)
	assert.Contains(t, out, "Have a laugh")
	assert.Contains(t, out, Placeholder)
	assert.Contains(t, out, Disclaimer)
}

func TestSuggestionFillsInput(t *testing.T) {
	h := newHarness(t, echo(), Options{})

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}, Alt: true})
	assert.Equal(t, components.Suggestions[1].Title, h.m.input.Value())
	assert.Nil(t, h.manager.Snapshot().CurrentConversation, "suggestion must not send")
}

// =============================================================================
// SENDING
// =============================================================================

func TestSendCreatesConversationAndShowsReply(t *testing.T) {
	h := newHarness(t, echo(), Options{})

	h.typeText("hello there")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, h.m.input.Value(), "input should clear after send")
	state := h.m.State()
	require.NotNil(t, state.CurrentConversation)
	assert.Equal(t, "hello there", state.CurrentConversation.Title)

	h.await(session.EventAssistantMessage)

	out := h.view()
	assert.Contains(t, out, "hello there")
	assert.Contains(t, out, "echo: hello there")
	assert.Contains(t, out, AssistantName)
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, components.FollowUps[0], "chips follow an assistant reply")
}

func TestBlankSendIgnored(t *testing.T) {
	h := newHarness(t, echo(), Options{})

	h.typeText("   ")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, h.manager.Snapshot().CurrentConversation)
	select {
	case e := <-h.events:
		t.Fatalf("unexpected event %s", e.Kind)
	default:
	}
}

func TestTypingIndicatorWhileReplyOutstanding(t *testing.T) {
	release := make(chan struct{})
	gen := reply.GeneratorFunc(func(ctx context.Context, input string) (string, error) {
		select {
		case <-release:
			return "done", nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	})
	h := newHarness(t, gen, Options{})

	h.typeText("wait for it")
	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "send should start the spinner")

	assert.True(t, h.m.State().IsTyping)
	assert.NotContains(t, h.view(), components.FollowUps[0], "no chips while typing")

	close(release)
	h.await(session.EventAssistantMessage)
	assert.False(t, h.m.State().IsTyping)
	assert.Contains(t, h.view(), "done")
}

func TestFollowUpChipFillsInput(t *testing.T) {
	h := newHarness(t, echo(), Options{})
	h.typeText("jokes")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.await(session.EventAssistantMessage)

	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}, Alt: true})
	assert.Equal(t, components.FollowUps[2], h.m.input.Value())
}

func TestNewChatKey(t *testing.T) {
	h := newHarness(t, echo(), Options{})
	h.typeText("first")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.await(session.EventAssistantMessage)

	h.send(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.Nil(t, h.m.State().CurrentConversation)
	assert.Len(t, h.m.State().Conversations, 1)
	assert.Contains(t, h.view(), components.Greeting)
}

// =============================================================================
// ERRORS
// =============================================================================

func TestErrorBannerDismissAndRetry(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	gen := reply.GeneratorFunc(func(context.Context, string) (string, error) {
		if fail.Load() {
			return "", errors.New("backend down")
		}
		return "recovered", nil
	})
	h := newHarness(t, gen, Options{})

	h.typeText("ping")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.await(session.EventReplyFailed)

	require.NotNil(t, h.m.State().LastError)
	assert.Contains(t, h.view(), "backend down")

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, h.m.State().LastError)
	assert.NotContains(t, h.view(), "backend down")

	// Fail again, then retry successfully.
	h.typeText("ping again")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.await(session.EventReplyFailed)

	fail.Store(false)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	h.await(session.EventAssistantMessage)

	assert.Nil(t, h.m.State().LastError)
	assert.Contains(t, h.view(), "recovered")
	// ping, ping again, recovered
	assert.Equal(t, 3, h.m.State().CurrentConversation.MessageCount())
}

// =============================================================================
// VOICE, CLIPBOARD, EXPORT
// =============================================================================

func runCmd(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	return cmd()
}

func TestVoiceInputMergesTranscript(t *testing.T) {
	h := newHarness(t, echo(), Options{Transcriber: fakeTranscriber{text: "world"}})
	h.typeText("hello")

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.True(t, h.m.recording)
	assert.Contains(t, h.view(), "Listening")

	h.send(runCmd(t, cmd))
	assert.False(t, h.m.recording)
	assert.Equal(t, "hello world", h.m.input.Value())
}

func TestVoiceInputUnsupported(t *testing.T) {
	h := newHarness(t, echo(), Options{Transcriber: speech.Unsupported{}})

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	h.send(runCmd(t, cmd))

	n := h.m.TakeNotice()
	require.NotNil(t, n)
	assert.Equal(t, components.NoticeWarning, n.Kind)
	assert.Contains(t, n.Message, "not supported")
	assert.Nil(t, h.m.TakeNotice(), "notice is taken once")
}

func TestVoiceInputCancelledByEsc(t *testing.T) {
	h := newHarness(t, echo(), Options{Transcriber: fakeTranscriber{err: context.Canceled}})

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.m.recording)

	h.send(runCmd(t, cmd))
	assert.Nil(t, h.m.TakeNotice())
	assert.Empty(t, h.m.input.Value())
}

// ctxTranscriber returns "world" unless its recording was stopped.
type ctxTranscriber struct{}

func (ctxTranscriber) Transcribe(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "world", nil
}

func TestVoiceInputIgnoresStaleTranscript(t *testing.T) {
	h := newHarness(t, echo(), Options{Transcriber: ctxTranscriber{}})

	first := h.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	second := h.send(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.True(t, h.m.recording)

	// The stopped recording reports late; the new one keeps going.
	h.send(runCmd(t, first))
	assert.True(t, h.m.recording)
	assert.Nil(t, h.m.TakeNotice())

	h.send(runCmd(t, second))
	assert.False(t, h.m.recording)
	assert.Equal(t, "world", h.m.input.Value())
}

func TestCopyLastReply(t *testing.T) {
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { clipboardWrite = orig })

	h := newHarness(t, echo(), Options{})

	h.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	n := h.m.TakeNotice()
	require.NotNil(t, n, "copy without a reply warns")

	h.typeText("copy me")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.await(session.EventAssistantMessage)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	h.send(runCmd(t, cmd))

	assert.Equal(t, "echo: copy me", copied)
	n = h.m.TakeNotice()
	require.NotNil(t, n)
	assert.Equal(t, components.NoticeSuccess, n.Kind)
}

func TestExportWritesTranscript(t *testing.T) {
	dir := t.TempDir()
	h := newHarness(t, echo(), Options{ExportDir: dir})

	h.typeText("export this")
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	h.await(session.EventAssistantMessage)

	msg := runCmd(t, h.send(tea.KeyMsg{Type: tea.KeyCtrlE}))
	exported, ok := msg.(ExportedMsg)
	require.True(t, ok)
	require.NoError(t, exported.Err)

	data, err := os.ReadFile(exported.Path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echo: export this")

	h.send(exported)
	n := h.m.TakeNotice()
	require.NotNil(t, n)
	assert.True(t, strings.Contains(n.Message, exported.Path))
}

func TestExportEmptyConversationWarns(t *testing.T) {
	h := newHarness(t, echo(), Options{ExportDir: t.TempDir()})
	assert.Nil(t, h.send(tea.KeyMsg{Type: tea.KeyCtrlE}))
	require.NotNil(t, h.m.TakeNotice())
}

// =============================================================================
// EVENT BRIDGE
// =============================================================================

func TestWaitForEvent(t *testing.T) {
	ch := make(chan session.Event, 1)
	ch <- session.Event{Kind: session.EventUserMessage, Message: model.NewUserMessage("x")}

	msg := WaitForEvent(ch)()
	em, ok := msg.(EventMsg)
	require.True(t, ok)
	assert.Equal(t, session.EventUserMessage, em.Event.Kind)

	close(ch)
	assert.IsType(t, EventsClosedMsg{}, WaitForEvent(ch)())
}
