// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/markdown"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/reply"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// scriptedReader replays lines, then reports io.EOF.
type scriptedReader struct {
	lines   []string
	history []string
}

func (s *scriptedReader) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedReader) AppendHistory(item string) {
	s.history = append(s.history, item)
}

func echo() reply.Generator {
	return reply.GeneratorFunc(func(_ context.Context, input string) (string, error) {
		return "echo: " + input, nil
	})
}

// runREPL feeds lines to a REPL over gen and returns the manager and the
// plain-text output.
func runREPL(t *testing.T, gen reply.Generator, interrupt func(context.Context) (context.Context, context.CancelFunc), lines ...string) (*session.Manager, *scriptedReader, string) {
	t.Helper()
	manager := session.NewManager(gen, session.DefaultConfig())
	t.Cleanup(manager.Close)

	if interrupt == nil {
		interrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithCancel(ctx)
		}
	}

	in := &scriptedReader{lines: lines}
	var out bytes.Buffer
	r := NewREPL(manager, REPLOptions{
		In:        in,
		Out:       &out,
		Renderer:  markdown.NewPlain(80),
		Theme:     theme.Light,
		Interrupt: interrupt,
	})
	require.NoError(t, r.Run(context.Background()))
	require.NoError(t, r.Close())
	return manager, in, ansi.Strip(out.String())
}

// =============================================================================
// REPL TESTS
// =============================================================================

func TestREPLBanner(t *testing.T) {
	_, _, out := runREPL(t, echo(), nil)
	assert.Contains(t, out, "Secure Chat")
	assert.Contains(t, out, "Type /help for commands.")
}

func TestREPLSendAndReply(t *testing.T) {
	manager, in, out := runREPL(t, echo(), nil, "hello", "   ", "")

	assert.Contains(t, out, "Secure Chat is typing...")
	assert.Contains(t, out, "echo: hello")
	assert.Equal(t, []string{"hello"}, in.history)

	state := manager.Snapshot()
	require.NotNil(t, state.CurrentConversation)
	assert.Equal(t, "hello", state.CurrentConversation.Title)
	assert.Equal(t, 2, state.CurrentConversation.MessageCount())
}

func TestREPLQuitStopsReading(t *testing.T) {
	manager, in, _ := runREPL(t, echo(), nil, "/quit", "never sent")

	assert.Equal(t, []string{"never sent"}, in.lines)
	assert.Empty(t, manager.Snapshot().Conversations)
}

func TestREPLHelpAndUnknownCommand(t *testing.T) {
	_, _, out := runREPL(t, echo(), nil, "/help", "/bogus")

	assert.Contains(t, out, "/export [path]")
	assert.Contains(t, out, "[Error] unknown command: /bogus (type /help)")
}

func TestREPLNewAndList(t *testing.T) {
	manager, _, out := runREPL(t, echo(), nil, "/list", "first", "/new", "second", "/list")

	assert.Contains(t, out, "No conversations yet.")
	assert.Contains(t, out, "Started a new conversation.")
	assert.Contains(t, out, "  1. first (2 messages)")
	assert.Contains(t, out, "* 2. second (2 messages)")
	assert.Len(t, manager.Snapshot().Conversations, 2)
}

func TestREPLLoad(t *testing.T) {
	manager, _, out := runREPL(t, echo(), nil, "first", "/new", "second", "/load 1")

	state := manager.Snapshot()
	require.NotNil(t, state.CurrentConversation)
	assert.Equal(t, "first", state.CurrentConversation.Title)
	assert.Contains(t, out, "Loaded: first")
	assert.Equal(t, 2, strings.Count(out, "echo: first"), "transcript is printed again on load")
}

func TestREPLLoadErrors(t *testing.T) {
	_, _, out := runREPL(t, echo(), nil, "/load", "/load 3", "hi", "/load missing-id")

	assert.Contains(t, out, "usage: /load <n|id>")
	assert.Contains(t, out, "no conversation 3 (have 0)")
	assert.Contains(t, out, "conversation not found: missing-id")
}

func TestREPLExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chat.md")
	_, _, out := runREPL(t, echo(), nil, "/export "+path, "hello", "/export "+path)

	assert.Contains(t, out, "no active conversation to export")
	assert.Contains(t, out, "Exported to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "echo: hello")
}

func TestREPLRetry(t *testing.T) {
	var calls atomic.Int32
	gen := reply.GeneratorFunc(func(_ context.Context, input string) (string, error) {
		if calls.Add(1) == 1 {
			return "", errors.New("backend down")
		}
		return "echo: " + input, nil
	})

	manager, _, out := runREPL(t, gen, nil, "/retry", "hello", "/retry")

	assert.Contains(t, out, "no failed reply to retry")
	assert.Contains(t, out, "reply failed:")
	assert.Contains(t, out, "type /retry to try again")
	assert.Contains(t, out, "echo: hello")

	state := manager.Snapshot()
	assert.Nil(t, state.LastError)
	require.NotNil(t, state.CurrentConversation)
	assert.Equal(t, 2, state.CurrentConversation.MessageCount())
}

func TestREPLInterruptCancelsReply(t *testing.T) {
	blocking := reply.GeneratorFunc(func(ctx context.Context, _ string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	interrupted := func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		return ctx, cancel
	}

	manager, _, out := runREPL(t, blocking, interrupted, "hello")

	assert.Contains(t, out, "[Cancelled]")
	state := manager.Snapshot()
	require.NotNil(t, state.CurrentConversation)
	assert.Equal(t, 1, state.CurrentConversation.MessageCount())
}

func TestREPLExportWithoutPathUsesExportDir(t *testing.T) {
	manager := session.NewManager(echo(), session.DefaultConfig())
	t.Cleanup(manager.Close)

	dir := t.TempDir()
	var out bytes.Buffer
	r := NewREPL(manager, REPLOptions{
		In:        &scriptedReader{lines: []string{"hello", "/export"}},
		Out:       &out,
		Renderer:  markdown.NewPlain(80),
		ExportDir: dir,
		Interrupt: func(ctx context.Context) (context.Context, context.CancelFunc) {
			return context.WithCancel(ctx)
		},
	})
	require.NoError(t, r.Run(context.Background()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "conversation_hello_"), entries[0].Name())
	assert.Contains(t, ansi.Strip(out.String()), "Exported to "+filepath.Join(dir, entries[0].Name()))
}
