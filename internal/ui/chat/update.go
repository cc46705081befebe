// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/export"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/speech"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// WaitForEvent returns a command that blocks for the next session event.
// Re-issue it after every EventMsg to keep the bridge open.
func WaitForEvent(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return EventsClosedMsg{}
		}
		return EventMsg{Event: e}
	}
}

// TranscribeCmd records one utterance for recording seq. Cancelling ctx
// stops the recording.
func TranscribeCmd(ctx context.Context, t speech.Transcriber, seq int) tea.Cmd {
	return func() tea.Msg {
		text, err := t.Transcribe(ctx)
		return TranscriptMsg{Seq: seq, Text: text, Err: err}
	}
}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// CopyCmd puts text on the system clipboard.
func CopyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return CopiedMsg{Err: clipboardWrite(text)}
	}
}

// ExportCmd writes conv as a timestamped markdown file under dir.
func ExportCmd(conv *model.Conversation, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := export.ToDir(conv, dir, export.DefaultOptions())
		return ExportedMsg{Path: path, Err: err}
	}
}
