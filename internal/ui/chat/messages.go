// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
)

// =============================================================================
// SESSION MESSAGES
// =============================================================================

// EventMsg delivers one session event to the Bubble Tea loop.
type EventMsg struct {
	Event session.Event
}

// EventsClosedMsg is sent once the session event channel is closed.
type EventsClosedMsg struct{}

// =============================================================================
// SIDE-EFFECT RESULTS
// =============================================================================

// TranscriptMsg carries the result of a voice input. Seq identifies the
// recording that produced it.
type TranscriptMsg struct {
	Seq  int
	Text string
	Err  error
}

// CopiedMsg reports a clipboard copy.
type CopiedMsg struct {
	Err error
}

// ExportedMsg reports a transcript export.
type ExportedMsg struct {
	Path string
	Err  error
}
