// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "github.com/React365-Chris/Teams-Dev-SWA/internal/model"

// EventKind identifies what changed in the session.
type EventKind int

const (
	EventConversationCreated EventKind = iota
	EventConversationSelected
	EventConversationCleared
	EventUserMessage
	EventAssistantMessage
	EventReplyFailed
	EventReplyCancelled
	EventErrorDismissed
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventConversationCreated:
		return "conversation_created"
	case EventConversationSelected:
		return "conversation_selected"
	case EventConversationCleared:
		return "conversation_cleared"
	case EventUserMessage:
		return "user_message"
	case EventAssistantMessage:
		return "assistant_message"
	case EventReplyFailed:
		return "reply_failed"
	case EventReplyCancelled:
		return "reply_cancelled"
	case EventErrorDismissed:
		return "error_dismissed"
	default:
		return "unknown"
	}
}

// Event notifies subscribers of a state change. It carries enough to
// log or animate; views should re-read Snapshot for the full state.
type Event struct {
	Kind           EventKind
	ConversationID string
	Message        model.Message
	Err            error
}
