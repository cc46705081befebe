// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "github.com/React365-Chris/Teams-Dev-SWA/internal/model"

// State is a read-only copy of the session at one instant. Mutating it
// has no effect on the Manager.
type State struct {
	// CurrentConversation is the active conversation, or nil.
	CurrentConversation *model.Conversation

	// Conversations lists every conversation of this session in creation
	// order.
	Conversations []*model.Conversation

	// IsTyping is true while at least one reply is outstanding.
	IsTyping bool

	// IsLoading is true while at least one accepted request is still
	// waiting for a free reply slot.
	IsLoading bool

	// LastError is the most recent failed reply, until dismissed or retried.
	LastError *ReplyError

	typingIn map[string]int
}

// IsTypingIn reports whether a reply is outstanding for conversationID.
func (s State) IsTypingIn(conversationID string) bool {
	return s.typingIn[conversationID] > 0
}

// HasMessages reports whether the active conversation has any messages.
func (s State) HasMessages() bool {
	return s.CurrentConversation != nil && !s.CurrentConversation.IsEmpty()
}

// Conversation finds a conversation in the snapshot by ID.
func (s State) Conversation(id string) (*model.Conversation, bool) {
	for _, conv := range s.Conversations {
		if conv.ID == id {
			return conv, true
		}
	}
	return nil, false
}
