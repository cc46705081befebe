// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/util"
)

// MaxTitleLength is the number of characters kept from the first message
// when deriving a conversation title.
const MaxTitleLength = 50

// DefaultTitle is shown for a conversation without a title.
const DefaultTitle = "New Conversation"

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the message history of one chat thread.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewConversation creates an empty conversation titled from firstMessage.
func NewConversation(firstMessage string) *Conversation {
	now := time.Now()
	return &Conversation{
		ID:        NewConversationID(),
		Title:     DeriveTitle(firstMessage),
		Messages:  make([]Message, 0, 2),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DeriveTitle returns s unchanged when it has at most MaxTitleLength
// characters, otherwise its first MaxTitleLength characters followed by
// an ellipsis.
func DeriveTitle(s string) string {
	return util.TruncateRunes(s, MaxTitleLength)
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// Append adds msg to the end of the history and bumps UpdatedAt.
// Messages are never reordered or removed.
func (c *Conversation) Append(msg Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()
}

// LastMessage returns the most recent message.
func (c *Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// LastAssistantMessage returns the most recent assistant message.
func (c *Conversation) LastAssistantMessage() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAssistant {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}

// MessageByID looks up a message by its ID.
func (c *Conversation) MessageByID(id string) (Message, bool) {
	for _, msg := range c.Messages {
		if msg.ID == id {
			return msg, true
		}
	}
	return Message{}, false
}

// MessageCount returns the number of messages.
func (c *Conversation) MessageCount() int {
	return len(c.Messages)
}

// IsEmpty returns true if there are no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// =============================================================================
// DISPLAY HELPERS
// =============================================================================

// DisplayTitle returns the title or DefaultTitle.
func (c *Conversation) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return DefaultTitle
}

// Preview returns a short preview of the latest user input.
func (c *Conversation) Preview(maxLen int) string {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleUser {
			return c.Messages[i].Preview(maxLen)
		}
	}
	return "Empty conversation"
}

// Clone creates a deep copy of the conversation.
func (c *Conversation) Clone() *Conversation {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Messages = make([]Message, len(c.Messages))
	copy(clone.Messages, c.Messages)
	return &clone
}

// Meta returns lightweight metadata for listing.
func (c *Conversation) Meta() ConversationMeta {
	return ConversationMeta{
		ID:           c.ID,
		Title:        c.DisplayTitle(),
		MessageCount: len(c.Messages),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		Preview:      c.Preview(100),
	}
}

// ConversationMeta holds lightweight metadata for listing.
type ConversationMeta struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Preview      string    `json:"preview"`
}
