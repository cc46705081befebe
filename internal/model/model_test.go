// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"sort"
	"strings"
	"testing"
)

// =============================================================================
// TITLE TESTS
// =============================================================================

func TestDeriveTitle(t *testing.T) {
	exactly50 := strings.Repeat("a", 50)
	long := strings.Repeat("b", 51)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "Tell me a joke", "Tell me a joke"},
		{"exactly 50", exactly50, exactly50},
		{"51 chars", long, strings.Repeat("b", 50) + "..."},
		{"keeps surrounding space", "  hi  ", "  hi  "},
		{"multibyte counted as characters", strings.Repeat("é", 50), strings.Repeat("é", 50)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveTitle(tc.in); got != tc.want {
				t.Errorf("DeriveTitle(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewConversation(t *testing.T) {
	conv := NewConversation("Come up with 3 ideas business plans for merging technology")

	if !strings.HasPrefix(conv.ID, "conv_") {
		t.Errorf("ID should start with conv_, got %q", conv.ID)
	}
	if conv.Title != "Come up with 3 ideas business plans for merging te..." {
		t.Errorf("Title = %q", conv.Title)
	}
	if !conv.IsEmpty() {
		t.Error("new conversation should be empty")
	}
	if conv.CreatedAt.IsZero() || conv.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID should start with msg_, got %q", msg.ID)
	}
	if msg.Role != RoleUser {
		t.Errorf("Role = %q, want user", msg.Role)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestMessageIDs_UniqueAndOrdered(t *testing.T) {
	ids := make([]string, 200)
	seen := make(map[string]bool)
	for i := range ids {
		ids[i] = NewMessageID()
		if seen[ids[i]] {
			t.Fatalf("duplicate id %q", ids[i])
		}
		seen[ids[i]] = true
	}
	if !sort.StringsAreSorted(ids) {
		t.Error("message IDs should sort in creation order")
	}
}

func TestRole_DisplayName(t *testing.T) {
	if RoleUser.DisplayName() != "You" {
		t.Errorf("user DisplayName = %q", RoleUser.DisplayName())
	}
	if RoleAssistant.DisplayName() != "Assistant" {
		t.Errorf("assistant DisplayName = %q", RoleAssistant.DisplayName())
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversation_AppendKeepsOrder(t *testing.T) {
	conv := NewConversation("hi")
	before := conv.UpdatedAt

	u := NewUserMessage("hi")
	a := NewAssistantMessage("hello")
	conv.Append(u)
	conv.Append(a)

	if conv.MessageCount() != 2 {
		t.Fatalf("MessageCount = %d, want 2", conv.MessageCount())
	}
	if conv.Messages[0].ID != u.ID || conv.Messages[1].ID != a.ID {
		t.Error("messages out of order")
	}
	if conv.UpdatedAt.Before(before) {
		t.Error("UpdatedAt should not go backwards")
	}

	last, ok := conv.LastAssistantMessage()
	if !ok || last.Content != "hello" {
		t.Errorf("LastAssistantMessage = %+v, %v", last, ok)
	}
}

func TestConversation_CloneIsIndependent(t *testing.T) {
	conv := NewConversation("hi")
	conv.Append(NewUserMessage("hi"))

	clone := conv.Clone()
	clone.Append(NewAssistantMessage("hello"))
	clone.Messages[0].Content = "changed"

	if conv.MessageCount() != 1 {
		t.Errorf("original MessageCount = %d, want 1", conv.MessageCount())
	}
	if conv.Messages[0].Content != "hi" {
		t.Errorf("original content mutated: %q", conv.Messages[0].Content)
	}

	var nilConv *Conversation
	if nilConv.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestConversation_Meta(t *testing.T) {
	conv := NewConversation("")
	if conv.DisplayTitle() != DefaultTitle {
		t.Errorf("DisplayTitle = %q, want %q", conv.DisplayTitle(), DefaultTitle)
	}
	if conv.Preview(20) != "Empty conversation" {
		t.Errorf("Preview = %q", conv.Preview(20))
	}

	conv.Append(NewUserMessage("what is on the agenda today"))
	meta := conv.Meta()
	if meta.MessageCount != 1 || meta.Preview != "what is on the agenda today" {
		t.Errorf("Meta = %+v", meta)
	}
}
