// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// Messages are immutable values. A Conversation is an append-only sequence
// of messages with an identifier, a title derived from its first user
// message, and creation/update timestamps.
//
// # Key Types
//
//   - Conversation: ordered, append-only message history with metadata
//   - Message: single turn with role, content and timestamp
//   - Role: message author (user or assistant)
//
// # Usage
//
//	conv := model.NewConversation("Tell me a joke")
//	conv.Append(model.NewUserMessage("Tell me a joke"))
//	fmt.Println(conv.Title, conv.MessageCount())
package model
