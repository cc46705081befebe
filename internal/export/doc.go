// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a conversation transcript to disk on request.
//
// # Supported Formats
//
//   - Markdown: human-readable, with optional metadata and timestamps
//   - JSON: the conversation as stored in the session
//
// # Usage
//
//	path, err := export.ToDir(conv, "exports", nil)
//	err := export.ToFile(conv, "standup.md", nil)
package export
