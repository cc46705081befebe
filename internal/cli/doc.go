// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the line-mode chat for
// securechat.
//
// The line mode is used with --plain or whenever stdin or stdout is not a
// terminal. It drives the same session.Manager as the TUI and prints
// replies through the markdown renderer.
//
// Interactive commands:
//
//	/new              Start a new conversation
//	/list             List this session's conversations
//	/load <n|id>      Switch to a conversation by number or ID
//	/export [path]    Export the active conversation (.md or .json)
//	/retry            Retry the last failed reply
//	/help             Show commands
//	/quit             Exit
package cli
