// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small string and file helpers shared by the
// session core and the terminal front ends.
//
// # Key Functions
//
//   - TruncateRunes: rune-safe truncation with an ellipsis
//   - TruncateWidth: display-width truncation for terminal columns
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	title := util.TruncateRunes(content, 50)
//	cell := util.TruncateWidth(title, 24)
package util
