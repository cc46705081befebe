// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the visual building blocks of the Secure
// Chat TUI: the header, the navigation sidebar, the placeholder pages,
// the suggestion cards and the status bar.
//
// Components are plain structs with a View method. They hold no session
// state of their own; the application model feeds them from a session
// snapshot before rendering.
package components
