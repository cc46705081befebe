// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the top-level Bubble Tea model of Secure Chat. It lays
// out the header, sidebar, current page and status bar, bridges session
// events and theme changes into the update loop, and routes keys between
// the sidebar and the page.
package app
