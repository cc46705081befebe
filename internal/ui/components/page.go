// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

// =============================================================================
// PAGES
// =============================================================================

// Page identifies a top-level screen of the application.
type Page int

const (
	PageChat Page = iota
	PageSearch
	PageAgents
	PagePromptCoach
	PageTimeEntry
	PageProfile
)

// String returns the page title shown in the header and sidebar.
func (p Page) String() string {
	switch p {
	case PageChat:
		return "Chat"
	case PageSearch:
		return "Search"
	case PageAgents:
		return "Create Agent"
	case PagePromptCoach:
		return "Prompt Coach"
	case PageTimeEntry:
		return "Time Entry"
	case PageProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}
