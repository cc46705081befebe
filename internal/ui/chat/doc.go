// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat page of the Secure Chat TUI.

The chat page is a Bubble Tea model that renders one session snapshot and
turns key presses into session.Manager commands. It never edits
conversations itself.

# Key Components

## Model (model.go)

The Model struct holds the snapshot it last read, the textarea input, the
message viewport and the typing spinner. Refresh re-reads the snapshot;
the application model calls it for every session event.

## View Rendering (view.go)

  - Greeting and suggestion cards for an empty conversation
  - "Today" separator and message bubbles, assistant replies rendered as
    markdown
  - Typing indicator while a reply is outstanding in this conversation
  - Follow-up chips after an assistant reply
  - Error banner, input box and the AI disclaimer

## Commands (update.go)

Side effects run as tea.Cmds: WaitForEvent bridges the session event
channel, and voice input, clipboard copy and export report back with
their own messages.

# Usage

	events, unsubscribe := manager.Subscribe()
	defer unsubscribe()
	page := chat.New(manager, chat.Options{Styles: styles.New(theme.Light)})
	cmd := chat.WaitForEvent(events)
*/
package chat
