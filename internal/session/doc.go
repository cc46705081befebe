// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the chat session: the conversations known to this
// process, the active conversation, and the send-message cycle.
//
// The Manager is the only writer of session state. Views read immutable
// snapshots through Snapshot and change state only through the command
// methods (SendMessage, StartNewConversation, LoadConversation,
// DismissError, RetryFailed).
//
// A send is a two-phase operation. SendMessage appends the user message
// synchronously and returns a Pending handle; the reply is produced in the
// background by a reply.Generator and either resolves the Pending with the
// assistant message or rejects it with an error.
//
// # Usage
//
//	mgr := session.NewManager(reply.NewMock(), session.DefaultConfig())
//	defer mgr.Close()
//
//	p, err := mgr.SendMessage(ctx, "Tell me a joke")
//	if err != nil {
//	    return err
//	}
//	msg, err := p.Wait(ctx)
package session
