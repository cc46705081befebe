// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned by SendMessage for blank content. State is
	// left untouched and no event is published.
	ErrEmptyInput = errors.New("message is empty")

	// ErrCancelled rejects a Pending whose reply was cancelled.
	ErrCancelled = errors.New("reply cancelled")

	// ErrReplyTimeout rejects a Pending that exceeded Config.ReplyTimeout.
	ErrReplyTimeout = errors.New("reply timed out")

	// ErrNoFailedReply is returned by RetryFailed when there is nothing to retry.
	ErrNoFailedReply = errors.New("no failed reply to retry")

	// ErrClosed is returned by commands issued after Close.
	ErrClosed = errors.New("session is closed")
)

// ReplyError is the recoverable error state left behind by a failed reply.
// The user message stays in the conversation; RetryFailed asks again.
type ReplyError struct {
	ConversationID string
	UserMessageID  string
	Err            error
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("reply for message %s failed: %v", e.UserMessageID, e.Err)
}

func (e *ReplyError) Unwrap() error {
	return e.Err
}
