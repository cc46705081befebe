// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
)

// Pending is the handle for one outstanding reply. It is resolved with
// the assistant message or rejected with an error exactly once.
type Pending struct {
	conversationID string
	userMessage    model.Message
	startedAt      time.Time

	cancel    context.CancelFunc
	cancelled atomic.Bool

	// dispatched is guarded by the Manager's mutex.
	dispatched bool

	done  chan struct{}
	once  sync.Once
	reply model.Message
	err   error
}

func newPending(conversationID string, userMessage model.Message, cancel context.CancelFunc) *Pending {
	return &Pending{
		conversationID: conversationID,
		userMessage:    userMessage,
		startedAt:      time.Now(),
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

// ConversationID returns the conversation the reply will be appended to.
func (p *Pending) ConversationID() string {
	return p.conversationID
}

// UserMessage returns the user message this reply answers.
func (p *Pending) UserMessage() model.Message {
	return p.userMessage
}

// Done is closed once the reply is resolved or rejected.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the reply settles or ctx is done. Giving up on the
// wait does not cancel the reply; use Cancel for that.
func (p *Pending) Wait(ctx context.Context) (model.Message, error) {
	select {
	case <-p.done:
		return p.reply, p.err
	case <-ctx.Done():
		return model.Message{}, ctx.Err()
	}
}

// Cancel abandons the reply. The user message stays; no assistant message
// is appended and no error state is recorded. Cancelling a settled reply
// has no effect.
func (p *Pending) Cancel() {
	p.cancelled.Store(true)
	p.cancel()
}

func (p *Pending) resolve(reply model.Message) {
	p.once.Do(func() {
		p.reply = reply
		close(p.done)
	})
}

func (p *Pending) reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}
