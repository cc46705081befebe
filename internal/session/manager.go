// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/text/unicode/norm"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/reply"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Config holds configuration for the session manager.
type Config struct {
	// MaxConcurrentReplies bounds replies being generated at once.
	// Further requests wait (IsLoading) for a slot. 0 means unlimited.
	MaxConcurrentReplies int

	// ReplyTimeout aborts a reply that takes longer. 0 disables it.
	ReplyTimeout time.Duration

	// EventBuffer is the channel size given to each subscriber.
	EventBuffer int
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		MaxConcurrentReplies: 4,
		ReplyTimeout:         0,
		EventBuffer:          64,
	}
}

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager owns the session state. All methods are safe for concurrent use.
type Manager struct {
	mu sync.Mutex

	gen    reply.Generator
	cfg    Config
	slots  *semaphore.Weighted
	logger *log.Logger

	// Conversation state
	conversations []*model.Conversation
	byID          map[string]*model.Conversation
	currentID     string

	// Reply tracking, keyed by user message ID
	pending  map[string]*Pending
	queued   int
	lastErr  *ReplyError
	typingIn map[string]int

	// Subscribers
	subs    map[int]chan Event
	nextSub int

	baseCtx   context.Context
	cancelAll context.CancelFunc
	wg        sync.WaitGroup
	closed    bool
}

// NewManager creates a session manager that asks gen for replies.
func NewManager(gen reply.Generator, cfg Config) *Manager {
	if cfg.EventBuffer <= 0 {
		cfg.EventBuffer = DefaultConfig().EventBuffer
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		gen:       gen,
		cfg:       cfg,
		logger:    log.New(io.Discard, "", 0),
		byID:      make(map[string]*model.Conversation),
		pending:   make(map[string]*Pending),
		typingIn:  make(map[string]int),
		subs:      make(map[int]chan Event),
		baseCtx:   ctx,
		cancelAll: cancel,
	}
	if cfg.MaxConcurrentReplies > 0 {
		m.slots = semaphore.NewWeighted(int64(cfg.MaxConcurrentReplies))
	}
	return m
}

// WithLogger sets the logger used for session events.
func (m *Manager) WithLogger(logger *log.Logger) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()
	if logger != nil {
		m.logger = logger
	}
	return m
}

// =============================================================================
// COMMANDS
// =============================================================================

// SendMessage appends a user message to the active conversation, creating
// one titled from content if none is active, and starts generating the
// reply in the background.
//
// The stored text is trimmed and NFC-normalized; the generator receives
// content as given. Blank content returns ErrEmptyInput and changes
// nothing. Cancelling ctx cancels the outstanding reply.
func (m *Manager) SendMessage(ctx context.Context, content string) (*Pending, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	conv := m.byID[m.currentID]
	if conv == nil {
		conv = model.NewConversation(content)
		m.conversations = append(m.conversations, conv)
		m.byID[conv.ID] = conv
		m.currentID = conv.ID
		m.publish(Event{Kind: EventConversationCreated, ConversationID: conv.ID})
		m.logger.Printf("CONVERSATION_CREATED | conversation=%s title=%q", conv.ID, conv.Title)
	}

	userMsg := model.NewUserMessage(norm.NFC.String(trimmed))
	conv.Append(userMsg)
	m.publish(Event{Kind: EventUserMessage, ConversationID: conv.ID, Message: userMsg})
	m.logger.Printf("MESSAGE_SENT | conversation=%s message=%s chars=%d", conv.ID, userMsg.ID, len(trimmed))

	return m.startReply(ctx, conv.ID, userMsg, content), nil
}

// RetryFailed asks again for the reply recorded in LastError. The user
// message is not duplicated; the new reply lands on the same conversation.
func (m *Manager) RetryFailed(ctx context.Context) (*Pending, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}
	if m.lastErr == nil {
		return nil, ErrNoFailedReply
	}

	failed := m.lastErr
	conv := m.byID[failed.ConversationID]
	if conv == nil {
		m.lastErr = nil
		return nil, ErrNoFailedReply
	}
	userMsg, ok := conv.MessageByID(failed.UserMessageID)
	if !ok {
		m.lastErr = nil
		return nil, ErrNoFailedReply
	}

	m.lastErr = nil
	m.publish(Event{Kind: EventErrorDismissed, ConversationID: conv.ID})
	m.logger.Printf("REPLY_RETRY | conversation=%s message=%s", conv.ID, userMsg.ID)

	return m.startReply(ctx, conv.ID, userMsg, userMsg.Content), nil
}

// StartNewConversation clears the active conversation. Nothing is deleted;
// the next SendMessage creates a fresh conversation.
func (m *Manager) StartNewConversation() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentID == "" {
		return
	}
	m.currentID = ""
	m.publish(Event{Kind: EventConversationCleared})
}

// LoadConversation makes the conversation with id active. Unknown ids are
// ignored and reported with false.
func (m *Manager) LoadConversation(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return false
	}
	m.currentID = id
	m.publish(Event{Kind: EventConversationSelected, ConversationID: id})
	return true
}

// DismissError clears LastError.
func (m *Manager) DismissError() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.lastErr == nil {
		return
	}
	convID := m.lastErr.ConversationID
	m.lastErr = nil
	m.publish(Event{Kind: EventErrorDismissed, ConversationID: convID})
}

// Close cancels every outstanding reply, waits for them to settle and
// closes all subscriber channels. Commands issued afterwards fail with
// ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	for _, p := range m.pending {
		p.cancelled.Store(true)
	}
	m.mu.Unlock()

	m.cancelAll()
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
}

// =============================================================================
// READ SIDE
// =============================================================================

// Snapshot returns a deep copy of the session state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := State{
		Conversations: make([]*model.Conversation, len(m.conversations)),
		IsTyping:      len(m.pending) > 0,
		IsLoading:     m.queued > 0,
		typingIn:      make(map[string]int, len(m.typingIn)),
	}
	for i, conv := range m.conversations {
		clone := conv.Clone()
		state.Conversations[i] = clone
		if conv.ID == m.currentID {
			state.CurrentConversation = clone
		}
	}
	for id, n := range m.typingIn {
		state.typingIn[id] = n
	}
	if m.lastErr != nil {
		errCopy := *m.lastErr
		state.LastError = &errCopy
	}
	return state
}

// Conversation returns a copy of the conversation with id.
func (m *Manager) Conversation(id string) (*model.Conversation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conv, ok := m.byID[id]
	if !ok {
		return nil, false
	}
	return conv.Clone(), true
}

// CurrentID returns the active conversation ID, or "".
func (m *Manager) CurrentID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentID
}

// Subscribe returns a channel of session events and a function that
// unsubscribes and closes it. Events are dropped for a subscriber whose
// buffer is full; the manager never blocks on a slow reader.
func (m *Manager) Subscribe() (<-chan Event, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan Event, m.cfg.EventBuffer)
	if m.closed {
		close(ch)
		return ch, func() {}
	}

	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := m.subs[id]; ok {
				close(sub)
				delete(m.subs, id)
			}
		})
	}
}

// =============================================================================
// REPLY CYCLE
// =============================================================================

// startReply registers a Pending and launches its worker. Caller holds mu.
func (m *Manager) startReply(ctx context.Context, convID string, userMsg model.Message, input string) *Pending {
	var (
		reqCtx context.Context
		cancel context.CancelFunc
	)
	if m.cfg.ReplyTimeout > 0 {
		reqCtx, cancel = context.WithTimeout(m.baseCtx, m.cfg.ReplyTimeout)
	} else {
		reqCtx, cancel = context.WithCancel(m.baseCtx)
	}

	p := newPending(convID, userMsg, cancel)
	stop := context.AfterFunc(ctx, p.Cancel)

	m.pending[userMsg.ID] = p
	m.typingIn[convID]++
	m.queued++

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer stop()
		defer cancel()
		m.run(reqCtx, p, input)
	}()
	return p
}

func (m *Manager) run(ctx context.Context, p *Pending, input string) {
	if m.slots != nil {
		if err := m.slots.Acquire(ctx, 1); err != nil {
			m.settle(ctx, p, "", err)
			return
		}
		defer m.slots.Release(1)
	}

	m.mu.Lock()
	p.dispatched = true
	m.queued--
	m.mu.Unlock()

	text, err := m.gen.Generate(ctx, input)
	m.settle(ctx, p, text, err)
}

// settle applies the outcome of one reply. The assistant message is
// appended to the conversation the request came from, whichever
// conversation is active now.
func (m *Manager) settle(ctx context.Context, p *Pending, text string, genErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.pending, p.userMessage.ID)
	if !p.dispatched {
		m.queued--
	}
	if m.typingIn[p.conversationID]--; m.typingIn[p.conversationID] <= 0 {
		delete(m.typingIn, p.conversationID)
	}

	elapsed := time.Since(p.startedAt)
	convID := p.conversationID

	switch {
	case p.cancelled.Load() || errors.Is(ctx.Err(), context.Canceled):
		m.publish(Event{Kind: EventReplyCancelled, ConversationID: convID, Message: p.userMessage})
		m.logger.Printf("REPLY_CANCELLED | conversation=%s message=%s elapsed=%s", convID, p.userMessage.ID, elapsed)
		p.reject(ErrCancelled)

	case genErr == nil:
		assistantMsg := model.NewAssistantMessage(text)
		m.byID[convID].Append(assistantMsg)
		m.publish(Event{Kind: EventAssistantMessage, ConversationID: convID, Message: assistantMsg})
		m.logger.Printf("REPLY_RECEIVED | conversation=%s message=%s latency=%s", convID, assistantMsg.ID, elapsed)
		p.resolve(assistantMsg)

	default:
		err := genErr
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = ErrReplyTimeout
		}
		m.lastErr = &ReplyError{ConversationID: convID, UserMessageID: p.userMessage.ID, Err: err}
		m.publish(Event{Kind: EventReplyFailed, ConversationID: convID, Message: p.userMessage, Err: err})
		m.logger.Printf("REPLY_FAILED | conversation=%s message=%s elapsed=%s err=%v", convID, p.userMessage.ID, elapsed, err)
		p.reject(m.lastErr)
	}
}

// publish delivers e to every subscriber without blocking. Caller holds mu.
func (m *Manager) publish(e Event) {
	for _, ch := range m.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
