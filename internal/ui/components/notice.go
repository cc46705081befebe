// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/styles"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/util"
)

// =============================================================================
// NOTICES
// =============================================================================

// NoticeKind represents the type of notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// DefaultNoticeDuration is how long info and success notices stay up.
const DefaultNoticeDuration = 4 * time.Second

// ErrorNoticeDuration is longer so errors can be read.
const ErrorNoticeDuration = 8 * time.Second

// Notice is a short-lived, non-blocking message in the status bar.
type Notice struct {
	ID       int
	Message  string
	Kind     NoticeKind
	Duration time.Duration
}

var noticeSeq int

// NewNotice creates a notice of kind with the default duration for it.
func NewNotice(kind NoticeKind, message string) *Notice {
	noticeSeq++
	d := DefaultNoticeDuration
	if kind == NoticeError || kind == NoticeWarning {
		d = ErrorNoticeDuration
	}
	return &Notice{
		ID:       noticeSeq,
		Message:  message,
		Kind:     kind,
		Duration: d,
	}
}

// Render renders the notice with its status indicator, fit to width.
func (n *Notice) Render(s *styles.Styles, width int) string {
	msg := util.TruncateWidth(n.Message, width-5)
	switch n.Kind {
	case NoticeSuccess:
		return s.RenderSuccess(msg)
	case NoticeWarning:
		return s.RenderWarning(msg)
	case NoticeError:
		return s.RenderError(msg)
	default:
		return s.RenderInfo(msg)
	}
}

// NoticeExpiredMsg is sent when the notice with ID should disappear.
type NoticeExpiredMsg struct {
	ID int
}

// ExpireCmd schedules the NoticeExpiredMsg for n.
func (n *Notice) ExpireCmd() tea.Cmd {
	id := n.ID
	return tea.Tick(n.Duration, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{ID: id}
	})
}
