// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markdown renders message content for the terminal with glamour.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
)

// DefaultWidth is the wrap width used before the window size is known.
const DefaultWidth = 80

// Style names understood by glamour.
const (
	styleDark  = "dark"
	styleLight = "light"
	stylePlain = "plain"
)

// plainStyle is glamour's ASCII style with the emphasis markers removed,
// so bold and italic text reads as plain words.
func plainStyle() ansi.StyleConfig {
	cfg := styles.ASCIIStyleConfig
	cfg.Strong.BlockPrefix, cfg.Strong.BlockSuffix = "", ""
	cfg.Emph.BlockPrefix, cfg.Emph.BlockSuffix = "", ""
	return cfg
}

// Renderer renders markdown to styled terminal text. It is safe for
// concurrent use. When glamour fails the raw content is returned.
type Renderer struct {
	mu    sync.Mutex
	theme theme.Theme
	width int
	plain bool
	tr    *glamour.TermRenderer
}

// New creates a renderer for the given theme and wrap width.
func New(t theme.Theme, width int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Renderer{theme: t, width: width}
}

// NewPlain creates a renderer without colors, for pipes and dumb terminals.
func NewPlain(width int) *Renderer {
	r := New(theme.Light, width)
	r.plain = true
	return r
}

// Render converts content to terminal text without surrounding blank lines.
func (r *Renderer) Render(content string) string {
	if strings.TrimSpace(content) == "" {
		return content
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tr == nil {
		style := glamour.WithStandardStyle(r.styleName())
		if r.plain {
			style = glamour.WithStyles(plainStyle())
		}
		tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(r.width))
		if err != nil {
			return content
		}
		r.tr = tr
	}

	rendered, err := r.tr.Render(content)
	if err != nil {
		return content
	}
	return strings.Trim(rendered, "\n")
}

// SetWidth changes the wrap width. Non-positive widths are ignored.
func (r *Renderer) SetWidth(width int) {
	if width <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if width != r.width {
		r.width = width
		r.tr = nil
	}
}

// SetTheme switches between the light and dark styles.
func (r *Renderer) SetTheme(t theme.Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t != r.theme {
		r.theme = t
		r.tr = nil
	}
}

// Width returns the current wrap width.
func (r *Renderer) Width() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width
}

func (r *Renderer) styleName() string {
	switch {
	case r.plain:
		return stylePlain
	case r.theme.IsDark():
		return styleDark
	default:
		return styleLight
	}
}
