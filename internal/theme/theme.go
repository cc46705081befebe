// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/muesli/termenv"
)

// Theme is a host color theme.
type Theme string

const (
	Light    Theme = "light"
	Dark     Theme = "dark"
	Contrast Theme = "contrast"
)

// ErrUnknownTheme is returned by Parse for unrecognized names.
var ErrUnknownTheme = errors.New("unknown theme")

// Parse converts a theme name, ignoring case and surrounding space.
func Parse(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark, Contrast:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTheme, s)
	}
}

// IsDark reports whether the theme uses the dark palette. High contrast
// is rendered on a dark background.
func (t Theme) IsDark() bool {
	return t == Dark || t == Contrast
}

// String returns the theme name.
func (t Theme) String() string {
	return string(t)
}

// Detect chooses the initial theme. An explicit dark or contrast value
// wins; otherwise the terminal background decides. "light" and "auto"
// both defer to the terminal, as a host preference for dark overrides a
// light default.
func Detect(explicit string) Theme {
	return detect(explicit, termenv.HasDarkBackground)
}

func detect(explicit string, hasDarkBackground func() bool) Theme {
	if t, err := Parse(explicit); err == nil && t.IsDark() {
		return t
	}
	if hasDarkBackground() {
		return Dark
	}
	return Light
}

// =============================================================================
// PROVIDER
// =============================================================================

// Provider supplies the current theme and change notifications.
type Provider interface {
	// Theme returns the current theme.
	Theme() Theme

	// OnChange registers fn to run after every theme change. The returned
	// function unregisters it.
	OnChange(fn func(Theme)) (cancel func())
}

// listeners is the callback registry shared by providers.
type listeners struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Theme)
}

func (l *listeners) add(fn func(Theme)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]func(Theme))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.fns, id)
	}
}

func (l *listeners) notify(t Theme) {
	l.mu.Lock()
	fns := make([]func(Theme), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(t)
	}
}

// =============================================================================
// STATIC PROVIDER
// =============================================================================

// Static is a provider holding one theme until Set is called.
type Static struct {
	mu        sync.RWMutex
	theme     Theme
	listeners listeners
}

// NewStatic creates a static provider.
func NewStatic(t Theme) *Static {
	return &Static{theme: t}
}

// Theme implements Provider.
func (s *Static) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// OnChange implements Provider.
func (s *Static) OnChange(fn func(Theme)) func() {
	return s.listeners.add(fn)
}

// Set changes the theme and notifies listeners if it differs.
func (s *Static) Set(t Theme) {
	s.mu.Lock()
	changed := s.theme != t
	s.theme = t
	s.mu.Unlock()

	if changed {
		s.listeners.notify(t)
	}
}
