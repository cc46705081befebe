// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package theme

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher is a provider that follows a theme file. The host writes
// one of "light", "dark" or "contrast" to the file; unreadable or unknown
// content leaves the current theme in place.
type FileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *log.Logger

	mu        sync.RWMutex
	theme     Theme
	listeners listeners

	done chan struct{}
	wg   sync.WaitGroup
}

// NewFileWatcher starts watching path. fallback is used until the file
// holds a valid theme. The parent directory is watched so that atomic
// replacements of the file are seen.
func NewFileWatcher(path string, fallback Theme) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve theme file: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	fw := &FileWatcher{
		path:    absPath,
		watcher: watcher,
		logger:  log.Default(),
		theme:   fallback,
		done:    make(chan struct{}),
	}
	if t, err := fw.read(); err == nil {
		fw.theme = t
	}

	fw.wg.Add(1)
	go fw.processEvents()
	return fw, nil
}

// WithLogger sets the logger for watch errors.
func (fw *FileWatcher) WithLogger(logger *log.Logger) *FileWatcher {
	if logger != nil {
		fw.logger = logger
	}
	return fw
}

// Theme implements Provider.
func (fw *FileWatcher) Theme() Theme {
	fw.mu.RLock()
	defer fw.mu.RUnlock()
	return fw.theme
}

// OnChange implements Provider.
func (fw *FileWatcher) OnChange(fn func(Theme)) func() {
	return fw.listeners.add(fn)
}

// Close stops watching and releases resources.
func (fw *FileWatcher) Close() error {
	select {
	case <-fw.done:
		return nil
	default:
	}
	close(fw.done)
	err := fw.watcher.Close()
	fw.wg.Wait()
	return err
}

func (fw *FileWatcher) read() (Theme, error) {
	data, err := os.ReadFile(fw.path)
	if err != nil {
		return "", err
	}
	return Parse(string(data))
}

func (fw *FileWatcher) processEvents() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fw.reload()
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Printf("THEME_WATCH_ERROR | path=%s err=%v", fw.path, err)
		}
	}
}

func (fw *FileWatcher) reload() {
	t, err := fw.read()
	if err != nil {
		// Writers may truncate before writing; the next event carries the content.
		return
	}

	fw.mu.Lock()
	changed := fw.theme != t
	fw.theme = t
	fw.mu.Unlock()

	if changed {
		fw.logger.Printf("THEME_CHANGED | theme=%s", t)
		fw.listeners.notify(t)
	}
}
