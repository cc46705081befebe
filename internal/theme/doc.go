// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme supplies the active color theme (light, dark or high
// contrast) and notifies listeners when it changes.
//
// Three providers are available:
//   - Static: a fixed theme that can be changed programmatically
//   - FileWatcher: follows a file the host rewrites on theme changes
//   - Detect: picks the initial theme from an explicit value or the
//     terminal background
package theme
