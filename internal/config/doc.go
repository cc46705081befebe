// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for securechat.
//
// Supports both TOML and JSON configuration formats, with defaults,
// .env loading, environment variable overrides, and validation.
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (SECURECHAT_*), including those set by a .env file
//   - ~/.securechat/config.toml
//   - ~/.securechat/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	delay := cfg.Reply.MinDelay()
package config
