// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete securechat configuration.
type Config struct {
	Reply   ReplyConfig   `toml:"reply" json:"reply"`
	Ollama  OllamaConfig  `toml:"ollama" json:"ollama"`
	Session SessionConfig `toml:"session" json:"session"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Speech  SpeechConfig  `toml:"speech" json:"speech"`
	Profile ProfileConfig `toml:"profile" json:"profile"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// ReplyConfig selects and tunes the reply generator.
type ReplyConfig struct {
	// Backend is "mock" (canned replies) or "ollama".
	Backend string `toml:"backend" json:"backend"`
	// MinDelayMs is the fixed part of the simulated reply latency.
	MinDelayMs int `toml:"min_delay_ms" json:"min_delay_ms"`
	// JitterMs is the random part added on top of MinDelayMs.
	JitterMs int `toml:"jitter_ms" json:"jitter_ms"`
	// TimeoutSecs aborts a reply that takes longer (0 = no timeout).
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// MaxRetries is how many times a retryable failure is retried.
	MaxRetries int `toml:"max_retries" json:"max_retries"`
	// RetryDelayMs is the pause between retries.
	RetryDelayMs int `toml:"retry_delay_ms" json:"retry_delay_ms"`
	// RatePerSec limits requests to the backend (0 = unlimited).
	RatePerSec float64 `toml:"rate_per_sec" json:"rate_per_sec"`
}

// OllamaConfig contains the Ollama backend settings.
type OllamaConfig struct {
	URL   string `toml:"url" json:"url"`
	Model string `toml:"model" json:"model"`
	// SystemPrompt is sent ahead of every user message when set.
	SystemPrompt string `toml:"system_prompt" json:"system_prompt"`
}

// SessionConfig contains session manager settings.
type SessionConfig struct {
	// MaxConcurrentReplies bounds replies generated at once (0 = unlimited).
	MaxConcurrentReplies int `toml:"max_concurrent_replies" json:"max_concurrent_replies"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is "light", "dark", "contrast" or "auto".
	Theme string `toml:"theme" json:"theme"`
	// ThemeFile is watched for theme changes written by the host.
	ThemeFile string `toml:"theme_file" json:"theme_file"`
	// WordWrap is the markdown wrap width (0 = follow the window).
	WordWrap int `toml:"word_wrap" json:"word_wrap"`
	// ShowTimestamps displays message times in the chat view.
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
}

// SpeechConfig contains speech-to-text settings.
type SpeechConfig struct {
	// Command is run to capture one utterance; its stdout is the transcript.
	// Empty disables voice input.
	Command string `toml:"command" json:"command"`
}

// ProfileConfig describes the signed-in user shown on the Profile page.
type ProfileConfig struct {
	Name    string `toml:"name" json:"name"`
	Email   string `toml:"email" json:"email"`
	M365ID  string `toml:"m365_id" json:"m365_id"`
	IsAdmin bool   `toml:"is_admin" json:"is_admin"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Path is the log file. Empty discards logs in TUI mode.
	Path string `toml:"path" json:"path"`
}

// Valid values for enumerated settings.
var (
	ValidBackends = []string{"mock", "ollama"}
	ValidThemes   = []string{"auto", "light", "dark", "contrast"}
)

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Reply: ReplyConfig{
			Backend:      "mock",
			MinDelayMs:   1500,
			JitterMs:     1000,
			TimeoutSecs:  0,
			MaxRetries:   2,
			RetryDelayMs: 500,
			RatePerSec:   2,
		},
		Ollama: OllamaConfig{
			URL:   "http://127.0.0.1:11434",
			Model: "llama3.2",
		},
		Session: SessionConfig{
			MaxConcurrentReplies: 4,
		},
		UI: UIConfig{
			Theme:          "auto",
			WordWrap:       0,
			ShowTimestamps: false,
		},
		Profile: ProfileConfig{
			Name:    "Jane Doe",
			Email:   "jane.doe@m365.com",
			M365ID:  "123456789",
			IsAdmin: true,
		},
	}
}

// MinDelay returns MinDelayMs as a duration.
func (r ReplyConfig) MinDelay() time.Duration {
	return time.Duration(r.MinDelayMs) * time.Millisecond
}

// Jitter returns JitterMs as a duration.
func (r ReplyConfig) Jitter() time.Duration {
	return time.Duration(r.JitterMs) * time.Millisecond
}

// Timeout returns TimeoutSecs as a duration.
func (r ReplyConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSecs) * time.Second
}

// RetryDelay returns RetryDelayMs as a duration.
func (r ReplyConfig) RetryDelay() time.Duration {
	return time.Duration(r.RetryDelayMs) * time.Millisecond
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the securechat configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".securechat"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the default location.
// Tries TOML first, then JSON, and falls back to defaults. A .env file in
// the working directory is loaded before environment overrides apply.
func Load() (*Config, error) {
	cfg := Default()

	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			break
		}
		if _, statErr := os.Stat(path); statErr != nil {
			continue
		}
		return LoadFromPath(path)
	}

	if err := LoadDotEnv(""); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation. Files ending in .json are decoded as JSON, anything else as
// TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := &Config{}

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	if err := LoadDotEnv(""); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file into cfg and fills missing values.
func LoadTOML(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg, func(key string) bool { return meta.IsDefined(strings.Split(key, ".")...) })
	return nil
}

// LoadJSON decodes a JSON file into cfg and fills missing values.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}

	fillDefaults(cfg, definedJSONKeys(data))
	return nil
}

// definedJSONKeys reports which "section.field" keys appear in data.
// Top-level values that are not objects are skipped, not fatal.
func definedJSONKeys(data []byte) func(key string) bool {
	var top map[string]json.RawMessage
	_ = json.Unmarshal(data, &top)

	sections := make(map[string]map[string]json.RawMessage, len(top))
	for name, value := range top {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(value, &fields); err == nil {
			sections[name] = fields
		}
	}

	return func(key string) bool {
		section, field, _ := strings.Cut(key, ".")
		_, ok := sections[section][field]
		return ok
	}
}

// LoadDotEnv loads KEY=value pairs from path (".env" when empty) into the
// process environment. Variables already set are left alone and a missing
// file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// fillDefaults fills in values the file left unset. defined reports
// whether a "section.field" key was present in the file, so explicit
// zeros and false values survive.
func fillDefaults(cfg *Config, defined func(key string) bool) {
	defaults := Default()

	// Reply
	if cfg.Reply.Backend == "" {
		cfg.Reply.Backend = defaults.Reply.Backend
	}
	if !defined("reply.min_delay_ms") {
		cfg.Reply.MinDelayMs = defaults.Reply.MinDelayMs
	}
	if !defined("reply.jitter_ms") {
		cfg.Reply.JitterMs = defaults.Reply.JitterMs
	}
	if !defined("reply.max_retries") {
		cfg.Reply.MaxRetries = defaults.Reply.MaxRetries
	}
	if !defined("reply.retry_delay_ms") {
		cfg.Reply.RetryDelayMs = defaults.Reply.RetryDelayMs
	}
	if !defined("reply.rate_per_sec") {
		cfg.Reply.RatePerSec = defaults.Reply.RatePerSec
	}

	// Ollama
	if cfg.Ollama.URL == "" {
		cfg.Ollama.URL = defaults.Ollama.URL
	}
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = defaults.Ollama.Model
	}

	// Session
	if !defined("session.max_concurrent_replies") {
		cfg.Session.MaxConcurrentReplies = defaults.Session.MaxConcurrentReplies
	}

	// UI
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}

	// Profile
	if cfg.Profile.Name == "" {
		cfg.Profile.Name = defaults.Profile.Name
	}
	if cfg.Profile.Email == "" {
		cfg.Profile.Email = defaults.Profile.Email
	}
	if cfg.Profile.M365ID == "" {
		cfg.Profile.M365ID = defaults.Profile.M365ID
	}
	if !defined("profile.is_admin") {
		cfg.Profile.IsAdmin = defaults.Profile.IsAdmin
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors as
// ValidateErrors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Reply
	if !oneOf(c.Reply.Backend, ValidBackends) {
		errs = append(errs, ValidationError{
			Field:   "reply.backend",
			Message: fmt.Sprintf("invalid backend '%s', must be one of: %s", c.Reply.Backend, strings.Join(ValidBackends, ", ")),
		})
	}
	nonNegative := []struct {
		field string
		value int
	}{
		{"reply.min_delay_ms", c.Reply.MinDelayMs},
		{"reply.jitter_ms", c.Reply.JitterMs},
		{"reply.timeout_secs", c.Reply.TimeoutSecs},
		{"reply.max_retries", c.Reply.MaxRetries},
		{"reply.retry_delay_ms", c.Reply.RetryDelayMs},
		{"session.max_concurrent_replies", c.Session.MaxConcurrentReplies},
		{"ui.word_wrap", c.UI.WordWrap},
	}
	for _, nn := range nonNegative {
		if nn.value < 0 {
			errs = append(errs, ValidationError{
				Field:   nn.field,
				Message: fmt.Sprintf("must not be negative, got %d", nn.value),
			})
		}
	}
	if c.Reply.RatePerSec < 0 {
		errs = append(errs, ValidationError{
			Field:   "reply.rate_per_sec",
			Message: fmt.Sprintf("must not be negative, got %g", c.Reply.RatePerSec),
		})
	}

	// Ollama
	if c.Reply.Backend == "ollama" {
		if u, err := url.Parse(c.Ollama.URL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "ollama.url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Ollama.URL),
			})
		} else if u.Scheme != "http" && u.Scheme != "https" {
			errs = append(errs, ValidationError{
				Field:   "ollama.url",
				Message: fmt.Sprintf("unsupported scheme '%s', must be http or https", u.Scheme),
			})
		}
		if strings.TrimSpace(c.Ollama.Model) == "" {
			errs = append(errs, ValidationError{Field: "ollama.model", Message: "must not be empty"})
		}
	}

	// UI
	if !oneOf(c.UI.Theme, ValidThemes) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: %s", c.UI.Theme, strings.Join(ValidThemes, ", ")),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func oneOf(value string, valid []string) bool {
	for _, v := range valid {
		if strings.EqualFold(value, v) {
			return true
		}
	}
	return false
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
// Supported variables:
//   - SECURECHAT_BACKEND: overrides reply.backend
//   - SECURECHAT_NO_DELAY: "1" or "true" zeroes the simulated delay
//   - SECURECHAT_TIMEOUT_SECS: overrides reply.timeout_secs
//   - SECURECHAT_OLLAMA_URL: overrides ollama.url
//   - SECURECHAT_MODEL: overrides ollama.model
//   - SECURECHAT_THEME: overrides ui.theme
//   - SECURECHAT_THEME_FILE: overrides ui.theme_file
//   - SECURECHAT_SPEECH_COMMAND: overrides speech.command
//   - SECURECHAT_LOG: overrides log.path
//
// Malformed numeric values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if backend := os.Getenv("SECURECHAT_BACKEND"); backend != "" {
		c.Reply.Backend = strings.ToLower(backend)
	}
	if noDelay := os.Getenv("SECURECHAT_NO_DELAY"); noDelay == "1" || strings.EqualFold(noDelay, "true") {
		c.Reply.MinDelayMs = 0
		c.Reply.JitterMs = 0
	}
	if timeout := os.Getenv("SECURECHAT_TIMEOUT_SECS"); timeout != "" {
		if n, err := strconv.Atoi(timeout); err == nil {
			c.Reply.TimeoutSecs = n
		}
	}
	if u := os.Getenv("SECURECHAT_OLLAMA_URL"); u != "" {
		c.Ollama.URL = u
	}
	if model := os.Getenv("SECURECHAT_MODEL"); model != "" {
		c.Ollama.Model = model
	}
	if theme := os.Getenv("SECURECHAT_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if themeFile := os.Getenv("SECURECHAT_THEME_FILE"); themeFile != "" {
		c.UI.ThemeFile = themeFile
	}
	if cmd := os.Getenv("SECURECHAT_SPEECH_COMMAND"); cmd != "" {
		c.Speech.Command = cmd
	}
	if logPath := os.Getenv("SECURECHAT_LOG"); logPath != "" {
		c.Log.Path = logPath
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as indented JSON for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
