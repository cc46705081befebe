// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ErrUsage is wrapped by argument errors; callers print usage and exit 2.
var ErrUsage = errors.New("invalid arguments")

// Args holds parsed command-line arguments. Empty strings mean "not given"
// so configuration values stay in effect.
type Args struct {
	ConfigPath string // --config: TOML or JSON config file
	EnvFile    string // --env-file: dotenv file loaded before env overrides
	Theme      string // --theme: auto, light, dark, contrast
	Backend    string // --backend: mock, ollama
	Model      string // --model: Ollama model name
	LogPath    string // --log: log file
	ExportDir  string // --export-dir: directory for ctrl+e and /export files
	NoDelay    bool   // --no-delay: mock replies without the typing delay
	Plain      bool   // --plain: line mode instead of the TUI
	Version    bool   // --version
	Help       bool   // --help
}

var boolFlags = []string{"no-delay", "plain", "version", "v", "help", "h"}

var stringFlags = []string{"config", "c", "env-file", "theme", "backend", "model", "log", "export-dir"}

const usageText = `securechat - Secure Chat terminal client

Usage:
  securechat [flags]

Flags:
  -c, --config PATH      Config file (.toml or .json)
                         Default: ~/.securechat/config.toml
      --env-file PATH    Load environment from a .env file (default: ./.env)
      --theme NAME       auto, light, dark or contrast
      --backend NAME     Reply backend: mock or ollama
      --model NAME       Ollama model
      --no-delay         Mock replies arrive without a typing delay
      --plain            Line mode instead of the full-screen UI
      --log PATH         Write logs to PATH
      --export-dir DIR   Where ctrl+e writes transcripts (default: .)
  -v, --version          Show version information
  -h, --help             Show this help

Environment:
  SECURECHAT_BACKEND, SECURECHAT_THEME, SECURECHAT_OLLAMA_URL,
  SECURECHAT_MODEL, SECURECHAT_NO_DELAY, SECURECHAT_LOG and friends
  override the config file.

Version: %s
`

// PrintUsage writes the help text to w.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information to w.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "securechat version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go version: %s\n", runtime.Version())
}

// Parse parses command-line arguments, usually os.Args[1:].
func Parse(raw []string) (Args, error) {
	p := NewArgParser(raw, boolFlags...)

	if unknown := p.Unknown(append(boolFlags, stringFlags...)...); len(unknown) > 0 {
		return Args{}, fmt.Errorf("%w: unknown flag --%s", ErrUsage, strings.Join(unknown, ", --"))
	}
	if p.PositionalCount() > 0 {
		return Args{}, fmt.Errorf("%w: unexpected argument %q", ErrUsage, p.Positional(0))
	}

	args := Args{
		ConfigPath: p.FlagOrDefault("config", p.Flag("c")),
		EnvFile:    p.Flag("env-file"),
		Theme:      p.Flag("theme"),
		Backend:    p.Flag("backend"),
		Model:      p.Flag("model"),
		LogPath:    p.Flag("log"),
		ExportDir:  p.Flag("export-dir"),
		NoDelay:    p.BoolFlag("no-delay"),
		Plain:      p.BoolFlag("plain"),
		Version:    p.BoolFlag("version") || p.BoolFlag("v"),
		Help:       p.BoolFlag("help") || p.BoolFlag("h"),
	}

	for _, name := range stringFlags {
		if p.BoolFlag(name) {
			return Args{}, fmt.Errorf("%w: --%s requires a value", ErrUsage, name)
		}
	}
	return args, nil
}
