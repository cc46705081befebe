// securechat - a terminal client for the Secure Chat assistant.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/cli"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/config"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/markdown"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/reply"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/speech"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/app"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/components"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes securechat and returns the process exit code. Deferred
// cleanup runs before the caller exits.
func run(argv []string, stdout, stderr io.Writer) int {
	args, err := cli.Parse(argv)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n\n", err)
		cli.PrintUsage(stderr)
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	if args.Help {
		cli.PrintUsage(stdout)
		return 0
	}
	if args.Version {
		cli.PrintVersion(stdout)
		return 0
	}

	cfg, err := loadConfig(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	tui := cli.UseTUI(args)
	closeLog, err := setupLogging(cfg.Log.Path, tui)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	log.Printf("STARTUP | version=%s backend=%s theme=%s tui=%t", Version, cfg.Reply.Backend, cfg.UI.Theme, tui)

	manager := session.NewManager(newGenerator(cfg, args.NoDelay), session.Config{
		MaxConcurrentReplies: cfg.Session.MaxConcurrentReplies,
		ReplyTimeout:         cfg.Reply.Timeout(),
	}).WithLogger(log.Default())
	defer manager.Close()

	provider, stopTheme := newThemeProvider(cfg)
	defer stopTheme()

	if tui {
		err = runTUI(cfg, args, manager, provider)
	} else {
		err = runREPL(cfg, args, manager, provider.Theme())
	}
	if err != nil {
		log.Printf("EXIT | err=%v", err)
		fmt.Fprintf(stderr, "Error running securechat: %v\n", err)
		return 1
	}
	log.Printf("EXIT | ok")
	return 0
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// loadConfig reads the config file and environment, then applies CLI
// overrides. CLI flags win over the environment, which wins over the file.
func loadConfig(args cli.Args) (*config.Config, error) {
	if args.EnvFile != "" {
		if err := config.LoadDotEnv(args.EnvFile); err != nil {
			return nil, err
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if args.Theme != "" {
		cfg.UI.Theme = strings.ToLower(args.Theme)
	}
	if args.Backend != "" {
		cfg.Reply.Backend = strings.ToLower(args.Backend)
	}
	if args.Model != "" {
		cfg.Ollama.Model = args.Model
	}
	if args.LogPath != "" {
		cfg.Log.Path = args.LogPath
	}
	if args.NoDelay {
		cfg.Reply.MinDelayMs = 0
		cfg.Reply.JitterMs = 0
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return cfg, nil
}

// setupLogging points the standard logger at path. Without a path logs
// are discarded so they never draw over the UI.
func setupLogging(path string, tui bool) (func(), error) {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}

	if tui {
		f, err := tea.LogToFile(path, "securechat")
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		return func() { f.Close() }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetPrefix("securechat ")
	return func() { f.Close() }, nil
}

// newGenerator builds the reply backend chosen by cfg.
func newGenerator(cfg *config.Config, noDelay bool) reply.Generator {
	switch cfg.Reply.Backend {
	case "ollama":
		backend := reply.NewOllama(reply.OllamaConfig{
			BaseURL:      cfg.Ollama.URL,
			Model:        cfg.Ollama.Model,
			SystemPrompt: cfg.Ollama.SystemPrompt,
			RatePerSec:   cfg.Reply.RatePerSec,
		})
		log.Printf("BACKEND | kind=ollama url=%s model=%s", cfg.Ollama.URL, backend.Model())

		retrying := reply.NewRetrying(backend, cfg.Reply.MaxRetries+1, cfg.Reply.RetryDelay())
		retrying.Logger = log.Default()
		return retrying

	default:
		log.Printf("BACKEND | kind=mock min_delay=%s jitter=%s", cfg.Reply.MinDelay(), cfg.Reply.Jitter())
		var gen reply.Generator = reply.NewMock()
		if !noDelay && (cfg.Reply.MinDelayMs > 0 || cfg.Reply.JitterMs > 0) {
			gen = reply.NewDelayed(gen, cfg.Reply.MinDelay(), cfg.Reply.Jitter())
		}
		return gen
	}
}

// newThemeProvider follows cfg.UI.ThemeFile when set, otherwise keeps the
// detected theme for the whole run.
func newThemeProvider(cfg *config.Config) (theme.Provider, func()) {
	initial := theme.Detect(cfg.UI.Theme)
	if cfg.UI.ThemeFile == "" {
		return theme.NewStatic(initial), func() {}
	}

	fw, err := theme.NewFileWatcher(cfg.UI.ThemeFile, initial)
	if err != nil {
		log.Printf("THEME_WATCH_FAILED | path=%s err=%v", cfg.UI.ThemeFile, err)
		return theme.NewStatic(initial), func() {}
	}
	fw.WithLogger(log.Default())
	return fw, func() { fw.Close() }
}

// =============================================================================
// FRONTENDS
// =============================================================================

func runTUI(cfg *config.Config, args cli.Args, manager *session.Manager, provider theme.Provider) error {
	width := cfg.UI.WordWrap
	if width <= 0 {
		width = markdown.DefaultWidth
	}

	exportDir := args.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	m := app.New(manager, app.Options{
		Theme:       provider,
		Renderer:    markdown.New(provider.Theme(), width),
		Transcriber: speech.New(cfg.Speech.Command),
		Profile: components.Profile{
			Name:    cfg.Profile.Name,
			Email:   cfg.Profile.Email,
			M365ID:  cfg.Profile.M365ID,
			IsAdmin: cfg.Profile.IsAdmin,
		},
		ExportDir:      exportDir,
		ShowTimestamps: cfg.UI.ShowTimestamps,
	})
	defer m.Close()

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	_, err := p.Run()
	return err
}

func runREPL(cfg *config.Config, args cli.Args, manager *session.Manager, t theme.Theme) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	width := cfg.UI.WordWrap
	if width <= 0 {
		width = cli.GetTerminalWidth()
	}
	renderer := markdown.NewPlain(width)
	if cli.ColorsEnabled() {
		renderer = markdown.New(t, width)
	}

	r := cli.NewREPL(manager, cli.REPLOptions{
		Renderer:  renderer,
		Theme:     t,
		Logger:    log.Default(),
		ExportDir: args.ExportDir,
	})
	defer r.Close()
	return r.Run(ctx)
}
