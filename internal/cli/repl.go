// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/React365-Chris/Teams-Dev-SWA/internal/export"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/markdown"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/model"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/session"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/theme"
	"github.com/React365-Chris/Teams-Dev-SWA/internal/ui/components"
)

// ErrUnknownCommand is returned for an unrecognized slash command.
var ErrUnknownCommand = errors.New("unknown command")

// LineReader reads one line of input. *liner.State implements it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// REPLOptions configures a REPL. Zero values pick defaults.
type REPLOptions struct {
	In       LineReader
	Out      io.Writer
	Renderer *markdown.Renderer
	Theme    theme.Theme
	Logger   *log.Logger

	// ExportDir receives /export files written without a path.
	ExportDir string

	// Interrupt returns a context cancelled by ctrl+c while a reply is
	// awaited.
	Interrupt func(ctx context.Context) (context.Context, context.CancelFunc)
}

// REPL is the line-mode chat.
type REPL struct {
	manager   *session.Manager
	in        LineReader
	out       io.Writer
	renderer  *markdown.Renderer
	styles    Styles
	logger    *log.Logger
	exportDir string
	interrupt func(ctx context.Context) (context.Context, context.CancelFunc)
	line      *liner.State
}

// NewREPL creates a line-mode chat over manager. Without opts.In it reads
// the terminal through liner; call Close to restore the terminal.
func NewREPL(manager *session.Manager, opts REPLOptions) *REPL {
	r := &REPL{
		manager:   manager,
		in:        opts.In,
		out:       opts.Out,
		renderer:  opts.Renderer,
		logger:    opts.Logger,
		exportDir: opts.ExportDir,
		interrupt: opts.Interrupt,
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.in == nil {
		r.line = liner.NewLiner()
		r.line.SetCtrlCAborts(true)
		r.in = r.line
	}
	if r.renderer == nil {
		r.renderer = markdown.NewPlain(GetTerminalWidth())
	}
	if r.exportDir == "" {
		r.exportDir = "."
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard, "", 0)
	}
	if r.interrupt == nil {
		r.interrupt = func(ctx context.Context) (context.Context, context.CancelFunc) {
			return signal.NotifyContext(ctx, os.Interrupt)
		}
	}

	renderer := lipgloss.NewRenderer(r.out)
	if r.out == os.Stdout {
		renderer.SetColorProfile(GetColorProfile())
	}
	r.styles = NewStyles(opts.Theme, renderer)
	return r
}

// Close restores the terminal when the REPL owns it.
func (r *REPL) Close() error {
	if r.line != nil {
		return r.line.Close()
	}
	return nil
}

// =============================================================================
// MAIN LOOP
// =============================================================================

// Run reads lines until /quit, EOF or ctrl+c at the prompt.
func (r *REPL) Run(ctx context.Context) error {
	r.printBanner()

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		input, err := r.in.Prompt("> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out)
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.in.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			quit, err := r.handleCommand(ctx, input)
			if err != nil {
				r.printError(err)
			}
			if quit {
				return nil
			}
			continue
		}

		r.send(ctx, input)
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintln(r.out, r.styles.Title.Render("Secure Chat"))
	fmt.Fprintln(r.out, components.Greeting)
	fmt.Fprintln(r.out, r.styles.Dim.Render("Type /help for commands."))
	fmt.Fprintln(r.out)
}

// send submits input and prints the reply.
func (r *REPL) send(ctx context.Context, input string) {
	p, err := r.manager.SendMessage(ctx, input)
	if err != nil {
		if !errors.Is(err, session.ErrEmptyInput) {
			r.printError(err)
		}
		return
	}
	r.logger.Printf("REPL_SEND | conversation=%s message=%s", p.ConversationID(), p.UserMessage().ID)
	r.await(ctx, p)
}

// await waits for p, cancelling it on interrupt.
func (r *REPL) await(ctx context.Context, p *session.Pending) {
	fmt.Fprintln(r.out, r.styles.Dim.Render(AssistantLabel+" is typing..."))

	waitCtx, stop := r.interrupt(ctx)
	defer stop()

	reply, err := p.Wait(waitCtx)
	switch {
	case err == nil:
		r.printMessage(reply)
	case errors.Is(err, context.Canceled), errors.Is(err, session.ErrCancelled):
		p.Cancel()
		fmt.Fprintln(r.out, r.styles.Warning.Render("[Cancelled]"))
	default:
		r.printError(fmt.Errorf("reply failed: %w (type /retry to try again)", err))
	}
}

// AssistantLabel prefixes assistant replies.
const AssistantLabel = "Secure Chat"

func (r *REPL) printMessage(msg model.Message) {
	if msg.Role == model.RoleUser {
		fmt.Fprintf(r.out, "%s %s\n\n", r.styles.Prompt.Render(msg.Role.DisplayName()+":"), msg.Content)
		return
	}
	fmt.Fprintln(r.out, r.styles.Assistant.Render(AssistantLabel+":"))
	fmt.Fprintln(r.out, r.renderer.Render(msg.Content))
	fmt.Fprintln(r.out)
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "%s %v\n", r.styles.Error.Render("[Error]"), err)
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

const helpText = `Commands:
  /new              Start a new conversation
  /list             List conversations
  /load <n|id>      Switch to a conversation
  /export [path]    Export the active conversation (.md or .json)
  /retry            Retry the last failed reply
  /help             Show this help
  /quit             Exit`

// handleCommand runs a slash command and reports whether to quit.
func (r *REPL) handleCommand(ctx context.Context, input string) (bool, error) {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
	r.logger.Printf("REPL_COMMAND | command=%s", cmd)

	switch cmd {
	case "/quit", "/exit", "/q":
		return true, nil

	case "/help", "/h":
		fmt.Fprintln(r.out, helpText)

	case "/new":
		r.manager.StartNewConversation()
		fmt.Fprintln(r.out, r.styles.Info.Render("Started a new conversation."))

	case "/list", "/ls":
		r.printList()

	case "/load":
		return false, r.load(arg)

	case "/export":
		return false, r.export(arg)

	case "/retry":
		p, err := r.manager.RetryFailed(ctx)
		if err != nil {
			return false, err
		}
		r.await(ctx, p)

	default:
		return false, fmt.Errorf("%w: %s (type /help)", ErrUnknownCommand, cmd)
	}
	return false, nil
}

func (r *REPL) printList() {
	state := r.manager.Snapshot()
	if len(state.Conversations) == 0 {
		fmt.Fprintln(r.out, r.styles.Dim.Render("No conversations yet."))
		return
	}
	currentID := r.manager.CurrentID()
	for i, conv := range state.Conversations {
		marker := " "
		style := r.styles.Title.UnsetBold()
		if conv.ID == currentID {
			marker = "*"
			style = r.styles.Active
		}
		line := fmt.Sprintf("%s %d. %s (%d messages)", marker, i+1, conv.DisplayTitle(), conv.MessageCount())
		if state.IsTypingIn(conv.ID) {
			line += " " + components.StatusTyping
		}
		fmt.Fprintln(r.out, style.Render(line))
	}
}

// load switches by 1-based list number or by ID.
func (r *REPL) load(arg string) error {
	if arg == "" {
		return errors.New("usage: /load <n|id>")
	}
	state := r.manager.Snapshot()

	id := arg
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(state.Conversations) {
			return fmt.Errorf("no conversation %d (have %d)", n, len(state.Conversations))
		}
		id = state.Conversations[n-1].ID
	}

	if !r.manager.LoadConversation(id) {
		return fmt.Errorf("conversation not found: %s", arg)
	}

	conv, _ := r.manager.Conversation(id)
	fmt.Fprintln(r.out, r.styles.Info.Render("Loaded: "+conv.DisplayTitle()))
	fmt.Fprintln(r.out)
	for _, msg := range conv.Messages {
		r.printMessage(msg)
	}
	return nil
}

func (r *REPL) export(path string) error {
	conv := r.manager.Snapshot().CurrentConversation
	if conv == nil {
		return errors.New("no active conversation to export")
	}

	if path == "" {
		written, err := export.ToDir(conv, r.exportDir, export.DefaultOptions())
		if err != nil {
			return err
		}
		path = written
	} else if err := export.ToFile(conv, path, export.DefaultOptions()); err != nil {
		return err
	}

	fmt.Fprintln(r.out, r.styles.Success.Render("Exported to "+path))
	return nil
}
