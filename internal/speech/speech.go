// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrUnsupported is returned when no speech recognizer is available.
var ErrUnsupported = errors.New("speech recognition is not supported")

// ErrNoSpeech is returned when the recognizer heard nothing.
var ErrNoSpeech = errors.New("no speech detected")

// Transcriber captures one utterance and returns its text.
type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}

// Unsupported is the transcriber used when voice input is not configured.
type Unsupported struct{}

// Transcribe implements Transcriber. It always returns ErrUnsupported.
func (Unsupported) Transcribe(context.Context) (string, error) {
	return "", ErrUnsupported
}

// Command runs an external speech-to-text program and returns its
// trimmed standard output.
type Command struct {
	Name string
	Args []string
}

// ParseCommand splits a command line on whitespace. An empty line yields
// nil, meaning voice input is disabled.
func ParseCommand(line string) *Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	return &Command{Name: fields[0], Args: fields[1:]}
}

// New returns a Command transcriber for line, or Unsupported when line
// is empty.
func New(line string) Transcriber {
	if cmd := ParseCommand(line); cmd != nil {
		return cmd
	}
	return Unsupported{}
}

// Transcribe implements Transcriber.
func (c *Command) Transcribe(ctx context.Context) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, exec.ErrNotFound) {
			return "", fmt.Errorf("%w: %s not found", ErrUnsupported, c.Name)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", c.Name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", c.Name, err)
	}

	text := strings.TrimSpace(stdout.String())
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}

// MergeTranscript appends transcript to draft, separated by a space.
// An empty draft yields the transcript alone.
func MergeTranscript(draft, transcript string) string {
	if draft == "" {
		return transcript
	}
	if transcript == "" {
		return draft
	}
	return draft + " " + transcript
}
