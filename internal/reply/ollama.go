// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reply

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const ollamaBackend = "ollama"

// OllamaConfig configures the Ollama backend.
type OllamaConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	BaseURL string

	// Model is the model name passed to /api/chat.
	Model string

	// SystemPrompt is sent ahead of the user input when set.
	SystemPrompt string

	// Timeout bounds one HTTP round trip (default: 60s).
	Timeout time.Duration

	// RatePerSec limits outgoing requests; 0 disables the limiter.
	RatePerSec float64
}

// DefaultOllamaConfig returns the default backend configuration.
func DefaultOllamaConfig() OllamaConfig {
	return OllamaConfig{
		BaseURL:    "http://127.0.0.1:11434",
		Model:      "llama3.2",
		Timeout:    60 * time.Second,
		RatePerSec: 2,
	}
}

// Ollama generates replies with a local Ollama server. It is the
// real-backend strategy and the only Generator here that can fail.
type Ollama struct {
	cfg        OllamaConfig
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewOllama creates an Ollama generator, filling zero config values with
// defaults.
func NewOllama(cfg OllamaConfig) *Ollama {
	def := DefaultOllamaConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = def.Model
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}

	o := &Ollama{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RatePerSec > 0 {
		o.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)
	}
	return o
}

// Model returns the configured model name.
func (o *Ollama) Model() string {
	return o.cfg.Model
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Model   string        `json:"model"`
	Message ollamaMessage `json:"message"`
	Done    bool          `json:"done"`
}

type ollamaErrorBody struct {
	Error string `json:"error"`
}

// Generate implements Generator with a non-streaming /api/chat call.
func (o *Ollama) Generate(ctx context.Context, input string) (string, error) {
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", o.fail(KindRateLimited, "rate limit wait failed", err)
		}
	}

	messages := make([]ollamaMessage, 0, 2)
	if o.cfg.SystemPrompt != "" {
		messages = append(messages, ollamaMessage{Role: "system", Content: o.cfg.SystemPrompt})
	}
	messages = append(messages, ollamaMessage{Role: "user", Content: input})

	body, err := json.Marshal(ollamaChatRequest{
		Model:    o.cfg.Model,
		Messages: messages,
		Stream:   false,
	})
	if err != nil {
		return "", o.fail(KindInvalidResponse, "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", o.fail(KindUnavailable, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", o.fail(KindTimeout, "request timed out", err)
		}
		return "", o.fail(KindUnavailable, "ollama is not reachable at "+o.cfg.BaseURL, err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", o.fail(KindModelNotFound, "model "+o.cfg.Model+" not found", nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", o.fail(KindRateLimited, "backend is rate limiting", nil)
	case resp.StatusCode >= 500:
		return "", o.fail(KindUnavailable, "backend error: "+resp.Status+errorDetail(resp.Body), nil)
	case resp.StatusCode != http.StatusOK:
		return "", o.fail(KindInvalidResponse, "chat request failed: "+resp.Status+errorDetail(resp.Body), nil)
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", o.fail(KindInvalidResponse, "failed to decode response", err)
	}
	if strings.TrimSpace(result.Message.Content) == "" {
		return "", o.fail(KindInvalidResponse, "empty reply", nil)
	}
	return result.Message.Content, nil
}

func (o *Ollama) fail(kind ErrorKind, msg string, cause error) error {
	return &GenerationError{Backend: ollamaBackend, Kind: kind, Message: msg, Cause: cause}
}

// errorDetail extracts Ollama's {"error": "..."} body when present.
func errorDetail(r io.Reader) string {
	var body ollamaErrorBody
	if err := json.NewDecoder(io.LimitReader(r, 64*1024)).Decode(&body); err == nil && body.Error != "" {
		return " (" + body.Error + ")"
	}
	return ""
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
