// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reply

import (
	"context"
	"errors"
	"fmt"
)

// Generator produces the assistant reply for a single user input.
// Implementations must be safe for concurrent use and should return
// promptly once ctx is done.
type Generator interface {
	Generate(ctx context.Context, input string) (string, error)
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func(ctx context.Context, input string) (string, error)

// Generate calls f(ctx, input).
func (f GeneratorFunc) Generate(ctx context.Context, input string) (string, error) {
	return f(ctx, input)
}

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes generation failures for retry and display.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindUnavailable
	KindTimeout
	KindModelNotFound
	KindInvalidResponse
	KindRateLimited
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindTimeout:
		return "timeout"
	case KindModelNotFound:
		return "model_not_found"
	case KindInvalidResponse:
		return "invalid_response"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// ErrGeneration matches every *GenerationError through errors.Is.
var ErrGeneration = errors.New("reply generation failed")

// GenerationError describes a failed reply from a backend.
type GenerationError struct {
	Backend string
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Backend, e.Message)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrGeneration) match any GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// IsRetryable reports whether err is a transient backend failure worth
// retrying. Context cancellation is never retryable.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		return false
	}
	switch genErr.Kind {
	case KindUnavailable, KindTimeout, KindRateLimited:
		return true
	default:
		return false
	}
}
