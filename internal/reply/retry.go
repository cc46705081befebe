// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reply

import (
	"context"
	"log"
	"time"
)

// Retrying re-runs Next for retryable failures, up to MaxAttempts in
// total, sleeping Delay between attempts. Non-retryable errors and
// cancellation return immediately.
type Retrying struct {
	Next        Generator
	MaxAttempts int
	Delay       time.Duration
	Logger      *log.Logger
}

// NewRetrying wraps next. maxAttempts below 1 is treated as 1.
func NewRetrying(next Generator, maxAttempts int, delay time.Duration) *Retrying {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrying{Next: next, MaxAttempts: maxAttempts, Delay: delay}
}

// Generate implements Generator.
func (r *Retrying) Generate(ctx context.Context, input string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		text, err := r.Next.Generate(ctx, input)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !IsRetryable(err) || attempt == r.MaxAttempts {
			break
		}
		if r.Logger != nil {
			r.Logger.Printf("REPLY_RETRY | attempt=%d max=%d err=%v", attempt, r.MaxAttempts, err)
		}

		if r.Delay > 0 {
			timer := time.NewTimer(r.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", ctx.Err()
			case <-timer.C:
			}
		}
	}
	return "", lastErr
}
