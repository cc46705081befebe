// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package reply

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	// DefaultMinDelay is the fixed part of the simulated reply latency.
	DefaultMinDelay = 1500 * time.Millisecond

	// DefaultJitter is the upper bound of the random part, exclusive.
	DefaultJitter = 1000 * time.Millisecond
)

// Delayed waits Min plus a random duration in [0, Jitter) before asking
// Next for the reply. Cancelling ctx during the wait aborts with ctx.Err().
type Delayed struct {
	Next   Generator
	Min    time.Duration
	Jitter time.Duration

	// jitter returns a value in [0, n); replaced in tests.
	jitter func(n int64) int64
}

// NewDelayed wraps next with the given latency. A zero min and jitter
// disables the wait entirely.
func NewDelayed(next Generator, min, jitter time.Duration) *Delayed {
	return &Delayed{
		Next:   next,
		Min:    min,
		Jitter: jitter,
		jitter: rand.Int64N,
	}
}

// Delay picks the wait for one request.
func (d *Delayed) Delay() time.Duration {
	delay := d.Min
	if d.Jitter > 0 {
		pick := d.jitter
		if pick == nil {
			pick = rand.Int64N
		}
		delay += time.Duration(pick(int64(d.Jitter)))
	}
	return delay
}

// Generate implements Generator.
func (d *Delayed) Generate(ctx context.Context, input string) (string, error) {
	if delay := d.Delay(); delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return d.Next.Generate(ctx, input)
}
