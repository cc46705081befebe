// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reply produces assistant replies for user input.
//
// A Generator turns one user input into one reply. Implementations are
// composable strategies:
//
//   - Rules: keyword-matched canned replies
//   - Template: a fallback that echoes the input inside a fixed template
//   - Delayed: adds the simulated network delay to any generator
//   - Retrying: bounded retry of retryable failures
//   - Ollama: a real backend over the Ollama chat API
//
// NewMock assembles the canned assistant used when no backend is
// configured:
//
//	gen := reply.NewDelayed(reply.NewMock(), reply.DefaultMinDelay, reply.DefaultJitter)
//	text, err := gen.Generate(ctx, "Tell me a joke")
package reply
