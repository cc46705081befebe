// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package speech provides voice input for the composer. A Transcriber
// captures one utterance and returns it as text; the result is merged
// into the current draft with MergeTranscript.
package speech
