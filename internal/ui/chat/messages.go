// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the docchat TUI.
//
// This file defines the Bubble Tea message types used by the chat view.
// Every async result carries the session generation it was produced under;
// the update loop hands them to the engine, which discards stale ones.
package chat

import "github.com/jeranaias/docchat-tui/internal/backend"

// =============================================================================
// HISTORY MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers a fetched (or failed) history load.
type HistoryLoadedMsg struct {
	Gen     uint64
	Entries []backend.HistoryEntry
	Err     error
}

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamChunkMsg delivers one decoded text increment.
type StreamChunkMsg struct {
	Gen  uint64
	Text string
}

// StreamDoneMsg signals the stream completed normally.
type StreamDoneMsg struct {
	Gen uint64
}

// StreamFailedMsg signals the stream ended in an error.
type StreamFailedMsg struct {
	Gen uint64
	Err error
}

// =============================================================================
// EXCHANGE MESSAGES
// =============================================================================

// ExchangeFinishedMsg is emitted after a completed exchange so the app can
// persist the transcript to the history cache.
type ExchangeFinishedMsg struct {
	SessionID string
}
