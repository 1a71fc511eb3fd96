// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the docchat TUI.
package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/engine"
)

// =============================================================================
// STREAM COMMANDS
// =============================================================================

// startStream opens the completion stream for an accepted submission and
// returns the command that pulls its first chunk.
func (m *Model) startStream(sub engine.Submission) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.streamCancel = cancel
	m.chunks = m.client.ChatCompletionStreamChan(ctx, sub.SessionID, sub.Question)
	return waitForChunk(m.chunks, sub.Gen)
}

// waitForChunk blocks on the chunk channel and converts the next chunk to a
// Bubble Tea message. The update loop re-issues it after each chunk, one
// message per chunk, which keeps rendering in the main loop.
func waitForChunk(ch <-chan backend.Chunk, gen uint64) tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-ch
		if !ok {
			return StreamDoneMsg{Gen: gen}
		}
		if chunk.Err != nil {
			return StreamFailedMsg{Gen: gen, Err: chunk.Err}
		}
		if chunk.Done {
			return StreamDoneMsg{Gen: gen}
		}
		return StreamChunkMsg{Gen: gen, Text: chunk.Text}
	}
}

// LoadHistory returns the command that fetches history for the active
// session. The generation is captured now so the result can be checked for
// staleness on arrival.
func (m *Model) LoadHistory() tea.Cmd {
	id, ok := m.store.Active()
	if !ok {
		return nil
	}
	gen := m.store.Generation()

	client := m.client
	return func() tea.Msg {
		entries, err := client.ChatHistory(context.Background(), id)
		return HistoryLoadedMsg{Gen: gen, Entries: entries, Err: err}
	}
}
