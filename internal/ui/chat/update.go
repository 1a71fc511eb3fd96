// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the docchat TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/engine"
)

// Init starts the spinner tick.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the chat view.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case HistoryLoadedMsg:
		if m.engine.ApplyHistory(msg.Gen, msg.Entries, msg.Err) {
			m.followTail = true
			m.refreshViewport()
		}
		return m, nil

	case StreamChunkMsg:
		applied := m.engine.ApplyChunk(msg.Gen, msg.Text)
		if !applied {
			// Stale stream; stop pulling from it.
			m.CancelStream()
			return m, nil
		}
		m.refreshViewport()
		return m, waitForChunk(m.chunks, msg.Gen)

	case StreamDoneMsg:
		finished := m.engine.CompleteStream(msg.Gen)
		m.CancelStream()
		m.refreshViewport()
		if finished != nil {
			if id, ok := m.store.Active(); ok {
				return m, func() tea.Msg { return ExchangeFinishedMsg{SessionID: id} }
			}
		}
		return m, nil

	case StreamFailedMsg:
		m.engine.FailStream(msg.Gen)
		m.CancelStream()
		m.refreshViewport()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	m.followTail = m.viewport.AtBottom()
	return m, cmd
}

// handleKey routes keyboard input between the question input and the
// viewport.
func (m *Model) handleKey(msg tea.KeyMsg) (*Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if !m.engine.InputEnabled() {
			return m, nil
		}
		question := strings.TrimSpace(m.input.Value())
		if question == "" {
			return m, nil
		}

		sub, err := m.engine.Submit(question)
		if err != nil {
			return m, nil
		}
		m.input.SetValue("")
		m.followTail = true
		m.refreshViewport()
		return m, m.startStream(sub)

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.followTail = m.viewport.AtBottom()
		return m, cmd
	}

	// Input is editable only in the ready phase; keys are swallowed while a
	// response is loading or streaming.
	if m.engine.Phase() == engine.PhaseReady {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}
