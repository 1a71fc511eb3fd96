// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the docchat TUI.
package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/engine"
	"github.com/jeranaias/docchat-tui/internal/model"
)

// View renders the transcript and the input line.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteByte('\n')
	b.WriteString(m.inputView())
	return b.String()
}

// inputView renders the question line, or the phase indicator when input
// is disabled.
func (m *Model) inputView() string {
	switch m.engine.Phase() {
	case engine.PhaseIdle:
		return m.theme.InputContainer.Width(m.width).Render(
			m.theme.InputDisabled.Render("Upload or select a document to start chatting."))
	case engine.PhaseLoadingHistory:
		return m.theme.InputContainer.Width(m.width).Render(
			m.spinner.View() + m.theme.ThinkingText.Render(" Loading conversation..."))
	case engine.PhaseAwaitingResponse:
		return m.theme.InputContainer.Width(m.width).Render(
			m.spinner.View() + m.theme.ThinkingText.Render(" Waiting for answer..."))
	case engine.PhaseStreaming:
		return m.theme.InputContainer.Width(m.width).Render(
			m.spinner.View() + m.theme.ThinkingText.Render(" Answering..."))
	default:
		return m.theme.InputContainer.Width(m.width).Render(m.input.View())
	}
}

// refreshViewport rebuilds the transcript rendering and restores the scroll
// position.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderMessages())
	if m.followTail {
		m.viewport.GotoBottom()
	}
}

// renderMessages renders the full transcript as stacked bubbles.
func (m *Model) renderMessages() string {
	msgs := m.engine.Messages()
	if len(msgs) == 0 {
		return ""
	}

	bubbleWidth := m.width - 8
	if bubbleWidth < 20 {
		bubbleWidth = 20
	}

	rendered := make([]string, 0, len(msgs)*2)
	for _, msg := range msgs {
		content := msg.DisplayContent()
		if content == "" && msg.IsStreaming {
			content = m.spinner.View()
		}

		tag := m.theme.SenderTag.Render(msg.Sender.DisplayName())

		if msg.Sender == model.SenderUser {
			bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Render(content)
			block := lipgloss.JoinVertical(lipgloss.Right, tag, bubble)
			rendered = append(rendered,
				lipgloss.PlaceHorizontal(m.width, lipgloss.Right, block))
		} else {
			bubble := m.theme.BotBubble.MaxWidth(bubbleWidth).Render(content)
			rendered = append(rendered,
				lipgloss.JoinVertical(lipgloss.Left, tag, bubble))
		}
	}

	return strings.Join(rendered, "\n")
}
