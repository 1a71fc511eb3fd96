// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the docchat TUI.
package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat-tui/internal/notify"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// ErrorModal is the blocking modal for global error notifications. While
// visible it captures all key input; dismissal clears the notifier.
type ErrorModal struct {
	theme *styles.Theme

	kind       notify.Kind
	showReload bool
}

// NewErrorModal creates a hidden modal.
func NewErrorModal(theme *styles.Theme) *ErrorModal {
	return &ErrorModal{theme: theme}
}

// Show displays the modal for a notification kind.
func (m *ErrorModal) Show(kind notify.Kind, showReload bool) {
	m.kind = kind
	m.showReload = showReload
}

// Hide dismisses the modal.
func (m *ErrorModal) Hide() {
	m.kind = notify.KindNone
	m.showReload = false
}

// Visible reports whether the modal is showing.
func (m *ErrorModal) Visible() bool {
	return m.kind != notify.KindNone
}

// Update handles key input while the modal is visible.
func (m *ErrorModal) Update(msg tea.Msg) (*ErrorModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", "esc":
		reload := m.showReload
		m.Hide()
		if reload {
			return m, func() tea.Msg { return ReloadRequestedMsg{} }
		}
		return m, func() tea.Msg { return DismissErrorMsg{} }
	}

	return m, nil
}

// View renders the modal centered in the given area.
func (m *ErrorModal) View(width, height int) string {
	if !m.Visible() {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.ModalTitle.Render(m.kind.String()))
	b.WriteString("\n\n")
	b.WriteString(m.theme.ModalMessage.Width(44).Render(m.kind.Message()))
	b.WriteString("\n\n")

	label := "OK"
	if m.showReload {
		label = "Reload"
	}
	b.WriteString(m.theme.ModalButton.Render(label))

	box := m.theme.ModalBox.Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
