// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides reusable UI components for the docchat TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// UploadPanel prompts for a local file path and submits it for upload.
type UploadPanel struct {
	theme *styles.Theme
	width int

	input     textinput.Model
	uploading bool
	lastName  string
}

// NewUploadPanel creates the panel with an empty path prompt.
func NewUploadPanel(theme *styles.Theme) *UploadPanel {
	ti := textinput.New()
	ti.Placeholder = "path to PDF, e.g. ~/docs/report.pdf"
	ti.CharLimit = 512
	ti.Prompt = "> "

	return &UploadPanel{theme: theme, input: ti}
}

// SetWidth updates the render width.
func (p *UploadPanel) SetWidth(width int) {
	p.width = width
	p.input.Width = width - 8
}

// Focus gives the path input keyboard focus.
func (p *UploadPanel) Focus() tea.Cmd {
	return p.input.Focus()
}

// Blur removes keyboard focus.
func (p *UploadPanel) Blur() {
	p.input.Blur()
}

// SetUploading toggles the in-flight indicator and input availability.
func (p *UploadPanel) SetUploading(uploading bool) {
	p.uploading = uploading
	if uploading {
		p.input.Blur()
	}
}

// Uploading reports whether an upload is displayed as in flight.
func (p *UploadPanel) Uploading() bool {
	return p.uploading
}

// Update handles key input while the panel has focus.
func (p *UploadPanel) Update(msg tea.Msg) (*UploadPanel, tea.Cmd) {
	if p.uploading {
		return p, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		path := strings.TrimSpace(p.input.Value())
		if path == "" {
			return p, nil
		}
		p.lastName = path
		p.input.SetValue("")
		return p, func() tea.Msg { return UploadRequestMsg{Path: path} }
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the panel.
func (p *UploadPanel) View() string {
	var b strings.Builder

	b.WriteString(p.theme.UploadTitle.Render("Upload a document"))
	b.WriteByte('\n')

	if p.uploading {
		b.WriteString(p.theme.UploadActive.Render("Uploading " + p.lastName + "..."))
	} else {
		b.WriteString(p.input.View())
	}

	b.WriteByte('\n')
	b.WriteString(p.theme.UploadHint.Render("PDF up to 3MB. Enter to upload."))

	return p.theme.UploadBox.Width(p.width).Render(b.String())
}
