// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the docchat TUI.
package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/engine"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui/styles"
)

// Model is the chat view.
type Model struct {
	theme  *styles.Theme
	engine *engine.Engine
	client *backend.Client
	store  *session.Store

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	width  int
	height int

	// followTail keeps the viewport pinned to the newest message unless the
	// user scrolled away.
	followTail bool

	// streamCancel aborts the in-flight completion stream; nil when none.
	streamCancel context.CancelFunc
	chunks       <-chan backend.Chunk
}

// New creates the chat view.
func New(theme *styles.Theme, eng *engine.Engine, client *backend.Client, store *session.Store) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your document..."
	ti.CharLimit = 2000
	ti.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Spinner

	return &Model{
		theme:      theme,
		engine:     eng,
		client:     client,
		store:      store,
		viewport:   viewport.New(0, 0),
		input:      ti,
		spinner:    sp,
		followTail: true,
	}
}

// SetSize lays the view out for the given area.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := 3
	vpHeight := height - inputHeight
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = vpHeight
	m.input.Width = width - 6

	m.refreshViewport()
}

// Focus gives the question input keyboard focus.
func (m *Model) Focus() {
	m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}

// CancelStream aborts any in-flight completion stream. Called on session
// switches so an old stream cannot keep producing.
func (m *Model) CancelStream() {
	if m.streamCancel != nil {
		m.streamCancel()
		m.streamCancel = nil
	}
	m.chunks = nil
}
