// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view for the docchat TUI.
package chat

// Refresh re-renders the transcript from the engine. The app calls this
// after mutating engine state outside the chat view's own update path
// (cached-transcript fallback, resets).
func (m *Model) Refresh() {
	m.followTail = true
	m.refreshViewport()
}
