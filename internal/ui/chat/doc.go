// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the chat view for the docchat TUI.

The view is a thin Bubble Tea layer over the engine: it renders the
engine's transcript in a viewport, relays submitted questions, and pumps
stream chunks back as messages. All conversation state lives in the
engine; the view holds only presentation state (viewport position, input
focus, spinner).

Stream chunks arrive over a channel and are forwarded one message at a
time via the wait-for-chunk command, the standard Bubble Tea pattern for
bridging a producing goroutine into the update loop.
*/
package chat
