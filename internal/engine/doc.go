// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine drives the conversation lifecycle for the active session.
//
// The engine owns the message list and the phase machine that gates input:
// history loads, question submission, stream application, and the error
// paths all funnel through it. Every async result carries the session
// generation it was started under; results from a superseded generation are
// discarded without touching state. The UI layers (bubbletea and the plain
// REPL) stay thin over this package.
package engine
