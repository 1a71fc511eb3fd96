// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the active document session.
//
// At most one session is active at any time. Every mutation bumps a
// generation counter; asynchronous completions (history fetches, completion
// streams) capture the generation when they start and check it before
// applying results, so a response that arrives after the user has switched
// sessions is discarded instead of corrupting the new session's view.
package session
