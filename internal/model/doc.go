// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages.
//
// A conversation is an ordered, append-only sequence of Messages. The only
// in-place mutation is the streaming placeholder: a chatbot message created
// empty at submit time, appended to as stream chunks arrive, and finalized
// (or replaced with a fixed error text) when the stream ends. Placeholders
// are identified by the ID captured at creation, never by matching display
// text.
package model
