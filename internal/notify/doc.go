// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify broadcasts the last failure classification to the UI.
//
// The notifier is a process-wide singleton by convention: one current
// notification, last-write-wins, no queue. Upload and delete/activate
// failures land here and surface as a blocking modal. Chat errors do not;
// they are local to the conversation and recover on retry.
package notify
