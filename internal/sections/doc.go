// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sections manages the lifecycle of document sessions: switching
// among them, deleting one, and flushing the workspace.
//
// Activation is optimistic: the local active session flips immediately so
// the UI responds, then the backend activation runs; failure rolls the
// switch back and raises the error notifier. Deletion commits locally only
// after the backend confirms, so a failed delete leaves the entry visible.
package sections
