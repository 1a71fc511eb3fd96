// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package notify broadcasts the last failure classification to the UI.
package notify

import (
	"sync"

	"github.com/jeranaias/docchat-tui/internal/backend"
)

// =============================================================================
// NOTIFICATION KINDS
// =============================================================================

// Kind classifies a failure for user presentation. The set is closed:
// every failure the client can detect maps onto one of these.
type Kind int

const (
	// KindNone means no notification is pending.
	KindNone Kind = iota
	// KindConnectionError: the backend could not be reached.
	KindConnectionError
	// KindServerError: the backend answered with a non-2xx status or a
	// malformed body.
	KindServerError
	// KindTimeoutError: a request exceeded its deadline.
	KindTimeoutError
	// KindFileTooLarge: the selected file failed the client-side size
	// pre-check; no request was made.
	KindFileTooLarge
)

// String returns the notification tag.
func (k Kind) String() string {
	switch k {
	case KindConnectionError:
		return "CONNECTION_ERROR"
	case KindServerError:
		return "SERVER_ERROR"
	case KindTimeoutError:
		return "TIMEOUT_ERROR"
	case KindFileTooLarge:
		return "FILE_TOO_LARGE"
	default:
		return "NONE"
	}
}

// Message returns the user-facing text for the notification modal.
func (k Kind) Message() string {
	switch k {
	case KindConnectionError:
		return "There is a connection error. Please check your internet connection and try again."
	case KindServerError:
		return "Server error due to high demand. Please try again later."
	case KindTimeoutError:
		return "Server timeout. Please try again later."
	case KindFileTooLarge:
		return "We currently support PDF files < 3MB. Please try again with a smaller file."
	default:
		return ""
	}
}

// KindForError maps a backend client error onto a notification kind.
// Caller-initiated cancellations map to KindNone; they are deliberate and
// never surface as an error.
func KindForError(err error) Kind {
	switch backend.KindOf(err) {
	case backend.ErrKindConnection:
		return KindConnectionError
	case backend.ErrKindTimeout:
		return KindTimeoutError
	case backend.ErrKindFileTooLarge:
		return KindFileTooLarge
	case backend.ErrKindCanceled:
		return KindNone
	default:
		return KindServerError
	}
}

// =============================================================================
// NOTIFIER
// =============================================================================

// Notifier holds the current (single) error notification.
type Notifier struct {
	mu         sync.Mutex
	current    Kind
	withReload bool
}

// NewNotifier creates a notifier with no pending notification.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Notify sets the current notification. Last write wins; simultaneous
// failures are not queued. Notifying KindNone is a no-op; use Clear to
// dismiss.
func (n *Notifier) Notify(kind Kind) {
	n.notify(kind, false)
}

// NotifyWithReload sets the current notification and marks it as offering
// the forced-reload action on dismissal.
func (n *Notifier) NotifyWithReload(kind Kind) {
	n.notify(kind, true)
}

func (n *Notifier) notify(kind Kind, withReload bool) {
	if kind == KindNone {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = kind
	n.withReload = withReload
}

// Clear dismisses the current notification.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = KindNone
	n.withReload = false
}

// Current returns the pending notification kind, KindNone when clear.
func (n *Notifier) Current() Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// ShowReload reports whether the pending notification offers a reload action.
func (n *Notifier) ShowReload() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.withReload
}
