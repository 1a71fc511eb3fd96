// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploader coordinates document uploads end to end.
package uploader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/notify"
	"github.com/jeranaias/docchat-tui/internal/registry"
	"github.com/jeranaias/docchat-tui/internal/session"
)

// DefaultMaxUploadBytes is the client-side upload size ceiling (3 MiB),
// matching what the backend will accept.
const DefaultMaxUploadBytes = 3 * 1024 * 1024

// ErrUploadInFlight is returned when an upload is requested while another
// is still running.
var ErrUploadInFlight = errors.New("an upload is already in progress")

// =============================================================================
// UPLOADER
// =============================================================================

// Uploader runs the upload flow: size pre-check, multipart POST, registry
// entry, session activation.
type Uploader struct {
	client   *backend.Client
	registry *registry.Registry
	store    *session.Store
	notifier *notify.Notifier

	maxBytes int64
	inFlight atomic.Bool
}

// New creates an uploader with the default size ceiling.
func New(client *backend.Client, reg *registry.Registry, store *session.Store, notifier *notify.Notifier) *Uploader {
	return &Uploader{
		client:   client,
		registry: reg,
		store:    store,
		notifier: notifier,
		maxBytes: DefaultMaxUploadBytes,
	}
}

// SetMaxBytes overrides the upload size ceiling. Zero or negative restores
// the default.
func (u *Uploader) SetMaxBytes(n int64) {
	if n <= 0 {
		n = DefaultMaxUploadBytes
	}
	u.maxBytes = n
}

// InFlight reports whether an upload is currently running.
func (u *Uploader) InFlight() bool {
	return u.inFlight.Load()
}

// Upload runs the full flow for the file at path and returns the new
// session id. The session is activated only after both the backend and the
// registry have committed; on any failure the registry and active session
// are left untouched.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	if !u.inFlight.CompareAndSwap(false, true) {
		return "", ErrUploadInFlight
	}
	defer u.inFlight.Store(false)

	// Size pre-check happens before any network traffic. An oversized file
	// never produces a request.
	info, err := os.Stat(path)
	if err != nil {
		return "", &backend.ClientError{Kind: backend.ErrKindUnknown, Message: "cannot read file", Cause: err}
	}
	if info.Size() > u.maxBytes {
		u.notifier.Notify(notify.KindFileTooLarge)
		return "", backend.ErrFileTooLarge
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &backend.ClientError{Kind: backend.ErrKindUnknown, Message: "cannot read file", Cause: err}
	}
	defer f.Close()

	name := filepath.Base(path)
	sessionID, err := u.client.Upload(ctx, name, f)
	if err != nil {
		u.notifier.Notify(notify.KindForError(err))
		return "", err
	}

	if err := u.registry.Register(sessionID, name); err != nil {
		// The backend accepted the document but the local registry could
		// not be persisted. Without a registry entry the section would be
		// invisible, so do not activate; an activation the rest of the app
		// believes failed would leave the transcript on the old session.
		wrapped := &backend.ClientError{Kind: backend.ErrKindUnknown, Message: "cannot save file registry", Cause: err}
		u.notifier.Notify(notify.KindForError(wrapped))
		return "", wrapped
	}

	u.store.SetActive(sessionID)
	return sessionID, nil
}
