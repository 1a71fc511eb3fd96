// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ui

import (
	"path/filepath"
	"testing"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/config"
	"github.com/jeranaias/docchat-tui/internal/engine"
	"github.com/jeranaias/docchat-tui/internal/notify"
	"github.com/jeranaias/docchat-tui/internal/registry"
	"github.com/jeranaias/docchat-tui/internal/sections"
	"github.com/jeranaias/docchat-tui/internal/session"
	"github.com/jeranaias/docchat-tui/internal/ui/chat"
	"github.com/jeranaias/docchat-tui/internal/ui/components"
	"github.com/jeranaias/docchat-tui/internal/uploader"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	reg, err := registry.NewWithPath(filepath.Join(t.TempDir(), registry.RegistryFileName))
	if err != nil {
		t.Fatalf("creating registry: %v", err)
	}

	client := backend.NewClientWithConfig(nil)
	store := session.NewStore()
	notifier := notify.NewNotifier()

	return NewApp(Deps{
		Config:   config.Default(),
		Client:   client,
		Registry: reg,
		Store:    store,
		Notifier: notifier,
		Engine:   engine.New(store),
		Switcher: sections.New(client, reg, store, nil, notifier),
		Uploader: uploader.New(client, reg, store, notifier),
	})
}

func TestHistoryFailureOffersReload(t *testing.T) {
	app := newTestApp(t)

	gen := app.deps.Store.SetActive("sess-1")
	app.deps.Engine.SessionChanged()

	app.Update(chat.HistoryLoadedMsg{Gen: gen, Err: backend.ErrConnection})

	if app.deps.Notifier.Current() != notify.KindConnectionError {
		t.Errorf("expected CONNECTION_ERROR, got %v", app.deps.Notifier.Current())
	}
	if !app.deps.Notifier.ShowReload() {
		t.Error("history fetch failure should offer the reload action")
	}
	if !app.modal.Visible() {
		t.Error("history fetch failure should raise the error modal")
	}
}

func TestReloadRetriesHistory(t *testing.T) {
	app := newTestApp(t)

	gen := app.deps.Store.SetActive("sess-1")
	app.deps.Engine.SessionChanged()
	app.Update(chat.HistoryLoadedMsg{Gen: gen, Err: backend.ErrConnection})

	_, cmd := app.Update(components.ReloadRequestedMsg{})

	if app.deps.Notifier.Current() != notify.KindNone {
		t.Errorf("reload should clear the notification, got %v", app.deps.Notifier.Current())
	}
	if cmd == nil {
		t.Error("reload with an active session should issue a history refetch")
	}
}

func TestUploadFailureRaisesModalWithoutSwitching(t *testing.T) {
	app := newTestApp(t)

	app.deps.Notifier.Notify(notify.KindFileTooLarge)
	app.Update(components.UploadFinishedMsg{Err: backend.ErrFileTooLarge})

	if !app.modal.Visible() {
		t.Error("upload failure should raise the error modal")
	}
	if _, ok := app.deps.Store.Active(); ok {
		t.Error("upload failure must not leave a session active")
	}
}
