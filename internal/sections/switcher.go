// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sections manages the lifecycle of document sessions.
package sections

import (
	"context"
	"errors"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/histcache"
	"github.com/jeranaias/docchat-tui/internal/notify"
	"github.com/jeranaias/docchat-tui/internal/registry"
	"github.com/jeranaias/docchat-tui/internal/session"
)

// ErrUnknownSection is returned for operations on a session id the
// registry does not know.
var ErrUnknownSection = errors.New("unknown section")

// =============================================================================
// SWITCHER
// =============================================================================

// Switcher coordinates session activation, deletion, and flush across the
// backend, the registry, the history cache, and the active-session store.
type Switcher struct {
	client   *backend.Client
	registry *registry.Registry
	store    *session.Store
	cache    *histcache.Cache
	notifier *notify.Notifier
}

// New creates a switcher. The history cache may be nil; eviction is then
// skipped.
func New(client *backend.Client, reg *registry.Registry, store *session.Store, cache *histcache.Cache, notifier *notify.Notifier) *Switcher {
	return &Switcher{
		client:   client,
		registry: reg,
		store:    store,
		cache:    cache,
		notifier: notifier,
	}
}

// List returns the registered sections in insertion order.
func (s *Switcher) List() []registry.Entry {
	return s.registry.List()
}

// =============================================================================
// ACTIVATION
// =============================================================================

// Activate switches to the given section. The local switch happens first
// so the UI follows the click; if the backend refuses the activation the
// switch is rolled back and the failure is posted to the notifier.
// Returns the generation of the successful activation.
func (s *Switcher) Activate(ctx context.Context, id string) (uint64, error) {
	if !s.registry.Has(id) {
		return 0, ErrUnknownSection
	}

	prev, hadPrev := s.store.Active()
	gen := s.store.SetActive(id)

	if err := s.client.ActivateModel(ctx, id); err != nil {
		// Roll back only if nothing else has switched in the meantime.
		if s.store.IsCurrent(gen) {
			if hadPrev {
				s.store.SetActive(prev)
			} else {
				s.store.Clear()
			}
		}
		s.notifier.Notify(notify.KindForError(err))
		return 0, err
	}

	return gen, nil
}

// =============================================================================
// DELETION
// =============================================================================

// Delete removes a section: backend first, then the registry entry and the
// cached transcript. A backend failure leaves everything in place and
// raises the notifier. Deleting the active section clears the active state.
func (s *Switcher) Delete(ctx context.Context, id string) error {
	if !s.registry.Has(id) {
		return ErrUnknownSection
	}

	if err := s.client.Delete(ctx, id); err != nil {
		s.notifier.Notify(notify.KindForError(err))
		return err
	}

	if err := s.registry.Remove(id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Evict(id)
	}

	if active, ok := s.store.Active(); ok && active == id {
		s.store.Clear()
	}
	return nil
}

// Flush removes every section. Like Delete, the backend commits first; a
// failure leaves local state intact.
func (s *Switcher) Flush(ctx context.Context) error {
	if err := s.client.Flush(ctx); err != nil {
		s.notifier.Notify(notify.KindForError(err))
		return err
	}

	if err := s.registry.Clear(); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.EvictAll()
	}
	s.store.Clear()
	return nil
}

// =============================================================================
// RECONCILIATION
// =============================================================================

// Reconcile drops registry entries the backend no longer knows about.
// Runs at startup so stale entries from a crashed or flushed backend do
// not offer dead sections.
func (s *Switcher) Reconcile(ctx context.Context) error {
	files, err := s.client.ListFiles(ctx)
	if err != nil {
		return err
	}

	known := make(map[string]bool, len(files))
	for _, id := range files {
		known[id] = true
	}

	for _, entry := range s.registry.List() {
		if known[entry.SessionID] {
			continue
		}
		if err := s.registry.Remove(entry.SessionID); err != nil {
			return err
		}
		if s.cache != nil {
			s.cache.Evict(entry.SessionID)
		}
		if active, ok := s.store.Active(); ok && active == entry.SessionID {
			s.store.Clear()
		}
	}
	return nil
}
