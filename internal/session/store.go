// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session tracks the active document session.
package session

import (
	"sync"
)

// =============================================================================
// SESSION STORE
// =============================================================================

// Store holds the identifier of the currently active session.
//
// It is a pure state holder: no validation of id existence, no side effects
// beyond the synchronous change callback. Callers are responsible for having
// just created or fetched the id they activate.
type Store struct {
	mu         sync.Mutex
	active     string
	generation uint64

	// onChange is invoked synchronously after every mutation, outside the
	// lock. Receives the new active id ("" when cleared).
	onChange func(id string, active bool)
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Active returns the active session id, and whether one is set.
func (s *Store) Active() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, s.active != ""
}

// SetActive activates a session and returns the new generation.
// Activating the already-active session still bumps the generation, which
// forces in-flight work for the previous activation to be discarded.
func (s *Store) SetActive(id string) uint64 {
	s.mu.Lock()
	s.active = id
	s.generation++
	gen := s.generation
	notify := s.onChange
	s.mu.Unlock()

	if notify != nil {
		notify(id, id != "")
	}
	return gen
}

// Clear deactivates the current session and returns the new generation.
func (s *Store) Clear() uint64 {
	return s.SetActive("")
}

// Generation returns the current generation counter.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// IsCurrent reports whether gen matches the store's current generation.
// Async completions call this before applying their results.
func (s *Store) IsCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

// SetOnChange registers the synchronous change callback. Only one callback
// is supported; the UI shell fans out from there.
func (s *Store) SetOnChange(fn func(id string, active bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}
