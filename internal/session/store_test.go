// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import "testing"

func TestActiveLifecycle(t *testing.T) {
	store := NewStore()

	if _, ok := store.Active(); ok {
		t.Error("new store should have no active session")
	}

	gen := store.SetActive("sess-1")
	id, ok := store.Active()
	if !ok || id != "sess-1" {
		t.Errorf("expected active sess-1, got %q (%v)", id, ok)
	}
	if !store.IsCurrent(gen) {
		t.Error("returned generation should be current")
	}

	store.Clear()
	if _, ok := store.Active(); ok {
		t.Error("cleared store should have no active session")
	}
}

func TestGenerationBumpsOnEveryMutation(t *testing.T) {
	store := NewStore()

	gen1 := store.SetActive("sess-1")
	gen2 := store.SetActive("sess-2")
	if gen2 <= gen1 {
		t.Errorf("generation should increase: %d then %d", gen1, gen2)
	}
	if store.IsCurrent(gen1) {
		t.Error("old generation should be stale after a switch")
	}

	// Re-activating the same session still invalidates in-flight work.
	gen3 := store.SetActive("sess-2")
	if gen3 <= gen2 {
		t.Error("re-activation should still bump the generation")
	}
	if store.IsCurrent(gen2) {
		t.Error("generation from before re-activation should be stale")
	}
}

func TestOnChangeCallback(t *testing.T) {
	store := NewStore()

	var gotID string
	var gotActive bool
	calls := 0
	store.SetOnChange(func(id string, active bool) {
		gotID = id
		gotActive = active
		calls++
	})

	store.SetActive("sess-1")
	if gotID != "sess-1" || !gotActive {
		t.Errorf("unexpected callback args: %q %v", gotID, gotActive)
	}

	store.Clear()
	if gotID != "" || gotActive {
		t.Errorf("clear should report inactive, got %q %v", gotID, gotActive)
	}
	if calls != 2 {
		t.Errorf("expected 2 callbacks, got %d", calls)
	}
}
