// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package histcache

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), CacheFileName))
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestPutGetRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	msgs := []CachedMessage{
		{Sender: "user", Content: "what is this document about?"},
		{Sender: "chatbot", Content: "It covers quarterly results."},
	}
	if err := cache.Put("sess-1", msgs); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := cache.Get("sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0] != msgs[0] || got[1] != msgs[1] {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestPutReplacesTranscript(t *testing.T) {
	cache := newTestCache(t)

	cache.Put("sess-1", []CachedMessage{
		{Sender: "user", Content: "old question"},
		{Sender: "chatbot", Content: "old answer"},
		{Sender: "user", Content: "followup"},
	})
	if err := cache.Put("sess-1", []CachedMessage{
		{Sender: "user", Content: "new question"},
	}); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	got, err := cache.Get("sess-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got) != 1 || got[0].Content != "new question" {
		t.Errorf("Put should fully replace the transcript, got %+v", got)
	}
}

func TestGetUnknownSession(t *testing.T) {
	cache := newTestCache(t)

	_, err := cache.Get("never-cached")
	if !errors.Is(err, ErrNotCached) {
		t.Errorf("expected ErrNotCached, got %v", err)
	}
}

func TestEvict(t *testing.T) {
	cache := newTestCache(t)

	cache.Put("sess-1", []CachedMessage{{Sender: "user", Content: "a"}})
	cache.Put("sess-2", []CachedMessage{{Sender: "user", Content: "b"}})

	if err := cache.Evict("sess-1"); err != nil {
		t.Fatalf("Evict failed: %v", err)
	}

	if _, err := cache.Get("sess-1"); !errors.Is(err, ErrNotCached) {
		t.Error("evicted session should be gone")
	}
	if _, err := cache.Get("sess-2"); err != nil {
		t.Errorf("other session should survive eviction: %v", err)
	}

	// Evicting an absent session is a no-op.
	if err := cache.Evict("sess-1"); err != nil {
		t.Errorf("repeat Evict failed: %v", err)
	}
}

func TestEvictAll(t *testing.T) {
	cache := newTestCache(t)

	cache.Put("sess-1", []CachedMessage{{Sender: "user", Content: "a"}})
	cache.Put("sess-2", []CachedMessage{{Sender: "user", Content: "b"}})

	if err := cache.EvictAll(); err != nil {
		t.Fatalf("EvictAll failed: %v", err)
	}
	if _, err := cache.Get("sess-1"); !errors.Is(err, ErrNotCached) {
		t.Error("EvictAll should drop every transcript")
	}
}

func TestReopenSeesPersistedData(t *testing.T) {
	path := filepath.Join(t.TempDir(), CacheFileName)

	cache, err := Open(path)
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	cache.Put("sess-1", []CachedMessage{{Sender: "chatbot", Content: "persisted"}})
	cache.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopening cache: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("sess-1")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if len(got) != 1 || got[0].Content != "persisted" {
		t.Errorf("unexpected persisted transcript: %+v", got)
	}
}
