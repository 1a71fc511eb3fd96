// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry persists the mapping from session id to display name.
package registry

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/docchat-tui/internal/util"
)

// RegistryFileName is the file holding the session-id to name map.
const RegistryFileName = "files.json"

// =============================================================================
// ENTRY TYPE
// =============================================================================

// Entry is one registered document session.
type Entry struct {
	SessionID   string
	DisplayName string
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is the durable session-id to display-name map.
//
// All mutations rewrite the backing file atomically. Read-modify-write
// sequences happen entirely under the lock, never across a suspension
// point, so overlapping deletes cannot lose updates.
type Registry struct {
	mu    sync.Mutex
	path  string
	order []string
	names map[string]string

	watcher  *fsnotify.Watcher
	onReload func()
	done     chan struct{}
}

// New creates a registry backed by ~/.docchat/files.json, loading any
// existing entries.
func New() (*Registry, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return NewWithPath(filepath.Join(homeDir, ".docchat", RegistryFileName))
}

// NewWithPath creates a registry backed by the given file path.
func NewWithPath(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	r := &Registry{
		path:  path,
		names: make(map[string]string),
	}
	r.load()
	return r, nil
}

// load reads the backing file into memory. Corrupt or missing files leave
// the registry empty; the file itself is untouched until the next mutation.
func (r *Registry) load() {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return
	}

	order, names, err := decodeOrdered(data)
	if err != nil {
		return
	}

	r.order = order
	r.names = names
}

// save rewrites the backing file. Caller must hold the lock.
func (r *Registry) save() error {
	data, err := encodeOrdered(r.order, r.names)
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(r.path, data, 0644)
}

// =============================================================================
// OPERATIONS
// =============================================================================

// Register adds or renames an entry and persists the registry.
// New ids append at the end; re-registering an existing id keeps its slot.
func (r *Registry) Register(id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[id]; !exists {
		r.order = append(r.order, id)
	}
	r.names[id] = name
	return r.save()
}

// Remove deletes an entry and persists the registry. Removing an id that
// is not present is a no-op, so retried deletes stay idempotent.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.names[id]; !exists {
		return nil
	}

	delete(r.names, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return r.save()
}

// Clear removes all entries and persists the empty registry.
func (r *Registry) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.names = make(map[string]string)
	return r.save()
}

// List returns all entries in insertion order.
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, 0, len(r.order))
	for _, id := range r.order {
		entries = append(entries, Entry{SessionID: id, DisplayName: r.names[id]})
	}
	return entries
}

// IsEmpty reports whether the registry has no entries.
func (r *Registry) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order) == 0
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.names[id]
	return ok
}

// Name returns the display name for id, and whether it is registered.
func (r *Registry) Name(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name, ok := r.names[id]
	return name, ok
}

// =============================================================================
// FILE WATCHING
// =============================================================================

// Watch starts reloading the registry whenever another process rewrites the
// backing file, then invokes onReload. The registry file plays the role a
// browser's shared localStorage would, so external edits must show up live.
func (r *Registry) Watch(onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watch the directory: atomic rename-over-target replaces the inode,
	// so watching the file itself would go stale after one write.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return err
	}

	r.mu.Lock()
	r.watcher = watcher
	r.onReload = onReload
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	go func() {
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != r.path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				r.mu.Lock()
				r.load()
				notify := r.onReload
				r.mu.Unlock()
				if notify != nil {
					notify()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return nil
}

// Close stops the file watcher, if one is running.
func (r *Registry) Close() error {
	r.mu.Lock()
	watcher := r.watcher
	done := r.done
	r.watcher = nil
	r.done = nil
	r.mu.Unlock()

	if done != nil {
		close(done)
	}
	if watcher != nil {
		return watcher.Close()
	}
	return nil
}

// =============================================================================
// ORDERED JSON CODEC
// =============================================================================

// decodeOrdered parses a JSON object while preserving key order, which
// encoding/json's map decoding discards.
func decodeOrdered(data []byte) ([]string, map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, &json.UnmarshalTypeError{Value: "non-object", Type: nil}
	}

	var order []string
	names := make(map[string]string)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, &json.UnmarshalTypeError{Value: "non-string key", Type: nil}
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}

		if _, seen := names[key]; !seen {
			order = append(order, key)
		}
		names[key] = value
	}

	return order, names, nil
}

// encodeOrdered writes the map as a JSON object in insertion order.
func encodeOrdered(order []string, names map[string]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, id := range order {
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(names[id])
		if err != nil {
			return nil, err
		}
		buf.WriteString("  ")
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(order)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
