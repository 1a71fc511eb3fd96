// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewWithPath(filepath.Join(t.TempDir(), RegistryFileName))
	require.NoError(t, err)
	return reg
}

func TestRegisterAndList(t *testing.T) {
	reg := newTestRegistry(t)

	require.NoError(t, reg.Register("id-1", "report.pdf"))
	require.NoError(t, reg.Register("id-2", "notes.pdf"))
	require.NoError(t, reg.Register("id-3", "thesis.pdf"))

	entries := reg.List()
	require.Len(t, entries, 3)
	require.Equal(t, "id-1", entries[0].SessionID)
	require.Equal(t, "id-2", entries[1].SessionID)
	require.Equal(t, "id-3", entries[2].SessionID)

	name, ok := reg.Name("id-2")
	require.True(t, ok)
	require.Equal(t, "notes.pdf", name)
}

func TestReRegisterKeepsSlot(t *testing.T) {
	reg := newTestRegistry(t)

	reg.Register("id-1", "a.pdf")
	reg.Register("id-2", "b.pdf")
	reg.Register("id-1", "a-renamed.pdf")

	entries := reg.List()
	require.Len(t, entries, 2)
	require.Equal(t, "id-1", entries[0].SessionID)
	require.Equal(t, "a-renamed.pdf", entries[0].DisplayName)
}

func TestRemoveIsIdempotent(t *testing.T) {
	reg := newTestRegistry(t)

	reg.Register("id-1", "a.pdf")
	require.NoError(t, reg.Remove("id-1"))
	require.NoError(t, reg.Remove("id-1"))
	require.NoError(t, reg.Remove("never-existed"))
	require.True(t, reg.IsEmpty())
}

func TestPersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), RegistryFileName)

	reg, err := NewWithPath(path)
	require.NoError(t, err)
	reg.Register("id-1", "a.pdf")
	reg.Register("id-2", "b.pdf")

	// A second registry over the same file sees the same entries in the
	// same order.
	reloaded, err := NewWithPath(path)
	require.NoError(t, err)
	entries := reloaded.List()
	require.Len(t, entries, 2)
	require.Equal(t, "id-1", entries[0].SessionID)
	require.Equal(t, "b.pdf", entries[1].DisplayName)
}

func TestCorruptFileYieldsEmptyRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), RegistryFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	reg, err := NewWithPath(path)
	require.NoError(t, err)
	require.True(t, reg.IsEmpty())

	// The next mutation overwrites the corrupt file with valid content.
	require.NoError(t, reg.Register("id-1", "a.pdf"))
	reloaded, err := NewWithPath(path)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.Len())
}

func TestClear(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Register("id-1", "a.pdf")
	reg.Register("id-2", "b.pdf")

	require.NoError(t, reg.Clear())
	require.True(t, reg.IsEmpty())
	require.False(t, reg.Has("id-1"))
}

func TestOrderedCodec(t *testing.T) {
	data := []byte(`{"z": "last.pdf", "a": "first.pdf", "m": "middle.pdf"}`)

	order, names, err := decodeOrdered(data)
	require.NoError(t, err)
	require.Equal(t, []string{"z", "a", "m"}, order)
	require.Equal(t, "first.pdf", names["a"])

	encoded, err := encodeOrdered(order, names)
	require.NoError(t, err)

	order2, _, err := decodeOrdered(encoded)
	require.NoError(t, err)
	require.Equal(t, order, order2)
}
