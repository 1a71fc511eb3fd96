// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package histcache caches the last-fetched conversation per session.
//
// The cache lets the chat view fall back to a read-only transcript when the
// backend is unreachable during a history load. It is purely a cache: the
// backend remains authoritative, rows are replaced wholesale after every
// successful fetch or completed exchange, and deletes evict eagerly.
package histcache
