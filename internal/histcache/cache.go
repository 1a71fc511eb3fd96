// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package histcache caches the last-fetched conversation per session.
package histcache

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// CacheFileName is the sqlite database file under the config directory.
const CacheFileName = "history.db"

// ErrNotCached indicates no transcript is cached for a session.
var ErrNotCached = errors.New("no cached history for session")

const schema = `
CREATE TABLE IF NOT EXISTS history (
	session_id TEXT NOT NULL,
	seq        INTEGER NOT NULL,
	sender     TEXT NOT NULL,
	content    TEXT NOT NULL,
	PRIMARY KEY (session_id, seq)
);
`

// =============================================================================
// CACHED MESSAGE
// =============================================================================

// CachedMessage is one transcript row. Sender matches the chat model's
// sender values ("user" or "chatbot").
type CachedMessage struct {
	Sender  string
	Content string
}

// =============================================================================
// CACHE
// =============================================================================

// Cache is the sqlite-backed transcript cache.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at the given path.
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Put replaces the cached transcript for a session.
func (c *Cache) Put(sessionID string, msgs []CachedMessage) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM history WHERE session_id = ?`, sessionID); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO history (session_id, seq, sender, content) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, msg := range msgs {
		if _, err := stmt.Exec(sessionID, i, msg.Sender, msg.Content); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Get returns the cached transcript for a session in order, or ErrNotCached
// when the session has no rows.
func (c *Cache) Get(sessionID string) ([]CachedMessage, error) {
	rows, err := c.db.Query(
		`SELECT sender, content FROM history WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []CachedMessage
	for rows.Next() {
		var msg CachedMessage
		if err := rows.Scan(&msg.Sender, &msg.Content); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(msgs) == 0 {
		return nil, ErrNotCached
	}
	return msgs, nil
}

// Evict removes the cached transcript for a session. Evicting a session
// with no rows is a no-op.
func (c *Cache) Evict(sessionID string) error {
	_, err := c.db.Exec(`DELETE FROM history WHERE session_id = ?`, sessionID)
	return err
}

// EvictAll removes every cached transcript.
func (c *Cache) EvictAll() error {
	_, err := c.db.Exec(`DELETE FROM history`)
	return err
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
