// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package registry persists the mapping from session id to display name.
//
// The registry is a local cache of backend-held names, not authoritative:
// the backend is the source of truth for which files exist. Entries are
// stored as a JSON object at ~/.docchat/files.json in insertion order and
// survive restarts. A missing, empty, or unparseable file yields an empty
// registry; a stale entry (session deleted server-side) surfaces only as a
// failed selection attempt, never through proactive validation.
package registry
