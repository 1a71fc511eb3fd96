// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package uploader coordinates document uploads end to end.
//
// A successful upload registers the returned session id under the file's
// display name and activates the new session. Oversized files are rejected
// locally before any network traffic. Only one upload runs at a time; a
// second request while one is in flight is refused rather than queued.
package uploader
