// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the document-chat service.
//
// The client covers the full backend surface:
//
//   - POST /upload/          multipart document upload, returns a file id
//   - POST /model_activation activates a session for querying
//   - GET  /chat_history     prior conversation turns for a session
//   - GET  /chat_completion/ streamed answer to a question
//   - DELETE /delete         removes a single session/file
//   - DELETE /flush          removes all sessions
//   - GET  /get_files/       lists backend-known files
//
// Errors are classified into a closed taxonomy (connection, server, timeout,
// file-too-large) so the UI can map every failure to a user-facing
// notification. Idempotent GETs retry with bounded backoff; mutating calls
// fail fast and leave retry to the user.
package backend
