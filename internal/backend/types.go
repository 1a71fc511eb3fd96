// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the document-chat service.
package backend

// =============================================================================
// WIRE TYPES
// =============================================================================

// UploadResponse is the body returned by POST /upload/.
type UploadResponse struct {
	FileID string `json:"file_id"`
}

// ActivationRequest is the body sent to POST /model_activation.
type ActivationRequest struct {
	SessionID string `json:"session_id"`
}

// HistoryEntry is a single prior turn returned by GET /chat_history.
// Type is "human" for user turns and "ai" for chatbot turns.
type HistoryEntry struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// History entry type values used by the backend.
const (
	HistoryTypeHuman = "human"
	HistoryTypeAI    = "ai"
)

// HistoryResponse is the body returned by GET /chat_history.
type HistoryResponse struct {
	Message []HistoryEntry `json:"message"`
}

// FileListResponse is the body returned by GET /get_files/.
type FileListResponse struct {
	Message []string `json:"message"`
}

// serverError captures an optional error detail body on non-2xx responses.
type serverError struct {
	Detail string `json:"detail"`
}

// =============================================================================
// STREAM CHUNK
// =============================================================================

// Chunk is a single increment of a streamed chat completion.
// Exactly one of Text, Done, or Err is meaningful per chunk: text chunks
// carry decoded content, the final chunk has Done set, and error chunks
// (channel variant only) carry Err.
type Chunk struct {
	Text string
	Done bool
	Err  error
}
