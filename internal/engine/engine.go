// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package engine drives the conversation lifecycle for the active session.
package engine

import (
	"errors"
	"sync"

	"github.com/jeranaias/docchat-tui/internal/backend"
	"github.com/jeranaias/docchat-tui/internal/model"
	"github.com/jeranaias/docchat-tui/internal/session"
)

// =============================================================================
// PHASES
// =============================================================================

// Phase is the engine's position in the conversation lifecycle.
type Phase int

const (
	// PhaseIdle: no active session; input disabled.
	PhaseIdle Phase = iota
	// PhaseLoadingHistory: a history fetch is in flight; input disabled.
	PhaseLoadingHistory
	// PhaseReady: transcript loaded; input enabled.
	PhaseReady
	// PhaseAwaitingResponse: question sent, no chunk received yet.
	PhaseAwaitingResponse
	// PhaseStreaming: chunks arriving into the placeholder.
	PhaseStreaming
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoadingHistory:
		return "loading_history"
	case PhaseReady:
		return "ready"
	case PhaseAwaitingResponse:
		return "awaiting_response"
	case PhaseStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// ErrNotReady is returned by Submit outside the ready phase. A question
// cannot be sent while history loads or a response is still streaming.
var ErrNotReady = errors.New("engine is not ready for a question")

// ErrEmptyQuestion is returned by Submit for blank input.
var ErrEmptyQuestion = errors.New("question is empty")

// =============================================================================
// SUBMISSION
// =============================================================================

// Submission describes an accepted question. The caller starts the stream
// request from it and routes chunks back with the same generation.
type Submission struct {
	SessionID     string
	Question      string
	PlaceholderID string
	Gen           uint64
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine owns the transcript and the conversation phase machine.
type Engine struct {
	mu       sync.Mutex
	store    *session.Store
	phase    Phase
	messages []*model.Message

	// placeholderID locates the streaming message by identity. Transcript
	// content is never matched by text.
	placeholderID string
	streamGen     uint64
}

// New creates an idle engine bound to a session store.
func New(store *session.Store) *Engine {
	return &Engine{store: store}
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Messages returns a snapshot of the transcript in order.
func (e *Engine) Messages() []*model.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*model.Message, len(e.messages))
	copy(out, e.messages)
	return out
}

// InputEnabled reports whether a question may be typed right now.
func (e *Engine) InputEnabled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase == PhaseReady
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

// SessionChanged resets the transcript for a new active session and enters
// the loading phase. Any in-flight stream for the previous session is
// implicitly orphaned; its results will fail the generation check.
func (e *Engine) SessionChanged() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.messages = nil
	e.placeholderID = ""
	e.streamGen = 0
	e.phase = PhaseLoadingHistory
}

// Reset clears the transcript and returns to idle. Used when the active
// session is deleted or the workspace is flushed.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.messages = nil
	e.placeholderID = ""
	e.streamGen = 0
	e.phase = PhaseIdle
}

// ApplyHistory installs a fetched transcript. Stale results (gen no longer
// current) are discarded entirely. An empty history yields the synthetic
// welcome message so the view is never blank. On fetch error the transcript
// is left untouched and the engine still becomes ready; the caller decides
// whether to surface a cached transcript or an error line.
func (e *Engine) ApplyHistory(gen uint64, entries []backend.HistoryEntry, err error) bool {
	if !e.store.IsCurrent(gen) {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseLoadingHistory {
		return false
	}

	if err != nil {
		e.phase = PhaseReady
		return true
	}

	e.messages = historyToMessages(entries)
	if len(e.messages) == 0 {
		e.messages = []*model.Message{model.NewWelcomeMessage()}
	}
	e.phase = PhaseReady
	return true
}

// SeedMessages installs a transcript directly, bypassing the history fetch.
// Used for the cached-transcript fallback. Subject to the same staleness
// check as ApplyHistory.
func (e *Engine) SeedMessages(gen uint64, msgs []*model.Message) bool {
	if !e.store.IsCurrent(gen) {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.messages = msgs
	if len(e.messages) == 0 {
		e.messages = []*model.Message{model.NewWelcomeMessage()}
	}
	e.phase = PhaseReady
	return true
}

// =============================================================================
// QUESTION SUBMISSION
// =============================================================================

// Submit accepts a question: appends the user message and the streaming
// placeholder, and moves to awaiting-response. Fails outside the ready
// phase and for blank input.
func (e *Engine) Submit(question string) (Submission, error) {
	id, ok := e.store.Active()
	if !ok {
		return Submission{}, ErrNotReady
	}
	gen := e.store.Generation()

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != PhaseReady {
		return Submission{}, ErrNotReady
	}
	if isBlank(question) {
		return Submission{}, ErrEmptyQuestion
	}

	placeholder := model.NewPlaceholderMessage()
	e.messages = append(e.messages, model.NewUserMessage(question), placeholder)
	e.placeholderID = placeholder.ID
	e.streamGen = gen
	e.phase = PhaseAwaitingResponse

	return Submission{
		SessionID:     id,
		Question:      question,
		PlaceholderID: placeholder.ID,
		Gen:           gen,
	}, nil
}

// =============================================================================
// STREAM APPLICATION
// =============================================================================

// ApplyChunk appends a decoded chunk to the placeholder. The first chunk
// moves the engine from awaiting-response to streaming. Stale chunks are
// dropped.
func (e *Engine) ApplyChunk(gen uint64, text string) bool {
	if !e.store.IsCurrent(gen) {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.streamGen {
		return false
	}
	if e.phase != PhaseAwaitingResponse && e.phase != PhaseStreaming {
		return false
	}

	msg := e.findLocked(e.placeholderID)
	if msg == nil {
		return false
	}
	msg.AppendChunk(text)
	e.phase = PhaseStreaming
	return true
}

// CompleteStream finalizes the placeholder and returns to ready. Returns
// the finalized message so the caller can persist the exchange, or nil when
// the completion was stale.
func (e *Engine) CompleteStream(gen uint64) *model.Message {
	if !e.store.IsCurrent(gen) {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.streamGen {
		return nil
	}
	if e.phase != PhaseAwaitingResponse && e.phase != PhaseStreaming {
		return nil
	}

	msg := e.findLocked(e.placeholderID)
	if msg == nil {
		return nil
	}
	msg.FinalizeStream()
	e.placeholderID = ""
	e.phase = PhaseReady
	return msg
}

// FailStream replaces the placeholder's content with the fixed error text
// and returns to ready. Chat failures never raise the global error modal.
func (e *Engine) FailStream(gen uint64) bool {
	if !e.store.IsCurrent(gen) {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.streamGen {
		return false
	}
	if e.phase != PhaseAwaitingResponse && e.phase != PhaseStreaming {
		return false
	}

	msg := e.findLocked(e.placeholderID)
	if msg != nil {
		msg.FailStream()
	}
	e.placeholderID = ""
	e.phase = PhaseReady
	return true
}

// =============================================================================
// HELPERS
// =============================================================================

// findLocked locates a message by id. Caller must hold the lock.
func (e *Engine) findLocked(id string) *model.Message {
	if id == "" {
		return nil
	}
	for i := len(e.messages) - 1; i >= 0; i-- {
		if e.messages[i].ID == id {
			return e.messages[i]
		}
	}
	return nil
}

// historyToMessages converts backend history entries to transcript messages.
func historyToMessages(entries []backend.HistoryEntry) []*model.Message {
	msgs := make([]*model.Message, 0, len(entries))
	for _, entry := range entries {
		switch entry.Type {
		case backend.HistoryTypeHuman:
			msgs = append(msgs, model.NewUserMessage(entry.Content))
		case backend.HistoryTypeAI:
			msgs = append(msgs, model.NewChatbotMessage(entry.Content))
		}
	}
	return msgs
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
