// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chat messages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender identifies who produced a message.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderChatbot Sender = "chatbot"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderChatbot:
		return "Chatbot"
	default:
		return string(s)
	}
}

// =============================================================================
// FIXED MESSAGE TEXTS
// =============================================================================

// WelcomeText is the synthetic chatbot message shown when a session has no
// prior history. A freshly activated session never renders an empty list.
const WelcomeText = "Hello! Ask me anything about your document."

// ErrorResponseText replaces the in-flight placeholder when a completion
// stream fails. Chat errors stay local to the conversation; the user can
// simply ask again.
const ErrorResponseText = "Sorry, I encountered an error. Please try again."

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string `json:"content"`

	// Streaming state (not persisted)
	// PERFORMANCE: strings.Builder avoids quadratic allocations during streaming
	IsStreaming   bool            `json:"-"`
	streamContent strings.Builder `json:"-"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(sender Sender, content string) *Message {
	return &Message{
		ID:        generateID(),
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(SenderUser, content)
}

// NewChatbotMessage creates a new chatbot message with final content.
func NewChatbotMessage(content string) *Message {
	return NewMessage(SenderChatbot, content)
}

// NewPlaceholderMessage creates the transient chatbot message that receives
// stream chunks. Its ID is the stable handle used to locate it later.
func NewPlaceholderMessage() *Message {
	return &Message{
		ID:          generateID(),
		Sender:      SenderChatbot,
		Timestamp:   time.Now(),
		IsStreaming: true,
	}
}

// NewWelcomeMessage creates the synthetic greeting for an empty session.
func NewWelcomeMessage() *Message {
	return NewChatbotMessage(WelcomeText)
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// AppendChunk appends a decoded stream increment to a streaming message.
// No-op on finalized messages.
func (m *Message) AppendChunk(text string) {
	if m.IsStreaming {
		m.streamContent.WriteString(text)
	}
}

// FinalizeStream completes streaming, promoting the accumulated content to
// the message's final content.
func (m *Message) FinalizeStream() {
	if !m.IsStreaming {
		return
	}
	m.Content = m.streamContent.String()
	m.streamContent.Reset()
	m.IsStreaming = false
}

// FailStream completes streaming with the fixed error text, discarding any
// partial content.
func (m *Message) FailStream() {
	if !m.IsStreaming {
		return
	}
	m.streamContent.Reset()
	m.Content = ErrorResponseText
	m.IsStreaming = false
}

// DisplayContent returns the content to display (streaming or final).
func (m *Message) DisplayContent() string {
	if m.IsStreaming {
		return m.streamContent.String()
	}
	return m.Content
}

// IsEmpty returns true if the message has no content.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0 && m.streamContent.Len() == 0
}

// Preview returns a truncated single-line preview of the message content.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	content := strings.ReplaceAll(m.DisplayContent(), "\n", " ")
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
