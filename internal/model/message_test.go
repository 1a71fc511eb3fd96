// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

func TestSenderDisplayName(t *testing.T) {
	if SenderUser.DisplayName() != "You" {
		t.Errorf("unexpected user display name: %s", SenderUser.DisplayName())
	}
	if SenderChatbot.DisplayName() != "Chatbot" {
		t.Errorf("unexpected chatbot display name: %s", SenderChatbot.DisplayName())
	}
}

func TestMessageIDsAreUnique(t *testing.T) {
	a := NewUserMessage("one")
	b := NewUserMessage("two")
	if a.ID == b.ID {
		t.Error("two messages share an ID")
	}
	if !strings.HasPrefix(a.ID, "msg_") {
		t.Errorf("unexpected ID format: %s", a.ID)
	}
}

func TestPlaceholderStreamLifecycle(t *testing.T) {
	msg := NewPlaceholderMessage()
	if !msg.IsStreaming {
		t.Fatal("placeholder should start streaming")
	}
	if msg.Sender != SenderChatbot {
		t.Errorf("placeholder should come from the chatbot, got %v", msg.Sender)
	}

	msg.AppendChunk("Hel")
	msg.AppendChunk("lo")
	if msg.DisplayContent() != "Hello" {
		t.Errorf("streaming display content = %q, want Hello", msg.DisplayContent())
	}

	msg.FinalizeStream()
	if msg.IsStreaming {
		t.Error("finalized message still marked streaming")
	}
	if msg.Content != "Hello" {
		t.Errorf("finalized content = %q, want Hello", msg.Content)
	}

	// Finalized messages ignore late chunks.
	msg.AppendChunk(" world")
	if msg.DisplayContent() != "Hello" {
		t.Errorf("late chunk applied after finalize: %q", msg.DisplayContent())
	}
}

func TestFailStreamDiscardsPartialContent(t *testing.T) {
	msg := NewPlaceholderMessage()
	msg.AppendChunk("partial answ")

	msg.FailStream()
	if msg.Content != ErrorResponseText {
		t.Errorf("failed message content = %q, want the error text", msg.Content)
	}
	if msg.IsStreaming {
		t.Error("failed message still marked streaming")
	}

	// FailStream on a finalized message is a no-op.
	done := NewChatbotMessage("fine answer")
	done.FailStream()
	if done.Content != "fine answer" {
		t.Errorf("FailStream clobbered a finalized message: %q", done.Content)
	}
}

func TestWelcomeMessage(t *testing.T) {
	msg := NewWelcomeMessage()
	if msg.Content != WelcomeText {
		t.Errorf("unexpected welcome content: %q", msg.Content)
	}
	if msg.Sender != SenderChatbot {
		t.Errorf("welcome should come from the chatbot, got %v", msg.Sender)
	}
}

func TestIsEmpty(t *testing.T) {
	if !NewChatbotMessage("").IsEmpty() {
		t.Error("blank message should be empty")
	}
	if NewChatbotMessage("x").IsEmpty() {
		t.Error("non-blank message should not be empty")
	}

	streaming := NewPlaceholderMessage()
	if !streaming.IsEmpty() {
		t.Error("fresh placeholder should be empty")
	}
	streaming.AppendChunk("x")
	if streaming.IsEmpty() {
		t.Error("placeholder with buffered content should not be empty")
	}
}

func TestPreview(t *testing.T) {
	msg := NewChatbotMessage("line one\nline two")
	if got := msg.Preview(100); got != "line one line two" {
		t.Errorf("Preview should flatten newlines, got %q", got)
	}

	long := NewChatbotMessage(strings.Repeat("a", 50))
	if got := long.Preview(10); got != "aaaaaaa..." {
		t.Errorf("Preview(10) = %q", got)
	}

	unicode := NewChatbotMessage("héllo wörld, this runs long")
	if got := unicode.Preview(8); len([]rune(got)) != 8 {
		t.Errorf("Preview should truncate by runes, got %q (%d runes)", got, len([]rune(got)))
	}
}
