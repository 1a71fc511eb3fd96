// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// chunkedReader delivers its parts one Read call at a time, mimicking a
// chunked response body.
type chunkedReader struct {
	parts [][]byte
	pos   int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.parts) {
		return 0, io.EOF
	}
	n := copy(p, r.parts[r.pos])
	r.pos++
	return n, nil
}

func TestStreamReaderAssemblesChunks(t *testing.T) {
	reader := NewStreamReader(&chunkedReader{parts: [][]byte{
		[]byte("Hel"), []byte("lo, "), []byte("world"),
	}})

	var texts []string
	var done bool
	err := reader.Process(context.Background(), func(chunk Chunk) {
		if chunk.Done {
			done = true
			return
		}
		texts = append(texts, chunk.Text)
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	if !done {
		t.Error("expected a final Done chunk")
	}
	if got := strings.Join(texts, ""); got != "Hello, world" {
		t.Errorf("expected 'Hello, world', got %q", got)
	}
	if reader.Accumulated() != "Hello, world" {
		t.Errorf("accumulator mismatch: %q", reader.Accumulated())
	}
	if reader.ChunkCount() != 3 {
		t.Errorf("expected 3 chunks, got %d", reader.ChunkCount())
	}
}

func TestStreamReaderHoldsPartialUTF8(t *testing.T) {
	// "héllo" with the two-byte é split across reads.
	full := []byte("héllo")
	reader := NewStreamReader(&chunkedReader{parts: [][]byte{
		full[:2], // "h" + first byte of é
		full[2:],
	}})

	var texts []string
	err := reader.Process(context.Background(), func(chunk Chunk) {
		if !chunk.Done {
			texts = append(texts, chunk.Text)
		}
	})
	if err != nil {
		t.Fatalf("Process failed: %v", err)
	}

	for _, text := range texts {
		for _, r := range text {
			if r == '�' {
				t.Fatalf("chunk contains replacement character: %q", text)
			}
		}
	}
	if got := strings.Join(texts, ""); got != "héllo" {
		t.Errorf("expected %q, got %q", "héllo", got)
	}
}

func TestStreamReaderContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader := NewStreamReader(strings.NewReader("never delivered"))
	err := reader.Process(ctx, func(Chunk) {})
	if !IsCanceled(err) {
		t.Errorf("expected canceled classification for cancelled context, got %v", err)
	}
	if IsTimeout(err) {
		t.Error("a deliberate cancel must not present as a timeout")
	}
}

func TestChatCompletionStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat_completion/" {
			t.Errorf("expected /chat_completion/, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("session_id") != "sess-1" || q.Get("question") != "what?" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}

		flusher := w.(http.Flusher)
		for _, part := range []string{"The answer", " is", " 42."} {
			w.Write([]byte(part))
			flusher.Flush()
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	accumulator := NewStreamAccumulator()
	err := client.ChatCompletionStream(context.Background(), "sess-1", "what?", accumulator.Add)
	if err != nil {
		t.Fatalf("stream failed: %v", err)
	}

	if !accumulator.IsDone() {
		t.Error("expected accumulator to be done")
	}
	if accumulator.Content() != "The answer is 42." {
		t.Errorf("unexpected content: %q", accumulator.Content())
	}
}

func TestChatCompletionStreamChanDeliversError(t *testing.T) {
	client := testClient("http://127.0.0.1:1")

	ch := client.ChatCompletionStreamChan(context.Background(), "sess-1", "q")
	var last Chunk
	for chunk := range ch {
		last = chunk
	}
	if last.Err == nil {
		t.Fatal("expected error chunk from unreachable backend")
	}
	if !IsConnection(last.Err) {
		t.Errorf("expected connection error, got %v", last.Err)
	}
}

func TestSplitCompleteUTF8(t *testing.T) {
	complete, rest := splitCompleteUTF8([]byte("abc"))
	if string(complete) != "abc" || len(rest) != 0 {
		t.Errorf("ascii should pass through whole")
	}

	full := []byte("é")
	complete, rest = splitCompleteUTF8(full[:1])
	if len(complete) != 0 || len(rest) != 1 {
		t.Errorf("lone continuation prefix should be held back")
	}
}
