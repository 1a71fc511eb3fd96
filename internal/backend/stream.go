// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the document-chat service.
package backend

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// STREAMING CHAT COMPLETION
// =============================================================================

// StreamCallback is called for each chunk received during streaming.
type StreamCallback func(chunk Chunk)

// ChatCompletionStream asks a question via GET /chat_completion/ and calls
// the callback for each decoded text increment as it arrives.
// The callback is called synchronously in the order chunks are received.
// Returns when the stream is exhausted or an error occurs; cancellation is
// driven entirely through the context.
func (c *Client) ChatCompletionStream(ctx context.Context, sessionID, question string, callback StreamCallback) error {
	query := url.Values{}
	query.Set("session_id", sessionID)
	query.Set("question", question)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/chat_completion/?"+query.Encode(), nil)
	if err != nil {
		return &ClientError{Kind: ErrKindConnection, Message: "failed to create request", Cause: err}
	}

	// No client timeout for streaming; the context governs the lifetime.
	streamClient := &http.Client{}

	resp, err := streamClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverErrorFromResponse("completion request failed", resp)
	}

	reader := NewStreamReader(resp.Body)
	return reader.Process(ctx, callback)
}

// ChatCompletionStreamChan asks a question and returns a channel of chunks.
// The channel is closed when streaming is complete or an error occurs.
// Errors are delivered as chunks with the Err field set.
func (c *Client) ChatCompletionStreamChan(ctx context.Context, sessionID, question string) <-chan Chunk {
	ch := make(chan Chunk)

	go func() {
		defer close(ch)

		err := c.ChatCompletionStream(ctx, sessionID, question, func(chunk Chunk) {
			select {
			case ch <- chunk:
			case <-ctx.Done():
			}
		})

		if err != nil {
			select {
			case ch <- Chunk{Err: err, Done: true}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}

// =============================================================================
// STREAM READER
// =============================================================================

// streamReadSize is the read buffer size for streamed completion bodies.
// The backend flushes small plain-text increments, so a modest buffer keeps
// latency low without per-byte reads.
const streamReadSize = 4096

// StreamReader incrementally decodes a chunked plain-text response body.
//
// The backend streams raw UTF-8 text with no framing, so a multi-byte
// sequence can be split across two reads. The reader holds back trailing
// incomplete bytes until the rest arrives, guaranteeing every chunk handed
// to the callback is valid UTF-8.
type StreamReader struct {
	reader io.Reader
	buf    []byte

	// carry holds trailing bytes of an incomplete UTF-8 sequence.
	carry []byte

	// accumulator collects everything decoded so far.
	accumulator strings.Builder
	chunkCount  int
}

// NewStreamReader creates a new stream reader from an io.Reader.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{
		reader: r,
		buf:    make([]byte, streamReadSize),
	}
}

// Process reads the stream and calls the callback for each text increment,
// followed by a final chunk with Done set. Blocks until the stream is
// exhausted or the context is cancelled.
func (s *StreamReader) Process(ctx context.Context, callback StreamCallback) error {
	for {
		select {
		case <-ctx.Done():
			return classifyTransportError(ctx.Err())
		default:
		}

		n, err := s.reader.Read(s.buf)
		if n > 0 {
			text := s.decode(s.buf[:n])
			if text != "" {
				s.accumulator.WriteString(text)
				s.chunkCount++
				callback(Chunk{Text: text})
			}
		}
		if err != nil {
			if err == io.EOF {
				// Flush any dangling carry bytes as-is; a truncated
				// sequence at stream end is the backend's doing.
				if len(s.carry) > 0 {
					tail := string(s.carry)
					s.carry = nil
					s.accumulator.WriteString(tail)
					callback(Chunk{Text: tail})
				}
				callback(Chunk{Done: true})
				return nil
			}
			return classifyTransportError(err)
		}
	}
}

// decode returns the complete UTF-8 prefix of carry+data, retaining any
// trailing partial sequence for the next read.
func (s *StreamReader) decode(data []byte) string {
	joined := data
	if len(s.carry) > 0 {
		joined = append(s.carry, data...)
		s.carry = nil
	}

	complete, rest := splitCompleteUTF8(joined)
	if len(rest) > 0 {
		s.carry = append([]byte(nil), rest...)
	}
	return string(complete)
}

// splitCompleteUTF8 splits b into its longest prefix of complete UTF-8
// sequences and a (possibly empty) trailing partial sequence.
func splitCompleteUTF8(b []byte) (complete, rest []byte) {
	if len(b) == 0 {
		return b, nil
	}

	// Walk back at most utf8.UTFMax-1 bytes to find the start of the
	// final rune.
	start := len(b) - 1
	for start > 0 && len(b)-start < utf8.UTFMax && !utf8.RuneStart(b[start]) {
		start--
	}

	if utf8.FullRune(b[start:]) {
		return b, nil
	}
	return b[:start], b[start:]
}

// Accumulated returns all content decoded so far.
func (s *StreamReader) Accumulated() string {
	return s.accumulator.String()
}

// ChunkCount returns the number of non-empty text chunks delivered.
func (s *StreamReader) ChunkCount() int {
	return s.chunkCount
}

// =============================================================================
// STREAM ACCUMULATOR
// =============================================================================

// StreamAccumulator collects streaming chunks into a final answer.
// Useful for plain-mode callers that render only the complete response.
type StreamAccumulator struct {
	content strings.Builder
	done    bool
	err     error
}

// NewStreamAccumulator creates a new accumulator.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{}
}

// Add processes a new chunk.
func (a *StreamAccumulator) Add(chunk Chunk) {
	if chunk.Err != nil {
		a.err = chunk.Err
		a.done = true
		return
	}

	a.content.WriteString(chunk.Text)

	if chunk.Done {
		a.done = true
	}
}

// Content returns the accumulated content.
func (a *StreamAccumulator) Content() string {
	return a.content.String()
}

// IsDone returns whether streaming is complete.
func (a *StreamAccumulator) IsDone() bool {
	return a.done
}

// Err returns any error that occurred during streaming.
func (a *StreamAccumulator) Err() error {
	return a.err
}
