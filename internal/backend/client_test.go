// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(url string) *Client {
	return NewClientWithConfig(&ClientConfig{
		BaseURL:    url,
		Timeout:    2 * time.Second,
		MaxRetries: 2,
		RetryDelay: 10 * time.Millisecond,
	})
}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/upload/" {
			t.Errorf("expected /upload/, got %s", r.URL.Path)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing multipart form: %v", err)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing form field 'file': %v", err)
		}
		defer file.Close()
		if header.Filename != "report.pdf" {
			t.Errorf("expected filename report.pdf, got %s", header.Filename)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"file_id": "abc123"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	id, err := client.Upload(context.Background(), "report.pdf", strings.NewReader("%PDF-1.4 fake"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if id != "abc123" {
		t.Errorf("expected file id abc123, got %s", id)
	}
}

func TestUploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "embedding model unavailable"}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Upload(context.Background(), "report.pdf", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !IsServer(err) {
		t.Errorf("expected server error, got %v", err)
	}
	if !strings.Contains(err.Error(), "embedding model unavailable") {
		t.Errorf("expected backend detail in error, got %v", err)
	}
}

func TestUploadMissingFileID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.Upload(context.Background(), "report.pdf", strings.NewReader("x"))
	if !IsServer(err) {
		t.Errorf("expected server error for missing file_id, got %v", err)
	}
}

func TestConnectionErrorClassification(t *testing.T) {
	// Point at a closed port.
	client := testClient("http://127.0.0.1:1")

	err := client.ActivateModel(context.Background(), "abc")
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestActivateModel(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/model_activation" {
			t.Errorf("expected /model_activation, got %s", r.URL.Path)
		}
		buf := make([]byte, 256)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testClient(server.URL)
	if err := client.ActivateModel(context.Background(), "sess-1"); err != nil {
		t.Fatalf("ActivateModel failed: %v", err)
	}
	if !strings.Contains(gotBody, `"session_id":"sess-1"`) {
		t.Errorf("unexpected activation body: %s", gotBody)
	}
}

func TestChatHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat_history" {
			t.Errorf("expected /chat_history, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("session_id"); got != "sess-1" {
			t.Errorf("expected session_id sess-1, got %s", got)
		}
		w.Write([]byte(`{"message": [
			{"content": "what is this about?", "type": "human"},
			{"content": "It is a report.", "type": "ai"}
		]}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	entries, err := client.ChatHistory(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ChatHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Type != HistoryTypeHuman || entries[1].Type != HistoryTypeAI {
		t.Errorf("unexpected entry types: %+v", entries)
	}
}

func TestChatHistoryRetriesConnectionFailures(t *testing.T) {
	attempts := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			// Force a connection-level failure by hijacking and closing.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("server does not support hijacking")
			}
			conn, _, _ := hj.Hijack()
			conn.Close()
			return
		}
		w.Write([]byte(`{"message": []}`))
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.ChatHistory(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestServerErrorsAreNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := testClient(server.URL)
	_, err := client.ListFiles(context.Background())
	if !IsServer(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected exactly 1 attempt for a server error, got %d", attempts)
	}
}

func TestDeleteAndFlush(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		paths = append(paths, r.URL.Path+"?"+r.URL.RawQuery)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := testClient(server.URL)
	if err := client.Delete(context.Background(), "abc"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := client.Flush(context.Background()); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(paths))
	}
	if !strings.HasPrefix(paths[0], "/delete?file_id=abc") {
		t.Errorf("unexpected delete path: %s", paths[0])
	}
	if !strings.HasPrefix(paths[1], "/flush") {
		t.Errorf("unexpected flush path: %s", paths[1])
	}
}

func TestErrorKindHelpers(t *testing.T) {
	cases := []struct {
		err  error
		kind ErrorKind
	}{
		{ErrConnection, ErrKindConnection},
		{ErrTimeout, ErrKindTimeout},
		{ErrFileTooLarge, ErrKindFileTooLarge},
		{ErrCanceled, ErrKindCanceled},
		{&ClientError{Kind: ErrKindServer, Message: "boom"}, ErrKindServer},
	}
	for _, tc := range cases {
		if KindOf(tc.err) != tc.kind {
			t.Errorf("KindOf(%v) = %v, want %v", tc.err, KindOf(tc.err), tc.kind)
		}
	}

	if !IsTimeout(ErrTimeout) || IsTimeout(ErrConnection) {
		t.Error("IsTimeout misclassified")
	}
	if !IsFileTooLarge(ErrFileTooLarge) || IsFileTooLarge(ErrTimeout) {
		t.Error("IsFileTooLarge misclassified")
	}
	if !IsCanceled(ErrCanceled) || IsCanceled(ErrTimeout) {
		t.Error("IsCanceled misclassified")
	}
}

func TestDeadlineExpiryIsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Stall until the client gives up.
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.ChatHistory(ctx, "sess-1")
	if !IsTimeout(err) {
		t.Errorf("expected timeout classification for deadline expiry, got %v", err)
	}
	if IsCanceled(err) {
		t.Error("deadline expiry must not present as a cancellation")
	}
}

func TestCanceledRequestIsNotTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer server.Close()

	client := testClient(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ChatHistory(ctx, "sess-1")
	if !IsCanceled(err) {
		t.Errorf("expected canceled classification, got %v", err)
	}
	if IsTimeout(err) {
		t.Error("a deliberate cancel must not present as a timeout")
	}
}
