// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the document-chat service.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes client errors for handling and user notification.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindConnection
	ErrKindServer
	ErrKindTimeout
	ErrKindFileTooLarge
	ErrKindCanceled
)

// ClientError represents an error from the document-chat client.
type ClientError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// Sentinel errors for easy checking.
var (
	ErrConnection   = &ClientError{Kind: ErrKindConnection, Message: "backend is unreachable"}
	ErrTimeout      = &ClientError{Kind: ErrKindTimeout, Message: "request timed out"}
	ErrFileTooLarge = &ClientError{Kind: ErrKindFileTooLarge, Message: "file exceeds the upload size limit"}
	ErrCanceled     = &ClientError{Kind: ErrKindCanceled, Message: "request canceled"}
)

// IsConnection checks if an error indicates the backend is unreachable.
func IsConnection(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == ErrKindConnection
	}
	return errors.Is(err, ErrConnection)
}

// IsServer checks if an error is a server-side failure (non-2xx or malformed body).
func IsServer(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == ErrKindServer
	}
	return false
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == ErrKindTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// IsFileTooLarge checks if an error is the client-side size pre-check failure.
func IsFileTooLarge(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == ErrKindFileTooLarge
	}
	return errors.Is(err, ErrFileTooLarge)
}

// IsCanceled checks if an error is a caller-initiated cancellation. These
// are deliberate (Ctrl+C, session switch) and are never shown to the user.
func IsCanceled(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind == ErrKindCanceled
	}
	return errors.Is(err, ErrCanceled)
}

// KindOf returns the error kind for any error returned by this package.
func KindOf(err error) ErrorKind {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Kind
	}
	return ErrKindUnknown
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the document-chat client.
type ClientConfig struct {
	// BaseURL is the backend base URL (default: http://127.0.0.1:8000)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// UploadTimeout for document uploads, which can be slow on large
	// files and cold backends (default: 60s)
	UploadTimeout time.Duration

	// MaxRetries for idempotent GETs (default: 3)
	MaxRetries int

	// RetryDelay is the base delay between retries; each attempt doubles
	// it (default: 500ms)
	RetryDelay time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:       "http://127.0.0.1:8000",
		Timeout:       30 * time.Second,
		UploadTimeout: 60 * time.Second,
		MaxRetries:    3,
		RetryDelay:    500 * time.Millisecond,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the document-chat backend.
// It provides methods for uploads, session activation, history retrieval,
// streamed completions, and deletion.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := backend.NewClient()
//	id, err := client.Upload(ctx, "report.pdf", file)
//	if err != nil {
//	    log.Fatal("upload failed:", err)
//	}
type Client struct {
	config     *ClientConfig
	httpClient *http.Client

	// retryLimiter paces retries of idempotent GETs so a flapping
	// backend is not hammered by overlapping retry loops.
	retryLimiter *rate.Limiter
}

// NewClient creates a new document-chat client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new document-chat client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UploadTimeout == 0 {
		config.UploadTimeout = 60 * time.Second
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 500 * time.Millisecond
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		retryLimiter: rate.NewLimiter(rate.Every(config.RetryDelay), config.MaxRetries),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// UPLOAD
// =============================================================================

// Upload submits a document via multipart form to POST /upload/ and returns
// the backend-assigned file id, which doubles as the session id.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", &ClientError{Kind: ErrKindUnknown, Message: "failed to build multipart body", Cause: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", &ClientError{Kind: ErrKindUnknown, Message: "failed to read file", Cause: err}
	}
	if err := writer.Close(); err != nil {
		return "", &ClientError{Kind: ErrKindUnknown, Message: "failed to finalize multipart body", Cause: err}
	}

	// Uploads get their own deadline; large documents routinely exceed the
	// default request timeout.
	uploadCtx, cancel := context.WithTimeout(ctx, c.config.UploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(uploadCtx, http.MethodPost, c.config.BaseURL+"/upload/", &body)
	if err != nil {
		return "", &ClientError{Kind: ErrKindConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	uploadClient := &http.Client{Timeout: c.config.UploadTimeout}
	resp, err := uploadClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", serverErrorFromResponse("upload failed", resp)
	}

	var result UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &ClientError{Kind: ErrKindServer, Message: "failed to decode upload response", Cause: err}
	}
	if result.FileID == "" {
		return "", &ClientError{Kind: ErrKindServer, Message: "upload response missing file_id"}
	}

	return result.FileID, nil
}

// =============================================================================
// SESSION OPERATIONS
// =============================================================================

// ActivateModel activates a session for querying via POST /model_activation.
func (c *Client) ActivateModel(ctx context.Context, sessionID string) error {
	body, err := json.Marshal(ActivationRequest{SessionID: sessionID})
	if err != nil {
		return &ClientError{Kind: ErrKindUnknown, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/model_activation", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Kind: ErrKindConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverErrorFromResponse("model activation failed", resp)
	}

	return nil
}

// ChatHistory fetches prior conversation turns for a session via
// GET /chat_history. Being idempotent, the request is retried with bounded
// backoff on connection failures.
func (c *Client) ChatHistory(ctx context.Context, sessionID string) ([]HistoryEntry, error) {
	query := url.Values{}
	query.Set("session_id", sessionID)

	var result HistoryResponse
	err := c.getJSONWithRetry(ctx, "/chat_history?"+query.Encode(), &result)
	if err != nil {
		return nil, err
	}

	return result.Message, nil
}

// ListFiles fetches the backend-known file list via GET /get_files/.
// Retried with bounded backoff like other idempotent GETs.
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	var result FileListResponse
	err := c.getJSONWithRetry(ctx, "/get_files/", &result)
	if err != nil {
		return nil, err
	}

	return result.Message, nil
}

// Delete removes a session/file via DELETE /delete. Mutating calls are not
// retried; the caller decides whether to try again.
func (c *Client) Delete(ctx context.Context, fileID string) error {
	query := url.Values{}
	query.Set("file_id", fileID)

	return c.deleteRequest(ctx, "/delete?"+query.Encode(), "delete failed")
}

// Flush removes all sessions via DELETE /flush.
func (c *Client) Flush(ctx context.Context) error {
	return c.deleteRequest(ctx, "/flush", "flush failed")
}

func (c *Client) deleteRequest(ctx context.Context, path, failMessage string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Kind: ErrKindConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverErrorFromResponse(failMessage, resp)
	}

	return nil
}

// =============================================================================
// RETRYING GET
// =============================================================================

// getJSONWithRetry performs a GET and decodes the JSON body into out.
// Connection failures are retried up to MaxRetries with doubling delay;
// server errors (non-2xx) and timeouts are returned immediately since
// retrying those rarely helps within one user interaction.
func (c *Client) getJSONWithRetry(ctx context.Context, path string, out interface{}) error {
	var lastErr error

	delay := c.config.RetryDelay
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := c.retryLimiter.Wait(ctx); err != nil {
				return classifyTransportError(err)
			}
			select {
			case <-ctx.Done():
				return classifyTransportError(ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}

		err := c.getJSON(ctx, path, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !IsConnection(err) {
			return err
		}
	}

	return lastErr
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return &ClientError{Kind: ErrKindConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return serverErrorFromResponse("request failed", resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ClientError{Kind: ErrKindServer, Message: "failed to decode response", Cause: err}
	}

	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// classifyTransportError maps a transport-level failure onto the error
// taxonomy: deadline expiry is a timeout, caller-initiated cancellation is
// its own kind (Ctrl+C and session switches cancel the context and must not
// look like a timed-out backend), everything else is a connection error.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return ErrCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	// net/http wraps the context error inside *url.Error.
	if strings.Contains(err.Error(), "context deadline exceeded") {
		return ErrTimeout
	}
	return &ClientError{Kind: ErrKindConnection, Message: "backend is unreachable", Cause: err}
}

// serverErrorFromResponse builds a server error, including the backend's
// detail message when one is present in the body.
func serverErrorFromResponse(message string, resp *http.Response) error {
	var detail serverError
	if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil && detail.Detail != "" {
		return &ClientError{Kind: ErrKindServer, Message: message + ": " + detail.Detail}
	}
	return &ClientError{Kind: ErrKindServer, Message: message + ": " + resp.Status}
}

// drainAndClose consumes the remainder of a response body so the
// underlying connection can be reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
