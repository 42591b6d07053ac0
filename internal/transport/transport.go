// Package transport issues the single HTTP POST a translation needs. It has
// no knowledge of any provider beyond the request it is handed.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/J-DubApps/get-chat-cmd/internal/provider"
)

const defaultTimeout = 60 * time.Second

// Doer issues a single HTTP request. Satisfied by *http.Client; tests inject
// their own.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Response is the raw outcome of a successful provider call.
type Response struct {
	Status int
	Body   []byte
}

// StatusError is a completed HTTP exchange that came back outside 2xx. It
// carries the status and raw body for diagnostics.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Body)
}

// Client sends provider requests over a pluggable HTTP backend.
type Client struct {
	doer Doer
}

// New creates a Client backed by a default http.Client.
func New() *Client {
	return &Client{doer: &http.Client{Timeout: defaultTimeout}}
}

// NewWithDoer creates a Client backed by the given Doer.
func NewWithDoer(d Doer) *Client {
	return &Client{doer: d}
}

// Send issues exactly one POST for the request. No retries. Any status in
// [200,300) succeeds; anything else is a *StatusError.
func (c *Client) Send(ctx context.Context, req *provider.Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, bytes.NewReader(req.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for _, h := range req.Headers {
		httpReq.Header.Set(h.Key, h.Value)
	}
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(body)}
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}
