// ABOUTME: HTTP fetcher for feed documents with timeout and response size limits
// ABOUTME: Returns raw document bytes; callers parse with internal/parse

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxResponseSize caps feed documents at 10MB.
const MaxResponseSize = 10 * 1024 * 1024

const defaultUserAgent = "quill/1.0 (terminal feed reader)"

// Client fetches remote documents over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a fetch client with the given request timeout.
// A zero timeout falls back to 30 seconds.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  defaultUserAgent,
	}
}

// Fetch retrieves a URL and returns the response body.
// Returns an error for non-200 status codes or oversized responses.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response too large (exceeds %d bytes)", MaxResponseSize)
	}

	return body, nil
}
