package textgen

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds a single request when no timeout is configured.
// The upstream service imposes none of its own.
const DefaultTimeout = 12 * time.Second

// maxResponseBytes caps how much of a response we read. The service returns
// short completions; anything larger is noise.
const maxResponseBytes = 1 << 20

// PollinationsClient calls a text-generation endpoint that takes the prompt
// URL-encoded in the request path and answers with plain text.
type PollinationsClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPollinationsClient creates a client for the given base URL.
func NewPollinationsClient(cfg Config) *PollinationsClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &PollinationsClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Generate sends the prompt as a GET request and returns the response body.
// Cancelling ctx aborts the in-flight request.
func (c *PollinationsClient) Generate(ctx context.Context, prompt string) (string, error) {
	requestURL := c.baseURL + "/" + url.PathEscape(prompt)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("text generation request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read text generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("text generation service returned HTTP %d", resp.StatusCode)
	}

	return string(body), nil
}

// Close implements Client. The underlying http.Client needs no teardown.
func (c *PollinationsClient) Close() error {
	return nil
}
