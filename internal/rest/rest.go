// Package rest provides the shared HTTP plumbing used by all remote
// sources: a client with a fixed timeout and a single-attempt GET.
package rest

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every remote call. There are no retries; a
// timeout is treated the same as any other unavailable-data condition.
const DefaultTimeout = 10 * time.Second

// NewClient returns an HTTP client with the given timeout, or
// DefaultTimeout when d is zero. One client is constructed per run and
// passed by reference into each source.
func NewClient(d time.Duration) *http.Client {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &http.Client{Timeout: d}
}

// Get performs a single GET and returns the response body. A non-2xx
// status is a failure; the body is drained either way.
func Get(client *http.Client, url string) ([]byte, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
