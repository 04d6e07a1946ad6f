// Package httpclient is the outbound JSON transport shared by the provider
// adapters.
package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/samirrijal/wayfinder/internal/pkg/metrics"
)

// maxBody caps how much of a provider response is read.
const maxBody = 8 << 20

// StatusError is returned for non-2xx responses. Body holds the raw payload
// so adapters can decode provider specific error documents.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	snippet := string(e.Body)
	if len(snippet) > 200 {
		snippet = snippet[:200] + "..."
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, snippet)
}

// Client performs JSON requests against one provider.
type Client struct {
	provider string
	http     *http.Client
}

// New returns a client labelled provider in metrics, with the given timeout.
func New(provider string, timeout time.Duration) *Client {
	return &Client{
		provider: provider,
		http:     &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the underlying client. Used in tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Provider returns the metrics label of the client.
func (c *Client) Provider() string { return c.provider }

// DoJSON sends req and decodes a 2xx JSON body into out. Non-2xx responses
// return a *StatusError.
func (c *Client) DoJSON(req *http.Request, out any) error {
	start := time.Now()
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveUpstream(c.provider, "transport_error", start)
		return fmt.Errorf("%s request: %w", c.provider, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		metrics.ObserveUpstream(c.provider, "transport_error", start)
		return fmt.Errorf("%s read body: %w", c.provider, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveUpstream(c.provider, "status_"+strconv.Itoa(resp.StatusCode), start)
		return &StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.ObserveUpstream(c.provider, "decode_error", start)
		return fmt.Errorf("%s decode: %w", c.provider, err)
	}

	metrics.ObserveUpstream(c.provider, "ok", start)
	return nil
}
