// Package nsqhttp is the thin JSON-over-HTTP client every other package
// uses to talk to a lookup node or broker: GET for discovery and stats
// polling, POST for publishing. It never retries — callers decide that —
// and every failure comes back pre-classified as a *nsqerr.Error.
package nsqhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cuemby/nsqops/pkg/nsqerr"
)

// Client wraps a pooled *http.Client with the defaults this toolkit needs:
// a bounded per-request timeout, a pooled transport, and no cookie jar.
type Client struct {
	http *http.Client
}

// New returns a Client whose requests time out after timeout. A zero
// timeout falls back to 30 seconds.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        64,
				MaxIdleConnsPerHost: 8,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// GetJSON issues a GET to url and decodes the JSON body into out. host is
// carried only for error classification, not for the request itself.
func (c *Client) GetJSON(ctx context.Context, host, url string, out any) error {
	body, err := c.do(ctx, host, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return nsqerr.ForHost(nsqerr.KindDecode, host, fmt.Errorf("decode %s: %w", url, err))
	}
	return nil
}

// GetBytes issues a GET and returns the raw response body, for callers
// that need to attempt more than one decode shape against it.
func (c *Client) GetBytes(ctx context.Context, host, url string) ([]byte, error) {
	body, err := c.do(ctx, host, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, nsqerr.ForHost(nsqerr.KindTransport, host, fmt.Errorf("read body of %s: %w", url, err))
	}
	return data, nil
}

// PostJSON issues a POST with body as the raw request payload. The
// response body is discarded once the status is confirmed 2xx.
func (c *Client) PostJSON(ctx context.Context, host, url string, body io.Reader) error {
	respBody, err := c.do(ctx, host, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	defer respBody.Close()
	_, _ = io.Copy(io.Discard, respBody)
	return nil
}

func (c *Client) do(ctx context.Context, host, method, url string, body io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, nsqerr.ForHost(nsqerr.KindTransport, host, fmt.Errorf("build request: %w", err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nsqerr.ForHost(nsqerr.KindTransport, host, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, nsqerr.ForHost(nsqerr.KindHTTPError, host,
			fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, string(msg)))
	}

	return resp.Body, nil
}
