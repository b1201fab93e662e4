// Package gateway implements the remote commerce API client. The gateway is
// the source of truth for prices, discounts, stock, and order state; this
// client never computes any of them.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/shophub/internal/domain/session"
)

// StatusError is returned for any non-success gateway response. The
// operation is treated as not applied; there is no automatic retry.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned %d: %s", e.Status, e.Body)
}

// Client talks to the remote commerce gateway over HTTP/JSON with a bearer
// credential on every authenticated call.
type Client struct {
	base   *url.URL
	http   *http.Client
	tokens session.TokenSource
}

// New creates a Client for the gateway at baseURL. The supplied http.Client
// carries the outbound middleware chain (auth, request ids, tracing).
func New(baseURL string, hc *http.Client, tokens session.TokenSource) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse gateway url")
	}
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: base, http: hc, tokens: tokens}, nil
}

// Ping checks gateway reachability. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/products/", false, nil, nil)
}

// do performs one gateway round trip. A nil out discards the response body;
// a nil body sends no payload. Authenticated calls attach the bearer header
// from the token source. headers are extra key/value pairs.
func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any, headers ...string) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, payload)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.tokens.Token())
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "gateway request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Status: resp.StatusCode, Body: readErrorBody(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}

// readErrorBody captures a bounded amount of an error response for logging
// and rejection-reason extraction.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(data))
}

// errorReason extracts the gateway's {"error": "..."} rejection message
// from a StatusError body, or "" when the body carries none.
func errorReason(e *StatusError) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &body); err != nil {
		return ""
	}
	return body.Error
}
