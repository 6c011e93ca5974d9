// Package upstream is the outbound HTTP client shared by the store and
// chat-completion adapters.
//
// Every call is attempted exactly once. A call either yields a 2xx *Response
// or an error; non-2xx answers are returned as *StatusError carrying the
// upstream status and body verbatim so callers can forward them.
//
// The transport is wrapped with otelhttp so outbound calls become child spans
// of the inbound request, and each call is counted in Prometheus under the
// client's name.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodyBytes caps how much of an upstream response is read into memory.
const maxBodyBytes = 4 << 20

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Status int
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, truncate(string(e.Body), 256))
}

// Request describes one outbound call.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Header http.Header
	// Body is JSON-encoded when non-nil.
	Body any
	// Timeout bounds the whole call; zero uses the client default.
	Timeout time.Duration
}

// Response is a buffered 2xx upstream response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode upstream body: %w", err)
	}
	return nil
}

// Client issues JSON requests against one upstream.
type Client struct {
	name    string
	http    *http.Client
	timeout time.Duration
}

// New returns a Client labelled name (used in metrics) with a default
// per-call timeout.
func New(name string, timeout time.Duration) *Client {
	return &Client{
		name:    name,
		timeout: timeout,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Do performs req once.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", c.name, err)
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for k, vs := range req.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal body: %w", c.name, err)
		}
		body = bytes.NewReader(b)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	hreq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", c.name, err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	if req.Body != nil && hreq.Header.Get("Content-Type") == "" {
		hreq.Header.Set("Content-Type", "application/json")
	}
	if hreq.Header.Get("Accept") == "" {
		hreq.Header.Set("Accept", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(hreq)
	if err != nil {
		observe(c.name, method, outcomeTransportError, start)
		return nil, fmt.Errorf("%s: %s request failed: %w", c.name, method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		observe(c.name, method, outcomeTransportError, start)
		return nil, fmt.Errorf("%s: read body: %w", c.name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		observe(c.name, method, outcomeStatusError, start)
		return nil, &StatusError{Status: resp.StatusCode, Body: raw}
	}
	observe(c.name, method, outcomeOK, start)
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: raw}, nil
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
