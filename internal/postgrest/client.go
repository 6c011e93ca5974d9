// Package postgrest is the store adapter for the hosted row store. It speaks
// the PostgREST dialect for table access (/rest/v1/<table>) and the identity
// endpoint (/auth/v1/user) of the same project.
//
// Every request carries the project API key in the "apikey" header. The
// Authorization header is the caller's bearer token forwarded verbatim so the
// store can apply row-level policies; anonymous calls use the API key as the
// bearer instead. The adapter never inspects or validates tokens.
package postgrest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/swasth-ai/wellness-backend/internal/config"
	"github.com/swasth-ai/wellness-backend/internal/upstream"
)

// Client is bound to one project URL and API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *upstream.Client
}

// New returns a Client for the project described by cfg.
func New(cfg config.StoreConfig, hc *upstream.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		http:    hc,
	}
}

// headers builds the auth headers for one call. auth is the raw
// Authorization header value received from the caller, or "".
func (c *Client) headers(auth string) http.Header {
	h := http.Header{}
	h.Set("apikey", c.apiKey)
	if strings.TrimSpace(auth) != "" {
		h.Set("Authorization", auth)
	} else {
		h.Set("Authorization", "Bearer "+c.apiKey)
	}
	return h
}

func (c *Client) tableURL(table string) string {
	return c.baseURL + "/rest/v1/" + url.PathEscape(table)
}

// Insert adds row to table. With returnMinimal the store is asked not to
// echo the inserted row back.
func (c *Client) Insert(ctx context.Context, auth, table string, row any, returnMinimal bool) error {
	h := c.headers(auth)
	if returnMinimal {
		h.Set("Prefer", "return=minimal")
	}
	_, err := c.http.Do(ctx, upstream.Request{
		Method: http.MethodPost,
		URL:    c.tableURL(table),
		Header: h,
		Body:   row,
	})
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// Query is a filtered, ordered, limited read on one table. Build it with
// From and the chaining methods, then call Execute or Count.
type Query struct {
	c      *Client
	table  string
	params url.Values
}

// From starts a query on table.
func (c *Client) From(table string) *Query {
	return &Query{c: c, table: table, params: url.Values{}}
}

// Select restricts the returned columns. No columns means "*".
func (q *Query) Select(cols ...string) *Query {
	if len(cols) == 0 {
		q.params.Set("select", "*")
		return q
	}
	q.params.Set("select", strings.Join(cols, ","))
	return q
}

// Eq adds an exact-match filter.
func (q *Query) Eq(col, val string) *Query {
	q.params.Add(col, "eq."+val)
	return q
}

// Order sorts by col, descending when desc is set.
func (q *Query) Order(col string, desc bool) *Query {
	dir := "asc"
	if desc {
		dir = "desc"
	}
	q.params.Set("order", col+"."+dir)
	return q
}

// Limit caps the number of returned rows.
func (q *Query) Limit(n int) *Query {
	if n > 0 {
		q.params.Set("limit", strconv.Itoa(n))
	}
	return q
}

// Execute runs the query and decodes the JSON row array into out.
func (q *Query) Execute(ctx context.Context, auth string, out any) error {
	resp, err := q.c.http.Do(ctx, upstream.Request{
		Method: http.MethodGet,
		URL:    q.c.tableURL(q.table),
		Query:  q.params,
		Header: q.c.headers(auth),
	})
	if err != nil {
		return fmt.Errorf("select from %s: %w", q.table, err)
	}
	if err := resp.Decode(out); err != nil {
		return fmt.Errorf("select from %s: %w", q.table, err)
	}
	return nil
}

// Count returns the exact number of rows matching the query's filters
// without transferring them.
func (q *Query) Count(ctx context.Context, auth string) (int, error) {
	params := url.Values{}
	for k, vs := range q.params {
		if k == "order" || k == "limit" {
			continue
		}
		params[k] = vs
	}
	if params.Get("select") == "" {
		params.Set("select", "*")
	}

	h := q.c.headers(auth)
	h.Set("Prefer", "count=exact")
	resp, err := q.c.http.Do(ctx, upstream.Request{
		Method: http.MethodHead,
		URL:    q.c.tableURL(q.table),
		Query:  params,
		Header: h,
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", q.table, err)
	}
	n, err := parseContentRange(resp.Header.Get("Content-Range"))
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", q.table, err)
	}
	return n, nil
}

// parseContentRange extracts the total from "a-b/N" or "*/N".
func parseContentRange(v string) (int, error) {
	i := strings.LastIndexByte(v, '/')
	if i < 0 || i == len(v)-1 {
		return 0, errors.New("missing Content-Range total")
	}
	total := v[i+1:]
	if total == "*" {
		return 0, errors.New("store did not report an exact count")
	}
	n, err := strconv.Atoi(total)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid Content-Range total %q", total)
	}
	return n, nil
}
