// Package apiclient talks to the store's REST backend. Every call is a single
// attempt; there is no retry or backoff.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storedash/internal/metrics"
)

type tokenKey struct{}

// WithToken attaches the owner bearer token to calls made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey{}).(string)
	return s
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets a client-wide timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// List GETs path and decodes the JSON array (or object) into out.
func (c *Client) List(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Create(ctx context.Context, path string, body Payload, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Update(ctx context.Context, path string, body Payload, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Patch sends query as URL parameters with an empty body.
func (c *Client) Patch(ctx context.Context, path string, query url.Values, out any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.do(ctx, http.MethodPatch, path, nil, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges owner credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var res loginResponse
	body := JSONBody{Fields: map[string]any{"email": email, "password": password}}
	if err := c.do(ctx, http.MethodPost, "/owner-auth/login", body, &res); err != nil {
		return "", err
	}
	if res.Token == "" {
		return "", &APIError{Status: http.StatusOK, Detail: "login response carried no token"}
	}
	return res.Token, nil
}

func (c *Client) do(ctx context.Context, method, path string, body Payload, out any) error {
	var (
		rdr         io.Reader
		contentType string
	)
	if body != nil {
		r, ct, err := body.Encode()
		if err != nil {
			return err
		}
		rdr, contentType = r, ct
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resource := resourceOf(path)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APILatency.WithLabelValues(resource, method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequests.WithLabelValues(resource, method, "error").Inc()
		return fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()
	metrics.APIRequests.WithLabelValues(resource, method, strconv.Itoa(resp.StatusCode)).Inc()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Detail: parseDetail(raw)}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// resourceOf keeps metric label cardinality bounded: "/products/products/42"
// is labelled "products".
func resourceOf(path string) string {
	p := strings.TrimLeft(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
}
