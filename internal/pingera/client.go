// Package pingera is a typed HTTP client for the Pingera monitoring API.
package pingera

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Pingera API endpoint.
	DefaultBaseURL = "https://api.pingera.ru"
	// DefaultTimeout bounds a single API call, retries included.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries applies to idempotent requests only.
	DefaultMaxRetries = 3

	maxResponseBody = 10 << 20
)

// Observer receives one call per HTTP exchange. Status is 0 when no
// response was received.
type Observer interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// Options configure a Client.
type Options struct {
	APIKey     string
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	UserAgent  string

	// RetryDelay and MaxRetryDelay bound the exponential backoff.
	RetryDelay    time.Duration
	MaxRetryDelay time.Duration

	// Transport is the underlying round tripper; nil uses a fresh
	// http.Transport.
	Transport http.RoundTripper
	Observer  Observer
	Logger    *slog.Logger
}

// Client talks to the Pingera API. It is safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	timeout   time.Duration
	plain     *http.Client
	retrying  *http.Client
	transport http.RoundTripper
	observer  Observer
	log       *slog.Logger
}

// New builds a Client from opts.
func New(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("pingera: api key is required")
	}
	base, err := normalizeBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Second
	}
	if opts.MaxRetryDelay < opts.RetryDelay {
		opts.MaxRetryDelay = 30 * opts.RetryDelay
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "pingera-mcp"
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Client{
		baseURL:   base,
		apiKey:    opts.APIKey,
		userAgent: opts.UserAgent,
		timeout:   opts.Timeout,
		plain:     &http.Client{Timeout: opts.Timeout, Transport: transport},
		retrying: &http.Client{
			Timeout:   opts.Timeout,
			Transport: newRetryTransport(transport, opts.MaxRetries, opts.RetryDelay, opts.MaxRetryDelay),
		},
		transport: transport,
		observer:  opts.Observer,
		log:       opts.Logger,
	}, nil
}

// BaseURL returns the API root the client sends requests to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections.
func (c *Client) Close() {
	if t, ok := c.transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
}

// normalizeBaseURL strips trailing slashes and a trailing /v1 segment; the
// endpoint paths carry the version.
func normalizeBaseURL(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		raw = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("pingera: invalid base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("pingera: base url must be http(s), got %q", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("pingera: base url %q has no host", raw)
	}
	path := strings.TrimRight(u.Path, "/")
	path = strings.TrimSuffix(path, "/v1")
	u.Path = path
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}

// request describes one API call. route is the path template used for
// metrics and logs; path is the concrete escaped path.
type request struct {
	method string
	route  string
	path   string
	query  url.Values
	body   any
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	var body io.Reader
	if r.body != nil {
		payload, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", r.route, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", r.method, r.route, err)
	}
	if len(r.query) > 0 {
		req.URL.RawQuery = r.query.Encode()
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.plain
	if idempotent(r.method) {
		hc = c.retrying
	}

	start := time.Now()
	resp, err := hc.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	elapsed := time.Since(start)
	if c.observer != nil {
		c.observer.ObserveRequest(r.method, r.route, status, elapsed)
	}
	c.log.Debug("pingera request",
		slog.String("method", r.method),
		slog.String("route", r.route),
		slog.Int("status", status),
		slog.Duration("elapsed", elapsed))
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("read %s response: %w", r.route, err)
	}
	if resp.StatusCode >= 400 {
		return parseAPIError(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", r.route, err)
	}
	return nil
}

func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return ctx.Err()
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w after %s", ErrTimeout, c.timeout)
	}
	return fmt.Errorf("%w: %v", ErrConnection, err)
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func (c *Client) get(ctx context.Context, route, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, route: route, path: path, query: query}, out)
}

func (c *Client) send(ctx context.Context, method, route, path string, body, out any) error {
	return c.do(ctx, request{method: method, route: route, path: path, body: body}, out)
}

// getOne decodes a single object, unwrapping a {"data": {...}} envelope.
func getOne[T any](ctx context.Context, c *Client, route, path string) (*T, error) {
	var raw json.RawMessage
	if err := c.get(ctx, route, path, nil, &raw); err != nil {
		return nil, err
	}
	return decodeOne[T](raw, route)
}

// sendOne is getOne for mutations.
func sendOne[T any](ctx context.Context, c *Client, method, route, path string, body any) (*T, error) {
	var raw json.RawMessage
	if err := c.send(ctx, method, route, path, body, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return new(T), nil
	}
	return decodeOne[T](raw, route)
}

func decodeOne[T any](raw json.RawMessage, route string) (*T, error) {
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}
	if json.Unmarshal(raw, &wrapped) == nil && len(wrapped.Data) > 0 && wrapped.Data[0] == '{' {
		raw = wrapped.Data
	}
	out := new(T)
	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", route, err)
	}
	return out, nil
}

// getRaw decodes a loosely specified response into a generic value.
func (c *Client) getRaw(ctx context.Context, route, path string, query url.Values) (any, error) {
	var out any
	if err := c.get(ctx, route, path, query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) sendRaw(ctx context.Context, method, route, path string, body any) (any, error) {
	var out any
	if err := c.send(ctx, method, route, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func seg(s string) string { return url.PathEscape(s) }
