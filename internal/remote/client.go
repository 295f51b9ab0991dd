package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/folio/internal/books"
)

// Client talks to the books HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	defaultAPIURL    = "localhost:8080"
	defaultUserAgent = "folio/0.1"
	requestIDHeader  = "X-Request-ID"
	booksPath        = "books"
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a Client for the API rooted at apiURL. A bare host:port
// is accepted and gets an http scheme.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches the whole collection.
func (c *Client) List(ctx context.Context) ([]books.Item, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Book
	if err := c.do(ctx, http.MethodGet, c.endpoint(), nil, &payload); err != nil {
		return nil, err
	}
	items := make([]books.Item, 0, len(payload))
	for _, b := range payload {
		items = append(items, b.Item())
	}
	return items, nil
}

// Create posts a new book and returns the identifier the store assigned.
func (c *Client) Create(ctx context.Context, d books.Draft) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	var payload CreateResponse
	if err := c.do(ctx, http.MethodPost, c.endpoint(), PayloadFor(d), &payload); err != nil {
		return "", err
	}
	return string(payload.ID), nil
}

// Update replaces the editable fields of the book with the given id.
func (c *Client) Update(ctx context.Context, id string, d books.Draft) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return books.ErrMissingID
	}
	return c.do(ctx, http.MethodPut, c.endpoint(id), PayloadFor(d), nil)
}

// Delete removes the book with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return books.ErrMissingID
	}
	return c.do(ctx, http.MethodDelete, c.endpoint(id), nil, nil)
}

func (c *Client) endpoint(id ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL.String())
	b.WriteString("/")
	b.WriteString(booksPath)
	for _, seg := range id {
		b.WriteString("/")
		b.WriteString(url.PathEscape(seg))
	}
	return b.String()
}

func (c *Client) do(ctx context.Context, method, target string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "url", target, "request_id", reqID, "error", err)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("request done",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", reqID,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: req.URL.Path, Status: resp.StatusCode, RequestID: reqID}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Method    string
	Path      string
	Status    int
	RequestID string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s %s returned status %d (request %s)", e.Method, e.Path, e.Status, e.RequestID)
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", apiURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
