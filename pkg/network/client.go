// Package network is the HTTP collaborator behind the view-models.
//
// The view-models depend only on the Authenticator and Directory
// interfaces; Client implements both against the JSON backend served by
// pkg/apiserver.
package network

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/microcosm-cc/bluemonday"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Endpoint paths served by the backend.
const (
	LoginPath = "/api/login"
	UsersPath = "/api/users"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 15 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

const tracerName = "vmkit/network"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Authenticator signs a user in.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// Directory lists users of a category.
type Directory interface {
	Users(ctx context.Context, category string) (*UsersResult, error)
}

// Client talks to the backend over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracer sets the tracer used for request spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("network: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("network: base url %q must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "network")
	return c, nil
}

// Login posts the credentials and returns the backend's answer.
// A non-nil result with Response 0 is a rejection, not an error.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("network: encode login request: %w", err)
	}

	var res LoginResult
	if err := c.do(ctx, "login", http.MethodPost, LoginPath, nil, body, &res); err != nil {
		return nil, err
	}
	res.Msg = sanitizeMessage(res.Msg)
	return &res, nil
}

// Users fetches the directory entries of the given category.
func (c *Client) Users(ctx context.Context, category string) (*UsersResult, error) {
	q := url.Values{}
	if category != "" {
		q.Set("type", category)
	}

	var res UsersResult
	if err := c.do(ctx, "users", http.MethodGet, UsersPath, q, nil, &res); err != nil {
		return nil, err
	}
	res.Msg = sanitizeMessage(res.Msg)
	return &res, nil
}

// do performs one request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body []byte, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, "network."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.route", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	u := *c.baseURL
	u.Path = c.baseURL.Path + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("network: build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", "op", op, "error", err)
		return fmt.Errorf("network: %s: %w", op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	c.logger.Debug("request done",
		"op", op,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("network: read %s response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("network: decode %s response: %w", op, err)
	}
	return nil
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("network: %s: server returned %d %s",
		e.Op, e.StatusCode, http.StatusText(e.StatusCode))
}

var (
	messagePolicy     *bluemonday.Policy
	messagePolicyOnce sync.Once
)

// sanitizeMessage strips markup from backend messages. The result is
// plain text: entities escaped by the policy are decoded again, since the
// message ends up in terminals and JSON frames rather than HTML.
func sanitizeMessage(msg string) string {
	if msg == "" {
		return ""
	}
	messagePolicyOnce.Do(func() {
		messagePolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(messagePolicy.Sanitize(msg)))
}
