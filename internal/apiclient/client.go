// Package apiclient is the typed service layer over the time-tracking REST API.
// Every call forwards the bearer token carried in the request context.
package apiclient

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

	"github.com/frahmantamala/timeclock/pkg/logger"
)

type Config struct {
	BaseURL           string
	Timeout           time.Duration
	ValidateResponses bool
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	contract   *Contract
	logger     *slog.Logger
}

type Option func(*Client)

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithContract(contract *Contract) Option {
	return func(c *Client) {
		c.contract = contract
	}
}

func NewClient(cfg Config, lg *slog.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid upstream base url: %w", err)
	}
	if lg == nil {
		lg = logger.LoggerWrapper()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     lg,
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.ValidateResponses && c.contract == nil {
		contract, err := LoadContract(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to load upstream contract: %w", err)
		}
		c.contract = contract
	}

	return c, nil
}

type tokenKey struct{}

// WithToken returns a context whose upstream calls are authenticated with token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey{}).(string); ok {
		return token
	}
	return ""
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload interface{}) (request, error) {
	req := request{method: method, path: path}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("failed to encode %s %s payload: %w", method, path, err)
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// do sends the request and decodes a 2xx JSON body into out (when out is non-nil).
// Non-2xx responses come back as *APIError.
func (c *Client) do(ctx context.Context, req request, out interface{}) error {
	target := *c.baseURL
	target.Path = c.baseURL.Path + req.path
	if len(req.query) > 0 {
		target.RawQuery = req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), req.body)
	if err != nil {
		return fmt.Errorf("failed to build %s %s: %w", req.method, req.path, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if token := TokenFromContext(ctx); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		logger.From(ctx).Error("upstream request failed",
			"method", req.method,
			"path", req.path,
			"error", err)
		return &APIError{Method: req.method, Path: req.path, Message: fallbackMessage, Cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Method: req.method, Path: req.path, StatusCode: resp.StatusCode, Message: fallbackMessage, Cause: err}
	}

	logger.From(ctx).Debug("upstream response",
		"method", req.method,
		"path", req.path,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, body)
		apiErr.Method = req.method
		apiErr.Path = req.path
		return apiErr
	}

	if c.contract != nil && len(bytes.TrimSpace(body)) > 0 {
		if err := c.contract.ValidateResponse(ctx, req.method, req.path, req.query, resp.StatusCode, resp.Header, body); err != nil {
			c.logger.Warn("upstream response violates contract",
				"method", req.method,
				"path", req.path,
				"error", err)
			return &APIError{Method: req.method, Path: req.path, StatusCode: resp.StatusCode, Message: "unexpected response from server", Cause: err}
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &APIError{Method: req.method, Path: req.path, StatusCode: resp.StatusCode, Message: "unexpected response from server", Cause: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload, out interface{}) error {
	req, err := jsonRequest(method, path, payload)
	if err != nil {
		return err
	}
	return c.do(ctx, req, out)
}

// Ping checks the upstream is reachable; any HTTP answer counts.
func (c *Client) Ping(ctx context.Context) error {
	target := *c.baseURL
	target.Path = c.baseURL.Path + "/"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
