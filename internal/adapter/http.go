package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/logger"
)

// maxResponseBytes bounds the body read from any single response
const maxResponseBytes = 10 << 20

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the Content-Type header of the response
func (r *Response) ContentType() string {
	if r == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// OK reports whether the status code is 2xx
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Get performs a GET request and unmarshals the JSON response into result
	Get(ctx context.Context, url string, result interface{}) error

	// Fetch performs a GET request and returns the response whatever its status.
	// Only transport failures and exhausted retries are returned as errors.
	Fetch(ctx context.Context, url string, headers map[string]string) (*Response, error)

	// Post performs a POST request and returns the response body
	Post(ctx context.Context, url string, contentType string, body []byte) ([]byte, error)
}

// HTTPClientOption configures a RealHTTPClient
type HTTPClientOption func(*RealHTTPClient)

// WithUserAgent sets the User-Agent header sent with every request
func WithUserAgent(userAgent string) HTTPClientOption {
	return func(c *RealHTTPClient) {
		c.userAgent = userAgent
	}
}

// WithMaxRetryElapsed bounds the total time spent retrying a request
func WithMaxRetryElapsed(d time.Duration) HTTPClientOption {
	return func(c *RealHTTPClient) {
		c.maxElapsed = d
	}
}

// WithInitialRetryInterval sets the first backoff interval
func WithInitialRetryInterval(d time.Duration) HTTPClientOption {
	return func(c *RealHTTPClient) {
		c.initialInterval = d
	}
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client          *http.Client
	userAgent       string
	initialInterval time.Duration
	maxElapsed      time.Duration
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration, opts ...HTTPClientOption) HTTPClient {
	c := &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		initialInterval: 2 * time.Second,
		maxElapsed:      1 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// retryable reports whether a status code is worth retrying
func retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}

// do executes an HTTP request with exponential backoff retry for rate limiting and server errors.
// The request is rebuilt on every attempt so bodies can be replayed.
func (c *RealHTTPClient) do(ctx context.Context, method, url string, headers map[string]string, body []byte) (*Response, error) {
	var result *Response

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		if c.userAgent != "" {
			req.Header.Set("User-Agent", c.userAgent)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			// Network errors are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("failed to close response body", zap.Error(err), zap.String("url", req.URL.Redacted()))
			}
		}()

		if retryable(resp.StatusCode) {
			logger.Warn("retryable status, retrying with backoff",
				zap.String("url", req.URL.Redacted()),
				zap.Int("status", resp.StatusCode))
			return fmt.Errorf("retryable status code %d", resp.StatusCode)
		}

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}

		result = &Response{
			StatusCode: resp.StatusCode,
			Header:     resp.Header,
			Body:       respBody,
		}
		return nil
	}

	// Configure exponential backoff
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initialInterval
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = c.maxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5 // Add jitter to prevent thundering herd

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}

	return result, nil
}

// Get performs a GET request and unmarshals the JSON response into result
func (c *RealHTTPClient) Get(ctx context.Context, url string, result interface{}) error {
	resp, err := c.do(ctx, http.MethodGet, url, map[string]string{"Accept": "application/json"}, nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, truncateBody(resp.Body))
	}

	if err := json.Unmarshal(resp.Body, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Fetch performs a GET request and returns the response whatever its status
func (c *RealHTTPClient) Fetch(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	return c.do(ctx, http.MethodGet, url, headers, nil)
}

// Post performs a POST request and returns the response body.
// Non-2xx responses are returned as errors.
func (c *RealHTTPClient) Post(ctx context.Context, url string, contentType string, body []byte) ([]byte, error) {
	headers := map[string]string{}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	if body == nil {
		body = []byte{}
	}

	resp, err := c.do(ctx, http.MethodPost, url, headers, body)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, truncateBody(resp.Body))
	}

	return resp.Body, nil
}

func truncateBody(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
