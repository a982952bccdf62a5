package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/logger"
)

// Limit is the request budget of a single provider host
type Limit struct {
	Host              string
	RequestsPerSecond float64
	Burst             int
}

// hostLimiter holds the rate limiting state for a single provider
type hostLimiter struct {
	provider string
	host     string
	limiter  *rate.Limiter
}

// client wraps an HTTP client and throttles requests per provider host
type client struct {
	inner    adapter.HTTPClient
	limiters []*hostLimiter
}

// NewHTTPClient wraps inner so that requests to a configured host wait for a token first.
// Hosts match exactly or as a parent domain. Requests to other hosts pass through.
func NewHTTPClient(inner adapter.HTTPClient, limits map[string]Limit) adapter.HTTPClient {
	var limiters []*hostLimiter
	for provider, limit := range limits {
		host := strings.ToLower(strings.TrimSpace(limit.Host))
		if host == "" || limit.RequestsPerSecond <= 0 {
			logger.Warn("Skipping invalid rate limit", zap.String("provider", provider))
			continue
		}
		burst := limit.Burst
		if burst <= 0 {
			burst = 1
		}
		limiters = append(limiters, &hostLimiter{
			provider: provider,
			host:     host,
			limiter:  rate.NewLimiter(rate.Limit(limit.RequestsPerSecond), burst),
		})
		logger.Info("Rate limit configured",
			zap.String("provider", provider),
			zap.String("host", host),
			zap.Float64("requests_per_second", limit.RequestsPerSecond),
			zap.Int("burst", burst),
		)
	}

	if len(limiters) == 0 {
		return inner
	}
	return &client{inner: inner, limiters: limiters}
}

// wait blocks until the limiter of the url's host grants a token
func (c *client) wait(ctx context.Context, rawURL string) error {
	l := c.match(rawURL)
	if l == nil {
		return nil
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to acquire rate limit token for %s: %w", l.provider, err)
	}
	return nil
}

func (c *client) match(rawURL string) *hostLimiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	host := strings.ToLower(u.Hostname())
	for _, l := range c.limiters {
		if host == l.host || strings.HasSuffix(host, "."+l.host) {
			return l
		}
	}
	return nil
}

func (c *client) Get(ctx context.Context, url string, result interface{}) error {
	if err := c.wait(ctx, url); err != nil {
		return err
	}
	return c.inner.Get(ctx, url, result)
}

func (c *client) Fetch(ctx context.Context, url string, headers map[string]string) (*adapter.Response, error) {
	if err := c.wait(ctx, url); err != nil {
		return nil, err
	}
	return c.inner.Fetch(ctx, url, headers)
}

func (c *client) Post(ctx context.Context, url string, contentType string, body []byte) ([]byte, error) {
	if err := c.wait(ctx, url); err != nil {
		return nil, err
	}
	return c.inner.Post(ctx, url, contentType, body)
}
