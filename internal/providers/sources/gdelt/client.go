package gdelt

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/normalizer"
	"github.com/feral-file/media-monitor/internal/providers/sources"
)

const (
	DOC_ENDPOINT        = "https://api.gdeltproject.org/api/v2/doc/doc"
	DEFAULT_MAX_RECORDS = 250
	DEFAULT_SOURCE_LANG = "ind"
	DEFAULT_QUERY       = "Indonesia"
)

// Config holds the doc API query settings
type Config struct {
	Query      string
	MaxRecords int
	SourceLang string
	// Timespan limits the search window, e.g. "1d" or "24h"; empty means the API default
	Timespan string
	Endpoint string
}

type artlistResponse struct {
	Articles []json.RawMessage `json:"articles"`
}

type client struct {
	cfg        Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
}

// NewSource creates a GDELT doc API source
func NewSource(cfg Config, httpClient adapter.HTTPClient, json adapter.JSON) sources.Source {
	if strings.TrimSpace(cfg.Query) == "" {
		cfg.Query = DEFAULT_QUERY
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = DEFAULT_MAX_RECORDS
	}
	if cfg.SourceLang == "" {
		cfg.SourceLang = DEFAULT_SOURCE_LANG
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DOC_ENDPOINT
	}
	return &client{cfg: cfg, httpClient: httpClient, json: json}
}

func (c *client) Platform() domain.Platform {
	return domain.PlatformGDELT
}

// Fetch runs one artlist query
func (c *client) Fetch(ctx context.Context) (normalizer.Batch, error) {
	requestURL := c.requestURL()
	resp, err := c.httpClient.Fetch(ctx, requestURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		return normalizer.Batch{}, fmt.Errorf("failed to call GDELT doc API: %w", err)
	}

	// GDELT answers some bad queries with an HTML or plain text page
	contentType := strings.ToLower(resp.ContentType())
	if !strings.Contains(contentType, "application/json") {
		preview := strings.ReplaceAll(domain.Truncate(string(resp.Body), 200), "\n", " ")
		return normalizer.Batch{}, fmt.Errorf("GDELT returned non-JSON response. Content-Type=%s. Preview=%s", contentType, preview)
	}
	if !resp.OK() {
		return normalizer.Batch{}, fmt.Errorf("GDELT returned status code %d", resp.StatusCode)
	}

	var payload artlistResponse
	if err := c.json.Unmarshal(resp.Body, &payload); err != nil {
		return normalizer.Batch{}, fmt.Errorf("failed to parse GDELT response: %w", err)
	}

	articles, err := sources.DecodeGDELT(c.json, payload.Articles)
	if err != nil {
		return normalizer.Batch{}, fmt.Errorf("failed to decode GDELT articles: %w", err)
	}

	logger.DebugCtx(ctx, "Fetched GDELT artlist", zap.Int("count", len(articles)), zap.String("query", c.cfg.Query))
	return normalizer.Batch{GDELT: articles}, nil
}

func (c *client) requestURL() string {
	params := url.Values{}
	params.Set("query", WrapOrTerms(c.cfg.Query))
	params.Set("mode", "artlist")
	params.Set("format", "json")
	params.Set("maxrecords", strconv.Itoa(c.cfg.MaxRecords))
	params.Set("sourcelang", c.cfg.SourceLang)
	if c.cfg.Timespan != "" {
		params.Set("timespan", c.cfg.Timespan)
	}
	return c.cfg.Endpoint + "?" + params.Encode()
}

// WrapOrTerms wraps OR'd terms in parentheses as the doc API requires,
// leaving queries that already group their terms untouched
func WrapOrTerms(query string) string {
	q := strings.TrimSpace(query)
	if strings.Contains(q, " OR ") && !strings.Contains(q, "(") {
		return "(" + q + ")"
	}
	return q
}
