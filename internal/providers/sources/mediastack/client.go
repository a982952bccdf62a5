package mediastack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
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
	NEWS_ENDPOINT_HTTPS = "https://api.mediastack.com/v1/news"
	NEWS_ENDPOINT_HTTP  = "http://api.mediastack.com/v1/news"
	DEFAULT_COUNTRIES   = "id"
	DEFAULT_LIMIT       = 100
	DEFAULT_SORT        = "published_desc"

	httpsRestrictedCode = "https_access_restricted"
)

// supportedLanguages lists the language codes the news endpoint accepts. Indonesian is not one of them.
var supportedLanguages = map[string]bool{
	"ar": true, "de": true, "en": true, "es": true, "fr": true, "he": true, "it": true,
	"nl": true, "no": true, "pt": true, "ru": true, "se": true, "zh": true,
}

// Config holds the news query settings
type Config struct {
	AccessKey  string
	Countries  string
	Keywords   string
	Categories string
	// Languages is a comma separated list; unsupported codes are dropped
	Languages string
	Limit     int
	// DisableHTTPFallback turns off the retry over plain http
	DisableHTTPFallback bool
	HTTPSEndpoint       string
	HTTPEndpoint        string
}

type apiError struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Context json.RawMessage `json:"context"`
}

type newsResponse struct {
	Data  []json.RawMessage `json:"data"`
	Error *apiError         `json:"error"`
}

type client struct {
	cfg        Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
}

// NewSource creates a MediaStack news source. It fails with ErrMissingCredential without an access key.
func NewSource(cfg Config, httpClient adapter.HTTPClient, json adapter.JSON) (sources.Source, error) {
	if strings.TrimSpace(cfg.AccessKey) == "" {
		return nil, fmt.Errorf("%w: MEDIASTACK_KEY is required when sources.mediastack.enabled=true", domain.ErrMissingCredential)
	}
	if cfg.Countries == "" {
		cfg.Countries = DEFAULT_COUNTRIES
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DEFAULT_LIMIT
	}
	if cfg.HTTPSEndpoint == "" {
		cfg.HTTPSEndpoint = NEWS_ENDPOINT_HTTPS
	}
	if cfg.HTTPEndpoint == "" {
		cfg.HTTPEndpoint = NEWS_ENDPOINT_HTTP
	}
	return &client{cfg: cfg, httpClient: httpClient, json: json}, nil
}

func (c *client) Platform() domain.Platform {
	return domain.PlatformMediaStack
}

// Fetch queries the news endpoint, retrying over http when the plan restricts https
func (c *client) Fetch(ctx context.Context) (normalizer.Batch, error) {
	query := c.query()

	resp, err := c.httpClient.Fetch(ctx, c.cfg.HTTPSEndpoint+"?"+query, nil)
	if err != nil {
		return normalizer.Batch{}, fmt.Errorf("failed to call MediaStack: %w", redact(err, c.cfg.AccessKey))
	}

	if !c.cfg.DisableHTTPFallback && c.shouldFallback(resp) {
		logger.InfoCtx(ctx, "MediaStack https restricted, retrying over http", zap.Int("status_code", resp.StatusCode))
		resp, err = c.httpClient.Fetch(ctx, c.cfg.HTTPEndpoint+"?"+query, nil)
		if err != nil {
			return normalizer.Batch{}, fmt.Errorf("failed to call MediaStack over http: %w", redact(err, c.cfg.AccessKey))
		}
	}

	var payload newsResponse
	if err := c.json.Unmarshal(resp.Body, &payload); err != nil {
		if !resp.OK() {
			return normalizer.Batch{}, fmt.Errorf("MediaStack returned status code %d", resp.StatusCode)
		}
		return normalizer.Batch{}, nil
	}

	// Errors are sometimes reported with a 200 status
	if payload.Error != nil && (payload.Error.Code != "" || payload.Error.Message != "") {
		return normalizer.Batch{}, fmt.Errorf("MediaStack error: %s %s context=%s",
			payload.Error.Code, payload.Error.Message, contextString(payload.Error.Context))
	}
	if !resp.OK() {
		return normalizer.Batch{}, fmt.Errorf("MediaStack returned status code %d", resp.StatusCode)
	}

	articles, err := sources.DecodeMediaStack(c.json, payload.Data)
	if err != nil {
		return normalizer.Batch{}, fmt.Errorf("failed to decode MediaStack articles: %w", err)
	}

	logger.DebugCtx(ctx, "Fetched MediaStack news", zap.Int("count", len(articles)))
	return normalizer.Batch{MediaStack: articles}, nil
}

// shouldFallback reports whether the https answer warrants a retry over http:
// an error status with either the https_access_restricted code or a non-JSON body
func (c *client) shouldFallback(resp *adapter.Response) bool {
	status := resp.StatusCode
	switch {
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status == http.StatusNotFound,
		status == http.StatusUnprocessableEntity,
		status >= http.StatusInternalServerError:
	default:
		return false
	}

	var payload newsResponse
	if err := c.json.Unmarshal(resp.Body, &payload); err != nil {
		return true
	}
	return payload.Error != nil && payload.Error.Code == httpsRestrictedCode
}

func (c *client) query() string {
	params := url.Values{}
	params.Set("access_key", c.cfg.AccessKey)
	params.Set("countries", c.cfg.Countries)
	params.Set("limit", strconv.Itoa(c.cfg.Limit))
	params.Set("sort", DEFAULT_SORT)
	if c.cfg.Keywords != "" {
		params.Set("keywords", c.cfg.Keywords)
	}
	if c.cfg.Categories != "" {
		params.Set("categories", c.cfg.Categories)
	}
	if languages := CleanLanguages(c.cfg.Languages); languages != "" {
		params.Set("languages", languages)
	}
	return params.Encode()
}

// CleanLanguages keeps the supported codes of a comma separated list. A leading
// "-" excludes a language and is kept.
func CleanLanguages(languages string) string {
	var kept []string
	for _, part := range strings.Split(languages, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if supportedLanguages[strings.TrimLeft(part, "-")] {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ",")
}

func contextString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "null"
	}
	return string(raw)
}

func redact(err error, key string) error {
	if key == "" {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), url.QueryEscape(key), "REDACTED"))
}
