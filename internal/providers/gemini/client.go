package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/enrichment"
	"github.com/feral-file/media-monitor/internal/logger"
)

const (
	DEFAULT_BASE_URL = "https://generativelanguage.googleapis.com/v1beta"
	DEFAULT_TIMEOUT  = 30 * time.Second
)

// Config captures the settings required to call the generateContent endpoint
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64 // Sent as configured, zero included
}

// Client classifies prompts with the Gemini REST API
type Client struct {
	cfg        Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
}

// Option customizes the client
type Option func(*Client)

// WithBaseURL overrides the API root, used to point the client at a test server
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.cfg.BaseURL = baseURL
		}
	}
}

// WithTemperature overrides the sampling temperature
func WithTemperature(temperature float64) Option {
	return func(c *Client) {
		c.cfg.Temperature = temperature
	}
}

// NewClient creates a Gemini client. It fails with ErrMissingCredential when no key is configured.
func NewClient(cfg Config, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, opts ...Option) (*Client, error) {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key", domain.ErrMissingCredential)
	}
	cfg.Model = normalizeModel(cfg.Model)
	if cfg.BaseURL == "" {
		cfg.BaseURL = DEFAULT_BASE_URL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DEFAULT_TIMEOUT
	}

	client := &Client{
		cfg:        cfg,
		httpClient: httpClient,
		json:       jsonAdapter,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.cfg.BaseURL = strings.TrimRight(client.cfg.BaseURL, "/")
	return client, nil
}

// Model returns the fully qualified model name, e.g. models/gemini-2.0-flash-lite
func (c *Client) Model() string {
	return c.cfg.Model
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64                `json:"temperature"`
	ResponseMimeType string                 `json:"responseMimeType"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// Classify sends a single generateContent request. Every failure is a *enrichment.ClassificationError.
func (c *Client) Classify(ctx context.Context, prompt string, schema map[string]interface{}) (*enrichment.Classification, error) {
	body, err := c.json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      c.cfg.Temperature,
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
		},
	})
	if err != nil {
		return nil, enrichment.NewClassificationError(enrichment.ErrorKindTransport, fmt.Errorf("failed to encode request: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	respBody, err := c.httpClient.Post(ctx, c.endpoint(), "application/json", body)
	if err != nil {
		// The key is part of the url; keep it out of stored error messages
		return nil, enrichment.NewClassificationError(enrichment.ErrorKindTransport, errors.New(c.redact(err.Error())))
	}

	var resp generateResponse
	if err := c.json.Unmarshal(respBody, &resp); err != nil {
		return nil, enrichment.NewClassificationError(enrichment.ErrorKindInvalidJSON, fmt.Errorf("failed to decode response envelope: %w", err))
	}

	text := firstText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, enrichment.NewClassificationError(enrichment.ErrorKindEmptyResponse, errors.New("gemini returned no text"))
	}

	classification, err := enrichment.DecodeClassification(text)
	if err != nil {
		logger.DebugCtx(ctx, "Gemini output rejected",
			zap.String("model", c.cfg.Model),
			zap.String("text", domain.Truncate(text, 200)),
			zap.Error(err),
		)
		return nil, err
	}
	return classification, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/%s:generateContent?key=%s", c.cfg.BaseURL, c.cfg.Model, url.QueryEscape(c.cfg.APIKey))
}

func (c *Client) redact(message string) string {
	message = strings.ReplaceAll(message, url.QueryEscape(c.cfg.APIKey), "REDACTED")
	return strings.ReplaceAll(message, c.cfg.APIKey, "REDACTED")
}

func firstText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// normalizeModel prefixes bare model names with "models/"
func normalizeModel(model string) string {
	model = strings.TrimSpace(model)
	if model == "" {
		return domain.DEFAULT_GEMINI_MODEL
	}
	if !strings.HasPrefix(model, "models/") && !strings.HasPrefix(model, "tunedModels/") {
		return "models/" + model
	}
	return model
}

var _ enrichment.Classifier = (*Client)(nil)
