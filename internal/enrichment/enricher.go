package enrichment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/content"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/store"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

// Config holds the enrichment pass settings
type Config struct {
	BatchSize  int    // Pending items per pass
	MaxRetries int    // Extra classification attempts after the first one
	Model      string // Model recorded on classified items
	// FetchContent controls whether missing article bodies are downloaded before classification
	FetchContent bool
}

// Stats summarizes one enrichment pass
type Stats struct {
	Pending       int `json:"pending"`
	EnrichedOK    int `json:"enriched_ok"`
	EnrichedError int `json:"enriched_error"`
	Skipped       int `json:"skipped"`
}

// Enricher classifies pending media items
//
//go:generate mockgen -source=enricher.go -destination=../mocks/enricher.go -package=mocks -mock_names=Enricher=MockEnricher
type Enricher interface {
	// EnrichPending processes one batch of pending items sequentially.
	// Only store failures abort the pass.
	EnrichPending(ctx context.Context) (Stats, error)
}

type enricher struct {
	config     Config
	store      store.Store
	fetcher    content.Fetcher
	classifier Classifier
	taxonomy   domain.Taxonomy
	clock      adapter.Clock
	json       adapter.JSON
}

// tagsPayload is the audit record written to tags_json
type tagsPayload struct {
	Topics      []string          `json:"topics"`
	Actors      []string          `json:"actors"`
	Locations   []string          `json:"locations"`
	Language    *string           `json:"language"`
	IsEditorial *bool             `json:"is_editorial"`
	Sentiment   *domain.Sentiment `json:"sentiment"`
	ActorQuotes []ActorQuote      `json:"actor_quotes"`
}

// NewEnricher creates a new enricher. A nil classifier selects the keyword fallback.
func NewEnricher(
	config Config,
	st store.Store,
	fetcher content.Fetcher,
	classifier Classifier,
	taxonomy domain.Taxonomy,
	clock adapter.Clock,
	json adapter.JSON,
) Enricher {
	if config.BatchSize <= 0 {
		config.BatchSize = domain.DEFAULT_BATCH_SIZE
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.Model == "" {
		config.Model = domain.DEFAULT_GEMINI_MODEL
	}
	return &enricher{
		config:     config,
		store:      st,
		fetcher:    fetcher,
		classifier: classifier,
		taxonomy:   taxonomy,
		clock:      clock,
		json:       json,
	}
}

// EnrichPending processes one batch of pending items
func (e *enricher) EnrichPending(ctx context.Context) (Stats, error) {
	var stats Stats

	pending, err := e.store.ListPendingMediaItems(ctx, e.config.BatchSize)
	if err != nil {
		return stats, fmt.Errorf("failed to list pending media items: %w", err)
	}
	stats.Pending = len(pending)
	if len(pending) == 0 {
		return stats, nil
	}

	logger.InfoCtx(ctx, "Enriching pending media items",
		zap.Int("count", len(pending)),
		zap.Bool("fallback", e.classifier == nil),
	)

	for _, item := range pending {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		contentText, err := e.ensureContent(ctx, item)
		if err != nil {
			return stats, err
		}

		if e.classifier == nil {
			if err := e.recordFallback(ctx, item); err != nil {
				return stats, err
			}
			stats.Skipped++
			continue
		}

		classification, lastErr := e.classify(ctx, BuildPrompt(item, e.taxonomy, contentText))
		if lastErr != nil {
			logger.WarnCtx(ctx, "Classification failed after retries",
				zap.String("item_id", item.ID),
				zap.String("url", item.URL),
				zap.Error(lastErr),
			)
			if err := e.recordFailure(ctx, item, lastErr); err != nil {
				return stats, err
			}
			stats.EnrichedError++
			continue
		}

		if err := e.recordSuccess(ctx, item, classification); err != nil {
			return stats, err
		}
		stats.EnrichedOK++
	}

	logger.InfoCtx(ctx, "Enrichment pass completed",
		zap.Int("pending", stats.Pending),
		zap.Int("enriched_ok", stats.EnrichedOK),
		zap.Int("enriched_error", stats.EnrichedError),
		zap.Int("skipped", stats.Skipped),
	)

	return stats, nil
}

// ensureContent returns the stored article body, fetching and persisting it when missing
func (e *enricher) ensureContent(ctx context.Context, item schema.MediaItem) (string, error) {
	if item.ContentText != nil && *item.ContentText != "" {
		return *item.ContentText, nil
	}
	if !e.config.FetchContent || e.fetcher == nil {
		return "", nil
	}

	result := e.fetcher.Fetch(ctx, item.URL)
	if !result.OK() {
		logger.DebugCtx(ctx, "Article content unavailable",
			zap.String("item_id", item.ID),
			zap.String("status", string(result.Status)),
			zap.String("reason", result.Reason),
		)
		return "", nil
	}

	err := e.store.RecordContent(ctx, store.RecordContentInput{
		ItemID:    item.ID,
		Text:      result.Text,
		FetchedAt: e.clock.Now(),
		Status:    domain.ContentStatusOK,
	})
	if err != nil {
		return "", fmt.Errorf("failed to record content for %s: %w", item.ID, err)
	}
	return result.Text, nil
}

// classify runs up to MaxRetries+1 attempts back to back and returns the last error on exhaustion
func (e *enricher) classify(ctx context.Context, prompt string) (*Classification, error) {
	responseSchema := ResponseSchema()

	var lastErr error
	for attempt := 0; attempt <= e.config.MaxRetries; attempt++ {
		classification, err := e.classifier.Classify(ctx, prompt, responseSchema)
		if err == nil {
			classification.Topics = e.taxonomy.FilterTopics(classification.Topics)
			return classification, nil
		}
		lastErr = err
		logger.DebugCtx(ctx, "Classification attempt failed", zap.Int("attempt", attempt+1), zap.Error(err))

		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (e *enricher) recordSuccess(ctx context.Context, item schema.MediaItem, c *Classification) error {
	return e.record(ctx, item, c, e.config.Model, domain.EnrichStatusOK)
}

func (e *enricher) recordFallback(ctx context.Context, item schema.MediaItem) error {
	return e.record(ctx, item, FallbackClassify(item, e.taxonomy), domain.FALLBACK_MODEL_NAME, domain.EnrichStatusSkipped)
}

func (e *enricher) record(ctx context.Context, item schema.MediaItem, c *Classification, model string, status domain.EnrichStatus) error {
	tags, err := e.json.Marshal(tagsPayload{
		Topics:      nonNil(c.Topics),
		Actors:      nonNil(c.Actors),
		Locations:   nonNil(c.Locations),
		Language:    c.Language,
		IsEditorial: c.IsEditorial,
		Sentiment:   c.Sentiment,
		ActorQuotes: c.ActorQuotes,
	})
	if err != nil {
		return fmt.Errorf("failed to serialize tags for %s: %w", item.ID, err)
	}

	err = e.store.RecordEnrichment(ctx, store.RecordEnrichmentInput{
		ItemID:      item.ID,
		Topics:      c.Topics,
		Actors:      c.Actors,
		Locations:   c.Locations,
		Language:    c.Language,
		IsEditorial: c.IsEditorial,
		Sentiment:   c.Sentiment,
		TagsJSON:    tags,
		Model:       model,
		Status:      status,
		EnrichedAt:  e.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to record enrichment for %s: %w", item.ID, err)
	}
	return nil
}

func (e *enricher) recordFailure(ctx context.Context, item schema.MediaItem, cause error) error {
	message := strings.TrimSpace(cause.Error())
	err := e.store.RecordEnrichment(ctx, store.RecordEnrichmentInput{
		ItemID:     item.ID,
		Topics:     []string{},
		Actors:     []string{},
		Locations:  []string{},
		TagsJSON:   []byte("{}"),
		Model:      e.config.Model,
		Status:     domain.EnrichStatusError,
		Error:      &message,
		EnrichedAt: e.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to record enrichment error for %s: %w", item.ID, err)
	}
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
