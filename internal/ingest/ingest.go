package ingest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/normalizer"
	"github.com/feral-file/media-monitor/internal/providers/sources"
	"github.com/feral-file/media-monitor/internal/registry"
	"github.com/feral-file/media-monitor/internal/store"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

// SourceStats holds the outcome of one source within an ingestion run
type SourceStats struct {
	Raw      int    `json:"raw"`
	Filtered int    `json:"filtered"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Error    string `json:"error,omitempty"`
}

// Stats holds the outcome of an ingestion run
type Stats struct {
	InsertedTotal int                    `json:"inserted_total"`
	UpdatedTotal  int                    `json:"updated_total"`
	Details       map[string]SourceStats `json:"details"`
}

// Ingester fetches, normalizes and persists media items from the configured sources
//
//go:generate mockgen -source=ingest.go -destination=../mocks/ingester.go -package=mocks -mock_names=Ingester=MockIngester
type Ingester interface {
	// Run ingests every source once, in order. A failing source is logged and
	// recorded in the stats; only store errors abort the run.
	Run(ctx context.Context) (Stats, error)
}

type ingester struct {
	sources    []sources.Source
	normalizer normalizer.Normalizer
	blacklist  registry.BlacklistRegistry
	store      store.Store
	clock      adapter.Clock
}

// NewIngester creates an ingester over the given sources. Sources are visited
// in slice order. A nil blacklist filters nothing.
func NewIngester(
	srcs []sources.Source,
	norm normalizer.Normalizer,
	blacklist registry.BlacklistRegistry,
	st store.Store,
	clock adapter.Clock,
) Ingester {
	return &ingester{
		sources:    srcs,
		normalizer: norm,
		blacklist:  blacklist,
		store:      st,
		clock:      clock,
	}
}

func (i *ingester) Run(ctx context.Context) (Stats, error) {
	stats := Stats{Details: make(map[string]SourceStats, len(i.sources))}

	for _, src := range i.sources {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		name := string(src.Platform())
		detail, err := i.runSource(ctx, src)
		if err != nil {
			return stats, err
		}

		stats.Details[name] = detail
		stats.InsertedTotal += detail.Inserted
		stats.UpdatedTotal += detail.Updated

		logger.InfoCtx(ctx, "Ingested source",
			zap.String("source", name),
			zap.Int("raw", detail.Raw),
			zap.Int("filtered", detail.Filtered),
			zap.Int("inserted", detail.Inserted),
			zap.Int("updated", detail.Updated),
		)
	}

	return stats, nil
}

// runSource ingests one source. Fetch and normalize failures are recorded in the
// detail and still stamp the run; the returned error is only non-nil for store failures.
func (i *ingester) runSource(ctx context.Context, src sources.Source) (SourceStats, error) {
	var detail SourceStats
	name := string(src.Platform())

	batch, err := src.Fetch(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to fetch source", zap.String("source", name), zap.Error(err))
		detail.Error = err.Error()
		return detail, i.recordRun(ctx, name, nil)
	}
	detail.Raw = batch.Len()

	items, err := i.normalizer.Normalize(src.Platform(), batch)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to normalize source", zap.String("source", name), zap.Error(err))
		detail.Error = err.Error()
		return detail, i.recordRun(ctx, name, nil)
	}

	kept := i.filterBlacklisted(items)
	detail.Filtered = len(items) - len(kept)

	detail.Inserted, detail.Updated, err = i.store.UpsertMediaItems(ctx, kept)
	if err != nil {
		return detail, fmt.Errorf("failed to upsert %s media items: %w", name, err)
	}

	return detail, i.recordRun(ctx, name, kept)
}

// recordRun stamps the source's last run and advances its cursor past the stored items.
// A run that stored nothing keeps the previous cursor.
func (i *ingester) recordRun(ctx context.Context, name string, stored []schema.MediaItem) error {
	state, err := i.store.GetIngestState(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get ingest state for %s: %w", name, err)
	}
	var previous *string
	if state != nil {
		previous = state.Cursor
	}

	if err := i.store.SetIngestState(ctx, name, i.clock.Now().UTC(), nextCursor(stored, previous)); err != nil {
		return fmt.Errorf("failed to set ingest state for %s: %w", name, err)
	}
	return nil
}

func (i *ingester) filterBlacklisted(items []schema.MediaItem) []schema.MediaItem {
	if i.blacklist == nil {
		return items
	}

	kept := make([]schema.MediaItem, 0, len(items))
	for _, item := range items {
		if i.blacklist.IsURLBlacklisted(domain.Platform(item.Platform), item.URL) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

// nextCursor returns the latest published_at of the run in RFC3339, or the
// previous cursor when no item carries a publication time
func nextCursor(items []schema.MediaItem, previous *string) *string {
	var latest *time.Time
	for _, item := range items {
		if item.PublishedAt == nil {
			continue
		}
		if latest == nil || item.PublishedAt.After(*latest) {
			latest = item.PublishedAt
		}
	}
	if latest == nil {
		return previous
	}

	cursor := latest.UTC().Format(time.RFC3339)
	return &cursor
}
