package store

import (
	"context"
	"time"

	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

// ProtectedColumns lists the media_items columns that re-ingestion never overwrites.
// They hold fetched content and enrichment results; the list is part of the
// persisted compatibility surface together with the id derivation.
var ProtectedColumns = []string{
	"topics",
	"actors",
	"locations",
	"language",
	"is_editorial",
	"sentiment",
	"tags_json",
	"content_text",
	"content_fetched_at",
	"content_status",
	"content_hash",
	"enriched_at",
	"enrich_model",
	"enrich_status",
	"enrich_error",
}

// RecordContentInput represents the input for recording fetched article content
type RecordContentInput struct {
	ItemID    string
	Text      string
	FetchedAt time.Time
	Status    domain.ContentStatus
	// Hash replaces the stored content hash when set
	Hash *string
}

// RecordEnrichmentInput represents the input for recording an enrichment outcome
type RecordEnrichmentInput struct {
	ItemID      string
	Topics      []string
	Actors      []string
	Locations   []string
	Language    *string
	IsEditorial *bool
	Sentiment   *domain.Sentiment
	TagsJSON    []byte
	Model       string
	Status      domain.EnrichStatus
	Error       *string
	EnrichedAt  time.Time
}

// MediaItemQuery represents the filters of a read query over media items
type MediaItemQuery struct {
	// Since keeps items published at or after this time
	Since *time.Time
	// TopicsAny keeps items sharing at least one topic. It is applied after Limit.
	TopicsAny []string
	Platform  domain.Platform
	Publisher string
	// Limit bounds the rows fetched before the topic filter; zero means DEFAULT_QUERY_LIMIT
	Limit int
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// UpsertMediaItems inserts new items and merges existing ones, skipping protected columns
	UpsertMediaItems(ctx context.Context, items []schema.MediaItem) (inserted int, updated int, err error)
	// ListPendingMediaItems returns up to limit items that have not been enriched yet, in insertion order
	ListPendingMediaItems(ctx context.Context, limit int) ([]schema.MediaItem, error)
	// RecordContent stores fetched article content; no-op when the item does not exist
	RecordContent(ctx context.Context, input RecordContentInput) error
	// RecordEnrichment stores an enrichment outcome; no-op when the item does not exist
	RecordEnrichment(ctx context.Context, input RecordEnrichmentInput) error
	// GetIngestState retrieves the checkpoint of a source, nil when the source never ran
	GetIngestState(ctx context.Context, source string) (*schema.IngestState, error)
	// SetIngestState creates or overwrites the checkpoint of a source
	SetIngestState(ctx context.Context, source string, lastRunAt time.Time, cursor *string) error
	// QueryMediaItems runs a read-only filtered query
	QueryMediaItems(ctx context.Context, query MediaItemQuery) ([]schema.MediaItem, error)
	// GetMediaItemByID retrieves a media item by id, nil when absent
	GetMediaItemByID(ctx context.Context, id string) (*schema.MediaItem, error)
	// CountMediaItems returns the total number of items and the number still pending enrichment
	CountMediaItems(ctx context.Context) (total int64, pending int64, err error)
}
