package schema

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"
)

// StringList is an ordered list of strings stored as a JSON array.
// A nil list is stored as NULL, an empty list as "[]".
type StringList []string

// Scan implements the sql.Scanner interface for reading from database
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	if len(bytes) == 0 {
		*l = nil
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Value implements the driver.Valuer interface for writing to database
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// GormDataType returns the generic data type of the column
func (StringList) GormDataType() string {
	return "json"
}

// GormDBDataType picks a JSON column type per dialect
func (StringList) GormDBDataType(db *gorm.DB, _ *gormschema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	default:
		return "JSON"
	}
}

// MediaItem represents the media_items table - one canonical row per (platform, url)
type MediaItem struct {
	// ID is the hex SHA-256 of "platform|url"
	ID string `gorm:"column:id;primaryKey;size:64"`
	// Platform is the ingestion platform (rss, gdelt, mediastack, youtube)
	Platform string `gorm:"column:platform;not null;size:32;index:idx_media_items_platform"`
	// SourceType is news or social
	SourceType string `gorm:"column:source_type;not null;size:16;index:idx_media_items_source_type"`
	// PublisherOrAuthor is the outlet or channel name
	PublisherOrAuthor string `gorm:"column:publisher_or_author;not null;size:128;index:idx_media_items_publisher"`
	// URL is the canonical link of the item, empty when the source did not provide one
	URL string `gorm:"column:url;not null;type:text"`
	// Title is the cleaned plain text title
	Title *string `gorm:"column:title;type:text"`
	// Summary is the cleaned plain text summary
	Summary *string `gorm:"column:summary;type:text"`
	// PublishedAt is the publication time in UTC, nil when the source date could not be parsed
	PublishedAt *time.Time `gorm:"column:published_at;index:idx_media_items_published_at"`
	// IngestedAt is the normalization time in UTC
	IngestedAt time.Time `gorm:"column:ingested_at;not null;index:idx_media_items_ingested_at"`

	// ContentText is the full article body fetched during enrichment
	ContentText *string `gorm:"column:content_text;type:text"`
	// ContentFetchedAt is when ContentText was fetched
	ContentFetchedAt *time.Time `gorm:"column:content_fetched_at"`
	// ContentStatus is ok, blocked, error or skipped
	ContentStatus *string `gorm:"column:content_status;size:16"`
	// ContentHash fingerprints title and summary for change detection
	ContentHash string `gorm:"column:content_hash;not null;size:64;index:idx_media_items_content_hash"`

	// Topics are the taxonomy topics assigned to the item
	Topics StringList `gorm:"column:topics"`
	// Actors are the people and organizations mentioned
	Actors StringList `gorm:"column:actors"`
	// Locations are the places mentioned
	Locations StringList `gorm:"column:locations"`
	// Language is the ISO-639-1 code of the item
	Language *string `gorm:"column:language;size:16;index:idx_media_items_language"`
	// IsEditorial is true for opinion pieces, false for straight reporting and nil when unknown
	IsEditorial *bool `gorm:"column:is_editorial"`
	// Sentiment is positive, negative or neutral
	Sentiment *string `gorm:"column:sentiment;size:16"`
	// TagsJSON is the raw structured enrichment payload kept for audit
	TagsJSON datatypes.JSON `gorm:"column:tags_json"`

	// EnrichedAt is nil while the item is pending enrichment
	EnrichedAt *time.Time `gorm:"column:enriched_at;index:idx_media_items_enriched_at"`
	// EnrichModel is the model that produced the enrichment
	EnrichModel *string `gorm:"column:enrich_model;size:128"`
	// EnrichStatus is ok, error or skipped
	EnrichStatus *string `gorm:"column:enrich_status;size:32"`
	// EnrichError is the last failure message
	EnrichError *string `gorm:"column:enrich_error;type:text"`

	// SignalsJSON holds source-specific diagnostics (feed name, GDELT domain, YouTube metrics)
	SignalsJSON datatypes.JSON `gorm:"column:signals_json"`
	// RawJSON is the raw source record, written once on insert
	RawJSON datatypes.JSON `gorm:"column:raw_json;not null"`

	// CreatedAt is the timestamp when this record was inserted
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime;index:idx_media_items_created_at"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

// TableName specifies the table name for the MediaItem model
func (MediaItem) TableName() string {
	return "media_items"
}

// IsPending reports whether the item still waits for enrichment
func (m *MediaItem) IsPending() bool {
	return m.EnrichedAt == nil
}
