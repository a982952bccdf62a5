package rest

import (
	"encoding/json"
	"time"

	"github.com/feral-file/media-monitor/internal/store/schema"
)

// MediaItemResponse is the JSON view of a media item
type MediaItemResponse struct {
	ID                string          `json:"id"`
	Platform          string          `json:"platform"`
	SourceType        string          `json:"source_type"`
	PublisherOrAuthor string          `json:"publisher_or_author"`
	URL               string          `json:"url"`
	Title             *string         `json:"title"`
	Summary           *string         `json:"summary"`
	PublishedAt       *time.Time      `json:"published_at"`
	IngestedAt        time.Time       `json:"ingested_at"`
	Topics            []string        `json:"topics"`
	Actors            []string        `json:"actors"`
	Locations         []string        `json:"locations"`
	Language          *string         `json:"language"`
	IsEditorial       *bool           `json:"is_editorial"`
	Sentiment         *string         `json:"sentiment"`
	ContentStatus     *string         `json:"content_status"`
	EnrichStatus      *string         `json:"enrich_status"`
	EnrichModel       *string         `json:"enrich_model"`
	EnrichedAt        *time.Time      `json:"enriched_at"`
	Signals           json.RawMessage `json:"signals,omitempty"`
}

// ListItemsResponse is the body of GET /api/v1/items
type ListItemsResponse struct {
	Items []MediaItemResponse `json:"items"`
	Count int                 `json:"count"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Total   int64  `json:"total"`
	Pending int64  `json:"pending"`
}

// IngestStateResponse is the body of GET /api/v1/states/:source
type IngestStateResponse struct {
	Source    string     `json:"source"`
	LastRunAt *time.Time `json:"last_run_at"`
	Cursor    *string    `json:"cursor"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// toMediaItemResponse maps a stored row to its JSON view.
// Content text and the raw record stay internal.
func toMediaItemResponse(item schema.MediaItem) MediaItemResponse {
	resp := MediaItemResponse{
		ID:                item.ID,
		Platform:          item.Platform,
		SourceType:        item.SourceType,
		PublisherOrAuthor: item.PublisherOrAuthor,
		URL:               item.URL,
		Title:             item.Title,
		Summary:           item.Summary,
		PublishedAt:       item.PublishedAt,
		IngestedAt:        item.IngestedAt,
		Topics:            nonNil(item.Topics),
		Actors:            nonNil(item.Actors),
		Locations:         nonNil(item.Locations),
		Language:          item.Language,
		IsEditorial:       item.IsEditorial,
		Sentiment:         item.Sentiment,
		ContentStatus:     item.ContentStatus,
		EnrichStatus:      item.EnrichStatus,
		EnrichModel:       item.EnrichModel,
		EnrichedAt:        item.EnrichedAt,
	}
	if len(item.SignalsJSON) > 0 {
		resp.Signals = json.RawMessage(item.SignalsJSON)
	}
	return resp
}

func toIngestStateResponse(state schema.IngestState) IngestStateResponse {
	return IngestStateResponse{
		Source:    state.Source,
		LastRunAt: state.LastRunAt,
		Cursor:    state.Cursor,
		UpdatedAt: state.UpdatedAt,
	}
}

func nonNil(list schema.StringList) []string {
	if list == nil {
		return []string{}
	}
	return []string(list)
}
