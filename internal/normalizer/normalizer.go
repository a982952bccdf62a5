package normalizer

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/registry"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

// Normalizer converts raw per-platform records into canonical media items
//
//go:generate mockgen -source=normalizer.go -destination=../mocks/normalizer.go -package=mocks -mock_names=Normalizer=MockNormalizer
type Normalizer interface {
	// Normalize dispatches a raw batch to the normalizer of the platform
	Normalize(platform domain.Platform, batch Batch) ([]schema.MediaItem, error)

	NormalizeGDELT(articles []GDELTArticle) ([]schema.MediaItem, error)
	NormalizeMediaStack(articles []MediaStackArticle) ([]schema.MediaItem, error)
	NormalizeRSS(entries []RSSEntry) ([]schema.MediaItem, error)
	NormalizeYouTube(entries []YouTubeEntry, stats map[string]VideoStats) ([]schema.MediaItem, error)
}

type normalizer struct {
	clock      adapter.Clock
	json       adapter.JSON
	publishers registry.PublisherRegistry
}

// NewNormalizer creates a new normalizer
func NewNormalizer(clock adapter.Clock, json adapter.JSON, publishers registry.PublisherRegistry) Normalizer {
	if publishers == nil {
		publishers = registry.NewPublisherRegistry(nil)
	}
	return &normalizer{
		clock:      clock,
		json:       json,
		publishers: publishers,
	}
}

// baseItem holds the platform-independent fields every normalizer fills in
type baseItem struct {
	platform    domain.Platform
	sourceType  domain.SourceType
	publisher   string
	url         string
	title       string
	summary     string
	publishedAt *time.Time
	signals     map[string]interface{}
	raw         json.RawMessage
	record      interface{}
}

// Normalize dispatches a raw batch to the normalizer of the platform
func (n *normalizer) Normalize(platform domain.Platform, batch Batch) ([]schema.MediaItem, error) {
	switch platform {
	case domain.PlatformGDELT:
		return n.NormalizeGDELT(batch.GDELT)
	case domain.PlatformMediaStack:
		return n.NormalizeMediaStack(batch.MediaStack)
	case domain.PlatformRSS:
		return n.NormalizeRSS(batch.RSS)
	case domain.PlatformYouTube:
		return n.NormalizeYouTube(batch.YouTube, batch.Stats)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownPlatform, platform)
	}
}

// NormalizeGDELT normalizes GDELT artlist entries. GDELT carries no summary.
func (n *normalizer) NormalizeGDELT(articles []GDELTArticle) ([]schema.MediaItem, error) {
	items := make([]schema.MediaItem, 0, len(articles))
	for _, a := range articles {
		item, err := n.build(baseItem{
			platform:    domain.PlatformGDELT,
			sourceType:  domain.SourceTypeNews,
			publisher:   n.publishers.LookupPublisher(a.Domain),
			url:         a.URL,
			title:       a.Title,
			publishedAt: ParseGDELTSeenDate(a.SeenDate),
			signals: map[string]interface{}{
				"domain":        a.Domain,
				"sourcecountry": optional(a.SourceCountry),
				"language":      optional(a.Language),
				"socialimage":   optional(a.SocialImage),
				"url_mobile":    optional(a.URLMobile),
			},
			raw:    a.Raw,
			record: a,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// mediaStackPublisher picks the source, else the author. A present but blank
// source is not skipped, it resolves to the unknown publisher.
func mediaStackPublisher(a MediaStackArticle) string {
	publisher := a.Source
	if publisher == "" {
		publisher = a.Author
	}
	publisher = strings.TrimSpace(publisher)
	if publisher == "" {
		return domain.UNKNOWN_PUBLISHER
	}
	return publisher
}

// NormalizeMediaStack normalizes MediaStack news entries
func (n *normalizer) NormalizeMediaStack(articles []MediaStackArticle) ([]schema.MediaItem, error) {
	items := make([]schema.MediaItem, 0, len(articles))
	for _, a := range articles {
		publisher := mediaStackPublisher(a)

		item, err := n.build(baseItem{
			platform:    domain.PlatformMediaStack,
			sourceType:  domain.SourceTypeNews,
			publisher:   publisher,
			url:         a.URL,
			title:       a.Title,
			summary:     a.Description,
			publishedAt: ParseDate(a.PublishedAt),
			signals: map[string]interface{}{
				"category": optional(a.Category),
				"country":  optional(a.Country),
				"language": optional(a.Language),
				"image":    optional(a.Image),
			},
			raw:    a.Raw,
			record: a,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// NormalizeRSS normalizes feed entries. The publisher is the feed name up to its first underscore.
func (n *normalizer) NormalizeRSS(entries []RSSEntry) ([]schema.MediaItem, error) {
	items := make([]schema.MediaItem, 0, len(entries))
	for _, e := range entries {
		publisher := strings.SplitN(e.FeedName, "_", 2)[0]
		if strings.TrimSpace(publisher) == "" {
			publisher = domain.UNKNOWN_PUBLISHER
		}

		item, err := n.build(baseItem{
			platform:    domain.PlatformRSS,
			sourceType:  domain.SourceTypeNews,
			publisher:   publisher,
			url:         e.Link,
			title:       e.Title,
			summary:     firstNonEmpty(e.Summary, e.Description),
			publishedAt: ParseDate(firstNonEmpty(e.Published, e.Updated)),
			signals: map[string]interface{}{
				"feed_name": e.FeedName,
				"feed_url":  optional(e.FeedURL),
			},
			raw:    e.Raw,
			record: e,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// NormalizeYouTube normalizes channel feed entries, attaching view/like/comment
// metrics when the stats map has the video
func (n *normalizer) NormalizeYouTube(entries []YouTubeEntry, stats map[string]VideoStats) ([]schema.MediaItem, error) {
	items := make([]schema.MediaItem, 0, len(entries))
	for _, e := range entries {
		publisher := e.ChannelName
		if strings.TrimSpace(publisher) == "" {
			publisher = domain.UNKNOWN_PUBLISHER
		}

		metrics := map[string]interface{}{}
		if e.VideoID != "" {
			if s, ok := stats[e.VideoID]; ok {
				metrics["views"] = s.Views
				metrics["likes"] = s.Likes
				metrics["comments"] = s.Comments
			}
		}

		item, err := n.build(baseItem{
			platform:    domain.PlatformYouTube,
			sourceType:  domain.SourceTypeSocial,
			publisher:   publisher,
			url:         e.Link,
			title:       e.Title,
			summary:     e.Summary,
			publishedAt: ParseDate(firstNonEmpty(e.Published, e.Updated)),
			signals: map[string]interface{}{
				"channel_name": e.ChannelName,
				"channel_id":   optional(e.ChannelID),
				"video_id":     optional(e.VideoID),
				"metrics":      metrics,
			},
			raw:    e.Raw,
			record: e,
		})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// build assembles the canonical item shared by all platforms
func (n *normalizer) build(b baseItem) (schema.MediaItem, error) {
	title := domain.CleanText(b.title)
	summary := domain.CleanText(b.summary)

	rawJSON, err := n.canonicalRaw(b.raw, b.record)
	if err != nil {
		return schema.MediaItem{}, fmt.Errorf("failed to serialize raw %s record: %w", b.platform, err)
	}

	signalsJSON, err := n.json.Marshal(b.signals)
	if err != nil {
		return schema.MediaItem{}, fmt.Errorf("failed to serialize %s signals: %w", b.platform, err)
	}

	return schema.MediaItem{
		ID:                domain.MakeID(b.platform, b.url),
		Platform:          string(b.platform),
		SourceType:        string(b.sourceType),
		PublisherOrAuthor: b.publisher,
		URL:               b.url,
		Title:             nilIfEmpty(title),
		Summary:           nilIfEmpty(summary),
		PublishedAt:       b.publishedAt,
		IngestedAt:        n.clock.Now().UTC(),
		ContentHash:       domain.ContentHash(title, summary),
		SignalsJSON:       datatypes.JSON(signalsJSON),
		RawJSON:           datatypes.JSON(rawJSON),
	}, nil
}

// canonicalRaw serializes the raw record in canonical JSON form. The bytes received
// from the source are preferred; the typed record is used when they are missing or invalid.
func (n *normalizer) canonicalRaw(raw json.RawMessage, record interface{}) ([]byte, error) {
	if len(raw) > 0 && json.Valid(raw) {
		if out, err := n.json.Canonical(raw); err == nil {
			return out, nil
		}
	}
	return n.json.Canonical(record)
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// optional maps an empty string to a JSON null
func optional(s string) interface{} {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
