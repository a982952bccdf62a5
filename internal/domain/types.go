package domain

import (
	"slices"
	"strings"
)

// Platform represents the ingestion platform of a media item
type Platform string

const (
	PlatformRSS        Platform = "rss"
	PlatformGDELT      Platform = "gdelt"
	PlatformMediaStack Platform = "mediastack"
	PlatformYouTube    Platform = "youtube"
)

// Platforms lists the platforms in the order they are ingested
var Platforms = []Platform{PlatformGDELT, PlatformMediaStack, PlatformRSS, PlatformYouTube}

// IsValidPlatform checks if a platform is known
func IsValidPlatform(platform Platform) bool {
	return slices.Contains(Platforms, platform)
}

// SourceType represents the kind of outlet an item comes from
type SourceType string

const (
	SourceTypeNews   SourceType = "news"
	SourceTypeSocial SourceType = "social"
)

// ContentStatus represents the outcome of a full-content fetch
type ContentStatus string

const (
	ContentStatusOK      ContentStatus = "ok"
	ContentStatusBlocked ContentStatus = "blocked"
	ContentStatusError   ContentStatus = "error"
	ContentStatusSkipped ContentStatus = "skipped"
)

// EnrichStatus represents the terminal state of an enrichment attempt
type EnrichStatus string

const (
	EnrichStatusOK      EnrichStatus = "ok"
	EnrichStatusError   EnrichStatus = "error"
	EnrichStatusSkipped EnrichStatus = "skipped"
)

// Sentiment represents the overall tone of an item
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// IsValidSentiment checks if a sentiment value is one of the allowed values
func IsValidSentiment(s Sentiment) bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}

// Topic is a single taxonomy entry
type Topic struct {
	Name        string
	Description string
	Keywords    []string
	Locations   []string
}

// Taxonomy is the immutable topic and actor configuration shared by the normalizer
// and the enrichment pipeline. Build it once with NewTaxonomy and pass it by value.
type Taxonomy struct {
	topics []Topic
	actors []string
}

// NewTaxonomy creates a taxonomy, copying the given topics and actors
func NewTaxonomy(topics []Topic, actors []string) Taxonomy {
	t := Taxonomy{
		topics: make([]Topic, 0, len(topics)),
		actors: slices.Clone(actors),
	}
	for _, topic := range topics {
		t.topics = append(t.topics, Topic{
			Name:        topic.Name,
			Description: topic.Description,
			Keywords:    slices.Clone(topic.Keywords),
			Locations:   slices.Clone(topic.Locations),
		})
	}
	return t
}

// Topics returns a copy of the taxonomy topics in configuration order
func (t Taxonomy) Topics() []Topic {
	out := make([]Topic, 0, len(t.topics))
	for _, topic := range t.topics {
		out = append(out, Topic{
			Name:        topic.Name,
			Description: topic.Description,
			Keywords:    slices.Clone(topic.Keywords),
			Locations:   slices.Clone(topic.Locations),
		})
	}
	return out
}

// TopicNames returns the allowed topic names in configuration order
func (t Taxonomy) TopicNames() []string {
	names := make([]string, 0, len(t.topics))
	for _, topic := range t.topics {
		names = append(names, topic.Name)
	}
	return names
}

// HasTopic checks if a topic name belongs to the taxonomy
func (t Taxonomy) HasTopic(name string) bool {
	for _, topic := range t.topics {
		if topic.Name == name {
			return true
		}
	}
	return false
}

// Actors returns a copy of the seed actor list
func (t Taxonomy) Actors() []string {
	return slices.Clone(t.actors)
}

// FilterTopics keeps only the names that belong to the taxonomy, preserving order and dropping duplicates
func (t Taxonomy) FilterTopics(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if t.HasTopic(name) && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
