package enrichment

import (
	"strings"

	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

var (
	editorialMarkers = []string{"opini", "menurut saya", "seharusnya", "kritik"}
	positiveMarkers  = []string{"positif", "baik", "bagus", "apresiasi"}
	negativeMarkers  = []string{"negatif", "buruk", "jelek", "korupsi", "skandal"}
	indonesianWords  = []string{"yang", "dan", "tidak", "dengan"}
)

// FallbackClassify tags an item by keyword matching over its title and summary.
// It is used when no model credential is configured and never fails.
func FallbackClassify(item schema.MediaItem, taxonomy domain.Taxonomy) *Classification {
	text := strings.ToLower(domain.CleanText(deref(item.Title)) + " " + domain.CleanText(deref(item.Summary)))

	topics := make([]string, 0)
	for _, topic := range taxonomy.Topics() {
		if len(topic.Keywords) > 0 && !containsAny(text, lowerAll(topic.Keywords)) {
			continue
		}
		if len(topic.Locations) > 0 && !containsAny(text, lowerAll(topic.Locations)) {
			continue
		}
		topics = append(topics, topic.Name)
	}

	actors := make([]string, 0)
	for _, actor := range taxonomy.Actors() {
		if strings.Contains(text, strings.ToLower(actor)) {
			actors = append(actors, actor)
		}
	}

	result := &Classification{
		Topics:      topics,
		Actors:      actors,
		Locations:   []string{},
		ActorQuotes: []ActorQuote{},
	}

	if containsAny(text, editorialMarkers) {
		editorial := true
		result.IsEditorial = &editorial
	}

	sentiment := domain.SentimentNeutral
	if containsAny(text, positiveMarkers) {
		sentiment = domain.SentimentPositive
	}
	if containsAny(text, negativeMarkers) {
		sentiment = domain.SentimentNegative
	}
	result.Sentiment = &sentiment

	if containsAny(text, indonesianWords) {
		lang := "id"
		result.Language = &lang
	}

	return result
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
