package enrichment

import (
	"fmt"
	"strings"

	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

const promptTemplate = `You are an information extraction and classification engine for media monitoring.

Your task is to analyze the article and return structured metadata.

IMPORTANT RULES FOR TOPICS:
- Topics are semantic concepts defined by their descriptions.
- Keywords are ONLY indicative signals and must NOT be used alone.
- Assign a topic ONLY if the article clearly fits the topic description.
- One article MAY belong to multiple topics.
- Topics MUST be chosen ONLY from this allowed list: [%s].
- If none apply, return an empty list.

ACTOR RULES:
- Actors include public figures, government bodies, political parties, companies, and organizations.
- Use full names where possible.
- If an actor is implied but not explicitly named, include it only if highly confident.

OUTPUT FORMAT:
Return ONLY valid JSON that matches this schema:
{
  "topics": [string],
  "actors": [string],
  "locations": [string],
  "language": string | null,
  "is_editorial": boolean | null,
  "sentiment": "positive" | "negative" | "neutral",
  "actor_quotes": [
    {
      "actor": string,
      "quote": string,
      "context": string
    }
  ]
}

NOTES:
- Extract actor_quotes ONLY if there are direct quotations (verbatim).
- Do NOT paraphrase quotes.
- If no direct quotes exist, return an empty list for actor_quotes.

TAXONOMY:
%s

SEED ACTORS (for reference only, not exhaustive):
%s

ARTICLE METADATA:
Platform: %s
Source type: %s
Publisher/Author: %s
URL: %s

ARTICLE CONTENT:
Title: %s

Summary:
%s

Full Content:
%s
`

// BuildPrompt renders the classification prompt of an item.
// The content is cleaned and truncated to MAX_CONTENT_CHARS runes.
func BuildPrompt(item schema.MediaItem, taxonomy domain.Taxonomy, contentText string) string {
	topics := taxonomy.Topics()
	blocks := make([]string, 0, len(topics))
	for _, topic := range topics {
		blocks = append(blocks, topicBlock(topic))
	}

	return fmt.Sprintf(promptTemplate,
		strings.Join(taxonomy.TopicNames(), ", "),
		strings.Join(blocks, "\n"),
		strings.Join(taxonomy.Actors(), ", "),
		item.Platform,
		item.SourceType,
		item.PublisherOrAuthor,
		item.URL,
		domain.CleanText(deref(item.Title)),
		domain.CleanText(deref(item.Summary)),
		domain.Truncate(domain.CleanText(contentText), domain.MAX_CONTENT_CHARS),
	)
}

func topicBlock(topic domain.Topic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- %s\n  Description:\n  %s", topic.Name, domain.CleanText(topic.Description))
	if len(topic.Keywords) > 0 {
		fmt.Fprintf(&b, "\n  Indicative keywords: %s", strings.Join(topic.Keywords, ", "))
	}
	return b.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
