package sources

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/feral-file/media-monitor/internal/adapter"
)

// FetchFeed downloads and parses an RSS or Atom feed
func FetchFeed(ctx context.Context, httpClient adapter.HTTPClient, feedURL string) (*gofeed.Feed, error) {
	resp, err := httpClient.Fetch(ctx, feedURL, map[string]string{
		"Accept": "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("feed returned status code %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

// ItemPublished returns the publication time of a feed item, preferring the
// parsed value in RFC3339 and falling back to the raw string
func ItemPublished(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	return item.Published
}

// ItemUpdated is the ItemPublished counterpart for the update time
func ItemUpdated(item *gofeed.Item) string {
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC().Format(time.RFC3339)
	}
	return item.Updated
}

// ItemAuthor returns the first author name of a feed item
func ItemAuthor(item *gofeed.Item) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		return item.Authors[0].Name
	}
	return ""
}
