package rss

import (
	"context"

	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/normalizer"
	"github.com/feral-file/media-monitor/internal/providers/sources"
)

// Config maps a feed name to its url. The publisher of an entry is the feed
// name up to its first underscore, so "kompas_nasional" is published by kompas.
type Config struct {
	Feeds map[string]string
}

type client struct {
	cfg        Config
	httpClient adapter.HTTPClient
}

// NewSource creates an RSS/Atom source over the configured feeds
func NewSource(cfg Config, httpClient adapter.HTTPClient) sources.Source {
	return &client{cfg: cfg, httpClient: httpClient}
}

func (c *client) Platform() domain.Platform {
	return domain.PlatformRSS
}

// Fetch reads every feed in name order. A failing feed is logged and contributes no entries.
func (c *client) Fetch(ctx context.Context) (normalizer.Batch, error) {
	var entries []normalizer.RSSEntry
	for _, name := range sources.SortedKeys(c.cfg.Feeds) {
		if err := ctx.Err(); err != nil {
			return normalizer.Batch{}, err
		}

		feedURL := c.cfg.Feeds[name]
		feed, err := sources.FetchFeed(ctx, c.httpClient, feedURL)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping RSS feed", zap.String("feed", name), zap.String("url", feedURL), zap.Error(err))
			continue
		}

		for _, item := range feed.Items {
			if item == nil {
				continue
			}
			entries = append(entries, normalizer.RSSEntry{
				FeedName:    name,
				FeedURL:     feedURL,
				Title:       item.Title,
				Link:        item.Link,
				Summary:     item.Description,
				Description: item.Content,
				Published:   sources.ItemPublished(item),
				Updated:     sources.ItemUpdated(item),
				Author:      sources.ItemAuthor(item),
				GUID:        item.GUID,
			})
		}
		logger.DebugCtx(ctx, "Fetched RSS feed", zap.String("feed", name), zap.Int("count", len(feed.Items)))
	}

	return normalizer.Batch{RSS: entries}, nil
}
