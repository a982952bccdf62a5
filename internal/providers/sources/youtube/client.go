package youtube

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/alitto/pond/v2"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/normalizer"
	"github.com/feral-file/media-monitor/internal/providers/sources"
)

const (
	FEED_ENDPOINT         = "https://www.youtube.com/feeds/videos.xml"
	VIDEOS_ENDPOINT       = "https://www.googleapis.com/youtube/v3/videos"
	STATS_CHUNK_SIZE      = 50
	DEFAULT_STATS_WORKERS = 4
)

// Config holds the channel list and the optional statistics lookup settings
type Config struct {
	// Channels maps a channel name to a channel id (UC...) or a full feed url
	Channels map[string]string
	// FetchStats enables the Data API lookup; it also needs APIKey
	FetchStats     bool
	APIKey         string
	StatsWorkers   int
	FeedEndpoint   string
	VideosEndpoint string
}

type videosResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

type client struct {
	cfg        Config
	httpClient adapter.HTTPClient
}

// NewSource creates a YouTube channel feed source
func NewSource(cfg Config, httpClient adapter.HTTPClient) sources.Source {
	if cfg.StatsWorkers <= 0 {
		cfg.StatsWorkers = DEFAULT_STATS_WORKERS
	}
	if cfg.FeedEndpoint == "" {
		cfg.FeedEndpoint = FEED_ENDPOINT
	}
	if cfg.VideosEndpoint == "" {
		cfg.VideosEndpoint = VIDEOS_ENDPOINT
	}
	return &client{cfg: cfg, httpClient: httpClient}
}

func (c *client) Platform() domain.Platform {
	return domain.PlatformYouTube
}

// ChannelFeedURL returns the Atom feed url of a channel id
func (c *client) ChannelFeedURL(channelID string) string {
	return c.cfg.FeedEndpoint + "?channel_id=" + url.QueryEscape(channelID)
}

// Fetch reads every channel feed in name order and attaches statistics when enabled
func (c *client) Fetch(ctx context.Context) (normalizer.Batch, error) {
	var entries []normalizer.YouTubeEntry
	for _, name := range sources.SortedKeys(c.cfg.Channels) {
		if err := ctx.Err(); err != nil {
			return normalizer.Batch{}, err
		}

		value := strings.TrimSpace(c.cfg.Channels[name])
		feedURL, channelID := value, ""
		if !strings.HasPrefix(value, "http") {
			feedURL, channelID = c.ChannelFeedURL(value), value
		}

		feed, err := sources.FetchFeed(ctx, c.httpClient, feedURL)
		if err != nil {
			logger.WarnCtx(ctx, "Skipping YouTube channel", zap.String("channel", name), zap.String("url", feedURL), zap.Error(err))
			continue
		}

		for _, item := range feed.Items {
			if item == nil {
				continue
			}
			entries = append(entries, normalizer.YouTubeEntry{
				ChannelName: name,
				ChannelID:   channelID,
				VideoID:     videoID(item),
				Title:       item.Title,
				Link:        item.Link,
				Summary:     summary(item),
				Published:   sources.ItemPublished(item),
				Updated:     sources.ItemUpdated(item),
			})
		}
	}

	batch := normalizer.Batch{YouTube: entries}
	if c.cfg.FetchStats && c.cfg.APIKey != "" {
		batch.Stats = c.fetchStats(ctx, uniqueVideoIDs(entries))
	}
	return batch, nil
}

// fetchStats looks up statistics in chunks of STATS_CHUNK_SIZE ids on a bounded pool.
// A failing chunk is logged and leaves its videos without metrics.
func (c *client) fetchStats(ctx context.Context, ids []string) map[string]normalizer.VideoStats {
	stats := make(map[string]normalizer.VideoStats)
	if len(ids) == 0 {
		return stats
	}

	pool := pond.NewResultPool[map[string]normalizer.VideoStats](c.cfg.StatsWorkers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for start := 0; start < len(ids); start += STATS_CHUNK_SIZE {
		end := min(start+STATS_CHUNK_SIZE, len(ids))
		chunk := ids[start:end]
		group.Submit(func() map[string]normalizer.VideoStats {
			result, err := c.fetchStatsChunk(ctx, chunk)
			if err != nil {
				logger.WarnCtx(ctx, "Failed to fetch YouTube statistics", zap.Int("chunk_size", len(chunk)), zap.Error(err))
				return nil
			}
			return result
		})
	}

	results, err := group.Wait()
	if err != nil {
		logger.WarnCtx(ctx, "YouTube statistics lookup interrupted", zap.Error(err))
	}
	for _, result := range results {
		for id, s := range result {
			stats[id] = s
		}
	}
	return stats
}

func (c *client) fetchStatsChunk(ctx context.Context, ids []string) (map[string]normalizer.VideoStats, error) {
	params := url.Values{}
	params.Set("part", "statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.cfg.APIKey)

	var resp videosResponse
	if err := c.httpClient.Get(ctx, c.cfg.VideosEndpoint+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("failed to call YouTube Data API: %s", strings.ReplaceAll(err.Error(), url.QueryEscape(c.cfg.APIKey), "REDACTED"))
	}

	out := make(map[string]normalizer.VideoStats, len(resp.Items))
	for _, item := range resp.Items {
		out[item.ID] = normalizer.VideoStats{
			Views:    parseCount(item.Statistics.ViewCount),
			Likes:    parseCount(item.Statistics.LikeCount),
			Comments: parseCount(item.Statistics.CommentCount),
		}
	}
	return out, nil
}

// videoID extracts the id from a watch?v= link, falling back to the yt:videoId element
func videoID(item *gofeed.Item) string {
	if i := strings.Index(item.Link, "watch?v="); i >= 0 {
		id := item.Link[i+len("watch?v="):]
		if j := strings.Index(id, "&"); j >= 0 {
			id = id[:j]
		}
		return id
	}
	if values := item.Extensions["yt"]["videoId"]; len(values) > 0 {
		return values[0].Value
	}
	return ""
}

// summary returns the media:description of a channel feed entry
func summary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	groups := item.Extensions["media"]["group"]
	if len(groups) == 0 {
		return ""
	}
	if descriptions := groups[0].Children["description"]; len(descriptions) > 0 {
		return descriptions[0].Value
	}
	return ""
}

func uniqueVideoIDs(entries []normalizer.YouTubeEntry) []string {
	seen := make(map[string]bool, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.VideoID == "" || seen[e.VideoID] {
			continue
		}
		seen[e.VideoID] = true
		ids = append(ids, e.VideoID)
	}
	return ids
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return n
}
