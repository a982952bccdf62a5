package normalizer

import "encoding/json"

// GDELTArticle is one entry of a GDELT doc API artlist response
type GDELTArticle struct {
	URL           string `json:"url"`
	URLMobile     string `json:"url_mobile,omitempty"`
	Title         string `json:"title"`
	SeenDate      string `json:"seendate"`
	SocialImage   string `json:"socialimage,omitempty"`
	Domain        string `json:"domain"`
	Language      string `json:"language,omitempty"`
	SourceCountry string `json:"sourcecountry,omitempty"`

	// Raw is the record exactly as received, when available
	Raw json.RawMessage `json:"-"`
}

// MediaStackArticle is one entry of a MediaStack news response
type MediaStackArticle struct {
	Author      string `json:"author,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Source      string `json:"source,omitempty"`
	Image       string `json:"image,omitempty"`
	Category    string `json:"category,omitempty"`
	Language    string `json:"language,omitempty"`
	Country     string `json:"country,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// RSSEntry is one entry of an RSS or Atom feed, annotated with the feed it came from
type RSSEntry struct {
	FeedName    string `json:"_feed_name"`
	FeedURL     string `json:"_feed_url,omitempty"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Published   string `json:"published,omitempty"`
	Updated     string `json:"updated,omitempty"`
	Author      string `json:"author,omitempty"`
	GUID        string `json:"id,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// YouTubeEntry is one entry of a YouTube channel feed
type YouTubeEntry struct {
	ChannelName string `json:"_channel_name"`
	// ChannelID is empty when the channel was configured by full feed URL
	ChannelID string `json:"_channel_id,omitempty"`
	VideoID   string `json:"video_id,omitempty"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Summary   string `json:"summary,omitempty"`
	Published string `json:"published,omitempty"`
	Updated   string `json:"updated,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// VideoStats holds the public statistics of a YouTube video
type VideoStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// Batch is the raw output of one source fetch. Only the slice matching the
// platform is populated.
type Batch struct {
	GDELT      []GDELTArticle
	MediaStack []MediaStackArticle
	RSS        []RSSEntry
	YouTube    []YouTubeEntry
	// Stats maps a video id to its statistics
	Stats map[string]VideoStats
}

// Len returns the number of raw records in the batch
func (b Batch) Len() int {
	return len(b.GDELT) + len(b.MediaStack) + len(b.RSS) + len(b.YouTube)
}
