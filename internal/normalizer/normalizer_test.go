package normalizer_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/mocks"
	"github.com/feral-file/media-monitor/internal/normalizer"
	"github.com/feral-file/media-monitor/internal/registry"
)

var fixedNow = time.Date(2025, 12, 30, 9, 0, 0, 0, time.UTC)

// testNormalizerMocks contains the mocks needed for testing the normalizer
type testNormalizerMocks struct {
	ctrl       *gomock.Controller
	clock      *mocks.MockClock
	normalizer normalizer.Normalizer
}

func setupTestNormalizer(t *testing.T) *testNormalizerMocks {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(fixedNow).AnyTimes()

	return &testNormalizerMocks{
		ctrl:       ctrl,
		clock:      clock,
		normalizer: normalizer.NewNormalizer(clock, adapter.NewJSON(), registry.NewPublisherRegistry(nil)),
	}
}

func tearDownTestNormalizer(m *testNormalizerMocks) {
	m.ctrl.Finish()
}

func TestNormalizeGDELT(t *testing.T) {
	m := setupTestNormalizer(t)
	defer tearDownTestNormalizer(m)

	items, err := m.normalizer.NormalizeGDELT([]normalizer.GDELTArticle{
		{
			URL:           "https://nasional.kompas.com/read/1",
			Title:         "Presiden &amp; DPR <b>bertemu</b>",
			SeenDate:      "20251230T070000Z",
			Domain:        "nasional.kompas.com",
			Language:      "Indonesian",
			SourceCountry: "Indonesia",
			Raw:           json.RawMessage(`{"url":"https://nasional.kompas.com/read/1","title":"x","extra":true}`),
		},
		{
			URL:      "https://example.org/2",
			Title:    "",
			SeenDate: "not a date",
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, domain.MakeID(domain.PlatformGDELT, "https://nasional.kompas.com/read/1"), first.ID)
	assert.Equal(t, "gdelt", first.Platform)
	assert.Equal(t, "news", first.SourceType)
	assert.Equal(t, "kompas", first.PublisherOrAuthor)
	require.NotNil(t, first.Title)
	assert.Equal(t, "Presiden & DPR bertemu", *first.Title)
	assert.Nil(t, first.Summary)
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, time.Date(2025, 12, 30, 7, 0, 0, 0, time.UTC), *first.PublishedAt)
	assert.Equal(t, fixedNow, first.IngestedAt)
	assert.Equal(t, domain.ContentHash("Presiden & DPR bertemu", ""), first.ContentHash)
	assert.Equal(t, `{"extra":true,"title":"x","url":"https://nasional.kompas.com/read/1"}`, string(first.RawJSON))
	assert.JSONEq(t, `{
		"domain": "nasional.kompas.com",
		"sourcecountry": "Indonesia",
		"language": "Indonesian",
		"socialimage": null,
		"url_mobile": null
	}`, string(first.SignalsJSON))
	assert.Nil(t, first.EnrichedAt)
	assert.Nil(t, first.Topics)

	second := items[1]
	assert.Equal(t, "unknown", second.PublisherOrAuthor)
	assert.Nil(t, second.Title)
	assert.Nil(t, second.PublishedAt)
	assert.JSONEq(t, `{"url":"https://example.org/2","title":"","seendate":"not a date","domain":""}`, string(second.RawJSON))
}

func TestNormalizeMediaStack(t *testing.T) {
	m := setupTestNormalizer(t)
	defer tearDownTestNormalizer(m)

	items, err := m.normalizer.NormalizeMediaStack([]normalizer.MediaStackArticle{
		{
			Author:      " Reuters ",
			Title:       "Rupiah menguat",
			Description: "<p>Rupiah menguat terhadap dolar https://t.co/abc</p>",
			URL:         "https://example.com/rupiah",
			Category:    "business",
			Country:     "id",
			PublishedAt: "2025-12-30T05:00:00+07:00",
		},
		{
			Source: "antaranews",
			Author: "someone",
			URL:    "https://example.com/b",
		},
		{
			URL:         "https://example.com/c",
			PublishedAt: "yesterday",
		},
		{
			Source: "   ",
			Author: "Tim Redaksi",
			URL:    "https://example.com/d",
		},
		{
			Author: " Tim Redaksi ",
			URL:    "https://example.com/e",
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "Reuters", items[0].PublisherOrAuthor)
	require.NotNil(t, items[0].Summary)
	assert.Equal(t, "Rupiah menguat terhadap dolar", *items[0].Summary)
	require.NotNil(t, items[0].PublishedAt)
	assert.Equal(t, time.Date(2025, 12, 29, 22, 0, 0, 0, time.UTC), *items[0].PublishedAt)
	assert.JSONEq(t, `{"category":"business","country":"id","language":null,"image":null}`, string(items[0].SignalsJSON))

	assert.Equal(t, "antaranews", items[1].PublisherOrAuthor)
	assert.Equal(t, "unknown", items[2].PublisherOrAuthor)
	assert.Nil(t, items[2].PublishedAt)
	assert.Nil(t, items[2].Summary)
	// A blank source does not fall through to the author
	assert.Equal(t, "unknown", items[3].PublisherOrAuthor)
	assert.Equal(t, "Tim Redaksi", items[4].PublisherOrAuthor)
}

func TestNormalizeRSS(t *testing.T) {
	m := setupTestNormalizer(t)
	defer tearDownTestNormalizer(m)

	items, err := m.normalizer.NormalizeRSS([]normalizer.RSSEntry{
		{
			FeedName:    "kompas_nasional",
			FeedURL:     "https://rss.kompas.com/nasional",
			Title:       "Judul",
			Link:        "https://kompas.com/a",
			Description: "Deskripsi",
			Updated:     "Tue, 30 Dec 2025 07:00:00 +0700",
		},
		{
			FeedName:  "tempo",
			Title:     "Tanpa tautan",
			Summary:   "Ringkasan",
			Published: "2025-12-30",
		},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "kompas", items[0].PublisherOrAuthor)
	require.NotNil(t, items[0].Summary)
	assert.Equal(t, "Deskripsi", *items[0].Summary)
	require.NotNil(t, items[0].PublishedAt)
	assert.Equal(t, time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC), *items[0].PublishedAt)
	assert.JSONEq(t, `{"feed_name":"kompas_nasional","feed_url":"https://rss.kompas.com/nasional"}`, string(items[0].SignalsJSON))

	assert.Equal(t, "tempo", items[1].PublisherOrAuthor)
	assert.Equal(t, "", items[1].URL)
	assert.Equal(t, domain.MakeID(domain.PlatformRSS, ""), items[1].ID)
	assert.Equal(t, "Ringkasan", *items[1].Summary)
}

func TestNormalizeYouTube(t *testing.T) {
	m := setupTestNormalizer(t)
	defer tearDownTestNormalizer(m)

	entries := []normalizer.YouTubeEntry{
		{
			ChannelName: "KompasTV",
			ChannelID:   "UC123",
			VideoID:     "abc",
			Title:       "Video",
			Link:        "https://www.youtube.com/watch?v=abc",
			Published:   "2025-12-30T01:02:03+00:00",
		},
		{
			ChannelName: "",
			VideoID:     "def",
			Link:        "https://www.youtube.com/watch?v=def",
		},
	}
	stats := map[string]normalizer.VideoStats{
		"abc": {Views: 10, Likes: 2, Comments: 1},
	}

	items, err := m.normalizer.NormalizeYouTube(entries, stats)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "social", items[0].SourceType)
	assert.Equal(t, "KompasTV", items[0].PublisherOrAuthor)
	assert.JSONEq(t, `{
		"channel_name": "KompasTV",
		"channel_id": "UC123",
		"video_id": "abc",
		"metrics": {"views": 10, "likes": 2, "comments": 1}
	}`, string(items[0].SignalsJSON))

	assert.Equal(t, "unknown", items[1].PublisherOrAuthor)
	assert.JSONEq(t, `{"channel_name":"","channel_id":null,"video_id":"def","metrics":{}}`, string(items[1].SignalsJSON))
}

func TestNormalize_Dispatch(t *testing.T) {
	m := setupTestNormalizer(t)
	defer tearDownTestNormalizer(m)

	batch := normalizer.Batch{
		RSS: []normalizer.RSSEntry{{FeedName: "detik", Link: "https://detik.com/1"}},
	}
	assert.Equal(t, 1, batch.Len())

	items, err := m.normalizer.Normalize(domain.PlatformRSS, batch)
	require.NoError(t, err)
	require.Len(t, items, 1)

	items, err = m.normalizer.Normalize(domain.PlatformGDELT, batch)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = m.normalizer.Normalize(domain.Platform("tiktok"), batch)
	assert.ErrorIs(t, err, domain.ErrUnknownPlatform)
}

func TestNormalize_IsDeterministic(t *testing.T) {
	m := setupTestNormalizer(t)
	defer tearDownTestNormalizer(m)

	article := normalizer.GDELTArticle{URL: "https://tempo.co/x", Title: "Sama", Domain: "tempo.co"}
	a, err := m.normalizer.NormalizeGDELT([]normalizer.GDELTArticle{article})
	require.NoError(t, err)
	b, err := m.normalizer.NormalizeGDELT([]normalizer.GDELTArticle{article})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected *time.Time
	}{
		{"2025-12-30T07:00:00Z", ptr(time.Date(2025, 12, 30, 7, 0, 0, 0, time.UTC))},
		{"2025-12-30T07:00:00.5+07:00", ptr(time.Date(2025, 12, 30, 0, 0, 0, 500000000, time.UTC))},
		{"Tue, 30 Dec 2025 07:00:00 +0000", ptr(time.Date(2025, 12, 30, 7, 0, 0, 0, time.UTC))},
		{"Tue, 30 Dec 2025 07:00:00 GMT", ptr(time.Date(2025, 12, 30, 7, 0, 0, 0, time.UTC))},
		{"Tue, 2 Dec 2025 07:00:00 +0700", ptr(time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC))},
		{"2025-12-30 07:00:00", ptr(time.Date(2025, 12, 30, 7, 0, 0, 0, time.UTC))},
		{"2025-12-30T07:00:00+0700", ptr(time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC))},
		{"2025-12-30", ptr(time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC))},
		{"", nil},
		{"garbage", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := normalizer.ParseDate(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.expected.Equal(*got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseGDELTSeenDate(t *testing.T) {
	got := normalizer.ParseGDELTSeenDate("20251230T070000Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 12, 30, 7, 0, 0, 0, time.UTC), *got)

	got = normalizer.ParseGDELTSeenDate("2025-12-30T07:00:00Z")
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2025, 12, 30, 7, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, normalizer.ParseGDELTSeenDate(""))
	assert.Nil(t, normalizer.ParseGDELTSeenDate("20251330T070000Z"))
}

func ptr(t time.Time) *time.Time {
	return &t
}
