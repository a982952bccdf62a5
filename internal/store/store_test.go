package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// buildTestMediaItem creates a media item ready to be upserted
func buildTestMediaItem(platform domain.Platform, url, title string, publishedAt time.Time) schema.MediaItem {
	summary := "ringkasan " + title
	published := publishedAt.UTC()
	sourceType := domain.SourceTypeNews
	if platform == domain.PlatformYouTube {
		sourceType = domain.SourceTypeSocial
	}

	return schema.MediaItem{
		ID:                domain.MakeID(platform, url),
		Platform:          string(platform),
		SourceType:        string(sourceType),
		PublisherOrAuthor: "kompas",
		URL:               url,
		Title:             &title,
		Summary:           &summary,
		PublishedAt:       &published,
		IngestedAt:        time.Now().UTC(),
		ContentHash:       domain.ContentHash(title, summary),
		SignalsJSON:       datatypes.JSON(`{"feed_name":"kompas_nasional"}`),
		RawJSON:           datatypes.JSON(`{"title":"` + title + `"}`),
	}
}

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

// recordOK marks an item as enriched with the given topics
func recordOK(t *testing.T, store Store, id string, topics ...string) {
	sentiment := domain.SentimentNeutral
	err := store.RecordEnrichment(context.Background(), RecordEnrichmentInput{
		ItemID:      id,
		Topics:      topics,
		Actors:      []string{"Prabowo Subianto"},
		Locations:   []string{"Jakarta"},
		Language:    stringPtr("id"),
		IsEditorial: boolPtr(false),
		Sentiment:   &sentiment,
		TagsJSON:    []byte(`{"topics":["x"]}`),
		Model:       "models/gemini-2.0-flash-lite",
		Status:      domain.EnrichStatusOK,
		EnrichedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
}

// =============================================================================
// Test: UpsertMediaItems
// =============================================================================

func testUpsertMediaItems(t *testing.T, store Store) {
	ctx := context.Background()
	published := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	t.Run("inserts new items", func(t *testing.T) {
		items := []schema.MediaItem{
			buildTestMediaItem(domain.PlatformRSS, "https://example.com/1", "Satu", published),
			buildTestMediaItem(domain.PlatformRSS, "https://example.com/2", "Dua", published),
		}

		inserted, updated, err := store.UpsertMediaItems(ctx, items)
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)
		assert.Equal(t, 0, updated)

		item, err := store.GetMediaItemByID(ctx, items[0].ID)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "Satu", *item.Title)
		assert.Equal(t, string(domain.PlatformRSS), item.Platform)
		assert.Nil(t, item.EnrichedAt)
		assert.True(t, item.IsPending())
		require.NotNil(t, item.PublishedAt)
		assert.True(t, published.Equal(*item.PublishedAt))
		assert.JSONEq(t, `{"title":"Satu"}`, string(item.RawJSON))
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		inserted, updated, err := store.UpsertMediaItems(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, inserted)
		assert.Equal(t, 0, updated)
	})

	t.Run("duplicate id in one batch applies in order", func(t *testing.T) {
		first := buildTestMediaItem(domain.PlatformRSS, "https://example.com/dup", "First", published)
		second := buildTestMediaItem(domain.PlatformRSS, "https://example.com/dup", "Second", published.Add(time.Minute))
		require.Equal(t, first.ID, second.ID)

		inserted, updated, err := store.UpsertMediaItems(ctx, []schema.MediaItem{first, second})
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)
		assert.Equal(t, 1, updated)

		item, err := store.GetMediaItemByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "Second", *item.Title)
		assert.True(t, published.Add(time.Minute).Equal(*item.PublishedAt))
		assert.JSONEq(t, `{"title":"First"}`, string(item.RawJSON))
	})

	t.Run("re-ingest refreshes source fields and keeps raw_json", func(t *testing.T) {
		original := buildTestMediaItem(domain.PlatformGDELT, "https://example.com/re", "Lama", published)
		_, _, err := store.UpsertMediaItems(ctx, []schema.MediaItem{original})
		require.NoError(t, err)

		changed := buildTestMediaItem(domain.PlatformGDELT, "https://example.com/re", "Baru", published.Add(time.Hour))
		changed.PublisherOrAuthor = "tempo"
		inserted, updated, err := store.UpsertMediaItems(ctx, []schema.MediaItem{changed})
		require.NoError(t, err)
		assert.Equal(t, 0, inserted)
		assert.Equal(t, 1, updated)

		item, err := store.GetMediaItemByID(ctx, original.ID)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "Baru", *item.Title)
		assert.Equal(t, "tempo", item.PublisherOrAuthor)
		assert.True(t, published.Add(time.Hour).Equal(*item.PublishedAt))
		assert.JSONEq(t, `{"title":"Lama"}`, string(item.RawJSON))
	})

	t.Run("re-ingest never touches protected columns", func(t *testing.T) {
		original := buildTestMediaItem(domain.PlatformRSS, "https://example.com/protected", "Asli", published)
		_, _, err := store.UpsertMediaItems(ctx, []schema.MediaItem{original})
		require.NoError(t, err)

		err = store.RecordContent(ctx, RecordContentInput{
			ItemID:    original.ID,
			Text:      "isi artikel",
			FetchedAt: time.Now().UTC(),
			Status:    domain.ContentStatusOK,
		})
		require.NoError(t, err)
		recordOK(t, store, original.ID, "politik")

		again := buildTestMediaItem(domain.PlatformRSS, "https://example.com/protected", "Asli diperbarui", published)
		again.ContentHash = "different"
		_, updated, err := store.UpsertMediaItems(ctx, []schema.MediaItem{again})
		require.NoError(t, err)
		assert.Equal(t, 1, updated)

		item, err := store.GetMediaItemByID(ctx, original.ID)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "Asli diperbarui", *item.Title)
		assert.Equal(t, original.ContentHash, item.ContentHash)
		assert.Equal(t, schema.StringList{"politik"}, item.Topics)
		assert.Equal(t, schema.StringList{"Prabowo Subianto"}, item.Actors)
		require.NotNil(t, item.ContentText)
		assert.Equal(t, "isi artikel", *item.ContentText)
		require.NotNil(t, item.EnrichedAt)
		require.NotNil(t, item.EnrichStatus)
		assert.Equal(t, string(domain.EnrichStatusOK), *item.EnrichStatus)
		assert.False(t, item.IsPending())
	})
}

// =============================================================================
// Test: ListPendingMediaItems
// =============================================================================

func testListPendingMediaItems(t *testing.T, store Store) {
	ctx := context.Background()
	published := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	var ids []string
	for _, url := range []string{"https://example.com/p1", "https://example.com/p2", "https://example.com/p3"} {
		item := buildTestMediaItem(domain.PlatformRSS, url, url, published)
		_, _, err := store.UpsertMediaItems(ctx, []schema.MediaItem{item})
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}

	t.Run("returns pending items in insertion order", func(t *testing.T) {
		items, err := store.ListPendingMediaItems(ctx, 10)
		require.NoError(t, err)
		require.Len(t, items, 3)
		for i, item := range items {
			assert.Equal(t, ids[i], item.ID)
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		items, err := store.ListPendingMediaItems(ctx, 2)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, ids[0], items[0].ID)
		assert.Equal(t, ids[1], items[1].ID)
	})

	t.Run("zero limit returns nothing", func(t *testing.T) {
		items, err := store.ListPendingMediaItems(ctx, 0)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("enriched items leave the pending set", func(t *testing.T) {
		recordOK(t, store, ids[0])

		items, err := store.ListPendingMediaItems(ctx, 10)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, ids[1], items[0].ID)
		assert.Equal(t, ids[2], items[1].ID)
	})
}

// =============================================================================
// Test: RecordContent
// =============================================================================

func testRecordContent(t *testing.T, store Store) {
	ctx := context.Background()
	item := buildTestMediaItem(domain.PlatformMediaStack, "https://example.com/content", "Konten", time.Now())
	_, _, err := store.UpsertMediaItems(ctx, []schema.MediaItem{item})
	require.NoError(t, err)

	t.Run("stores text and status", func(t *testing.T) {
		fetchedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		err := store.RecordContent(ctx, RecordContentInput{
			ItemID:    item.ID,
			Text:      "",
			FetchedAt: fetchedAt,
			Status:    domain.ContentStatusBlocked,
		})
		require.NoError(t, err)

		got, err := store.GetMediaItemByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.ContentStatus)
		assert.Equal(t, string(domain.ContentStatusBlocked), *got.ContentStatus)
		require.NotNil(t, got.ContentText)
		assert.Equal(t, "", *got.ContentText)
		require.NotNil(t, got.ContentFetchedAt)
		assert.True(t, fetchedAt.Equal(*got.ContentFetchedAt))
		assert.Equal(t, item.ContentHash, got.ContentHash)
		assert.True(t, got.IsPending())
	})

	t.Run("replaces content hash when given", func(t *testing.T) {
		err := store.RecordContent(ctx, RecordContentInput{
			ItemID:    item.ID,
			Text:      "isi",
			FetchedAt: time.Now(),
			Status:    domain.ContentStatusOK,
			Hash:      stringPtr("abc"),
		})
		require.NoError(t, err)

		got, err := store.GetMediaItemByID(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, "abc", got.ContentHash)
	})

	t.Run("unknown item is a no-op", func(t *testing.T) {
		err := store.RecordContent(ctx, RecordContentInput{
			ItemID:    "missing",
			Text:      "isi",
			FetchedAt: time.Now(),
			Status:    domain.ContentStatusOK,
		})
		require.NoError(t, err)

		total, _, err := store.CountMediaItems(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

// =============================================================================
// Test: RecordEnrichment
// =============================================================================

func testRecordEnrichment(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("successful enrichment stores every field", func(t *testing.T) {
		item := buildTestMediaItem(domain.PlatformRSS, "https://example.com/e1", "E1", time.Now())
		_, _, err := store.UpsertMediaItems(ctx, []schema.MediaItem{item})
		require.NoError(t, err)

		recordOK(t, store, item.ID, "politik", "ekonomi")

		got, err := store.GetMediaItemByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, schema.StringList{"politik", "ekonomi"}, got.Topics)
		assert.Equal(t, schema.StringList{"Jakarta"}, got.Locations)
		assert.Equal(t, "id", *got.Language)
		assert.False(t, *got.IsEditorial)
		assert.Equal(t, string(domain.SentimentNeutral), *got.Sentiment)
		assert.JSONEq(t, `{"topics":["x"]}`, string(got.TagsJSON))
		assert.Equal(t, "models/gemini-2.0-flash-lite", *got.EnrichModel)
		assert.Nil(t, got.EnrichError)
		assert.NotNil(t, got.EnrichedAt)
	})

	t.Run("failed enrichment stores empty lists and nulls", func(t *testing.T) {
		item := buildTestMediaItem(domain.PlatformRSS, "https://example.com/e2", "E2", time.Now())
		_, _, err := store.UpsertMediaItems(ctx, []schema.MediaItem{item})
		require.NoError(t, err)

		err = store.RecordEnrichment(ctx, RecordEnrichmentInput{
			ItemID:     item.ID,
			TagsJSON:   []byte(`{}`),
			Model:      "models/gemini-2.0-flash-lite",
			Status:     domain.EnrichStatusError,
			Error:      stringPtr("invalid_json: unexpected end of JSON input"),
			EnrichedAt: time.Now(),
		})
		require.NoError(t, err)

		got, err := store.GetMediaItemByID(ctx, item.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.NotNil(t, got.Topics)
		assert.Empty(t, got.Topics)
		assert.NotNil(t, got.Actors)
		assert.Empty(t, got.Actors)
		assert.Nil(t, got.Language)
		assert.Nil(t, got.IsEditorial)
		assert.Nil(t, got.Sentiment)
		assert.JSONEq(t, `{}`, string(got.TagsJSON))
		assert.Equal(t, string(domain.EnrichStatusError), *got.EnrichStatus)
		assert.Equal(t, "invalid_json: unexpected end of JSON input", *got.EnrichError)
		assert.False(t, got.IsPending())
	})

	t.Run("unknown item is a no-op", func(t *testing.T) {
		err := store.RecordEnrichment(ctx, RecordEnrichmentInput{
			ItemID:     "missing",
			Model:      domain.FALLBACK_MODEL_NAME,
			Status:     domain.EnrichStatusSkipped,
			EnrichedAt: time.Now(),
		})
		require.NoError(t, err)
	})
}

// =============================================================================
// Test: IngestState
// =============================================================================

func testIngestState(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("absent source returns nil", func(t *testing.T) {
		state, err := store.GetIngestState(ctx, "gdelt")
		require.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("set then overwrite", func(t *testing.T) {
		first := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		err := store.SetIngestState(ctx, "rss", first, stringPtr("2024-04-30T23:00:00Z"))
		require.NoError(t, err)

		state, err := store.GetIngestState(ctx, "rss")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "rss", state.Source)
		assert.True(t, first.Equal(*state.LastRunAt))
		assert.Equal(t, "2024-04-30T23:00:00Z", *state.Cursor)

		second := first.Add(30 * time.Minute)
		err = store.SetIngestState(ctx, "rss", second, nil)
		require.NoError(t, err)

		state, err = store.GetIngestState(ctx, "rss")
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.True(t, second.Equal(*state.LastRunAt))
		assert.Nil(t, state.Cursor)
	})
}

// =============================================================================
// Test: QueryMediaItems
// =============================================================================

func testQueryMediaItems(t *testing.T, store Store) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	old := buildTestMediaItem(domain.PlatformRSS, "https://example.com/q-old", "Old", base.Add(-48*time.Hour))
	rss := buildTestMediaItem(domain.PlatformRSS, "https://example.com/q-rss", "RSS", base)
	gdelt := buildTestMediaItem(domain.PlatformGDELT, "https://example.com/q-gdelt", "GDELT", base.Add(time.Hour))
	gdelt.PublisherOrAuthor = "detik"
	for _, item := range []schema.MediaItem{old, rss, gdelt} {
		_, _, err := store.UpsertMediaItems(ctx, []schema.MediaItem{item})
		require.NoError(t, err)
	}
	recordOK(t, store, old.ID, "politik")
	recordOK(t, store, gdelt.ID, "ekonomi")

	tests := []struct {
		name     string
		query    MediaItemQuery
		expected []string
	}{
		{
			name:     "no filters returns everything in insertion order",
			query:    MediaItemQuery{},
			expected: []string{old.ID, rss.ID, gdelt.ID},
		},
		{
			name:     "since filters on published_at",
			query:    MediaItemQuery{Since: &base},
			expected: []string{rss.ID, gdelt.ID},
		},
		{
			name:     "platform filter",
			query:    MediaItemQuery{Platform: domain.PlatformGDELT},
			expected: []string{gdelt.ID},
		},
		{
			name:     "publisher filter",
			query:    MediaItemQuery{Publisher: "kompas"},
			expected: []string{old.ID, rss.ID},
		},
		{
			name:     "topics filter keeps any overlap",
			query:    MediaItemQuery{TopicsAny: []string{"ekonomi", "hukum"}},
			expected: []string{gdelt.ID},
		},
		{
			name:     "topics filter runs after limit",
			query:    MediaItemQuery{TopicsAny: []string{"ekonomi"}, Limit: 2},
			expected: []string{},
		},
		{
			name:     "limit",
			query:    MediaItemQuery{Limit: 1},
			expected: []string{old.ID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := store.QueryMediaItems(ctx, tt.query)
			require.NoError(t, err)

			ids := make([]string, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

// =============================================================================
// Test: GetMediaItemByID / CountMediaItems
// =============================================================================

func testGetMediaItemByID(t *testing.T, store Store) {
	item, err := store.GetMediaItemByID(context.Background(), domain.MakeID(domain.PlatformRSS, "https://example.com/none"))
	require.NoError(t, err)
	assert.Nil(t, item)
}

func testCountMediaItems(t *testing.T, store Store) {
	ctx := context.Background()

	total, pending, err := store.CountMediaItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, int64(0), pending)

	a := buildTestMediaItem(domain.PlatformYouTube, "https://www.youtube.com/watch?v=a", "A", time.Now())
	b := buildTestMediaItem(domain.PlatformYouTube, "https://www.youtube.com/watch?v=b", "B", time.Now())
	_, _, err = store.UpsertMediaItems(ctx, []schema.MediaItem{a, b})
	require.NoError(t, err)
	recordOK(t, store, a.ID)

	total, pending, err = store.CountMediaItems(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(1), pending)
}

// RunStoreTests runs the shared store test suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"UpsertMediaItems", testUpsertMediaItems},
		{"ListPendingMediaItems", testListPendingMediaItems},
		{"RecordContent", testRecordContent},
		{"RecordEnrichment", testRecordEnrichment},
		{"IngestState", testIngestState},
		{"QueryMediaItems", testQueryMediaItems},
		{"GetMediaItemByID", testGetMediaItemByID},
		{"CountMediaItems", testCountMediaItems},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

func TestMergeColumns(t *testing.T) {
	item := buildTestMediaItem(domain.PlatformRSS, "https://example.com/m", "M", time.Now())
	columns := mergeColumns(&item)

	for _, protected := range ProtectedColumns {
		assert.NotContains(t, columns, protected)
	}
	assert.NotContains(t, columns, "raw_json")
	assert.Contains(t, columns, "title")
	assert.Contains(t, columns, "signals_json")
	assert.Contains(t, columns, "ingested_at")
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	tests := []struct {
		name                       string
		maxOpen, maxIdle           int
		lifetime, idleTime         time.Duration
		wantOpen, wantIdle         int
		wantLifetime, wantIdleTime time.Duration
	}{
		{"defaults", 0, 0, 0, 0, 10, 2, time.Hour, 10 * time.Minute},
		{"idle clamped to open", 3, 5, time.Minute, time.Second, 3, 3, time.Minute, time.Second},
		{"kept", 20, 4, 2 * time.Hour, time.Minute, 20, 4, 2 * time.Hour, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(tt.maxOpen, tt.maxIdle, tt.lifetime, tt.idleTime)
			assert.Equal(t, tt.wantOpen, open)
			assert.Equal(t, tt.wantIdle, idle)
			assert.Equal(t, tt.wantLifetime, lifetime)
			assert.Equal(t, tt.wantIdleTime, idleTime)
		})
	}
}
