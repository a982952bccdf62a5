package enrichment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/enrichment"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

func testTaxonomy() domain.Taxonomy {
	return domain.NewTaxonomy(
		[]domain.Topic{
			{
				Name:        "anti_corruption",
				Description: "Pemberantasan korupsi",
				Keywords:    []string{"KPK", "korupsi"},
			},
			{
				Name:        "jakarta_flood",
				Description: "Banjir di Jakarta",
				Keywords:    []string{"banjir"},
				Locations:   []string{"Jakarta"},
			},
			{
				Name:        "general",
				Description: "Everything",
			},
		},
		[]string{"Prabowo Subianto", "KPK"},
	)
}

func item(title, summary string) schema.MediaItem {
	return schema.MediaItem{
		ID:                "id-1",
		Platform:          string(domain.PlatformRSS),
		SourceType:        string(domain.SourceTypeNews),
		PublisherOrAuthor: "kompas",
		URL:               "https://example.com/a",
		Title:             &title,
		Summary:           &summary,
	}
}

func TestFallbackClassify(t *testing.T) {
	tests := []struct {
		name              string
		title             string
		summary           string
		expectedTopics    []string
		expectedActors    []string
		expectedSentiment domain.Sentiment
		expectedEditorial *bool
		expectedLanguage  *string
	}{
		{
			name:              "keyword and seed actor",
			title:             "KPK periksa pejabat",
			summary:           "Kasus korupsi anggaran",
			expectedTopics:    []string{"anti_corruption", "general"},
			expectedActors:    []string{"KPK"},
			expectedSentiment: domain.SentimentNegative,
		},
		{
			name:              "location constraint not met",
			title:             "Banjir di Surabaya",
			summary:           "",
			expectedTopics:    []string{"general"},
			expectedActors:    []string{},
			expectedSentiment: domain.SentimentNeutral,
		},
		{
			name:              "keyword and location met",
			title:             "Banjir melanda Jakarta",
			summary:           "Warga yang terdampak mengungsi",
			expectedTopics:    []string{"jakarta_flood", "general"},
			expectedActors:    []string{},
			expectedSentiment: domain.SentimentNeutral,
			expectedLanguage:  stringPtr("id"),
		},
		{
			name:              "negative overrides positive",
			title:             "Apresiasi program, tapi skandal baru muncul",
			summary:           "",
			expectedTopics:    []string{"general"},
			expectedActors:    []string{},
			expectedSentiment: domain.SentimentNegative,
		},
		{
			name:              "positive and editorial",
			title:             "Opini: kinerja Prabowo Subianto bagus",
			summary:           "",
			expectedTopics:    []string{"general"},
			expectedActors:    []string{"Prabowo Subianto"},
			expectedSentiment: domain.SentimentPositive,
			expectedEditorial: boolPtr(true),
		},
		{
			name:              "html is cleaned before matching",
			title:             "<b>KPK</b> &amp; polisi",
			summary:           "",
			expectedTopics:    []string{"anti_corruption", "general"},
			expectedActors:    []string{"KPK"},
			expectedSentiment: domain.SentimentNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := enrichment.FallbackClassify(item(tt.title, tt.summary), testTaxonomy())

			assert.Equal(t, tt.expectedTopics, c.Topics)
			assert.Equal(t, tt.expectedActors, c.Actors)
			assert.Equal(t, []string{}, c.Locations)
			if assert.NotNil(t, c.Sentiment) {
				assert.Equal(t, tt.expectedSentiment, *c.Sentiment)
			}
			assert.Equal(t, tt.expectedEditorial, c.IsEditorial)
			assert.Equal(t, tt.expectedLanguage, c.Language)
		})
	}
}

func TestFallbackClassify_Deterministic(t *testing.T) {
	in := item("KPK dan korupsi", "Menurut saya buruk")
	first := enrichment.FallbackClassify(in, testTaxonomy())
	second := enrichment.FallbackClassify(in, testTaxonomy())
	assert.Equal(t, first, second)
}

func stringPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
