package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPlatform(t *testing.T) {
	assert.True(t, IsValidPlatform(PlatformGDELT))
	assert.True(t, IsValidPlatform(PlatformYouTube))
	assert.False(t, IsValidPlatform(Platform("twitter")))
	assert.False(t, IsValidPlatform(Platform("")))
}

func TestIsValidSentiment(t *testing.T) {
	assert.True(t, IsValidSentiment(SentimentNeutral))
	assert.False(t, IsValidSentiment(Sentiment("mixed")))
}

func TestTaxonomy_IsImmutable(t *testing.T) {
	keywords := []string{"pemilu"}
	actors := []string{"KPU"}
	tax := NewTaxonomy([]Topic{{Name: "election", Keywords: keywords}}, actors)

	keywords[0] = "changed"
	actors[0] = "changed"
	assert.Equal(t, []string{"pemilu"}, tax.Topics()[0].Keywords)
	assert.Equal(t, []string{"KPU"}, tax.Actors())

	topics := tax.Topics()
	topics[0].Name = "mutated"
	assert.Equal(t, []string{"election"}, tax.TopicNames())
}

func TestTaxonomy_FilterTopics(t *testing.T) {
	tax := NewTaxonomy([]Topic{{Name: "economy"}, {Name: "election"}}, nil)

	assert.Equal(t, []string{"election", "economy"}, tax.FilterTopics([]string{"election", "sports", " economy ", "election"}))
	assert.Empty(t, tax.FilterTopics(nil))
	assert.True(t, tax.HasTopic("economy"))
	assert.False(t, tax.HasTopic("sports"))
}
