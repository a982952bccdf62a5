package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/normalizer"
)

// Source defines the interface of a raw media source
//
//go:generate mockgen -source=source.go -destination=../../mocks/source.go -package=mocks -mock_names=Source=MockSource
type Source interface {
	// Platform returns the platform the source feeds
	Platform() domain.Platform

	// Fetch retrieves one batch of raw records. A failing feed or channel inside
	// a multi-feed source yields no entries rather than an error.
	Fetch(ctx context.Context) (normalizer.Batch, error)
}

// DecodeGDELT decodes GDELT artlist records, keeping the received bytes of each one
func DecodeGDELT(codec adapter.JSON, raws []json.RawMessage) ([]normalizer.GDELTArticle, error) {
	return decodeRecords(codec, raws, func(a *normalizer.GDELTArticle, raw json.RawMessage) { a.Raw = raw })
}

// DecodeMediaStack decodes MediaStack news records, keeping the received bytes of each one
func DecodeMediaStack(codec adapter.JSON, raws []json.RawMessage) ([]normalizer.MediaStackArticle, error) {
	return decodeRecords(codec, raws, func(a *normalizer.MediaStackArticle, raw json.RawMessage) { a.Raw = raw })
}

// DecodeRSS decodes feed entries grouped by feed name. Entries without a
// feed annotation inherit the group name.
func DecodeRSS(codec adapter.JSON, groups map[string][]json.RawMessage) ([]normalizer.RSSEntry, error) {
	var out []normalizer.RSSEntry
	for _, name := range SortedKeys(groups) {
		entries, err := decodeRecords(codec, groups[name], func(e *normalizer.RSSEntry, raw json.RawMessage) { e.Raw = raw })
		if err != nil {
			return nil, err
		}
		for i := range entries {
			if entries[i].FeedName == "" {
				entries[i].FeedName = name
			}
		}
		out = append(out, entries...)
	}
	return out, nil
}

// DecodeYouTube decodes channel feed entries grouped by channel name
func DecodeYouTube(codec adapter.JSON, groups map[string][]json.RawMessage) ([]normalizer.YouTubeEntry, error) {
	var out []normalizer.YouTubeEntry
	for _, name := range SortedKeys(groups) {
		entries, err := decodeRecords(codec, groups[name], func(e *normalizer.YouTubeEntry, raw json.RawMessage) { e.Raw = raw })
		if err != nil {
			return nil, err
		}
		for i := range entries {
			if entries[i].ChannelName == "" {
				entries[i].ChannelName = name
			}
		}
		out = append(out, entries...)
	}
	return out, nil
}

func decodeRecords[T any](codec adapter.JSON, raws []json.RawMessage, keepRaw func(*T, json.RawMessage)) ([]T, error) {
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var record T
		if err := codec.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("failed to decode record %d: %w", i, err)
		}
		keepRaw(&record, raw)
		out = append(out, record)
	}
	return out, nil
}

// SortedKeys returns the keys of a name-keyed map in lexical order, so feeds and
// channels are always visited in the same order
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
