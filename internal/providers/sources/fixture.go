package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/normalizer"
)

// FixtureFileName returns the sample file name of a platform, e.g. gdelt_sample.json
func FixtureFileName(platform domain.Platform) string {
	return fmt.Sprintf("%s_sample.json", platform)
}

// fixtureSource replays a recorded sample instead of calling the network
type fixtureSource struct {
	platform domain.Platform
	path     string
	fs       adapter.FileSystem
	json     adapter.JSON
}

// NewFixtureSource creates a source reading <dir>/<platform>_sample.json.
// GDELT and MediaStack samples are lists; RSS and YouTube samples map a feed
// or channel name to its entries.
func NewFixtureSource(platform domain.Platform, dir string, fs adapter.FileSystem, json adapter.JSON) Source {
	return &fixtureSource{
		platform: platform,
		path:     filepath.Join(dir, FixtureFileName(platform)),
		fs:       fs,
		json:     json,
	}
}

func (s *fixtureSource) Platform() domain.Platform {
	return s.platform
}

// Fetch reads and decodes the sample file
func (s *fixtureSource) Fetch(_ context.Context) (normalizer.Batch, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return normalizer.Batch{}, fmt.Errorf("failed to read fixture %s: %w", s.path, err)
	}

	var batch normalizer.Batch
	switch s.platform {
	case domain.PlatformGDELT, domain.PlatformMediaStack:
		var raws []json.RawMessage
		if err := s.json.Unmarshal(data, &raws); err != nil {
			return normalizer.Batch{}, fmt.Errorf("failed to parse fixture %s: %w", s.path, err)
		}
		if s.platform == domain.PlatformGDELT {
			batch.GDELT, err = DecodeGDELT(s.json, raws)
		} else {
			batch.MediaStack, err = DecodeMediaStack(s.json, raws)
		}
	case domain.PlatformRSS, domain.PlatformYouTube:
		var groups map[string][]json.RawMessage
		if err := s.json.Unmarshal(data, &groups); err != nil {
			return normalizer.Batch{}, fmt.Errorf("failed to parse fixture %s: %w", s.path, err)
		}
		if s.platform == domain.PlatformRSS {
			batch.RSS, err = DecodeRSS(s.json, groups)
		} else {
			// Recorded samples carry no statistics
			batch.YouTube, err = DecodeYouTube(s.json, groups)
		}
	default:
		return normalizer.Batch{}, fmt.Errorf("%w: %s", domain.ErrUnknownPlatform, s.platform)
	}
	if err != nil {
		return normalizer.Batch{}, fmt.Errorf("failed to decode fixture %s: %w", s.path, err)
	}

	return batch, nil
}
