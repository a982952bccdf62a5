package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/config"
	"github.com/feral-file/media-monitor/internal/content"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/enrichment"
	"github.com/feral-file/media-monitor/internal/ingest"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/normalizer"
	"github.com/feral-file/media-monitor/internal/providers/gemini"
	"github.com/feral-file/media-monitor/internal/providers/sources"
	"github.com/feral-file/media-monitor/internal/providers/sources/gdelt"
	"github.com/feral-file/media-monitor/internal/providers/sources/mediastack"
	"github.com/feral-file/media-monitor/internal/providers/sources/rss"
	"github.com/feral-file/media-monitor/internal/providers/sources/youtube"
	"github.com/feral-file/media-monitor/internal/ratelimit"
	"github.com/feral-file/media-monitor/internal/registry"
	"github.com/feral-file/media-monitor/internal/store"
)

// Dependencies holds the collaborators shared by the pipeline components
type Dependencies struct {
	Store      store.Store
	HTTPClient adapter.HTTPClient
	FileSystem adapter.FileSystem
	JSON       adapter.JSON
	Clock      adapter.Clock
}

// NewHTTPClient creates the outbound HTTP client with retries and per-provider rate limits
func NewHTTPClient(cfg config.HTTPConfig) adapter.HTTPClient {
	limits := make(map[string]ratelimit.Limit, len(cfg.RateLimits))
	for provider, limit := range cfg.RateLimits {
		limits[provider] = ratelimit.Limit{
			Host:              limit.Host,
			RequestsPerSecond: limit.RequestsPerSecond,
			Burst:             limit.Burst,
		}
	}
	return ratelimit.NewHTTPClient(adapter.NewHTTPClient(cfg.Timeout, adapter.WithUserAgent(cfg.UserAgent)), limits)
}

// BuildSources creates the enabled sources in the fixed order gdelt, mediastack, rss, youtube.
// With offline set every source replays <fixturesDir>/<platform>_sample.json and no
// credential is required.
func BuildSources(cfg config.SourcesConfig, offline bool, fixturesDir string, deps Dependencies) ([]sources.Source, error) {
	var srcs []sources.Source

	if offline {
		enabled := []struct {
			platform domain.Platform
			on       bool
		}{
			{domain.PlatformGDELT, cfg.GDELT.Enabled},
			{domain.PlatformMediaStack, cfg.MediaStack.Enabled},
			{domain.PlatformRSS, cfg.RSS.Enabled},
			{domain.PlatformYouTube, cfg.YouTube.Enabled},
		}
		for _, e := range enabled {
			if e.on {
				srcs = append(srcs, sources.NewFixtureSource(e.platform, fixturesDir, deps.FileSystem, deps.JSON))
			}
		}
		return srcs, nil
	}

	if cfg.GDELT.Enabled {
		srcs = append(srcs, gdelt.NewSource(gdelt.Config{
			Query:      cfg.GDELT.Query,
			MaxRecords: cfg.GDELT.MaxRecords,
			SourceLang: cfg.GDELT.SourceLang,
			Timespan:   cfg.GDELT.Timespan,
		}, deps.HTTPClient, deps.JSON))
	}

	if cfg.MediaStack.Enabled {
		src, err := mediastack.NewSource(mediastack.Config{
			AccessKey:  cfg.MediaStack.APIKey,
			Countries:  cfg.MediaStack.Countries,
			Keywords:   cfg.MediaStack.Keywords,
			Categories: cfg.MediaStack.Categories,
			Languages:  cfg.MediaStack.Languages,
			Limit:      cfg.MediaStack.Limit,
		}, deps.HTTPClient, deps.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to create mediastack source: %w", err)
		}
		srcs = append(srcs, src)
	}

	if cfg.RSS.Enabled {
		srcs = append(srcs, rss.NewSource(rss.Config{Feeds: cfg.RSS.Feeds}, deps.HTTPClient))
	}

	if cfg.YouTube.Enabled {
		if cfg.YouTube.FetchStats && cfg.YouTube.APIKey == "" {
			logger.Warn("YouTube statistics enabled without an API key, metrics will be empty")
		}
		srcs = append(srcs, youtube.NewSource(youtube.Config{
			Channels:     cfg.YouTube.Channels,
			FetchStats:   cfg.YouTube.FetchStats,
			APIKey:       cfg.YouTube.APIKey,
			StatsWorkers: cfg.YouTube.StatsWorkers,
		}, deps.HTTPClient))
	}

	return srcs, nil
}

// BuildEnricher creates the enricher of a pipeline config, nil when preprocessing is disabled.
// Without a Gemini key the enricher runs the keyword fallback.
func BuildEnricher(cfg config.PipelineConfig, deps Dependencies) (enrichment.Enricher, error) {
	if !cfg.Preprocess.Enabled {
		return nil, nil
	}

	model := cfg.EnrichmentModel()

	var classifier enrichment.Classifier
	if cfg.Gemini.APIKey != "" {
		client, err := gemini.NewClient(gemini.Config{
			APIKey:      cfg.Gemini.APIKey,
			Model:       model,
			BaseURL:     cfg.Gemini.BaseURL,
			Timeout:     cfg.Gemini.Timeout,
			Temperature: cfg.Gemini.Temperature,
		}, deps.HTTPClient, deps.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		classifier = client
		model = client.Model()
	} else {
		logger.Info("No Gemini API key configured, using the keyword fallback classifier")
	}

	return enrichment.NewEnricher(
		enrichment.Config{
			BatchSize:    cfg.Preprocess.BatchSize,
			MaxRetries:   cfg.Preprocess.MaxRetries,
			Model:        model,
			FetchContent: cfg.Preprocess.ContentFetch,
		},
		deps.Store,
		content.NewFetcher(deps.HTTPClient),
		classifier,
		cfg.Taxonomy.ToDomain(),
		deps.Clock,
		deps.JSON,
	), nil
}

// BuildOptions selects how the pipeline reaches its sources
type BuildOptions struct {
	// OfflineFixtures replays recorded samples instead of calling the network
	OfflineFixtures bool
	// EnrichOnly builds no sources, so source credentials are not required
	EnrichOnly bool
}

// Build wires a complete pipeline from configuration
func Build(cfg config.PipelineConfig, opts BuildOptions, deps Dependencies) (Pipeline, error) {
	publishers := registry.NewPublisherRegistry(nil)
	if cfg.PublisherRegistryPath != "" {
		loaded, err := registry.NewPublisherRegistryLoader(deps.FileSystem, deps.JSON).Load(cfg.PublisherRegistryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load publisher registry: %w", err)
		}
		publishers = loaded
	}

	var blacklist registry.BlacklistRegistry
	if cfg.BlacklistPath != "" {
		loaded, err := registry.NewBlacklistRegistryLoader(deps.FileSystem, deps.JSON).Load(cfg.BlacklistPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load blacklist: %w", err)
		}
		blacklist = loaded
	}

	var srcs []sources.Source
	if opts.EnrichOnly {
		logger.Info("Enrich-only run, sources are not built")
	} else {
		built, err := BuildSources(cfg.Sources, opts.OfflineFixtures, cfg.FixturesDir, deps)
		if err != nil {
			return nil, err
		}
		if len(built) == 0 {
			logger.Warn("No sources enabled")
		}
		for _, src := range built {
			logger.Info("Source enabled", zap.String("source", string(src.Platform())), zap.Bool("offline", opts.OfflineFixtures))
		}
		srcs = built
	}

	enricher, err := BuildEnricher(cfg, deps)
	if err != nil {
		return nil, err
	}

	ingester := ingest.NewIngester(
		srcs,
		normalizer.NewNormalizer(deps.Clock, deps.JSON, publishers),
		blacklist,
		deps.Store,
		deps.Clock,
	)

	return NewPipeline(ingester, enricher, deps.Clock), nil
}
