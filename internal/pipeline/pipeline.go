package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/enrichment"
	"github.com/feral-file/media-monitor/internal/ingest"
	"github.com/feral-file/media-monitor/internal/logger"
)

// Options controls a single cycle
type Options struct {
	// EnrichOnly skips ingestion and only processes pending items
	EnrichOnly bool
}

// CycleResult summarizes one ingest and enrichment cycle.
// Ingest is nil when ingestion was skipped, Enrich when enrichment is disabled.
type CycleResult struct {
	CycleID    string            `json:"cycle_id"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Ingest     *ingest.Stats     `json:"ingest,omitempty"`
	Enrich     *enrichment.Stats `json:"enrich,omitempty"`
}

// Pipeline runs monitoring cycles
//
//go:generate mockgen -source=pipeline.go -destination=../mocks/pipeline.go -package=mocks -mock_names=Pipeline=MockPipeline
type Pipeline interface {
	// RunCycle runs ingestion (unless EnrichOnly) followed by one enrichment pass
	RunCycle(ctx context.Context, opts Options) (*CycleResult, error)
}

type pipeline struct {
	ingester ingest.Ingester
	enricher enrichment.Enricher
	clock    adapter.Clock
}

// NewPipeline creates a pipeline. A nil enricher disables the enrichment pass.
func NewPipeline(ingester ingest.Ingester, enricher enrichment.Enricher, clock adapter.Clock) Pipeline {
	return &pipeline{
		ingester: ingester,
		enricher: enricher,
		clock:    clock,
	}
}

func (p *pipeline) RunCycle(ctx context.Context, opts Options) (*CycleResult, error) {
	startedAt := p.clock.Now().UTC()
	result := &CycleResult{
		CycleID:   ulid.MustNewDefault(startedAt).String(),
		StartedAt: startedAt,
	}
	cycleField := zap.String("cycle_id", result.CycleID)

	if opts.EnrichOnly {
		logger.InfoCtx(ctx, "Skipping ingestion (enrich-only)", cycleField)
	} else {
		stats, err := p.ingester.Run(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to ingest sources: %w", err)
		}
		result.Ingest = &stats
		logger.InfoCtx(ctx, "Ingestion finished",
			cycleField,
			zap.Int("inserted_total", stats.InsertedTotal),
			zap.Int("updated_total", stats.UpdatedTotal),
		)
	}

	if p.enricher == nil {
		logger.InfoCtx(ctx, "Enrichment disabled", cycleField)
	} else {
		stats, err := p.enricher.EnrichPending(ctx)
		if err != nil {
			return result, fmt.Errorf("failed to enrich pending media items: %w", err)
		}
		result.Enrich = &stats
		logger.InfoCtx(ctx, "Enrichment finished",
			cycleField,
			zap.Int("pending", stats.Pending),
			zap.Int("enriched_ok", stats.EnrichedOK),
			zap.Int("enriched_error", stats.EnrichedError),
			zap.Int("skipped", stats.Skipped),
		)
	}

	result.FinishedAt = p.clock.Now().UTC()
	return result, nil
}
