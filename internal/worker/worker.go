package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/pipeline"
)

const (
	DEFAULT_CYCLE_INTERVAL = 30 * time.Minute // Time to sleep between cycles
)

// Worker defines the interface for long-running background loops
type Worker interface {
	// Start begins the worker's main loop
	// This is a blocking call that runs until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop gracefully stops the worker
	// It waits for the in-progress cycle to complete
	Stop(ctx context.Context) error

	// Name returns the worker's name for logging and identification
	Name() string
}

// Config holds configuration for the cycle worker
type Config struct {
	Interval time.Duration    // Sleep between the end of a cycle and the start of the next
	Options  pipeline.Options // Options passed to every cycle
}

// cycleWorker repeats pipeline cycles on a fixed interval
type cycleWorker struct {
	config    Config
	pipeline  pipeline.Pipeline
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewCycleWorker creates a worker running one pipeline cycle per interval
func NewCycleWorker(config Config, p pipeline.Pipeline, clock adapter.Clock) Worker {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_CYCLE_INTERVAL
	}
	return &cycleWorker{
		config:    config,
		pipeline:  p,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the worker's name
func (w *cycleWorker) Name() string {
	return "media-monitor-worker"
}

// Start runs cycles until the context is canceled or stop is requested.
// A failed cycle is logged and the loop continues.
func (w *cycleWorker) Start(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return fmt.Errorf("worker already running")
	}
	defer func() {
		w.running.Store(false)
		close(w.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting worker",
		zap.Duration("interval", w.config.Interval),
		zap.Bool("enrich_only", w.config.Options.EnrichOnly),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Worker stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-w.stopChan:
			logger.InfoCtx(ctx, "Worker stop requested")
			return nil
		default:
			w.runCycle(ctx)
			w.sleep(ctx, w.config.Interval)
		}
	}
}

// Stop gracefully stops the worker with timeout support
func (w *cycleWorker) Stop(ctx context.Context) error {
	if !w.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping worker")

	// Signal stop to the main loop
	close(w.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-w.stoppedCh:
		logger.InfoCtx(ctx, "Worker stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Worker stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runCycle runs a single cycle and logs its outcome. A panic inside the cycle
// is recovered and logged like a failed cycle.
func (w *cycleWorker) runCycle(ctx context.Context) {
	startTime := w.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("cycle panicked: %v", r),
				zap.Duration("duration", w.clock.Since(startTime)),
			)
		}
	}()

	result, err := w.pipeline.RunCycle(ctx, w.config.Options)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			fields := []zap.Field{zap.Duration("duration", w.clock.Since(startTime))}
			if result != nil {
				fields = append(fields, zap.String("cycle_id", result.CycleID))
			}
			logger.ErrorCtx(ctx, fmt.Errorf("cycle failed: %w", err), fields...)
		}
		return
	}

	logger.InfoCtx(ctx, "Cycle completed",
		zap.String("cycle_id", result.CycleID),
		zap.Duration("duration", w.clock.Since(startTime)),
	)
}

// sleep waits for the duration, returning false when interrupted by cancellation or stop
func (w *cycleWorker) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-w.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-w.stopChan:
		return false // Interrupted by stop signal
	}
}
