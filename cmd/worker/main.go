package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/media-monitor/internal/adapter"
	"github.com/feral-file/media-monitor/internal/config"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/pipeline"
	"github.com/feral-file/media-monitor/internal/store"
	"github.com/feral-file/media-monitor/internal/worker"
)

var (
	configFile      = flag.String("config", "", "Path to configuration file")
	envPath         = flag.String("env", "config/", "Path to environment files")
	interval        = flag.Duration("interval", 0, "Time between cycles, overrides worker.interval")
	offlineFixtures = flag.Bool("offline-fixtures", false, "Read source payloads from the fixtures directory instead of the network")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *interval > 0 {
		cfg.Worker.Interval = *interval
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker")

	// Connect to database
	dialect := cfg.Database.Dialect()
	db, err := store.Open(dialect, cfg.Database.DSN(), cfg.Debug)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("dialect", dialect))
	}
	if dialect == store.DialectPostgres {
		if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
			logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
		}
	}
	if err := store.AutoMigrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.String("dialect", dialect),
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
	)

	// Initialize adapters
	clock := adapter.NewClock()
	deps := pipeline.Dependencies{
		Store:      store.NewStore(db),
		HTTPClient: pipeline.NewHTTPClient(cfg.HTTP),
		FileSystem: adapter.NewFileSystem(),
		JSON:       adapter.NewJSON(),
		Clock:      clock,
	}

	p, err := pipeline.Build(cfg.PipelineConfig, pipeline.BuildOptions{OfflineFixtures: *offlineFixtures}, deps)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to build pipeline", zap.Error(err))
	}

	w := worker.NewCycleWorker(worker.Config{Interval: cfg.Worker.Interval}, p, clock)
	logger.InfoCtx(ctx, "Initialized worker",
		zap.String("name", w.Name()),
		zap.Duration("interval", cfg.Worker.Interval),
		zap.Bool("offline_fixtures", *offlineFixtures),
	)

	// Start the worker in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to interrupt the running cycle
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := w.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.InfoCtx(shutdownCtx, "Worker stopped")
}
