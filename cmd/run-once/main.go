package main

import (
	"context"
	"errors"
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
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/pipeline"
	"github.com/feral-file/media-monitor/internal/store"
)

var (
	configFile      = flag.String("config", "", "Path to configuration file")
	envPath         = flag.String("env", "config/", "Path to environment files")
	offlineFixtures = flag.Bool("offline-fixtures", false, "Read source payloads from the fixtures directory instead of the network")
	enrichOnly      = flag.Bool("enrich-only", false, "Skip ingestion and only enrich pending items")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadRunOnceConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Cancel the cycle on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "run-once",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting one-shot cycle",
		zap.Bool("offline_fixtures", *offlineFixtures),
		zap.Bool("enrich_only", *enrichOnly),
	)

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
	logger.InfoCtx(ctx, "Connected to database", zap.String("dialect", dialect))

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	deps := pipeline.Dependencies{
		Store:      store.NewStore(db),
		HTTPClient: pipeline.NewHTTPClient(cfg.HTTP),
		FileSystem: adapter.NewFileSystem(),
		JSON:       jsonAdapter,
		Clock:      adapter.NewClock(),
	}

	p, err := pipeline.Build(cfg.PipelineConfig, pipeline.BuildOptions{OfflineFixtures: *offlineFixtures, EnrichOnly: *enrichOnly}, deps)
	if err != nil {
		if errors.Is(err, domain.ErrMissingCredential) {
			logger.FatalCtx(ctx, "Missing required credential", zap.Error(err))
		}
		logger.FatalCtx(ctx, "Failed to build pipeline", zap.Error(err))
	}

	result, err := p.RunCycle(ctx, pipeline.Options{EnrichOnly: *enrichOnly})
	if err != nil {
		logger.FatalCtx(ctx, "Cycle failed", zap.Error(err))
	}

	summary, err := jsonAdapter.Marshal(result)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to encode cycle summary", zap.Error(err))
	}
	fmt.Println(string(summary))

	logger.InfoCtx(ctx, "One-shot cycle finished", zap.String("cycle_id", result.CycleID))
}
