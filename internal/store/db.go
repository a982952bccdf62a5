package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/store/schema"
)

const (
	// DialectPostgres selects the PostgreSQL driver
	DialectPostgres = "postgres"
	// DialectSQLite selects the embedded SQLite driver
	DialectSQLite = "sqlite"
)

type dbStore struct {
	db *gorm.DB
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewStore creates a new store on top of a gorm connection (PostgreSQL or SQLite)
func NewStore(db *gorm.DB) Store {
	return &dbStore{db: db}
}

// Open opens a database connection for the given dialect.
// SQLite databases are limited to a single open connection since the store is single-writer.
func Open(dialect string, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case DialectPostgres:
		dialector = postgres.Open(dsn)
	case DialectSQLite:
		if err := ensureSQLiteDir(dsn); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: unsupported database dialect %q", domain.ErrInvalidConfig, dialect)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  newGormLogger(log.New(os.Stdout, "\r\n", log.LstdFlags), debug),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// newGormLogger logs slow queries and errors, or every statement in debug mode.
// Lookups of absent rows are part of the upsert flow and are not reported.
func newGormLogger(w gormlogger.Writer, debug bool) gormlogger.Interface {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}
	return gormlogger.New(w, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
		Colorful:                  true,
	})
}

// ensureSQLiteDir creates the parent directory of a file-backed SQLite database
func ensureSQLiteDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	path := dsn
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// AutoMigrate creates or updates the tables managed by the store
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(schema.Models()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 10 (if 0)
//   - MaxIdleConns: 2 (if 0)
//   - ConnMaxLifetime: 1 hour (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 2
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = time.Hour
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// ConfigureReadReplica routes read queries to a PostgreSQL replica.
// Writes and transactions keep using the primary connection.
func ConfigureReadReplica(db *gorm.DB, readDSN string) error {
	if readDSN == "" {
		return nil
	}
	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{postgres.Open(readDSN)},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replica: %w", err)
	}
	return nil
}

// UpsertMediaItems applies the items in order, each in its own transaction.
// New ids are inserted as-is. Existing ids get every column refreshed except the
// protected columns and raw_json, which is written once on insert.
func (s *dbStore) UpsertMediaItems(ctx context.Context, items []schema.MediaItem) (int, int, error) {
	inserted, updated := 0, 0
	for i := range items {
		item := items[i]
		created, err := s.upsertMediaItem(ctx, &item)
		if err != nil {
			return inserted, updated, fmt.Errorf("failed to upsert media item %s: %w", item.ID, err)
		}
		if created {
			inserted++
		} else {
			updated++
		}
	}
	return inserted, updated, nil
}

func (s *dbStore) upsertMediaItem(ctx context.Context, item *schema.MediaItem) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the existing row (if any) so the merge applies against a stable snapshot
		var existing []schema.MediaItem
		result := s.lockForUpdate(tx).
			Select("id").
			Where("id = ?", item.ID).
			Limit(1).
			Find(&existing)
		if result.Error != nil {
			return fmt.Errorf("failed to lock media item: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("failed to insert media item: %w", err)
			}
			created = true
			return nil
		}

		err := tx.Model(&schema.MediaItem{}).
			Where("id = ?", item.ID).
			Updates(mergeColumns(item)).Error
		if err != nil {
			return fmt.Errorf("failed to merge media item: %w", err)
		}
		return nil
	})
	return created, err
}

// lockForUpdate adds a row-level lock where the dialect supports it
func (s *dbStore) lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == DialectPostgres {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// mergeColumns returns the columns an existing row receives from a re-ingested item
func mergeColumns(item *schema.MediaItem) map[string]interface{} {
	columns := map[string]interface{}{
		"platform":            item.Platform,
		"source_type":         item.SourceType,
		"publisher_or_author": item.PublisherOrAuthor,
		"url":                 item.URL,
		"title":               item.Title,
		"summary":             item.Summary,
		"published_at":        item.PublishedAt,
		"ingested_at":         item.IngestedAt,
		"content_text":        item.ContentText,
		"content_fetched_at":  item.ContentFetchedAt,
		"content_status":      item.ContentStatus,
		"content_hash":        item.ContentHash,
		"topics":              item.Topics,
		"actors":              item.Actors,
		"locations":           item.Locations,
		"language":            item.Language,
		"is_editorial":        item.IsEditorial,
		"sentiment":           item.Sentiment,
		"tags_json":           item.TagsJSON,
		"enriched_at":         item.EnrichedAt,
		"enrich_model":        item.EnrichModel,
		"enrich_status":       item.EnrichStatus,
		"enrich_error":        item.EnrichError,
		"signals_json":        item.SignalsJSON,
		"raw_json":            item.RawJSON,
	}

	for _, column := range ProtectedColumns {
		delete(columns, column)
	}
	delete(columns, "raw_json")

	return columns
}

// ListPendingMediaItems returns up to limit items whose enriched_at is null.
// The query always runs on the primary since enrichment writes follow immediately.
func (s *dbStore) ListPendingMediaItems(ctx context.Context, limit int) ([]schema.MediaItem, error) {
	if limit <= 0 {
		return []schema.MediaItem{}, nil
	}

	db := s.db.WithContext(ctx)
	if hasDBResolver(s.db) {
		db = db.Clauses(dbresolver.Write)
	}

	var items []schema.MediaItem
	err := db.
		Where("enriched_at IS NULL").
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending media items: %w", err)
	}

	return items, nil
}

// RecordContent stores fetched article content
func (s *dbStore) RecordContent(ctx context.Context, input RecordContentInput) error {
	updates := map[string]interface{}{
		"content_text":       input.Text,
		"content_fetched_at": input.FetchedAt.UTC(),
		"content_status":     string(input.Status),
	}
	if input.Hash != nil && *input.Hash != "" {
		updates["content_hash"] = *input.Hash
	}

	err := s.db.WithContext(ctx).
		Model(&schema.MediaItem{}).
		Where("id = ?", input.ItemID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to record content: %w", err)
	}

	return nil
}

// RecordEnrichment stores an enrichment outcome. Writing a non-null enriched_at
// removes the item from the pending set.
func (s *dbStore) RecordEnrichment(ctx context.Context, input RecordEnrichmentInput) error {
	var sentiment *string
	if input.Sentiment != nil {
		v := string(*input.Sentiment)
		sentiment = &v
	}

	status := string(input.Status)
	model := input.Model
	enrichedAt := input.EnrichedAt.UTC()

	updates := map[string]interface{}{
		"topics":        nonNilList(input.Topics),
		"actors":        nonNilList(input.Actors),
		"locations":     nonNilList(input.Locations),
		"language":      input.Language,
		"is_editorial":  input.IsEditorial,
		"sentiment":     sentiment,
		"tags_json":     datatypes.JSON(input.TagsJSON),
		"enrich_model":  &model,
		"enrich_status": &status,
		"enrich_error":  input.Error,
		"enriched_at":   &enrichedAt,
	}

	err := s.db.WithContext(ctx).
		Model(&schema.MediaItem{}).
		Where("id = ?", input.ItemID).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("failed to record enrichment: %w", err)
	}

	return nil
}

func nonNilList(values []string) schema.StringList {
	if values == nil {
		return schema.StringList{}
	}
	return schema.StringList(slices.Clone(values))
}

// GetIngestState retrieves the checkpoint of a source
func (s *dbStore) GetIngestState(ctx context.Context, source string) (*schema.IngestState, error) {
	var state schema.IngestState
	err := s.db.WithContext(ctx).Where("source = ?", source).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ingest state: %w", err)
	}

	return &state, nil
}

// SetIngestState creates or overwrites the checkpoint of a source
func (s *dbStore) SetIngestState(ctx context.Context, source string, lastRunAt time.Time, cursor *string) error {
	lastRun := lastRunAt.UTC()
	state := schema.IngestState{
		Source:    source,
		LastRunAt: &lastRun,
		Cursor:    cursor,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_run_at", "cursor", "updated_at"}),
		}).
		Create(&state).Error
	if err != nil {
		return fmt.Errorf("failed to set ingest state: %w", err)
	}

	return nil
}

// QueryMediaItems filters media items by publication time, platform and publisher,
// applies the limit, then keeps the rows sharing at least one of TopicsAny.
// Because the limit runs first, a topic-filtered result may hold fewer than Limit
// rows even when more matching rows exist beyond the limit window.
func (s *dbStore) QueryMediaItems(ctx context.Context, query MediaItemQuery) ([]schema.MediaItem, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = domain.DEFAULT_QUERY_LIMIT
	}

	db := s.db.WithContext(ctx).Model(&schema.MediaItem{})
	if query.Since != nil {
		db = db.Where("published_at >= ?", query.Since.UTC())
	}
	if query.Platform != "" {
		db = db.Where("platform = ?", string(query.Platform))
	}
	if query.Publisher != "" {
		db = db.Where("publisher_or_author = ?", query.Publisher)
	}

	var rows []schema.MediaItem
	err := db.
		Order("created_at ASC").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query media items: %w", err)
	}

	if len(query.TopicsAny) == 0 {
		return rows, nil
	}

	filtered := make([]schema.MediaItem, 0, len(rows))
	for _, row := range rows {
		for _, topic := range row.Topics {
			if slices.Contains(query.TopicsAny, topic) {
				filtered = append(filtered, row)
				break
			}
		}
	}

	return filtered, nil
}

// GetMediaItemByID retrieves a media item by id
func (s *dbStore) GetMediaItemByID(ctx context.Context, id string) (*schema.MediaItem, error) {
	var item schema.MediaItem
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err == nil {
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get media item: %w", err)
	}
	if !hasDBResolver(s.db) {
		return nil, nil
	}

	// Replica can lag behind primary; retry on primary before returning not found.
	err = s.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ?", id).
		First(&item).Error
	if err == nil {
		return &item, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, fmt.Errorf("failed to get media item: %w", err)
}

// CountMediaItems returns the total number of items and the number still pending enrichment
func (s *dbStore) CountMediaItems(ctx context.Context) (int64, int64, error) {
	var total, pending int64
	if err := s.db.WithContext(ctx).Model(&schema.MediaItem{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count media items: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&schema.MediaItem{}).Where("enriched_at IS NULL").Count(&pending).Error; err != nil {
		return 0, 0, fmt.Errorf("failed to count pending media items: %w", err)
	}
	return total, pending, nil
}
