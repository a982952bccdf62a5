package schema

import "time"

// IngestState stores the per-source checkpoint written after every ingestion run
type IngestState struct {
	// Source is the source name (gdelt, mediastack, rss, youtube)
	Source string `gorm:"column:source;primaryKey;size:64"`
	// LastRunAt is the time the source was last ingested
	LastRunAt *time.Time `gorm:"column:last_run_at"`
	// Cursor is an opaque source-specific checkpoint
	Cursor *string `gorm:"column:cursor;type:text"`
	// UpdatedAt is the timestamp when this record was last written
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for the IngestState model
func (IngestState) TableName() string {
	return "ingest_state"
}
