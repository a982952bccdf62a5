package domain

const (
	// Enrichment constants
	MAX_CONTENT_CHARS          = 4000
	FALLBACK_MODEL_NAME        = "fallback_keyword"
	DEFAULT_GEMINI_MODEL       = "models/gemini-2.0-flash-lite"
	DEFAULT_GEMINI_TEMPERATURE = 0.1
	DEFAULT_BATCH_SIZE         = 20
	DEFAULT_MAX_RETRIES        = 2
	CONTENT_HASH_MAX_RUNE      = 200

	// Ingestion constants
	UNKNOWN_PUBLISHER  = "unknown"
	DEFAULT_USER_AGENT = "Mozilla/5.0 (compatible; MediaMonitor/1.0)"

	// Query constants
	DEFAULT_QUERY_LIMIT = 2000
)
