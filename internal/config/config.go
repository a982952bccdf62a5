package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/media-monitor/internal/domain"
)

const (
	// ENV_PREFIX is the prefix of every environment variable read by the services
	ENV_PREFIX = "MEDIA_MONITOR"

	DEFAULT_SQLITE_PATH  = "data/media_monitor.db"
	DEFAULT_FIXTURES_DIR = "config/fixtures"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration.
// URL takes precedence over the other fields: postgres:// and postgresql:// urls
// select PostgreSQL, sqlite:///path selects SQLite. Without a URL, Driver decides.
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	URL             string        `mapstructure:"url"`
	Path            string        `mapstructure:"path"` // SQLite database file
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadHost        string        `mapstructure:"read_host"`
	ReadPort        int           `mapstructure:"read_port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// HTTPConfig holds the outbound HTTP client configuration
type HTTPConfig struct {
	UserAgent  string                     `mapstructure:"user_agent"`
	Timeout    time.Duration              `mapstructure:"timeout"`
	RateLimits map[string]RateLimitConfig `mapstructure:"rate_limits"` // keyed by provider name
}

// RateLimitConfig holds the request budget of a provider host
type RateLimitConfig struct {
	Host              string  `mapstructure:"host"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// GDELTConfig holds the GDELT doc API source configuration
type GDELTConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Query      string `mapstructure:"query"`
	MaxRecords int    `mapstructure:"max_records"`
	SourceLang string `mapstructure:"source_lang"`
	Timespan   string `mapstructure:"timespan"`
}

// MediaStackConfig holds the MediaStack news source configuration
type MediaStackConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	APIKey     string `mapstructure:"api_key"`
	Countries  string `mapstructure:"countries"`
	Keywords   string `mapstructure:"keywords"`
	Categories string `mapstructure:"categories"`
	Languages  string `mapstructure:"languages"`
	Limit      int    `mapstructure:"limit"`
}

// RSSConfig holds the RSS source configuration. Feed names are lower-cased by the loader.
type RSSConfig struct {
	Enabled bool              `mapstructure:"enabled"`
	Feeds   map[string]string `mapstructure:"feeds"`
}

// YouTubeConfig holds the YouTube channel feed source configuration
type YouTubeConfig struct {
	Enabled      bool              `mapstructure:"enabled"`
	Channels     map[string]string `mapstructure:"channels"`
	FetchStats   bool              `mapstructure:"fetch_stats"`
	APIKey       string            `mapstructure:"api_key"`
	StatsWorkers int               `mapstructure:"stats_workers"`
}

// SourcesConfig holds the configuration of every source
type SourcesConfig struct {
	GDELT      GDELTConfig      `mapstructure:"gdelt"`
	MediaStack MediaStackConfig `mapstructure:"mediastack"`
	RSS        RSSConfig        `mapstructure:"rss"`
	YouTube    YouTubeConfig    `mapstructure:"youtube"`
}

// PreprocessConfig holds the enrichment pass configuration
type PreprocessConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	BatchSize    int    `mapstructure:"batch_size"`
	MaxRetries   int    `mapstructure:"max_retries"`
	GeminiModel  string `mapstructure:"gemini_model"` // Overrides gemini.model when set
	ContentFetch bool   `mapstructure:"content_fetch"`
}

// GeminiConfig holds the Gemini classifier configuration
type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float64       `mapstructure:"temperature"`
}

// TopicConfig holds a single taxonomy topic
type TopicConfig struct {
	Description string   `mapstructure:"description"`
	Keywords    []string `mapstructure:"keywords"`
	Locations   []string `mapstructure:"locations"`
}

// TaxonomyConfig holds the topic taxonomy and the seed actors
type TaxonomyConfig struct {
	Topics map[string]TopicConfig `mapstructure:"topics"`
	Actors []string               `mapstructure:"actors"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker loop configuration
type WorkerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// PipelineConfig holds the configuration shared by run-once and the worker
type PipelineConfig struct {
	BaseConfig            `mapstructure:",squash"`
	Database              DatabaseConfig   `mapstructure:"database"`
	HTTP                  HTTPConfig       `mapstructure:"http"`
	Sources               SourcesConfig    `mapstructure:"sources"`
	Preprocess            PreprocessConfig `mapstructure:"preprocess"`
	Gemini                GeminiConfig     `mapstructure:"gemini"`
	Taxonomy              TaxonomyConfig   `mapstructure:"taxonomy"`
	PublisherRegistryPath string           `mapstructure:"publisher_registry_path"`
	BlacklistPath         string           `mapstructure:"blacklist_path"`
	FixturesDir           string           `mapstructure:"fixtures_dir"`
}

// RunOnceConfig holds configuration for run-once
type RunOnceConfig struct {
	PipelineConfig `mapstructure:",squash"`
}

// WorkerServiceConfig holds configuration for the worker
type WorkerServiceConfig struct {
	PipelineConfig `mapstructure:",squash"`
	Worker         WorkerConfig `mapstructure:"worker"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Database   DatabaseConfig `mapstructure:"database"`
	Auth       AuthConfig     `mapstructure:"auth"`
}

// LoadRunOnceConfig loads configuration for run-once
func LoadRunOnceConfig(configFile string, envPath string) (*RunOnceConfig, error) {
	v := configureViper("run-once", configFile, envPath)
	setPipelineDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config RunOnceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadWorkerConfig loads configuration for the worker
func LoadWorkerConfig(configFile string, envPath string) (*WorkerServiceConfig, error) {
	v := configureViper("worker", configFile, envPath)
	setPipelineDefaults(v)
	v.SetDefault("worker.interval", "30m")

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config WorkerServiceConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Worker.Interval <= 0 {
		return nil, fmt.Errorf("%w: worker.interval must be positive", domain.ErrInvalidConfig)
	}

	return &config, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var config APIConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", DEFAULT_SQLITE_PATH)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setPipelineDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	setDatabaseDefaults(v)
	v.SetDefault("http.user_agent", domain.DEFAULT_USER_AGENT)
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.rate_limits", map[string]interface{}{
		"gdelt": map[string]interface{}{
			"host":                "api.gdeltproject.org",
			"requests_per_second": 0.2,
			"burst":               1,
		},
		"gemini": map[string]interface{}{
			"host":                "generativelanguage.googleapis.com",
			"requests_per_second": 0.25,
			"burst":               1,
		},
	})
	v.SetDefault("sources.gdelt.query", "Indonesia")
	v.SetDefault("sources.gdelt.max_records", 250)
	v.SetDefault("sources.gdelt.source_lang", "ind")
	v.SetDefault("sources.mediastack.countries", "id")
	v.SetDefault("sources.mediastack.limit", 100)
	v.SetDefault("sources.youtube.stats_workers", 4)
	v.SetDefault("preprocess.enabled", true)
	v.SetDefault("preprocess.batch_size", domain.DEFAULT_BATCH_SIZE)
	v.SetDefault("preprocess.max_retries", domain.DEFAULT_MAX_RETRIES)
	v.SetDefault("preprocess.content_fetch", true)
	v.SetDefault("gemini.model", domain.DEFAULT_GEMINI_MODEL)
	v.SetDefault("gemini.timeout", "30s")
	v.SetDefault("gemini.temperature", domain.DEFAULT_GEMINI_TEMPERATURE)
	v.SetDefault("fixtures_dir", DEFAULT_FIXTURES_DIR)
}

// readConfig reads the config file. A missing file is tolerated.
func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// Either config.yaml or config.json
		v.SetConfigName("config")
		// Search for the config file in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/worker/, cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// legacyEnvVars maps config keys to the unprefixed variable names used by existing deployments
var legacyEnvVars = map[string]string{
	"gemini.api_key":             "GEMINI_API_KEY",
	"gemini.model":               "GEMINI_MODEL",
	"sources.mediastack.api_key": "MEDIASTACK_KEY",
	"sources.youtube.api_key":    "YOUTUBE_API_KEY",
	"http.user_agent":            "HTTP_USER_AGENT",
	"database.url":               "DATABASE_URL",
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	// Common config keys
	commonKeys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.driver",
		"database.path",
		"database.host",
		"database.port",
		"database.read_host",
		"database.read_port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// HTTP
		"http.timeout",
		// Sources
		"sources.gdelt.enabled",
		"sources.gdelt.query",
		"sources.gdelt.max_records",
		"sources.gdelt.source_lang",
		"sources.gdelt.timespan",
		"sources.mediastack.enabled",
		"sources.mediastack.countries",
		"sources.mediastack.keywords",
		"sources.mediastack.categories",
		"sources.mediastack.languages",
		"sources.mediastack.limit",
		"sources.rss.enabled",
		"sources.youtube.enabled",
		"sources.youtube.fetch_stats",
		"sources.youtube.stats_workers",
		// Preprocess
		"preprocess.enabled",
		"preprocess.batch_size",
		"preprocess.max_retries",
		"preprocess.gemini_model",
		"preprocess.content_fetch",
		// Gemini
		"gemini.base_url",
		"gemini.timeout",
		"gemini.temperature",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.jwt_public_key",
		"auth.api_keys",
		// Files
		"publisher_registry_path",
		"blacklist_path",
		"fixtures_dir",
		// Worker
		"worker.interval",
	}

	for _, key := range commonKeys {
		_ = v.BindEnv(key)
	}

	// Prefixed name first, so MEDIA_MONITOR_* wins over the legacy name
	for key, legacy := range legacyEnvVars {
		_ = v.BindEnv(key, envName(key), legacy)
	}
}

// envName returns the prefixed environment variable name of a config key
func envName(key string) string {
	return ENV_PREFIX + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	// Create candidates list
	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// Dialect returns the database driver the configuration resolves to (postgres or sqlite)
func (c *DatabaseConfig) Dialect() string {
	switch {
	case strings.HasPrefix(c.URL, "postgres://"), strings.HasPrefix(c.URL, "postgresql://"):
		return "postgres"
	case strings.HasPrefix(c.URL, "sqlite:"):
		return "sqlite"
	case strings.EqualFold(c.Driver, "postgres"), strings.EqualFold(c.Driver, "postgresql"):
		return "postgres"
	default:
		return "sqlite"
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	if c.Dialect() == "sqlite" {
		if strings.HasPrefix(c.URL, "sqlite:") {
			return sqlitePath(c.URL)
		}
		if c.Path == "" {
			return DEFAULT_SQLITE_PATH
		}
		return c.Path
	}

	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ReadDSN returns the read-replica database connection string.
// It is empty unless a PostgreSQL read host is configured.
// If ReadPort is not configured, it falls back to Port.
func (c *DatabaseConfig) ReadDSN() string {
	if c.ReadHost == "" || c.Dialect() != "postgres" {
		return ""
	}

	port := c.ReadPort
	if port == 0 {
		port = c.Port
	}

	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.ReadHost, port, c.User, c.Password, c.DBName, c.SSLMode)
}

// sqlitePath turns sqlite:///relative/path and sqlite:////absolute/path urls into a file path
func sqlitePath(url string) string {
	path := strings.TrimPrefix(url, "sqlite:")
	path = strings.TrimPrefix(path, "//")
	if strings.HasPrefix(path, "//") {
		// sqlite:////abs/path
		return path[1:]
	}
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return DEFAULT_SQLITE_PATH
	}
	return path
}

// EnrichmentModel returns the model used for enrichment, preferring preprocess.gemini_model
func (c *PipelineConfig) EnrichmentModel() string {
	if c.Preprocess.GeminiModel != "" {
		return c.Preprocess.GeminiModel
	}
	if c.Gemini.Model != "" {
		return c.Gemini.Model
	}
	return domain.DEFAULT_GEMINI_MODEL
}

// ToDomain builds the immutable taxonomy. Topics are ordered by name.
func (c TaxonomyConfig) ToDomain() domain.Taxonomy {
	names := make([]string, 0, len(c.Topics))
	for name := range c.Topics {
		names = append(names, name)
	}
	sort.Strings(names)

	topics := make([]domain.Topic, 0, len(names))
	for _, name := range names {
		topic := c.Topics[name]
		topics = append(topics, domain.Topic{
			Name:        name,
			Description: strings.TrimSpace(topic.Description),
			Keywords:    topic.Keywords,
			Locations:   topic.Locations,
		})
	}

	return domain.NewTaxonomy(topics, c.Actors)
}
