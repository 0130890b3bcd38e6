package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	SourcesFile string `mapstructure:"sources_file"`
	SinksFile   string `mapstructure:"sinks_file"`
	SourceID    string `mapstructure:"source_id"`

	FetchTimeoutSeconds int64         `mapstructure:"fetch_timeout_seconds"`
	FetchTimeout        time.Duration `mapstructure:"-"`

	MaxChunkSize     int `mapstructure:"max_chunk_size"`
	ChunkOverlap     int `mapstructure:"chunk_overlap"`
	DefaultCardCount int `mapstructure:"default_card_count"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	StorageTTLSeconds      int64         `mapstructure:"storage_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	StorageTTL             time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`
}

// Card count bounds accepted from the CLI and interactive prompt.
const (
	MinCardCount = 1
	MaxCardCount = 50
)

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "wikideck-forge")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("sinks_file", "./configs/sinks.yaml")
	v.SetDefault("source_id", "wikipedia-en")
	v.SetDefault("fetch_timeout_seconds", 10)
	v.SetDefault("max_chunk_size", 1000)
	v.SetDefault("chunk_overlap", 200)
	v.SetDefault("default_card_count", 10)
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("model_name", "gemini-2.0-flash")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/articles.db")
	v.SetDefault("storage_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.FetchTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid fetch_timeout_seconds (must be positive seconds)")
	}
	cfg.FetchTimeout = time.Duration(cfg.FetchTimeoutSeconds) * time.Second

	if cfg.MaxChunkSize <= 0 {
		return nil, fmt.Errorf("invalid max_chunk_size (must be positive)")
	}
	if cfg.ChunkOverlap < 0 {
		return nil, fmt.Errorf("invalid chunk_overlap (must not be negative)")
	}
	// An overlap that reaches the window size can stall the chunker.
	if cfg.ChunkOverlap >= cfg.MaxChunkSize {
		return nil, fmt.Errorf("chunk_overlap (%d) must be smaller than max_chunk_size (%d)",
			cfg.ChunkOverlap, cfg.MaxChunkSize)
	}
	if cfg.DefaultCardCount < MinCardCount || cfg.DefaultCardCount > MaxCardCount {
		return nil, fmt.Errorf("invalid default_card_count (must be %d-%d)", MinCardCount, MaxCardCount)
	}

	if cfg.StorageTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.StorageTTL = time.Duration(cfg.StorageTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}
