package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the sync service.
type Config struct {
	DataDir          string
	Scope            string // logical source boundary; defaults to DataDir
	ReportPath       string
	CatalogPath      string
	QdrantURL        string
	QdrantCollection string
	VectorSize       int
	EmbeddingBaseURL string
	EmbeddingModel   string
	EmbeddingAPIKey  string
	BatchSize        int
	BatchFanout      int
	BatchTimeout     time.Duration
	Workers          int
	ChunkSize        int
	ChunkOverlap     int
	MaxFileSize      int64
	APIPort          string
	LogLevel         slog.Level
	LogFormat        string
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the current directory or a parent (up to the module root)
// is loaded first; variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		DataDir:          getEnv("DATA_DIR", "./data"),
		Scope:            getEnv("SYNC_SCOPE", ""),
		ReportPath:       getEnv("REPORT_PATH", "processing_results.json"),
		CatalogPath:      getEnv("CATALOG_PATH", "./catalog/ragsync.db"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "corpus"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", "dummy-key"),
		APIPort:          getEnv("API_PORT", "9000"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	if cfg.Scope == "" {
		cfg.Scope = cfg.DataDir
	}

	var err error
	if cfg.VectorSize, err = getEnvInt("QDRANT_VECTOR_SIZE", 768); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = getEnvInt("SYNC_BATCH_SIZE", 100); err != nil {
		return nil, err
	}
	if cfg.BatchFanout, err = getEnvInt("SYNC_BATCH_FANOUT", 4); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("SYNC_WORKERS", 8); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 200); err != nil {
		return nil, err
	}

	maxFileMB, err := getEnvInt("MAX_FILE_MB", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxFileSize = int64(maxFileMB) * 1024 * 1024

	timeoutSec, err := getEnvInt("SYNC_BATCH_TIMEOUT_SECONDS", 30)
	if err != nil {
		return nil, err
	}
	cfg.BatchTimeout = time.Duration(timeoutSec) * time.Second

	cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.CatalogPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.VectorSize <= 0 {
		return fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("SYNC_BATCH_SIZE must be greater than 0")
	}
	if c.BatchFanout <= 0 {
		return fmt.Errorf("SYNC_BATCH_FANOUT must be greater than 0")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("SYNC_WORKERS must be greater than 0")
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE)")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn, or error, got %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}
