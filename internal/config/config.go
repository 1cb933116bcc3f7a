package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort    string
	DBPath     string
	LibraryDir string

	AuthServiceURL string

	QdrantURL        string
	QdrantVectorSize int

	EmbeddingBaseURL   string
	EmbeddingModelName string
	EmbeddingAPIKey    string

	RerankEnabled bool
	RerankBaseURL string
	RerankModel   string
	RerankAPIKey  string

	DailyQuota          int
	CandidatesPerBook   int
	MaxRerankCandidates int
	TopPassages         int

	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Try to find project root by looking for a .env file up the tree
	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:    getEnv("API_PORT", "9000"),
		DBPath:     getEnv("DB_PATH", "./data/versefinder.db"),
		LibraryDir: getEnv("LIBRARY_DIR", "./data/library"),

		AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),

		QdrantURL: getEnv("QDRANT_URL", "http://localhost:6333"),

		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		EmbeddingAPIKey:    getEnv("EMBEDDING_API_KEY", "dummy-key"),

		RerankEnabled: getEnvBool("RERANK_ENABLED", true),
		RerankBaseURL: getEnv("RERANK_BASE_URL", "http://localhost:8080"),
		RerankModel:   getEnv("RERANK_MODEL", "Llama-3.1-8B-Instruct"),
		RerankAPIKey:  getEnv("RERANK_API_KEY", "dummy-key"),

		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}

	// Vector size must match the embedding model output; if it changes,
	// every book collection must be re-indexed.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	if cfg.AuthServiceURL == "" {
		return nil, fmt.Errorf("AUTH_SERVICE_URL is required")
	}

	cfg.DailyQuota, err = getEnvInt("DAILY_QUOTA", 50)
	if err != nil {
		return nil, err
	}
	cfg.CandidatesPerBook, err = getEnvInt("CANDIDATES_PER_BOOK", 10)
	if err != nil {
		return nil, err
	}
	cfg.MaxRerankCandidates, err = getEnvInt("MAX_RERANK_CANDIDATES", 18)
	if err != nil {
		return nil, err
	}
	cfg.TopPassages, err = getEnvInt("TOP_PASSAGES", 3)
	if err != nil {
		return nil, err
	}

	// Create data directories if they don't exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.LibraryDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create library directory: %w", err)
	}

	return cfg, nil
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
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
