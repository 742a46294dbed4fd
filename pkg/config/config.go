package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. Environment
// variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Redis (optional cache + rate limit backend)
	Redis RedisConfig

	// Upstream market data
	Market MarketConfig

	// Enrichment
	Enrich EnrichConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	URL string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// MarketConfig holds upstream quote/profile source configuration.
type MarketConfig struct {
	// QuoteBaseURL serves the JSON chart/quote endpoints.
	QuoteBaseURL string
	// ProfileBaseURL serves the HTML company profile pages.
	ProfileBaseURL string
	// RequestsPerSecond caps outbound calls to the upstream source.
	RequestsPerSecond int
	// Universe is the set of tickers the scheduler refreshes.
	Universe []string
	// RefreshSchedule is the cron expression for snapshot refresh.
	RefreshSchedule string
}

// EnrichConfig tunes the enrichment layer.
type EnrichConfig struct {
	// RevenueHistoryYears is the width of the historical revenue window.
	RevenueHistoryYears int
	// ScoreFallback replaces absent sentiment/confidence values.
	ScoreFallback int
}

// Load reads configuration from environment variables, trying .env files
// first. Only this function calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Market: MarketConfig{
			QuoteBaseURL:      getEnv("MARKET_QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),
			ProfileBaseURL:    getEnv("MARKET_PROFILE_BASE_URL", "https://finance.yahoo.com"),
			RequestsPerSecond: getEnvAsInt("MARKET_REQUESTS_PER_SECOND", 2),
			Universe:          getEnvAsList("MARKET_UNIVERSE", "AAPL,MSFT,GOOGL,AMZN,NVDA,META,TSLA"),
			RefreshSchedule:   getEnv("MARKET_REFRESH_SCHEDULE", "0 0 22 * * 1-5"),
		},

		Enrich: EnrichConfig{
			RevenueHistoryYears: getEnvAsInt("REVENUE_HISTORY_YEARS", 3),
			ScoreFallback:       getEnvAsInt("SCORE_FALLBACK", 50),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks required configuration values.
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Market.RequestsPerSecond <= 0 {
		return fmt.Errorf("MARKET_REQUESTS_PER_SECOND must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from the working directory or next to
// the executable.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

func getEnvAsList(key string, defaultValue string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
