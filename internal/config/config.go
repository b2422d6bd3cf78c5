package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                 string
	LogLevel             string
	DBDriver             string
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxIdle        time.Duration
	DBConnMaxLife        time.Duration
	DBMigrate            bool
	RedisURL             string
	RequestTimeout       time.Duration
	TimeZone             *time.Location
	SessionTTL           time.Duration
	SessionCookieSecure  bool
	LoginRateLimitPerMin int
	NotionToken          string
	NotionDatabaseID     string
	PostingCacheTTL      time.Duration
	PostingFetchTimeout  time.Duration
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                 envOr("PORT", "8080"),
		LogLevel:             envOr("LOG_LEVEL", "info"),
		DBDriver:             strings.ToLower(envOr("DB_DRIVER", "pgx")),
		DatabaseURL:          strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxOpenConns:       intOr("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       intOr("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:        durationOr("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:        durationOr("DB_CONN_MAX_LIFE", 30*time.Minute),
		DBMigrate:            boolOr("DB_MIGRATE", true),
		RedisURL:             envOr("REDIS_URL", ""),
		RequestTimeout:       durationOr("REQUEST_TIMEOUT", 10*time.Second),
		SessionTTL:           durationOr("SESSION_TTL", 14*24*time.Hour),
		SessionCookieSecure:  boolOr("SESSION_COOKIE_SECURE", false),
		LoginRateLimitPerMin: intOr("LOGIN_RATE_LIMIT_PER_MIN", 10),
		NotionToken:          strings.TrimSpace(os.Getenv("NOTION_TOKEN")),
		NotionDatabaseID:     strings.TrimSpace(os.Getenv("NOTION_DATABASE_ID")),
		PostingCacheTTL:      durationOr("POSTING_CACHE_TTL", 6*time.Hour),
		PostingFetchTimeout:  durationOr("POSTING_FETCH_TIMEOUT", 10*time.Second),
	}
	if cfg.DBDriver == "pq" || cfg.DBDriver == "postgresql" {
		cfg.DBDriver = "postgres"
	}

	missing := make([]string, 0, 2)
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if (cfg.NotionToken == "") != (cfg.NotionDatabaseID == "") {
		if cfg.NotionToken == "" {
			missing = append(missing, "NOTION_TOKEN")
		} else {
			missing = append(missing, "NOTION_DATABASE_ID")
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}

	switch cfg.DBDriver {
	case "pgx", "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be pgx, postgres or sqlite, got %q", cfg.DBDriver)
	}
	if cfg.LoginRateLimitPerMin <= 0 {
		return Config{}, fmt.Errorf("rate limit values must be positive: LOGIN_RATE_LIMIT_PER_MIN")
	}

	zone, err := time.LoadLocation(envOr("TIME_ZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIME_ZONE: %w", err)
	}
	cfg.TimeZone = zone
	return cfg, nil
}

// NotionEnabled reports whether export credentials are configured.
func (c Config) NotionEnabled() bool {
	return c.NotionToken != "" && c.NotionDatabaseID != ""
}

func envOr(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func durationOr(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func intOr(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func boolOr(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
