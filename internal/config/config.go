package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port string
	Env  string

	// Authentication
	APIKeys      []string // plaintext allow-list
	APIKeyHashes []string // bcrypt allow-list

	// Reporting
	CallbackURL     string
	CallbackTimeout time.Duration
	ReportThreshold int

	// Session storage (in-memory unless Redis is configured)
	RedisURL   string
	SessionTTL time.Duration

	// Report archive
	DatabaseURL    string // Postgres archive when set
	SQLitePath     string
	ArchiveEnabled bool

	// Sibling voice-detection service (consumed, not implemented)
	VoiceAPIURL string
	VoiceAPIKey string

	// Rate limiting
	RateLimitWhitelist []string // IPs or CIDRs exempt from rate limiting
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
// In production, it panics on missing required variables.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		APIKeys:         splitList(os.Getenv("API_KEYS")),
		APIKeyHashes:    splitList(os.Getenv("API_KEY_HASHES")),
		CallbackURL:     os.Getenv("CALLBACK_URL"),
		CallbackTimeout: getDuration("CALLBACK_TIMEOUT", 5*time.Second),
		ReportThreshold: getInt("REPORT_THRESHOLD", 4),
		RedisURL:        os.Getenv("REDIS_URL"),
		SessionTTL:      getDuration("SESSION_TTL", 24*time.Hour),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SQLitePath:      getEnv("SQLITE_PATH", "./data/honeypot.db"),
		ArchiveEnabled:  getEnv("ARCHIVE", "on") != "off",
		VoiceAPIURL:     os.Getenv("VOICE_API_URL"),
		VoiceAPIKey:     os.Getenv("VOICE_API_KEY"),
	}

	cfg.RateLimitWhitelist = splitList(os.Getenv("RATE_LIMIT_WHITELIST"))

	// In production, the service is useless without credentials and a
	// callback target.
	if cfg.Env == "production" {
		if len(cfg.APIKeys) == 0 && len(cfg.APIKeyHashes) == 0 {
			panic("API_KEYS or API_KEY_HASHES is required in production")
		}
		if cfg.CallbackURL == "" {
			panic("CALLBACK_URL is required in production")
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
