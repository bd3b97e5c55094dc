package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings. A missing DATABASE_URL is not
// an error: the service still routes, with the readiness gate answering 503
// on /api/* until a store connection exists.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	Environment string
	LogLevel    slog.Level

	// AllowedOrigins is the exact-match CORS allow-list. Requests without an
	// Origin header bypass the check entirely.
	AllowedOrigins []string
}

// defaultAllowedOrigins covers the hosted frontend and local development.
var defaultAllowedOrigins = []string{
	"https://nptel-tau.vercel.app",
	"https://nptel-tau.vercel.app/",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "5000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       parseLogLevel(os.Getenv("LOG_LEVEL")),
		AllowedOrigins: parseOrigins(os.Getenv("ALLOWED_ORIGINS")),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseOrigins(raw string) []string {
	if raw == "" {
		return defaultAllowedOrigins
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return defaultAllowedOrigins
	}
	return origins
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
