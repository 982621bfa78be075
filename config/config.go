package config

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds the storefront service configuration.
type AppConfig struct {
	Port        string
	Environment string
	LogLevel    string

	// APIBaseURL is the upstream backend root, with a trailing slash.
	APIBaseURL      string
	UpstreamTimeout time.Duration

	// ImageBaseURL prefixes relative product image references.
	ImageBaseURL string

	CatalogTTL     time.Duration
	SearchCacheTTL time.Duration

	RedisURL    string
	DatabaseURL string

	CORSOrigins            []string
	RateLimitPerMinute     int
	FormRateLimitPerMinute int
}

// App is the configuration loaded at startup.
var App AppConfig

// Load reads .env (when present) and the environment into App.
func Load() AppConfig {
	_ = godotenv.Load()

	App = AppConfig{
		Port:                   getEnv("PORT", "8081"),
		Environment:            getEnv("APP_ENV", "development"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		APIBaseURL:             withTrailingSlash(getEnv("API_BASE_URL", "http://localhost:5204/")),
		UpstreamTimeout:        getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		ImageBaseURL:           strings.TrimRight(getEnv("IMAGE_BASE_URL", "https://storage.cloud.google.com/giganteimages"), "/"),
		CatalogTTL:             getEnvDuration("CATALOG_TTL", 5*time.Minute),
		SearchCacheTTL:         getEnvDuration("SEARCH_CACHE_TTL", 10*time.Minute),
		RedisURL:               strings.TrimSpace(os.Getenv("REDIS_URL")),
		DatabaseURL:            strings.TrimSpace(os.Getenv("DATABASE_URL")),
		CORSOrigins:            splitList(getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		RateLimitPerMinute:     getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		FormRateLimitPerMinute: getEnvInt("FORM_RATE_LIMIT_PER_MINUTE", 10),
	}
	return App
}

// IsProduction reports whether APP_ENV is production.
func (c AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

// WithRequestTimeout bounds a request context by the upstream timeout,
// keeping its values (request ID, Server-Timing collector).
func WithRequestTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	timeout := App.UpstreamTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(parent, timeout)
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func withTrailingSlash(raw string) string {
	if strings.HasSuffix(raw, "/") {
		return raw
	}
	return raw + "/"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
