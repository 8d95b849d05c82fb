package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	devAPIBaseURL  = "http://localhost:8000/api"
	prodAPIBaseURL = "https://api.lexprep.app/api"
)

type Config struct {
	Addr               string
	Environment        string
	APIBaseURL         string
	APITimeoutSeconds  int
	SessionDBPath      string
	SessionTTLHours    int
	CookieSecure       bool
	AllowedOrigins     []string
	LogLevel           string
	SubmitWorkerCount  int
	SubmitQueueSize    int
	SubmitMaxRetries   int
	SubmitRetryBaseMs  int
	ExamDurationSecs   int
	SpeedReaderSeconds int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	env := envOr("APP_ENV", "development")

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		Environment:        env,
		APIBaseURL:         resolveAPIBaseURL(env),
		APITimeoutSeconds:  envIntOr("API_TIMEOUT_SECONDS", 15),
		SessionDBPath:      envOr("SESSION_DB_PATH", "file:lexprep_sessions.db"),
		SessionTTLHours:    envIntOr("SESSION_TTL_HOURS", 12),
		CookieSecure:       envBoolOr("COOKIE_SECURE", env != "development"),
		AllowedOrigins:     envListOr("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		SubmitWorkerCount:  envIntOr("SUBMIT_WORKER_COUNT", 2),
		SubmitQueueSize:    envIntOr("SUBMIT_QUEUE_SIZE", 128),
		SubmitMaxRetries:   envIntOr("SUBMIT_MAX_RETRIES", 3),
		SubmitRetryBaseMs:  envIntOr("SUBMIT_RETRY_BASE_MS", 500),
		ExamDurationSecs:   envIntOr("EXAM_DURATION_SECONDS", 3600),
		SpeedReaderSeconds: envIntOr("SPEED_READER_SECONDS", 70),
	}
}

// resolveAPIBaseURL picks the upstream base URL: explicit override first,
// then a localhost default in development, then the production URL.
func resolveAPIBaseURL(env string) string {
	if v := os.Getenv("API_BASE_URL"); v != "" {
		return strings.TrimRight(v, "/")
	}
	if env == "development" {
		return devAPIBaseURL
	}
	return prodAPIBaseURL
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
