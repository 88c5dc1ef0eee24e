package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string

	ServerPort int
	LogLevel   string

	APIURL     string
	GraphQLURL string
	CSRFToken  string

	RequestTimeout    time.Duration
	CacheStaleTime    time.Duration
	SearchDebounce    time.Duration
	SearchLimit       int
	SubmitConcurrency int
	SessionIdleTTL    time.Duration
	TimeZone          string

	DatabaseURL string
	RedisAddr   string

	KafkaBrokers []string
	KafkaTopic   string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "orders-admin"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		APIURL:     os.Getenv("API_URL"),
		GraphQLURL: os.Getenv("GRAPHQL_URL"),
		CSRFToken:  os.Getenv("CSRF_TOKEN"),

		RequestTimeout:    EnvDurationDefault("REQUEST_TIMEOUT", 5*time.Second),
		CacheStaleTime:    EnvDurationDefault("CACHE_STALE_TIME", time.Minute),
		SearchDebounce:    EnvDurationDefault("SEARCH_DEBOUNCE", 300*time.Millisecond),
		SearchLimit:       EnvIntDefault("SEARCH_LIMIT", 5),
		SubmitConcurrency: EnvIntDefault("SUBMIT_CONCURRENCY", 8),
		SessionIdleTTL:    EnvDurationDefault("SESSION_IDLE_TTL", 30*time.Minute),
		TimeZone:          EnvDefault("TIME_ZONE", "UTC"),

		DatabaseURL: EnvDefault("DATABASE_URL", "file:submissions.db"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   EnvDefault("KAFKA_TOPIC", "admin_events"),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// EnvDurationDefault accepts Go durations ("300ms", "5s") and bare integers,
// which are read as milliseconds.
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if ms, err := strconv.Atoi(v); err == nil {
		if ms < 0 {
			return def
		}
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}
