package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Port      int
	LogFormat string

	LLMAPIKey  string
	LLMModel   string
	LLMBaseURL string
	LLMTimeout time.Duration
	Debug      bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	ChatCacheTTL  time.Duration

	OTLPEndpoint string

	CORSAllowedOrigins []string
	RateLimitPerMinute int
	MaxBodyBytes       int64
}

// Load reads the process environment after merging an optional .env file.
// Variables already set in the environment win over .env entries.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Env:       getEnv("APP_ENV", "dev"),
		Port:      getEnvInt("PORT", 8080),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		LLMAPIKey:  firstEnv("GROQ_API_KEY", "OPENAI_API_KEY"),
		LLMModel:   getEnv("LLM_MODEL", "openai/gpt-oss-120b"),
		LLMBaseURL: getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1"),
		LLMTimeout: time.Duration(getEnvInt("LLM_TIMEOUT_MS", 8000)) * time.Millisecond,
		Debug:      getEnvBool("CHATBOT_DEBUG"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		ChatCacheTTL:  time.Duration(getEnvInt("CHAT_CACHE_TTL_SECONDS", 300)) * time.Second,

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 1<<20)),
	}
}

func (c Config) HasLLM() bool {
	return c.LLMAPIKey != ""
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}

	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var; using default", "key", key, "default", fallback)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
