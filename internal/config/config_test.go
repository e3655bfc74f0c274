package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "PORT", "GROQ_API_KEY", "OPENAI_API_KEY", "LLM_MODEL", "LLM_TIMEOUT_MS",
		"CHATBOT_DEBUG", "REDIS_ADDR", "CHAT_CACHE_TTL_SECONDS", "CORS_ALLOWED_ORIGINS",
		"RATE_LIMIT_PER_MINUTE", "MAX_BODY_BYTES",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.Env != "dev" || cfg.Port != 8080 {
		t.Fatalf("unexpected env/port: %q %d", cfg.Env, cfg.Port)
	}
	if cfg.HasLLM() {
		t.Fatalf("expected no LLM credentials")
	}
	if cfg.LLMModel != "openai/gpt-oss-120b" {
		t.Fatalf("model = %q", cfg.LLMModel)
	}
	if cfg.LLMTimeout != 8*time.Second {
		t.Fatalf("timeout = %v", cfg.LLMTimeout)
	}
	if cfg.ChatCacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %v", cfg.ChatCacheTTL)
	}
	if cfg.Debug || cfg.RedisAddr != "" || cfg.CORSAllowedOrigins != nil {
		t.Fatalf("unexpected optional settings: %+v", cfg)
	}
	if cfg.RateLimitPerMinute != 60 || cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("unexpected limits: %d %d", cfg.RateLimitPerMinute, cfg.MaxBodyBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CHATBOT_DEBUG", "Yes")
	t.Setenv("PORT", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("LLM_TIMEOUT_MS", "250")

	cfg := Load()

	if cfg.LLMAPIKey != "sk-test" || !cfg.HasLLM() {
		t.Fatalf("api key = %q", cfg.LLMAPIKey)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug enabled")
	}
	if cfg.Port != 8080 {
		t.Fatalf("invalid PORT should fall back, got %d", cfg.Port)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://b.test" {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LLMTimeout != 250*time.Millisecond {
		t.Fatalf("timeout = %v", cfg.LLMTimeout)
	}
}

func TestLoad_GroqKeyWins(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-1")
	t.Setenv("OPENAI_API_KEY", "sk-2")

	if got := Load().LLMAPIKey; got != "gsk-1" {
		t.Fatalf("api key = %q", got)
	}
}
