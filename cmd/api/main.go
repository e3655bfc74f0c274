package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/payrollhub/internal/assistant"
	"github.com/geocoder89/payrollhub/internal/cache"
	"github.com/geocoder89/payrollhub/internal/config"
	httpx "github.com/geocoder89/payrollhub/internal/http"
	"github.com/geocoder89/payrollhub/internal/http/handlers"
	"github.com/geocoder89/payrollhub/internal/observability"
	"github.com/geocoder89/payrollhub/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env, cfg.LogFormat, cfg.Debug)
	slog.SetDefault(log)

	shutdownTracer, err := observability.InitTracer(context.Background(), "payrollhub-api", cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	store, ping, closeStore := buildCache(cfg, log)
	defer closeStore()

	chatbot := assistant.NewChatbot(log, buildGateway(cfg, log),
		assistant.WithCache(store),
		assistant.WithRecorder(prom),
	)

	router := httpx.NewRouter(log, httpx.RouterConfig{
		Env:                cfg.Env,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		MaxBodyBytes:       cfg.MaxBodyBytes,
	}, httpx.Deps{
		Pipeline: pipeline.New(log, prom),
		Chat:     chatbot,
		Ping:     ping,
		Prom:     prom,
		Gatherer: reg,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "assistant_backend", cfg.HasLLM())
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// buildCache prefers Redis so replicas share cached replies.
func buildCache(cfg config.Config, log *slog.Logger) (cache.Store, handlers.PingFunc, func()) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(cfg.ChatCacheTTL, 1024), nil, func() {}
	}

	rdb := cache.NewRedis(cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.ChatCacheTTL,
	})
	log.Info("assistant cache using redis", "addr", cfg.RedisAddr)

	return rdb, rdb.Ping, func() {
		if err := rdb.Close(); err != nil {
			log.Error("redis close failed", "err", err)
		}
	}
}

// buildGateway returns nil without credentials; the chatbot then answers locally.
func buildGateway(cfg config.Config, log *slog.Logger) assistant.Gateway {
	if !cfg.HasLLM() {
		log.Info("no assistant API key configured; replies use the local responder")
		return nil
	}

	return assistant.NewProtectedGateway(
		assistant.NewHTTPGateway(assistant.HTTPGatewayConfig{
			BaseURL: cfg.LLMBaseURL,
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
		}),
		assistant.ProtectedGatewayConfig{Timeout: cfg.LLMTimeout},
	)
}
