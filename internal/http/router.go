package http

import (
	"log/slog"
	"time"

	"github.com/geocoder89/payrollhub/internal/http/handlers"
	"github.com/geocoder89/payrollhub/internal/http/middlewares"
	"github.com/geocoder89/payrollhub/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "payrollhub-api"

type RouterConfig struct {
	Env                string
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	MaxBodyBytes       int64
}

type Deps struct {
	Pipeline handlers.PipelineRunner
	Chat     handlers.Responder
	Ping     handlers.PingFunc

	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
}

func NewRouter(log *slog.Logger, cfg RouterConfig, deps Deps) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.RateLimitPerMinute <= 0 {
		cfg.RateLimitPerMinute = 60
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}

	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// payroll
	limiter := middlewares.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	ph := handlers.NewPayrollHandler(log, deps.Pipeline, deps.Chat)

	v1 := r.Group("/v1/payroll")
	v1.Use(
		middlewares.MaxBodyBytes(cfg.MaxBodyBytes),
		middlewares.RequireJSON(),
		limiter.RateLimiterMiddleware(middlewares.KeyByIP),
	)
	v1.POST("/run", ph.Run)
	v1.POST("/chat", ph.Chat)
	v1.POST("/payslip", ph.Payslip)

	return r
}
