package assistant

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type circuitState string

const (
	stateClosed   circuitState = "closed"
	stateOpen     circuitState = "open"
	stateHalfOpen circuitState = "half_open"
)

type ProtectedGatewayConfig struct {
	Timeout          time.Duration // hard timeout per completion
	FailureThreshold int           // consecutive failures to open circuit
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // allow N trial calls in half-open
}

// ProtectedGateway stops hammering a failing backend and bounds every call.
type ProtectedGateway struct {
	inner Gateway
	cfg   ProtectedGatewayConfig
	mu    sync.Mutex

	state circuitState

	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
}

func NewProtectedGateway(inner Gateway, cfg ProtectedGatewayConfig) *ProtectedGateway {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedGateway{
		inner: inner,
		cfg:   cfg,
		state: stateClosed,
	}
}

func (g *ProtectedGateway) Complete(ctx context.Context, query string, sc SanitizedContext) (string, error) {
	if !g.allowRequest() {
		return "", ErrCircuitOpen
	}

	callCtx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	reply, err := g.inner.Complete(callCtx, query, sc)

	g.afterRequest(err)

	return reply, err
}

func (g *ProtectedGateway) State() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return string(g.state)
}

func (g *ProtectedGateway) allowRequest() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch g.state {
	case stateOpen:
		if time.Since(g.openedAt) < g.cfg.Cooldown {
			return false
		}
		g.state = stateHalfOpen
		g.halfOpenInFlight = 1
		return true
	case stateHalfOpen:
		if g.halfOpenInFlight >= g.cfg.HalfOpenMaxCalls {
			return false
		}
		g.halfOpenInFlight++
		return true
	default:
		return true
	}
}

func (g *ProtectedGateway) afterRequest(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state == stateHalfOpen && g.halfOpenInFlight > 0 {
		g.halfOpenInFlight--
	}

	if err == nil {
		g.consecutiveFailures = 0
		g.state = stateClosed
		return
	}

	g.consecutiveFailures++

	// a failed trial call reopens immediately
	if g.state == stateHalfOpen || g.consecutiveFailures >= g.cfg.FailureThreshold {
		g.state = stateOpen
		g.openedAt = time.Now()
	}
}
