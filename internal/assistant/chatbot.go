package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/geocoder89/payrollhub/internal/cache"
)

const (
	SourcePrimary  = "primary"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// Recorder counts where replies came from.
type Recorder interface {
	ObserveReply(source string)
}

type Chatbot struct {
	primary  Gateway
	fallback Gateway
	cache    cache.Store
	rec      Recorder
	log      *slog.Logger
}

type ChatbotOption func(*Chatbot)

func WithCache(store cache.Store) ChatbotOption {
	return func(c *Chatbot) { c.cache = store }
}

func WithRecorder(rec Recorder) ChatbotOption {
	return func(c *Chatbot) { c.rec = rec }
}

// NewChatbot wires the primary backend. A nil primary means no credentials were
// configured and every reply comes from the local responder.
func NewChatbot(log *slog.Logger, primary Gateway, opts ...ChatbotOption) *Chatbot {
	if log == nil {
		log = slog.Default()
	}

	c := &Chatbot{
		primary:  primary,
		fallback: NewLocalGateway(),
		log:      log,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Respond never fails: backend errors are logged and answered locally.
func (c *Chatbot) Respond(ctx context.Context, query string, cc ChatContext) string {
	sc := Sanitize(cc)

	if c.primary == nil {
		c.log.DebugContext(ctx, "assistant backend not configured; using local response")
		return c.local(ctx, query, sc)
	}

	key, keyErr := cacheKey(query, sc)
	if keyErr == nil && c.cache != nil {
		cached, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			c.log.WarnContext(ctx, "assistant cache read failed", "err", err)
		}
		if ok {
			c.observe(SourceCache)
			return cached
		}
	}

	reply, err := c.primary.Complete(ctx, query, sc)
	if err != nil {
		c.log.WarnContext(ctx, "assistant request failed; using local response", "err", err)
		return c.local(ctx, query, sc)
	}

	if keyErr == nil && c.cache != nil {
		if err := c.cache.Set(ctx, key, reply); err != nil {
			c.log.WarnContext(ctx, "assistant cache write failed", "err", err)
		}
	}

	c.observe(SourcePrimary)
	return reply
}

func (c *Chatbot) local(ctx context.Context, query string, sc SanitizedContext) string {
	c.observe(SourceFallback)

	reply, err := c.fallback.Complete(ctx, query, sc)
	if err != nil {
		c.log.ErrorContext(ctx, "local assistant failed", "err", err)
		return clarificationReply
	}

	return reply
}

func (c *Chatbot) observe(source string) {
	if c.rec != nil {
		c.rec.ObserveReply(source)
	}
}

func cacheKey(query string, sc SanitizedContext) (string, error) {
	payload, err := json.Marshal(sc)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(strings.TrimSpace(strings.ToLower(query))))
	h.Write([]byte{0})
	h.Write(payload)

	return "chat:v1:" + hex.EncodeToString(h.Sum(nil)), nil
}
