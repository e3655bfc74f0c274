package observability

import (
	"context"
	"log/slog"
	"strings"

	"github.com/geocoder89/payrollhub/internal/privacy"
	"go.opentelemetry.io/otel/trace"
)

// TraceHandler stamps records with the active trace/span ids and scrubs
// emails and phone numbers out of the message and every string attribute.
type TraceHandler struct {
	next slog.Handler
}

func NewTraceHandler(next slog.Handler) *TraceHandler {
	return &TraceHandler{next: next}
}

func (h *TraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *TraceHandler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, privacy.ScrubPII(r.Message), r.PC)

	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(scrubAttr(a))
		return true
	})

	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		out.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return h.next.Handle(ctx, out)
}

func (h *TraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	scrubbed := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		scrubbed[i] = scrubAttr(a)
	}
	return &TraceHandler{next: h.next.WithAttrs(scrubbed)}
}

func (h *TraceHandler) WithGroup(name string) slog.Handler {
	return &TraceHandler{next: h.next.WithGroup(name)}
}

// Identifier attrs are kept verbatim: an all-digit uuid segment looks like a phone number.
func scrubAttr(a slog.Attr) slog.Attr {
	v := a.Value.Resolve()

	if a.Key == "id" || strings.HasSuffix(a.Key, "_id") {
		return slog.Attr{Key: a.Key, Value: v}
	}

	switch v.Kind() {
	case slog.KindString:
		return slog.String(a.Key, privacy.ScrubPII(v.String()))
	case slog.KindGroup:
		group := v.Group()
		out := make([]any, len(group))
		for i, g := range group {
			out[i] = scrubAttr(g)
		}
		return slog.Group(a.Key, out...)
	case slog.KindAny:
		// errors frequently echo request input
		if err, ok := v.Any().(error); ok {
			return slog.String(a.Key, privacy.ScrubPII(err.Error()))
		}
		return slog.Attr{Key: a.Key, Value: v}
	default:
		return slog.Attr{Key: a.Key, Value: v}
	}
}
