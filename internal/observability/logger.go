package observability

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

const FormatPretty = "pretty"

// NewLogger builds the process logger. Records carry trace/span ids when a span is active.
// Pretty output is only honoured in dev; every other environment gets JSON.
func NewLogger(env, format string, debug bool) *slog.Logger {
	return newLogger(os.Stdout, env, format, debug)
}

func newLogger(w io.Writer, env, format string, debug bool) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" || debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if env == "dev" && format == FormatPretty {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(NewTraceHandler(handler))
}
