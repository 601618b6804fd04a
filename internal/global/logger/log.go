package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"recruiting-portal/config"

	sentryslog "github.com/getsentry/sentry-go/slog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	instance *slog.Logger
	once     sync.Once
)

// fanout sends every record to all handlers that accept its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// Get returns the process-wide logger, building it from config on first use.
func Get() *slog.Logger {
	once.Do(func() {
		instance = build(config.Get())
	})
	return instance
}

func build(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.Mode == config.ModeRelease,
		Level:     level(cfg.Log.Level),
	}

	var base slog.Handler
	if cfg.Mode == config.ModeRelease && cfg.Log.FilePath != "" {
		var w io.Writer = &lumberjack.Logger{
			Filename:   cfg.Log.FilePath,
			MaxSize:    cfg.Log.MaxSize,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAge,
			Compress:   cfg.Log.Compress,
		}
		base = slog.NewJSONHandler(w, opts)
	} else {
		base = slog.NewTextHandler(os.Stdout, opts)
	}

	handler := base
	if cfg.Sentry.Dsn != "" {
		// errors become Sentry events, warnings and errors Sentry logs
		sentryHandler := sentryslog.Option{
			EventLevel: []slog.Level{slog.LevelError},
			LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
			AddSource:  cfg.Mode == config.ModeRelease,
		}.NewSentryHandler(context.Background())
		handler = fanout{base, sentryHandler}
	}

	return slog.New(handler).With(
		"app_name", "recruiting-portal",
		"env", string(cfg.Mode),
	)
}

// New returns a logger tagged with the module name.
func New(module string) *slog.Logger {
	return Get().With("module", module)
}

type requestInfo interface {
	ClientIP() string
	GetHeader(string) string
}

// WithContext adds the caller's address (and proxy headers, if any) to base.
func WithContext(base *slog.Logger, c requestInfo) *slog.Logger {
	l := base.With("client_ip", c.ClientIP())
	if v := c.GetHeader("X-Forwarded-For"); v != "" {
		l = l.With("x_forwarded_for", v)
	}
	if v := c.GetHeader("X-Real-IP"); v != "" {
		l = l.With("x_real_ip", v)
	}
	return l
}

func level(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
