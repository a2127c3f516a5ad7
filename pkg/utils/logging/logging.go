package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/saathi-app/saathi/pkg/domain/model/auth"
)

type ctxKey struct{}

var (
	mu            sync.RWMutex
	defaultLogger = slog.New(clog.New(clog.WithWriter(os.Stderr)))
)

// Default returns the process-wide logger.
func Default() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// With embeds the logger into the context.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From extracts the logger from the context, falling back to Default.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}

// Format is the output format of the logger.
type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// filter redacts values that must never reach log sinks: session token
// secrets, password hashes, and anything tagged `masq:"secret"`.
func filter() func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(
		masq.WithTag("secret"),
		masq.WithFieldName("PasswordHash"),
		masq.WithType[auth.TokenSecret](),
	)
}

// New builds a logger writing to w with the given level and format.
func New(w io.Writer, level slog.Level, format Format) (*slog.Logger, error) {
	switch format {
	case FormatConsole:
		handler := clog.New(
			clog.WithWriter(w),
			clog.WithLevel(level),
			clog.WithReplaceAttr(filter()),
		)
		return slog.New(handler), nil

	case FormatJSON:
		handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: filter(),
		})
		return slog.New(handler), nil

	default:
		return nil, goerr.New("unknown log format", goerr.V("format", format))
	}
}
