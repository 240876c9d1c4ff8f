// Package logger provides the structured, levelled logger for bazaar, built
// on log/slog.
//
// Handlers log through a per-request logger carrying the request_id injected
// by the Logger middleware:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("score added", "product_id", id)
//	// → time=... level=INFO msg="score added" request_id=a1b2c3d4 product_id=...
//
// When MONGO_LOG_URI is configured, records are additionally shipped to a
// MongoDB collection by an asynchronous sink (see mongo_handler.go).
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/bazaar/config"
)

var L *slog.Logger

// mongoSink is non-nil when log shipping is enabled; Shutdown flushes it.
var mongoSink *MongoHandler

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	switch config.AppEnv() {
	case "production", "prod":
		// Structured JSON for log aggregators.
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		// Human-readable for dev.
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}

// Init attaches the MongoDB sink when MONGO_LOG_URI is set. Call once at
// boot, after config.Load(). Returns an error only when the URI is set but
// the sink cannot connect; the stdout handler keeps working either way.
func Init() error {
	uri := config.MongoLogURI()
	if uri == "" {
		return nil
	}

	sink, err := NewMongoHandler(uri, config.MongoLogDatabase(), config.MongoLogCollection())
	if err != nil {
		return err
	}

	mongoSink = sink
	L = slog.New(NewMultiHandler(baseHandler(), sink))
	slog.SetDefault(L)
	return nil
}

// Shutdown flushes and closes the MongoDB sink, if any.
func Shutdown() {
	if mongoSink != nil {
		mongoSink.Close()
	}
}

// ctxKey is the unexported key under which the per-request logger is stored.
type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx by the Logger middleware,
// already tagged with the request_id. Falls back to the base logger when the
// context carries none (tests, background work).
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a pre-tagged *slog.Logger into ctx. Called by the
// Logger middleware — application code rarely needs it.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
