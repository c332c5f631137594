// README: Request-scoped values (logger, trace id) carried through context.Context.
package contextx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

var ErrNoValue = errors.New("no value in context")

type (
	contextKeyLogger  struct{}
	contextKeyTraceID struct{}
)

type TraceID string

func (t TraceID) String() string {
	return string(t)
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKeyLogger{}, logger)
}

func LoggerFromContext(ctx context.Context) (*slog.Logger, error) {
	logger, ok := ctx.Value(contextKeyLogger{}).(*slog.Logger)
	if !ok {
		return nil, fmt.Errorf("logger: %w", ErrNoValue)
	}
	return logger, nil
}

// LoggerFromContextOrDefault never returns nil.
func LoggerFromContextOrDefault(ctx context.Context) *slog.Logger {
	logger, err := LoggerFromContext(ctx)
	if err != nil {
		return slog.Default()
	}
	return logger
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}
	return traceID, nil
}
