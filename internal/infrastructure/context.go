package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NewQueryID creates a new unique query id using UUID v4
func NewQueryID() string {
	return uuid.New().String()
}

// ContextWithQueryID creates a new context with a generated query id
func ContextWithQueryID(ctx context.Context) context.Context {
	return WithQueryID(ctx, NewQueryID())
}

// EnsureQueryID ensures the context has a query id, generating one if needed
func EnsureQueryID(ctx context.Context) context.Context {
	if GetQueryID(ctx) == "" {
		return ContextWithQueryID(ctx)
	}
	return ctx
}

// WithComponent creates a logger with a component field
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With("component", component)
}

// WithError creates a logger with an error field
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With("error", err.Error())
}
