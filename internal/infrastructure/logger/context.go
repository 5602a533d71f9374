package logger

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey is the context key under which a request-scoped logger is stored
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for the request ID
	RequestIDKey contextKey = "request_id"
	// UserIDKey is the context key for the authenticated user ID
	UserIDKey contextKey = "user_id"
)

// WithContext stores a logger in the context
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from the context. Returns a no-op logger
// if none is present.
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request ID in the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// GetRequestID retrieves the request ID from the context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithUserID stores the authenticated user ID in the context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID retrieves the authenticated user ID from the context
func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(UserIDKey).(string); ok {
		return userID
	}
	return ""
}

// ContextLogger wraps a base logger and enriches log entries with fields
// carried in the request context.
type ContextLogger struct {
	base *zap.Logger
}

// NewContextLogger creates a new ContextLogger
func NewContextLogger(base *zap.Logger) *ContextLogger {
	if base == nil {
		base = zap.NewNop()
	}
	return &ContextLogger{base: base}
}

// L returns a logger enriched with the request ID and user ID found in the
// context, if any.
func (cl *ContextLogger) L(ctx context.Context) *zap.Logger {
	return cl.enrichedLogger(ctx)
}

func (cl *ContextLogger) enrichedLogger(ctx context.Context) *zap.Logger {
	logger := cl.base

	if requestID := GetRequestID(ctx); requestID != "" {
		logger = logger.With(zap.String("request_id", requestID))
	}
	if userID := GetUserID(ctx); userID != "" {
		logger = logger.With(zap.String("user_id", userID))
	}

	return logger
}

// Debug logs a message at debug level with context fields
func (cl *ContextLogger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	cl.enrichedLogger(ctx).Debug(msg, fields...)
}

// Info logs a message at info level with context fields
func (cl *ContextLogger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	cl.enrichedLogger(ctx).Info(msg, fields...)
}

// Warn logs a message at warn level with context fields
func (cl *ContextLogger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	cl.enrichedLogger(ctx).Warn(msg, fields...)
}

// Error logs a message at error level with context fields
func (cl *ContextLogger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	cl.enrichedLogger(ctx).Error(msg, fields...)
}

// Zap returns the underlying base logger
func (cl *ContextLogger) Zap() *zap.Logger {
	return cl.base
}
