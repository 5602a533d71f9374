package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext_NoLogger(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestWithContext_RoundTrip(t *testing.T) {
	base := zap.NewNop()
	ctx := WithContext(context.Background(), base)
	assert.Same(t, base, FromContext(ctx))
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "user-456")
	assert.Equal(t, "user-456", GetUserID(ctx))
	assert.Empty(t, GetUserID(context.Background()))
}

func TestContextLogger_EnrichesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cl := NewContextLogger(zap.New(core))

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithUserID(ctx, "user-456")

	cl.Info(ctx, "donation claimed")

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-123", fields["request_id"])
	assert.Equal(t, "user-456", fields["user_id"])
}

func TestContextLogger_BareContext(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	cl := NewContextLogger(zap.New(core))

	cl.Info(context.Background(), "startup")

	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Empty(t, entries[0].ContextMap())
}

func TestNewContextLogger_NilBase(t *testing.T) {
	cl := NewContextLogger(nil)
	assert.NotNil(t, cl.Zap())
}
