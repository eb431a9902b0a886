package logger

import (
	"context"
	"errors"
	"testing"

	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed(t *testing.T, cfg PerformanceConfig) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	previous := GetOptimizedLogger()
	SetOptimizedLogger(NewOptimizedLoggerFrom(zap.New(core), cfg))
	t.Cleanup(func() { SetOptimizedLogger(previous) })
	return logs
}

func TestContextLogBuilder_AttachesContextFields(t *testing.T) {
	logs := observed(t, DevelopmentConfig())

	ctx := ctxutil.WithRequestID(context.Background(), "req-1")
	ctx = ctxutil.WithUser(ctx, 7, "ADMIN")
	ctx = ctxutil.WithFunction(ctx, "service", "CreateDress")

	ErrorWithContext(ctx, "Failed to create dress").
		String("name", "Aurora").
		Err(errors.New("boom")).
		Log()

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "Failed to create dress", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, uint64(7), fields["user_id"])
	assert.Equal(t, "ADMIN", fields["user_role"])
	assert.Equal(t, "CreateDress", fields["function"])
	assert.Equal(t, "Aurora", fields["name"])
	assert.Equal(t, "boom", fields["error"])
}

func TestContextLogBuilder_RespectsMinLevel(t *testing.T) {
	logs := observed(t, ProductionConfig())

	DebugWithContext(context.Background(), "hidden").String("k", "v").Log()
	InfoWithContext(context.Background(), "shown").Log()

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "shown", logs.All()[0].Message)
}

func TestContextLogBuilder_SkipsCancelledContext(t *testing.T) {
	logs := observed(t, DevelopmentConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	InfoWithContext(ctx, "dropped").Log()

	assert.Equal(t, 0, logs.Len())
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(2)
	assert.True(t, rl.Allow())
	assert.True(t, rl.Allow())
	assert.False(t, rl.Allow())
}
