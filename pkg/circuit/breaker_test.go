package circuit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errUpstream = errors.New("upstream down")

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg Config) (*Breaker, *clock) {
	c := &clock{t: time.Unix(1_700_000_000, 0)}
	b := NewBreaker("test", cfg, zap.NewNop())
	b.now = c.now
	return b, c
}

func fail(context.Context) error { return errUpstream }
func pass(context.Context) error { return nil }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 3, Timeout: time.Minute})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, b.Execute(ctx, fail), errUpstream)
	}

	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Execute(ctx, pass), ErrCircuitOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(Config{Threshold: 2, Timeout: time.Minute})
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	require.NoError(t, b.Execute(ctx, pass))
	_ = b.Execute(ctx, fail)

	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenThenClosed(t *testing.T) {
	b, clk := newTestBreaker(Config{Threshold: 1, Timeout: time.Minute, SuccessThreshold: 2, MaxHalfOpen: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	require.Equal(t, StateOpen, b.State())

	clk.advance(time.Minute)
	require.NoError(t, b.Execute(ctx, pass))
	assert.Equal(t, StateHalfOpen, b.State())

	require.NoError(t, b.Execute(ctx, pass))
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b, clk := newTestBreaker(Config{Threshold: 1, Timeout: time.Minute})
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	clk.advance(time.Minute)
	_ = b.Execute(ctx, fail)

	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Execute(ctx, pass), ErrCircuitOpen)
}

func TestBreaker_HalfOpenLimitsTrialCalls(t *testing.T) {
	b, clk := newTestBreaker(Config{Threshold: 1, Timeout: time.Minute, MaxHalfOpen: 1, SuccessThreshold: 1})
	ctx := context.Background()

	_ = b.Execute(ctx, fail)
	clk.advance(time.Minute)

	err := b.Execute(ctx, func(ctx context.Context) error {
		assert.ErrorIs(t, b.Execute(ctx, pass), ErrTooManyRequests)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_IsFailureFiltersCallerErrors(t *testing.T) {
	errRejected := errors.New("token rejected")
	b, _ := newTestBreaker(Config{
		Threshold: 1,
		Timeout:   time.Minute,
		IsFailure: func(err error) bool { return !errors.Is(err, errRejected) },
	})
	ctx := context.Background()

	assert.ErrorIs(t, b.Execute(ctx, func(context.Context) error { return errRejected }), errRejected)
	assert.Equal(t, StateClosed, b.State())

	_ = b.Execute(ctx, func(context.Context) error { return context.Canceled })
	assert.Equal(t, StateClosed, b.State())

	_ = b.Execute(ctx, fail)
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_Stats(t *testing.T) {
	b, _ := newTestBreaker(DefaultConfig())
	stats := b.Stats()

	assert.Equal(t, "test", stats["name"])
	assert.Equal(t, "CLOSED", stats["state"])
}

func TestState_String(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StateClosed, "CLOSED"},
		{StateOpen, "OPEN"},
		{StateHalfOpen, "HALF_OPEN"},
		{State(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.state.String())
	}
}
