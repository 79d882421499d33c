package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func fastConfig() Config {
	return Config{
		MaxRetries:    3,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		Multiplier:    2.0,
		JitterEnabled: false,
	}
}

func TestWithBackoffSucceedsOnFirstAttempt(t *testing.T) {
	logger := zaptest.NewLogger(t)
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(), logger, "op", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithBackoffRetriesUntilSuccess(t *testing.T) {
	logger := zaptest.NewLogger(t)
	calls := 0
	err := WithBackoff(context.Background(), fastConfig(), logger, "op", func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithBackoffReturnsErrorAfterExhaustingRetries(t *testing.T) {
	logger := zaptest.NewLogger(t)
	calls := 0
	boom := errors.New("permanent")
	err := WithBackoff(context.Background(), fastConfig(), logger, "op", func() error {
		calls++
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, fastConfig().MaxRetries, calls)
}

func TestWithBackoffStopsOnCancelledContext(t *testing.T) {
	logger := zaptest.NewLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithBackoff(ctx, fastConfig(), logger, "op", func() error {
		t.Fatal("fn must not be called once ctx is already cancelled")
		return nil
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoffCapsAtMaxDelay(t *testing.T) {
	cfg := Config{InitialDelay: time.Second, MaxDelay: 2 * time.Second, Multiplier: 10, JitterEnabled: false}
	delay := calculateBackoff(cfg, 5)
	assert.Equal(t, 2*time.Second, delay)
}

func TestCalculateBackoffGrowsExponentiallyBeforeCap(t *testing.T) {
	cfg := Config{InitialDelay: time.Second, MaxDelay: time.Hour, Multiplier: 2, JitterEnabled: false}
	assert.Equal(t, time.Second, calculateBackoff(cfg, 1))
	assert.Equal(t, 2*time.Second, calculateBackoff(cfg, 2))
	assert.Equal(t, 4*time.Second, calculateBackoff(cfg, 3))
}
