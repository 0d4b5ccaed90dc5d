package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBusy = errors.New("database is locked")

func TestDo_RetriesUntilSuccess(t *testing.T) {
	var calls, callbacks int
	r := New(WithInitialDelay(time.Millisecond), WithOnRetry(func(int, error, time.Duration) { callbacks++ }))

	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return Retryable(errBusy)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, 2, callbacks)
}

func TestDo_ReturnsUnwrappedErrorAfterLastAttempt(t *testing.T) {
	var calls int
	err := New(WithMaxAttempts(2), WithInitialDelay(time.Millisecond)).Do(context.Background(), func(context.Context) error {
		calls++
		return Retryable(errBusy)
	})

	assert.Equal(t, 2, calls)
	assert.Same(t, errBusy, err)
	assert.False(t, IsRetryable(err))
}

func TestDo_DoesNotRetryPlainErrors(t *testing.T) {
	var calls int
	plain := errors.New("permission denied")

	err := New().Do(context.Background(), func(context.Context) error {
		calls++
		return plain
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, plain)
}

func TestDo_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().Do(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_JitterBoundsDelay(t *testing.T) {
	var delays []time.Duration
	r := New(
		WithMaxAttempts(4),
		WithInitialDelay(time.Millisecond),
		WithJitter(0.5),
		WithOnRetry(func(_ int, _ error, d time.Duration) { delays = append(delays, d) }),
	)

	_ = r.Do(context.Background(), func(context.Context) error { return Retryable(errBusy) })

	require.Len(t, delays, 3)
	for i, d := range delays {
		base := time.Millisecond << i
		assert.GreaterOrEqual(t, d, base/2)
		assert.LessOrEqual(t, d, base+base/2)
	}
}

func TestDo_ZeroJitterIsExact(t *testing.T) {
	var delays []time.Duration
	r := New(
		WithMaxAttempts(3),
		WithInitialDelay(time.Millisecond),
		WithJitter(0),
		WithJitter(1.5),
		WithOnRetry(func(_ int, _ error, d time.Duration) { delays = append(delays, d) }),
	)

	_ = r.Do(context.Background(), func(context.Context) error { return Retryable(errBusy) })

	assert.Equal(t, []time.Duration{time.Millisecond, 2 * time.Millisecond}, delays)
}
