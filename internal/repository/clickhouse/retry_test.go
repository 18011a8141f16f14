package clickhouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	assert.False(t, isTransient(nil))
	assert.False(t, isTransient(context.Canceled))
	assert.False(t, isTransient(context.DeadlineExceeded))
	assert.False(t, isTransient(errors.New("code: 62, syntax error")))

	assert.True(t, isTransient(errors.New("read tcp: connection reset by peer")))
	assert.True(t, isTransient(errors.New("dial tcp: connection refused")))
	assert.True(t, isTransient(errors.New("write: broken pipe")))
	assert.True(t, isTransient(errors.New("read: i/o timeout")))
	assert.True(t, isTransient(errors.New("unexpected EOF")))
	assert.True(t, isTransient(errors.New("code: 202, too many simultaneous queries")))
	assert.True(t, isTransient(errors.New("lz4 decompression failed: malformed block")))
	assert.True(t, isTransient(errors.New("block decode error")))
}

func TestWithRetryTransient(t *testing.T) {
	policy := retryPolicy{attempts: 3, interval: time.Millisecond}

	attempts := 0
	err := withRetry(context.Background(), policy, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset by peer")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	policy := retryPolicy{attempts: 3, interval: time.Millisecond}

	attempts := 0
	err := withRetry(context.Background(), policy, func() error {
		attempts++
		return errors.New("i/o timeout")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryDecodeErrorRetries(t *testing.T) {
	policy := retryPolicy{attempts: 3, interval: time.Millisecond}

	attempts := 0
	err := withRetry(context.Background(), policy, func() error {
		attempts++
		return errors.New("lz4 decompression failed: malformed block")
	})

	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetryPermanentStopsImmediately(t *testing.T) {
	policy := retryPolicy{attempts: 3, interval: time.Millisecond}

	attempts := 0
	err := withRetry(context.Background(), policy, func() error {
		attempts++
		return errors.New("syntax error in query")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}
