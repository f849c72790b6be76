package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/payarise/payarise/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return ErrBackendUnavailable
		}
		return nil
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestWithRetry_StopsOnPermanentError(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return ErrBackendStatus
	}, service.RetryOptions{MaxAttempts: 5, InitialDelay: time.Millisecond})

	require.ErrorIs(t, err, ErrBackendStatus)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_ExhaustsAttempts(t *testing.T) {
	attempts := 0
	err := WithRetry(context.Background(), func() error {
		attempts++
		return ErrBackendUnavailable
	}, service.RetryOptions{MaxAttempts: 2, InitialDelay: time.Millisecond})

	require.ErrorIs(t, err, ErrMaxRetries)
	require.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, func() error {
		return ErrBackendUnavailable
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second})

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestWithRetry_SingleAttemptUnwrapped(t *testing.T) {
	err := WithRetry(context.Background(), func() error {
		return ErrBackendUnavailable
	}, service.RetryOptions{MaxAttempts: 1})

	assert.Equal(t, ErrBackendUnavailable, err)
	assert.NotErrorIs(t, err, ErrMaxRetries)
}
