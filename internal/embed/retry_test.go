package embed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
)

func fastRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:   maxRetries,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0

	err := WithRetry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesRetryableErrors(t *testing.T) {
	// Given: a function failing twice with a retryable error
	calls := 0

	err := WithRetry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		if calls < 3 {
			return kiterrors.New(kiterrors.ErrCodeProviderUnavailable, "backend busy", nil)
		}
		return nil
	})

	// Then: the third attempt succeeds
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_NonRetryableReturnsImmediately(t *testing.T) {
	calls := 0
	inputErr := kiterrors.New(kiterrors.ErrCodeEmptyInput, "cannot embed empty text", nil)

	err := WithRetry(context.Background(), fastRetryConfig(3), func() error {
		calls++
		return inputErr
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, kiterrors.ErrCodeEmptyInput, kiterrors.GetCode(err))
}

func TestWithRetry_ExhaustionWrapsLastError(t *testing.T) {
	err := WithRetry(context.Background(), fastRetryConfig(2), func() error {
		return kiterrors.New(kiterrors.ErrCodeProviderTimeout, "timed out", nil)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 2 retries")
}

func TestWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, fastRetryConfig(3), func() error {
		return kiterrors.New(kiterrors.ErrCodeProviderUnavailable, "busy", nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
}
