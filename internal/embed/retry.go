package embed

import (
	"context"
	"fmt"
	"time"

	kiterrors "github.com/Aman-CERP/ymjkit/internal/errors"
)

// RetryConfig configures retry behavior for embedding requests.
type RetryConfig struct {
	MaxRetries   int           // Maximum number of retry attempts (not including initial attempt)
	InitialDelay time.Duration // Delay before first retry
	MaxDelay     time.Duration // Maximum delay between retries
	Multiplier   float64       // Multiplier for exponential backoff
}

// WithRetry executes fn with exponential backoff on retryable errors.
// Non-retryable errors (empty input, malformed responses) return
// immediately. If the context is cancelled, the context error is returned.
func WithRetry(ctx context.Context, cfg RetryConfig, fn func() error) error {
	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !kiterrors.IsRetryable(err) || attempt >= cfg.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	if kiterrors.IsRetryable(lastErr) {
		return fmt.Errorf("failed after %d retries: %w", cfg.MaxRetries, lastErr)
	}
	return lastErr
}
