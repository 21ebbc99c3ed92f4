package retry

import (
	"context"
	"fmt"
	"time"
)

// Config holds retry configuration
type Config struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultConfig returns the retry configuration used for boot-time
// dependency checks.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   10,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
	}
}

// Fixed returns a configuration with a constant delay between attempts.
func Fixed(maxAttempts int, delay time.Duration) Config {
	return Config{
		MaxAttempts:   maxAttempts,
		InitialDelay:  delay,
		MaxDelay:      delay,
		BackoffFactor: 1.0,
	}
}

// Do executes fn until it succeeds, the attempt budget is spent, or ctx is
// cancelled. The last error is wrapped in the returned error.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	return DoWithLog(ctx, cfg, fn, nil)
}

// DoWithLog is Do with a per-failure callback, invoked before each sleep.
func DoWithLog(ctx context.Context, cfg Config, fn func() error, logFn func(attempt int, err error, nextDelay time.Duration)) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			if lastErr != nil {
				return fmt.Errorf("retry aborted after %d attempts: %w (last error: %v)", attempt-1, err, lastErr)
			}
			return fmt.Errorf("retry aborted: %w", err)
		}

		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if attempt == cfg.MaxAttempts {
			break
		}

		if logFn != nil {
			logFn(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("retry aborted after %d attempts: %w (last error: %v)", attempt, ctx.Err(), lastErr)
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}
