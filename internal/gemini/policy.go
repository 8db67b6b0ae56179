// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gemini

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// CallFunc is one model invocation. Retry and rate-limit policies wrap a
// CallFunc rather than living inside the client, so they compose.
type CallFunc func(ctx context.Context, prompt string) (string, error)

// RetryPolicy controls the retry decorator.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// WithRetry wraps next with exponential backoff: BaseDelay * 2^attempt
// between attempts, no jitter. A RateLimitError carrying a server-suggested
// delay replaces the computed backoff for that one attempt only. Every
// attempt emits one log line. Context cancellation aborts the wait.
func WithRetry(policy RetryPolicy, logger *slog.Logger, next CallFunc) CallFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		var lastErr error
		for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
			out, err := next(ctx, prompt)
			if err == nil {
				logger.InfoContext(ctx, "conversion succeeded", "attempt", attempt+1)
				return out, nil
			}
			lastErr = err
			logger.WarnContext(ctx, "conversion attempt failed",
				"attempt", attempt+1,
				"max_attempts", policy.MaxAttempts,
				"error", err)

			if ctx.Err() != nil || attempt == policy.MaxAttempts-1 {
				break
			}

			wait := policy.BaseDelay * (1 << uint(attempt))
			var rl *RateLimitError
			if errors.As(err, &rl) && rl.RetryAfter > 0 {
				wait = rl.RetryAfter
				logger.InfoContext(ctx, "rate limited, honoring server delay", "delay", wait)
			}

			select {
			case <-ctx.Done():
				return "", lastErr
			case <-time.After(wait):
			}
		}
		return "", lastErr
	}
}

// WithRateLimit gates each call on the shared token bucket. The wait counts
// against the caller's context.
func WithRateLimit(limiter *rate.Limiter, next CallFunc) CallFunc {
	return func(ctx context.Context, prompt string) (string, error) {
		if err := limiter.Wait(ctx); err != nil {
			return "", err
		}
		return next(ctx, prompt)
	}
}

// NewLimiter builds the shared token bucket admitting at most perMinute
// call starts in any rolling 60-second window. Zero or negative disables
// limiting.
func NewLimiter(perMinute int) *rate.Limiter {
	return newLimiter(perMinute, time.Minute)
}

// newLimiter spaces permits evenly across the window: one permit every
// window/n with no burst, so a rolling window never admits more than n
// starts. Tests use short windows.
func newLimiter(n int, window time.Duration) *rate.Limiter {
	if n <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(window/time.Duration(n)), 1)
}
