// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gemini converts cleaned HTML to Markdown through the Gemini API,
// behind a shared rate limiter and a retry policy with exponential backoff.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Options configure the conversion client. Zero values fall back to the
// documented defaults.
type Options struct {
	Model          string
	ThinkingBudget int
	MaxRetries     int
	RetryDelayBase time.Duration
	RatePerMinute  int
}

func (o *Options) defaults() {
	if o.Model == "" {
		o.Model = "gemini-2.5-flash"
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.RetryDelayBase <= 0 {
		o.RetryDelayBase = time.Second
	}
}

// Client converts documents one at a time. The limiter and retry policy are
// shared across all calls for the duration of a run.
type Client struct {
	gen     Generator
	limiter *rate.Limiter
	retry   RetryPolicy
	logger  *slog.Logger
}

// New creates a Client backed by the Gemini API.
func New(ctx context.Context, apiKey string, opts Options, logger *slog.Logger) (*Client, error) {
	opts.defaults()
	gen, err := newGenaiGenerator(ctx, apiKey, opts.Model, int32(opts.ThinkingBudget))
	if err != nil {
		return nil, err
	}
	return NewWithGenerator(gen, opts, logger), nil
}

// NewWithGenerator wires a Client around an explicit Generator. Tests use
// this with mock generators.
func NewWithGenerator(gen Generator, opts Options, logger *slog.Logger) *Client {
	opts.defaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		gen:     gen,
		limiter: NewLimiter(opts.RatePerMinute),
		retry:   RetryPolicy{MaxAttempts: opts.MaxRetries, BaseDelay: opts.RetryDelayBase},
		logger:  logger,
	}
}

// Convert turns one document's cleaned markup into Markdown. label
// identifies the document in logs and errors. Once every retry attempt is
// exhausted the failure surfaces as a *ConversionError; a cancelled context
// propagates as-is.
func (c *Client) Convert(ctx context.Context, cleanedHTML, label string) (string, error) {
	prompt, err := renderPrompt(cleanedHTML)
	if err != nil {
		return "", fmt.Errorf("rendering prompt for %s: %w", label, err)
	}

	call := WithRetry(c.retry, c.logger.With("file", label),
		WithRateLimit(c.limiter, c.gen.Generate))

	text, err := call(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return "", err
		}
		return "", &ConversionError{Label: label, Attempts: c.retry.MaxAttempts, Err: err}
	}
	return text, nil
}
