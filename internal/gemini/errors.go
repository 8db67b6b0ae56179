// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gemini

import (
	"fmt"
	"time"
)

// ConversionError reports that a document could not be converted after
// every retry attempt was exhausted.
type ConversionError struct {
	Label    string
	Attempts int
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %d attempts exhausted: %v", e.Label, e.Attempts, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// RateLimitError is a quota failure from the API. RetryAfter carries the
// server-suggested delay when the response included one, zero otherwise.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, server asks for %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }
