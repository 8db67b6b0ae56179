// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the API credential for a run.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// envAPIKey is the fallback environment variable when no flag is given.
const envAPIKey = "GEMINI_API_KEY"

// APIKey returns the key from flagValue when set, otherwise from
// GEMINI_API_KEY. A missing key is a startup error.
func APIKey(flagValue string) (string, error) {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(envAPIKey)); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("API key required: use --api-key or set %s", envAPIKey)
}
