// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyFlagWins(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	key, err := APIKey("from-flag")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", key)
}

func TestAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")

	key, err := APIKey("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)
}

func TestAPIKeyMissing(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := APIKey("   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}
