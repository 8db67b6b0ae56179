package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `{
  "html_cleaning": {
    "remove_tags": ["script", "style", "nav"]
  },
  "gemini": {
    "model": "gemini-2.5-flash",
    "thinking_budget": -1,
    "max_retries": 5,
    "retry_delay_base": 0.5
  },
  "processing": {
    "rate_limit_per_minute": 60,
    "max_concurrent": "not-a-number"
  },
  "output": {
    "add_headers": true,
    "separator": "***"
  }
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := writeConfig(t, `{"gemini": `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestGetters(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	t.Run("present keys", func(t *testing.T) {
		assert.Equal(t, "gemini-2.5-flash", cfg.String("gemini.model", "fallback"))
		assert.Equal(t, 5, cfg.Int("gemini.max_retries", 3))
		assert.Equal(t, -1, cfg.Int("gemini.thinking_budget", 0))
		assert.Equal(t, 0.5, cfg.Float("gemini.retry_delay_base", 1.0))
		assert.Equal(t, 500*time.Millisecond, cfg.Seconds("gemini.retry_delay_base", time.Second))
		assert.Equal(t, true, cfg.Bool("output.add_headers", false))
		assert.Equal(t, "***", cfg.String("output.separator", "---"))
		assert.Equal(t, []string{"script", "style", "nav"}, cfg.Strings("html_cleaning.remove_tags", nil))
	})

	t.Run("absent keys return defaults", func(t *testing.T) {
		assert.Equal(t, "INFO", cfg.String("logging.level", "INFO"))
		assert.Equal(t, 20, cfg.Int("processing.missing", 20))
		assert.Equal(t, 1.0, cfg.Float("gemini.missing", 1.0))
		assert.Equal(t, false, cfg.Bool("output.missing", false))
		assert.Equal(t, []string{"a"}, cfg.Strings("html_cleaning.missing", []string{"a"}))
		assert.Equal(t, 2*time.Second, cfg.Seconds("gemini.missing", 2*time.Second))
	})

	t.Run("partial path returns default", func(t *testing.T) {
		assert.Equal(t, 7, cfg.Int("gemini.model.deeper", 7))
		assert.Equal(t, "x", cfg.String("nope.nope.nope", "x"))
	})

	t.Run("type mismatch returns default", func(t *testing.T) {
		assert.Equal(t, 20, cfg.Int("processing.max_concurrent", 20))
		assert.Equal(t, true, cfg.Bool("gemini.model", true))
		assert.Equal(t, 1.5, cfg.Float("gemini.model", 1.5))
	})
}

func TestSetOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	cfg.Set("processing.max_concurrent", 8)
	assert.Equal(t, 8, cfg.Int("processing.max_concurrent", 20))

	cfg.Set("logging.level", "DEBUG")
	assert.Equal(t, "DEBUG", cfg.String("logging.level", "INFO"))
}
