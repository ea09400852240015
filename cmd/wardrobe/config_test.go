package main_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/wardrobe"
	main "github.com/fwojciec/wardrobe/cmd/wardrobe"
	"github.com/fwojciec/wardrobe/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(env(nil), "")

		require.NoError(t, err)
		assert.Empty(t, cfg.APIKey)
		assert.Equal(t, gemini.DefaultModel, cfg.Model)
		assert.Empty(t, cfg.DBPath)
		assert.InDelta(t, main.DefaultRPS, cfg.RPS, 1e-9)
		assert.Equal(t, main.DefaultRetries, cfg.Retries)
		assert.Equal(t, main.DefaultTimeout, cfg.Timeout)
	})

	t.Run("reads the environment", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig(env(map[string]string{
			"GEMINI_API_KEY":   "secret",
			"WARDROBE_MODEL":   "gemini-2.5-pro",
			"WARDROBE_DB":      "/tmp/w.db",
			"WARDROBE_RPS":     "0.5",
			"WARDROBE_RETRIES": "0",
			"WARDROBE_TIMEOUT": "90s",
		}), "")

		require.NoError(t, err)
		assert.Equal(t, "secret", cfg.APIKey)
		assert.Equal(t, "gemini-2.5-pro", cfg.Model)
		assert.Equal(t, "/tmp/w.db", cfg.DBPath)
		assert.InDelta(t, 0.5, cfg.RPS, 1e-9)
		assert.Equal(t, 0, cfg.Retries)
		assert.Equal(t, 90*time.Second, cfg.Timeout)
	})

	t.Run("environment wins over the env file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("GEMINI_API_KEY=from-file\nWARDROBE_MODEL=gemini-2.5-pro\n"), 0600))

		cfg, err := main.LoadConfig(env(map[string]string{"WARDROBE_MODEL": "gemini-2.5-flash-lite"}), path)

		require.NoError(t, err)
		assert.Equal(t, "from-file", cfg.APIKey)
		assert.Equal(t, "gemini-2.5-flash-lite", cfg.Model)
	})

	t.Run("missing env file is ignored", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(env(nil), filepath.Join(t.TempDir(), ".env"))

		require.NoError(t, err)
	})

	t.Run("rejects bad numbers", func(t *testing.T) {
		t.Parallel()

		for _, vars := range []map[string]string{
			{"WARDROBE_RPS": "fast"},
			{"WARDROBE_RPS": "-1"},
			{"WARDROBE_RETRIES": "many"},
			{"WARDROBE_TIMEOUT": "soon"},
		} {
			_, err := main.LoadConfig(env(vars), "")
			require.Error(t, err, "%v", vars)
			assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
		}
	})
}

func TestConfig_RequireAPIKey(t *testing.T) {
	t.Parallel()

	err := (&main.Config{}).RequireAPIKey()
	require.Error(t, err)
	assert.Equal(t, wardrobe.EINVALID, wardrobe.ErrorCode(err))
	assert.Contains(t, wardrobe.ErrorMessage(err), "GEMINI_API_KEY")

	assert.NoError(t, (&main.Config{APIKey: "k"}).RequireAPIKey())
}

func TestConfig_RetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, (&main.Config{Retries: 3}).RetryDelays())
	assert.Empty(t, (&main.Config{}).RetryDelays())
}
