package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load(filepath.Join(t.TempDir(), ConfigFileName))
		assert.ErrorIs(t, err, ErrConfigNotFound)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("no_header: true\npragmas:\n  - cache_size = -64000\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 300, cfg.BatchSize)
		assert.True(t, cfg.NoHeader)
		assert.Equal(t, []string{"cache_size = -64000"}, cfg.Pragmas)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ConfigFileName)
		content := "batch_size: 50\nlog_level: debug\nseq_url: http://localhost:5341\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 50, cfg.BatchSize)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "http://localhost:5341", cfg.SeqURL)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ConfigFileName)
		require.NoError(t, os.WriteFile(path, []byte("batch_size: [oops\n"), 0o600))

		_, err := Load(path)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrConfigNotFound)
	})
}

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Parallel()

	t.Run("overrides set variables only", func(t *testing.T) {
		t.Parallel()

		base := Default()
		base.Pragmas = []string{"foreign_keys = ON"}

		cfg, err := base.ApplyEnv(mapLookup(map[string]string{
			EnvBatchSize: "100",
			EnvNoHeader:  "true",
			EnvLogLevel:  "info",
		}))
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.BatchSize)
		assert.True(t, cfg.NoHeader)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, []string{"foreign_keys = ON"}, cfg.Pragmas)
		assert.Empty(t, cfg.SeqURL)
	})

	t.Run("pragma list", func(t *testing.T) {
		t.Parallel()

		cfg, err := Default().ApplyEnv(mapLookup(map[string]string{
			EnvPragmas: "journal_mode = OFF; ;synchronous = OFF",
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"journal_mode = OFF", "synchronous = OFF"}, cfg.Pragmas)
	})

	t.Run("bad batch size", func(t *testing.T) {
		t.Parallel()

		_, err := Default().ApplyEnv(mapLookup(map[string]string{EnvBatchSize: "many"}))
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Parallel()

		_, err := Default().ApplyEnv(mapLookup(map[string]string{EnvNoHeader: "perhaps"}))
		assert.ErrorIs(t, err, ErrInvalidValue)
	})
}
