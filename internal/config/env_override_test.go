package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides_REPL(t *testing.T) {
	t.Run("RELISION_PROMPT replaces prompt", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RELISION_PROMPT", "eli> ")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "eli> ", cfg.REPL.Prompt)
	})

	t.Run("RELISION_HISTORY_FILE replaces history file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RELISION_HISTORY_FILE", "/tmp/relision-history")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/relision-history", cfg.REPL.HistoryFile)
		assert.Equal(t, "/tmp/relision-history", cfg.HistoryPath("/ignored"))
	})

	t.Run("empty variables leave config alone", func(t *testing.T) {
		clearEnv(t)

		cfg := DefaultConfig()
		cfg.REPL.Prompt = "custom> "
		cfg.applyEnvOverrides()

		assert.Equal(t, "custom> ", cfg.REPL.Prompt)
		assert.Equal(t, "repl.history", cfg.REPL.HistoryFile)
	})
}

func TestEnvOverrides_Debug(t *testing.T) {
	t.Run("true enables debug mode and level", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RELISION_DEBUG", "true")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.True(t, cfg.Logging.DebugMode)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("false disables debug mode", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RELISION_DEBUG", "0")

		cfg := DefaultConfig()
		cfg.Logging.DebugMode = true
		cfg.applyEnvOverrides()

		assert.False(t, cfg.Logging.DebugMode)
	})

	t.Run("garbage is ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RELISION_DEBUG", "sometimes")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.False(t, cfg.Logging.DebugMode)
		assert.Equal(t, "info", cfg.Logging.Level)
	})
}

func TestEnvOverrides_AppliedOnLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv("RELISION_PROMPT", "env> ")

	dir := t.TempDir()
	path := Path(dir)

	cfg := DefaultConfig()
	cfg.REPL.Prompt = "file> "
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env> ", loaded.REPL.Prompt)

	missing, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "env> ", missing.REPL.Prompt)
}
