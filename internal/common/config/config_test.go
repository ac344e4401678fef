package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, k := range []string{"PORT", "ENV", "READ_TIMEOUT", "LOG_LEVEL", "EDITOR_DB_PATH", "EDITOR_TUNING"} {
			t.Setenv(k, "")
		}
		cfg := Load()
		require.Equal(t, "3000", cfg.Port)
		require.Equal(t, "development", cfg.Environment)
		require.Equal(t, 10, cfg.ReadTimeout)
		require.Equal(t, "info", cfg.LogLevel)
		require.Equal(t, "data/editor.db", cfg.DBPath)
		require.Empty(t, cfg.TuningPath)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("PORT", "8080")
		t.Setenv("READ_TIMEOUT", "30")
		t.Setenv("WRITE_TIMEOUT", "not-a-number")
		cfg := Load()
		require.Equal(t, "8080", cfg.Port)
		require.Equal(t, 30, cfg.ReadTimeout)
		require.Equal(t, 10, cfg.WriteTimeout)
	})
}
