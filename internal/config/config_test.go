package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TAIGA_USERNAME", "bot")
	t.Setenv("TAIGA_PASSWORD", "secret")
	t.Setenv("PROJECT_SLUG", "demo")
	t.Setenv("DISCORD_WEBHOOK", "https://discord.test/webhook")
}

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequired(t)

		cfg, err := LoadFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "https://api.taiga.io/api/v1", cfg.Taiga.BaseURL)
		assert.Equal(t, 3, cfg.Board.MaxVisible)
		assert.True(t, cfg.Board.NormalizeStatus)
		assert.Equal(t, []string{"Done", "Archived"}, cfg.Board.TerminalStatuses)
		assert.Equal(t, "reports", cfg.Output.Directory)
		assert.Equal(t, []string{"xlsx"}, cfg.Output.Format)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequired(t)
		t.Setenv("TAIGA_URL", "https://taiga.internal/api/v1")
		t.Setenv("BOARD_MAX_VISIBLE", "5")
		t.Setenv("BOARD_TERMINAL_STATUSES", "Done, Archived, Won't Fix")
		t.Setenv("OUTPUT_FORMAT", "csv,json")

		cfg, err := LoadFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "https://taiga.internal/api/v1", cfg.Taiga.BaseURL)
		assert.Equal(t, 5, cfg.Board.MaxVisible)
		assert.Equal(t, []string{"Done", "Archived", "Won't Fix"}, cfg.Board.TerminalStatuses)
		assert.Equal(t, []string{"csv", "json"}, cfg.Output.Format)
	})

	t.Run("invalid max visible rejected", func(t *testing.T) {
		setRequired(t)
		t.Setenv("BOARD_MAX_VISIBLE", "many")
		_, err := LoadFromEnv()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("complete config passes", func(t *testing.T) {
		setRequired(t)
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing credentials fail", func(t *testing.T) {
		setRequired(t)
		t.Setenv("TAIGA_PASSWORD", "")
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing webhook fails", func(t *testing.T) {
		setRequired(t)
		t.Setenv("DISCORD_WEBHOOK", "")
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		assert.Error(t, cfg.Validate())
	})
}
