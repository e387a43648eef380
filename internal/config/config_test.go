package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-labs/gridline/internal/rules"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(4096), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 45, cfg.Anthropic.TimeoutSecs)
	assert.Empty(t, cfg.Store.Path)
	assert.Empty(t, cfg.Guidance.Path)
	assert.Equal(t, 4, cfg.Scripts.MaxLegs)
	assert.Equal(t, 3, cfg.Ladders.RungCap)

	// Threshold defaults mirror the rule engine's production cutoffs.
	assert.Equal(t, rules.DefaultThresholds(), cfg.Rules)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GRIDLINE_ANTHROPIC_MODEL", "claude-haiku-4-5-20251001")
	t.Setenv("GRIDLINE_RULES_MIN_CARRIES", "100")
	t.Setenv("GRIDLINE_SERVER_PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, 100, cfg.Rules.MinCarries)
	assert.Equal(t, 9999, cfg.Server.Port)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "verbose", Format: "json"}))
}
