package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "*", cfg.AllowedOrigin)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.InDelta(t, 0.45, cfg.ConfidenceThreshold, 0.001)
	assert.Equal(t, "configs/replies.yaml", cfg.RepliesFile)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("CONFIDENCE_THRESHOLD", "0.6")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.InDelta(t, 0.6, cfg.ConfidenceThreshold, 0.001)
}

func TestConfidenceThresholdInvalidValue(t *testing.T) {
	t.Setenv("CONFIDENCE_THRESHOLD", "not-a-number")

	cfg := Load()
	assert.InDelta(t, 0.45, cfg.ConfidenceThreshold, 0.001)
}
