package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnglemongrass/pdfchat/internal/perplexity"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "sonar", cfg.Model)
	assert.Equal(t, perplexity.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, perplexity.DefaultSystemPrompt, cfg.SystemPrompt)
	assert.True(t, cfg.Stream)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadFromCLIArgs(t *testing.T) {
	args := []string{"--model", "sonar-pro", "--api-key", "pplx-test", "--pdf", "paper.pdf"}
	cfg, err := Load(args)
	require.NoError(t, err)
	assert.Equal(t, "sonar-pro", cfg.Model)
	assert.Equal(t, "pplx-test", cfg.APIKey)
	assert.Equal(t, "paper.pdf", cfg.PDFPath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv(perplexity.EnvAPIKey, "env-key")
	t.Setenv("PDFCHAT_MODEL", "r1-1776")
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "r1-1776", cfg.Model)
}

func TestCLIOverridesEnv(t *testing.T) {
	t.Setenv("PDFCHAT_MODEL", "env-model")
	cfg, err := Load([]string{"--model", "cli-model"})
	require.NoError(t, err)
	assert.Equal(t, "cli-model", cfg.Model)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	yamlContent := []byte("model: sonar-deep-research\napi-key: yaml-key\nsystem-prompt: Be verbose.\n")
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, yamlContent, 0644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.loadYAML(path))
	assert.Equal(t, "sonar-deep-research", cfg.Model)
	assert.Equal(t, "yaml-key", cfg.APIKey)
	assert.Equal(t, "Be verbose.", cfg.SystemPrompt)
}

func TestLoadYAMLMissing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.loadYAML("/nonexistent/path.yml")
	assert.Error(t, err)
}

func TestStreamFlag(t *testing.T) {
	cfg, err := Load([]string{"--stream=false"})
	require.NoError(t, err)
	assert.False(t, cfg.Stream)
}
