package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout())
	assert.Equal(t, time.Hour, cfg.SessionExpiry())
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.RecipientList())
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("OPEN_AI_API", "sk-test")
	t.Setenv("ENV", "production")
	t.Setenv("LLM_TIMEOUT_SECONDS", "5")
	t.Setenv("RECIPIENTS", " mp@example.com , ,clerk@example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIKey)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Second, cfg.LLMTimeout())
	assert.Equal(t, []string{"mp@example.com", "clerk@example.com"}, cfg.RecipientList())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("APP_PORT: \"9090\"\nGEMINI_MODEL: gemini-pro\n"), 0o600))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "gemini-pro", cfg.GeminiModel)
}

func TestBaseURLPrefersPublicURL(t *testing.T) {
	cfg := &Config{AppPort: "8080", PublicURL: "https://advisor.example.org/"}
	assert.Equal(t, "https://advisor.example.org", cfg.BaseURL())
}
