package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		// Setenv registers the restore, Unsetenv clears it for the test.
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "DATABASE_URL", "TOKEN_TTL", "AI_PROVIDER", "AI_MODEL", "AI_TIMEOUT",
		"ALLOWED_ORIGINS", "DEMO_MODE", "LOG_LEVEL", "LOG_FORMAT", "OPENAI_BASE_URL")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite://./budgetly.db", cfg.DatabaseURL)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "openai", cfg.AIProvider)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AIModel)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.DemoMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AI_TIMEOUT", "soon")

	cfg := Load()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AI_TIMEOUT")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/budgetly")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("AI_PROVIDER", "Gemini")
	t.Setenv("AI_MODEL", "")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("AI_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "console")

	cfg := Load()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "gemini", cfg.AIProvider)
	assert.Equal(t, "gemini-2.0-flash", cfg.AIModel)
	assert.Equal(t, "g-key", cfg.AIAPIKey())
	assert.Equal(t, 5*time.Second, cfg.AITimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.DemoMode)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Port:        "8080",
		DatabaseURL: "sqlite://./budgetly.db",
		JWTSecret:   "secret",
		TokenTTL:    time.Hour,
		AIProvider:  "openai",
		AITimeout:   time.Second,
		LogLevel:    "info",
		LogFormat:   "json",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = "http" }, "invalid PORT"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid PORT"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"missing database", func(c *Config) { c.DatabaseURL = "" }, "DATABASE_URL is required"},
		{"bad ttl", func(c *Config) { c.TokenTTL = -1 }, "TOKEN_TTL"},
		{"bad provider", func(c *Config) { c.AIProvider = "llama" }, "unsupported AI_PROVIDER"},
		{"bad timeout", func(c *Config) { c.AITimeout = 0 }, "AI_TIMEOUT"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid LOG_LEVEL"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "invalid LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAIAPIKeyFollowsProvider(t *testing.T) {
	cfg := Config{AIProvider: "openai", OpenAIAPIKey: "o", GeminiAPIKey: "g"}
	assert.Equal(t, "o", cfg.AIAPIKey())
	cfg.AIProvider = "gemini"
	assert.Equal(t, "g", cfg.AIAPIKey())
}
