package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv resets every variable LoadConfig reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CI", "ENV", "PORT", "HOST", "ALLOWED_ORIGINS", "LOG_LEVEL", "LOG_FORMAT",
		"PARSE_INGREDIENTS", "INGREDIENT_WORKERS", "FETCH_TIMEOUT", "USER_AGENT",
		"SHUTDOWN_TIMEOUT", "SECRETS_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, 5000, cfg.ServerPort)
	assert.Equal(t, "", cfg.ServerHost)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.True(t, cfg.ParseIngredients)
	assert.Equal(t, 1, cfg.IngredientWorkers)
	assert.Equal(t, time.Duration(0), cfg.FetchTimeout)
	assert.Equal(t, "alchemorsel-scraper/1.0", cfg.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "*")
	t.Setenv("PORT", "8080")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PARSE_INGREDIENTS", "false")
	t.Setenv("INGREDIENT_WORKERS", "4")
	t.Setenv("FETCH_TIMEOUT", "10s")
	t.Setenv("USER_AGENT", "custom/2.0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Production, cfg.Environment)
	assert.Equal(t, "127.0.0.1:8080", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.ParseIngredients)
	assert.Equal(t, 4, cfg.IngredientWorkers)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "custom/2.0", cfg.UserAgent)
}

func TestLoadConfigRequiresAllowedOrigins(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)

	var verr ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "ALLOWED_ORIGINS", verr.Field)
}

func TestLoadConfigReadsOriginsSecretInProduction(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "allowed_origins"), []byte("https://app.example.com\n"), 0o600))
	t.Setenv("ENV", "production")
	t.Setenv("SECRETS_DIR", dir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("ALLOWED_ORIGINS", "*")
	t.Setenv("PORT", "http")
	t.Setenv("FETCH_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT: must be an integer")
	assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AllowedOrigins:    []string{"https://app.example.com"},
			ServerPort:        5000,
			IngredientWorkers: 1,
			LogFormat:         "json",
		}
	}

	assert.NoError(t, ValidateConfig(valid()))

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"origin without scheme", func(c *Config) { c.AllowedOrigins = []string{"app.example.com"} }, "ALLOWED_ORIGINS"},
		{"ftp origin", func(c *Config) { c.AllowedOrigins = []string{"ftp://files.example.com"} }, "ALLOWED_ORIGINS"},
		{"port too large", func(c *Config) { c.ServerPort = 70000 }, "PORT"},
		{"port zero", func(c *Config) { c.ServerPort = 0 }, "PORT"},
		{"no workers", func(c *Config) { c.IngredientWorkers = 0 }, "INGREDIENT_WORKERS"},
		{"negative timeout", func(c *Config) { c.FetchTimeout = -time.Second }, "FETCH_TIMEOUT"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			var verr ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("Production"))
	assert.Equal(t, Test, ParseEnvironment("test"))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
	assert.True(t, CI.IsTest())
	assert.False(t, Development.IsProduction())
}
