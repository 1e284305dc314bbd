package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configVars = []string{
	"PORT", "NODE_ENV", "APP_ENV", "CORS_ORIGIN", "VISION_PROVIDER", "VISION_TIMEOUT",
	"GEMINI_API_KEY", "GEMINI_API_KEY_FILE", "GEMINI_API_URL", "GEMINI_MODEL",
	"OPENAI_API_KEY", "OPENAI_API_KEY_FILE", "OPENAI_API_URL", "OPENAI_MODEL",
	"MAX_UPLOAD_BYTES", "RATE_LIMIT_WINDOW", "RATE_LIMIT_MAX", "REDIS_URL",
	"DB_DRIVER", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT",
}

// clearEnv blanks every variable the loader reads so host settings do not leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range configVars {
		t.Setenv(name, "")
	}
	// keep a stray .env in the package directory from being picked up
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "3001", cfg.ServerPort)
	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "http://localhost:3000", cfg.CORSOrigin)
	assert.Equal(t, ProviderGemini, cfg.VisionProvider)
	assert.Equal(t, 60*time.Second, cfg.VisionTimeout)
	assert.Equal(t, DefaultGeminiAPIURL, cfg.Gemini.APIURL)
	assert.Equal(t, DefaultGeminiModel, cfg.Gemini.Model)
	assert.Equal(t, DefaultOpenAIModel, cfg.OpenAI.Model)
	assert.Empty(t, cfg.Gemini.APIKey)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, 100, cfg.RateLimitMax)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, DefaultSQLiteDSN, cfg.DatabaseURL)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("VISION_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_API_URL", "http://localhost:9999/v1/")
	t.Setenv("VISION_TIMEOUT", "5s")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, Production, cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ProviderOpenAI, cfg.VisionProvider)
	assert.Equal(t, "sk-test", cfg.ActiveProvider().APIKey)
	assert.Equal(t, "http://localhost:9999/v1", cfg.ActiveProvider().APIURL)
	assert.Equal(t, 5*time.Second, cfg.VisionTimeout)
	assert.Equal(t, 10, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigReadsKeyFile(t *testing.T) {
	clearEnv(t)

	keyFile := filepath.Join(t.TempDir(), "gemini_key")
	require.NoError(t, os.WriteFile(keyFile, []byte("  file-key\n"), 0o600))
	t.Setenv("GEMINI_API_KEY_FILE", keyFile)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Gemini.APIKey)
	assert.Equal(t, "file-key", cfg.ActiveProvider().APIKey)
}

func TestLoadConfigMissingKeyFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY_FILE", filepath.Join(t.TempDir(), "missing"))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY_FILE")
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")
	t.Setenv("VISION_PROVIDER", "claude")
	t.Setenv("DB_DRIVER", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "VISION_PROVIDER")
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfigRejectsBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISION_TIMEOUT", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VISION_TIMEOUT")
}

func TestGetEnvironment(t *testing.T) {
	tests := []struct {
		nodeEnv string
		appEnv  string
		want    Environment
	}{
		{"", "", Development},
		{"development", "", Development},
		{"production", "", Production},
		{"", "prod", Production},
		{"test", "production", Test},
		{"staging", "", Development},
	}

	for _, tt := range tests {
		t.Run(tt.nodeEnv+"/"+tt.appEnv, func(t *testing.T) {
			t.Setenv("NODE_ENV", tt.nodeEnv)
			t.Setenv("APP_ENV", tt.appEnv)
			assert.Equal(t, tt.want, GetEnvironment())
		})
	}
}
