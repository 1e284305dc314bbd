package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Vision providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Catalog database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort  string
	Environment Environment
	CORSOrigin  string

	// Vision provider configuration
	VisionProvider string
	VisionTimeout  time.Duration
	Gemini         ProviderConfig
	OpenAI         ProviderConfig

	// Upload limits
	MaxUploadBytes int64

	// Rate limiting
	RateLimitWindow time.Duration
	RateLimitMax    int
	RedisURL        string

	// Sample catalog database
	DBDriver    string
	DatabaseURL string

	// Logging
	LogLevel  string
	LogFormat string
}

// ProviderConfig holds the credential and endpoint of one vision provider
type ProviderConfig struct {
	APIKey string
	APIURL string
	Model  string
}

// Defaults
const (
	DefaultPort           = "3001"
	DefaultCORSOrigin     = "http://localhost:3000"
	DefaultGeminiAPIURL   = "https://generativelanguage.googleapis.com/v1"
	DefaultGeminiModel    = "gemini-1.5-flash"
	DefaultOpenAIAPIURL   = "https://api.openai.com/v1"
	DefaultOpenAIModel    = "gpt-4o"
	DefaultVisionTimeout  = 60 * time.Second
	DefaultMaxUploadBytes = 10 * 1024 * 1024
	DefaultRateLimitWin   = 15 * time.Minute
	DefaultRateLimitMax   = 100
	DefaultSQLiteDSN      = "file::memory:?cache=shared"
)

// LoadConfig creates a new Config instance from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the process environment win.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		ServerPort:     getEnv("PORT", DefaultPort),
		Environment:    GetEnvironment(),
		CORSOrigin:     getEnv("CORS_ORIGIN", DefaultCORSOrigin),
		VisionProvider: strings.ToLower(getEnv("VISION_PROVIDER", ProviderGemini)),
		RedisURL:       os.Getenv("REDIS_URL"),
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      os.Getenv("LOG_FORMAT"),
	}

	var err error
	if cfg.Gemini.APIKey, err = readAPIKey("GEMINI_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Gemini.APIURL = strings.TrimRight(getEnv("GEMINI_API_URL", DefaultGeminiAPIURL), "/")
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", DefaultGeminiModel)

	if cfg.OpenAI.APIKey, err = readAPIKey("OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	cfg.OpenAI.APIURL = strings.TrimRight(getEnv("OPENAI_API_URL", DefaultOpenAIAPIURL), "/")
	cfg.OpenAI.Model = getEnv("OPENAI_MODEL", DefaultOpenAIModel)

	if cfg.VisionTimeout, err = getDuration("VISION_TIMEOUT", DefaultVisionTimeout); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", DefaultRateLimitWin); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = getInt("RATE_LIMIT_MAX", DefaultRateLimitMax); err != nil {
		return nil, err
	}
	maxUpload, err := getInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	if cfg.DBDriver == DriverSQLite && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DefaultSQLiteDSN
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
		if cfg.Environment == Production {
			cfg.LogFormat = "json"
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ActiveProvider returns the configuration of the selected vision provider
func (c *Config) ActiveProvider() ProviderConfig {
	if c.VisionProvider == ProviderOpenAI {
		return c.OpenAI
	}
	return c.Gemini
}

// IsProduction reports whether error details must be hidden from clients
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// readAPIKey reads NAME or, when unset, the file named by NAME_FILE.
// A missing credential is not an error here; it surfaces when the provider is called.
func readAPIKey(name string) (string, error) {
	if key := strings.TrimSpace(os.Getenv(name)); key != "" {
		return key, nil
	}

	keyFile := os.Getenv(name + "_FILE")
	if keyFile == "" {
		return "", nil
	}

	keyBytes, err := os.ReadFile(keyFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s_FILE: %w", name, err)
	}
	return strings.TrimSpace(string(keyBytes)), nil
}

func getEnv(name, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}

func getDuration(name string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, ValidationError{Field: name, Message: fmt.Sprintf("invalid duration %q", value)}
	}
	return d, nil
}

func getInt(name string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, ValidationError{Field: name, Message: fmt.Sprintf("invalid integer %q", value)}
	}
	return n, nil
}
