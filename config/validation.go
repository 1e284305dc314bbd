package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks every setting and reports all problems at once
func ValidateConfig(cfg *Config) error {
	var errors []string

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errors = append(errors, ValidationError{Field: "PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)}.Error())
	}

	switch cfg.VisionProvider {
	case ProviderGemini, ProviderOpenAI:
	default:
		errors = append(errors, ValidationError{Field: "VISION_PROVIDER", Message: fmt.Sprintf("must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, cfg.VisionProvider)}.Error())
	}

	if cfg.VisionTimeout <= 0 {
		errors = append(errors, ValidationError{Field: "VISION_TIMEOUT", Message: "must be positive"}.Error())
	}
	if cfg.MaxUploadBytes <= 0 {
		errors = append(errors, ValidationError{Field: "MAX_UPLOAD_BYTES", Message: "must be positive"}.Error())
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"}.Error())
	}
	if cfg.RateLimitMax <= 0 {
		errors = append(errors, ValidationError{Field: "RATE_LIMIT_MAX", Message: "must be positive"}.Error())
	}

	switch cfg.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			errors = append(errors, ValidationError{Field: "DATABASE_URL", Message: "required when DB_DRIVER is postgres"}.Error())
		}
	default:
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if cfg.CORSOrigin == "" {
		errors = append(errors, ValidationError{Field: "CORS_ORIGIN", Message: "must not be empty"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, "\n"))
	}

	return nil
}
