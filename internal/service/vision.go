package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pageza/fridge-recipes/backend/config"
)

// ErrMissingCredential is returned when the active provider has no API key configured
var ErrMissingCredential = errors.New("vision provider API key is not configured")

// noRecipesText is returned when the provider answers with an empty completion
const noRecipesText = "No recipes found."

// ProviderError is a failed call to a vision provider
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewVisionProvider builds the adapter selected by cfg.VisionProvider
func NewVisionProvider(cfg *config.Config) (VisionProvider, error) {
	switch cfg.VisionProvider {
	case config.ProviderGemini:
		return NewGeminiService(cfg.Gemini, cfg.VisionTimeout), nil
	case config.ProviderOpenAI:
		return NewOpenAIService(cfg.OpenAI, cfg.VisionTimeout), nil
	default:
		return nil, fmt.Errorf("unknown vision provider %q", cfg.VisionProvider)
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = config.DefaultVisionTimeout
	}
	return &http.Client{Timeout: timeout}
}

// providerErrorMessage pulls error.message and error.code out of a provider error body.
// Both Gemini and OpenAI wrap failures as {"error": {"message": ..., ...}}.
func providerErrorMessage(body []byte) (message, code string) {
	var envelope struct {
		Error struct {
			Message string          `json:"message"`
			Code    json.RawMessage `json:"code"`
			Status  string          `json:"status"`
			Type    string          `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", ""
	}

	var strCode string
	if err := json.Unmarshal(envelope.Error.Code, &strCode); err == nil && strCode != "" {
		code = strCode
	} else if envelope.Error.Status != "" {
		code = envelope.Error.Status
	} else {
		code = envelope.Error.Type
	}
	return envelope.Error.Message, code
}
