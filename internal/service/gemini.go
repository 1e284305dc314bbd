package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/config"
)

// GeminiPart is one element of a Gemini content: either text or inline data
type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inlineData,omitempty"`
}

// GeminiInlineData carries a base64 encoded blob
type GeminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// GeminiContent is a single turn sent to Gemini
type GeminiContent struct {
	Parts []GeminiPart `json:"parts"`
}

// GeminiRequest represents a generateContent request
type GeminiRequest struct {
	Contents []GeminiContent `json:"contents"`
}

// GeminiResponse represents the part of a generateContent response we read
type GeminiResponse struct {
	Candidates []struct {
		Content GeminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiService talks to the Google Gemini generateContent endpoint
type GeminiService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	log    logrus.FieldLogger
}

// NewGeminiService creates a Gemini adapter. An empty API key is accepted;
// Analyze then fails with ErrMissingCredential.
func NewGeminiService(cfg config.ProviderConfig, timeout time.Duration) *GeminiService {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = config.DefaultGeminiAPIURL
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultGeminiModel
	}

	return &GeminiService{
		apiKey: cfg.APIKey,
		apiURL: apiURL,
		model:  model,
		client: newHTTPClient(timeout),
		log:    logrus.WithField("component", "gemini"),
	}
}

// Name returns the provider name
func (s *GeminiService) Name() string {
	return config.ProviderGemini
}

// Analyze sends the prompt and the inline image to Gemini and returns the first candidate's text
func (s *GeminiService) Analyze(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not set: %w", ErrMissingCredential)
	}

	reqBody := GeminiRequest{
		Contents: []GeminiContent{
			{
				Parts: []GeminiPart{
					{Text: prompt},
					{InlineData: &GeminiInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(image),
					}},
				},
			},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.apiURL, url.PathEscape(s.model), url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	s.log.WithFields(logrus.Fields{"model": s.model, "bytes": len(image)}).Debug("sending photo for analysis")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WithError(err).Error("request failed")
		return "", &ProviderError{Provider: "Gemini", Message: "Failed to analyze image with Gemini", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: "Gemini", StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		s.log.WithField("status", resp.StatusCode).Errorf("API request failed: %s", string(body))
		message, code := providerErrorMessage(body)
		if message == "" {
			message = "Failed to analyze image with Gemini"
		}
		return "", &ProviderError{Provider: "Gemini", StatusCode: resp.StatusCode, Code: code, Message: message}
	}

	var result GeminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &ProviderError{Provider: "Gemini", StatusCode: resp.StatusCode, Message: "failed to decode response", Err: err}
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 || result.Candidates[0].Content.Parts[0].Text == "" {
		return noRecipesText, nil
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
