package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/config"
)

// ChatContentPart is one element of a multimodal chat message
type ChatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *ChatImageURL `json:"image_url,omitempty"`
}

// ChatImageURL points at an image; here always a data URL
type ChatImageURL struct {
	URL string `json:"url"`
}

// ChatMessage represents a message in the chat
type ChatMessage struct {
	Role    string            `json:"role"`
	Content []ChatContentPart `json:"content"`
}

// ChatRequest represents a chat completion request with image input
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// OpenAIService talks to the OpenAI chat completions endpoint with vision input
type OpenAIService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	log    logrus.FieldLogger
}

// NewOpenAIService creates an OpenAI adapter. An empty API key is accepted;
// Analyze then fails with ErrMissingCredential.
func NewOpenAIService(cfg config.ProviderConfig, timeout time.Duration) *OpenAIService {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = config.DefaultOpenAIAPIURL
	}
	model := cfg.Model
	if model == "" {
		model = config.DefaultOpenAIModel
	}

	return &OpenAIService{
		apiKey: cfg.APIKey,
		apiURL: apiURL,
		model:  model,
		client: newHTTPClient(timeout),
		log:    logrus.WithField("component", "openai"),
	}
}

// Name returns the provider name
func (s *OpenAIService) Name() string {
	return config.ProviderOpenAI
}

// Analyze sends the prompt and the image as a data URL and returns the first choice's content
func (s *OpenAIService) Analyze(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY is not set: %w", ErrMissingCredential)
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))
	reqBody := ChatRequest{
		Model: s.model,
		Messages: []ChatMessage{
			{
				Role: "user",
				Content: []ChatContentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &ChatImageURL{URL: dataURL}},
				},
			},
		},
		MaxTokens:   1500,
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	s.log.WithFields(logrus.Fields{"model": s.model, "bytes": len(image)}).Debug("sending photo for analysis")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.WithError(err).Error("request failed")
		return "", &ProviderError{Provider: "OpenAI", Message: "Failed to analyze image with OpenAI", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: "OpenAI", StatusCode: resp.StatusCode, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		s.log.WithField("status", resp.StatusCode).Errorf("API request failed: %s", string(body))
		message, code := providerErrorMessage(body)
		switch code {
		case "insufficient_quota":
			message = "OpenAI API quota exceeded. Please check your account."
		case "invalid_api_key":
			message = "Invalid OpenAI API key. Please check your configuration."
		}
		if message == "" {
			message = "Failed to analyze image with OpenAI"
		}
		return "", &ProviderError{Provider: "OpenAI", StatusCode: resp.StatusCode, Code: code, Message: message}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &ProviderError{Provider: "OpenAI", StatusCode: resp.StatusCode, Message: "failed to decode response", Err: err}
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return noRecipesText, nil
	}

	return result.Choices[0].Message.Content, nil
}
