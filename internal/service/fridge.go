package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/internal/types"
)

// ErrEmptyImage is returned when AnalyzeFridge is called without image bytes
var ErrEmptyImage = errors.New("image is empty")

// FridgeService relays fridge photos to the configured vision provider
type FridgeService struct {
	provider VisionProvider
	prompt   string
	log      logrus.FieldLogger
}

// NewFridgeService creates a FridgeService that sends the fixed analysis prompt
func NewFridgeService(provider VisionProvider) *FridgeService {
	return &FridgeService{
		provider: provider,
		prompt:   types.AnalysisPrompt,
		log:      logrus.WithField("component", "fridge"),
	}
}

// AnalyzeFridge makes exactly one provider call and normalizes its answer.
// Provider failures are returned as-is; a successful call always yields a result.
func (s *FridgeService) AnalyzeFridge(ctx context.Context, image *types.UploadedImage) (*types.RecipeResult, error) {
	if image == nil || len(image.Data) == 0 {
		return nil, ErrEmptyImage
	}

	start := time.Now()
	entry := s.log.WithFields(logrus.Fields{
		"provider":  s.provider.Name(),
		"mime_type": image.MIMEType,
		"bytes":     len(image.Data),
	})

	text, err := s.provider.Analyze(ctx, image.Data, image.MIMEType, s.prompt)
	if err != nil {
		entry.WithError(err).Error("fridge photo analysis failed")
		return nil, err
	}

	result := NormalizeResponse(text)
	entry.WithFields(logrus.Fields{
		"format":   result.Format,
		"recipes":  len(result.Recipes),
		"duration": time.Since(start).String(),
	}).Info("fridge photo analyzed")

	return result, nil
}
