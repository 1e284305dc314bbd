package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge-recipes/backend/internal/mocks"
	"github.com/pageza/fridge-recipes/backend/internal/types"
)

func TestFridgeService_AnalyzeFridge(t *testing.T) {
	provider := &mocks.MockVisionProvider{}
	provider.On("Analyze", mock.Anything, []byte("jpeg-bytes"), "image/jpeg", types.AnalysisPrompt).
		Return("Recipe A: ...", nil).Once()

	svc := NewFridgeService(provider)
	result, err := svc.AnalyzeFridge(context.Background(), &types.UploadedImage{
		Data:     []byte("jpeg-bytes"),
		MIMEType: "image/jpeg",
	})

	require.NoError(t, err)
	assert.Equal(t, types.FormatFreeform, result.Format)
	assert.Equal(t, "Recipe A: ...", result.Payload())
	require.Len(t, result.Recipes, 1)
	provider.AssertExpectations(t)
}

func TestFridgeService_StructuredAnswer(t *testing.T) {
	provider := &mocks.MockVisionProvider{}
	provider.On("Analyze", mock.Anything, mock.Anything, "image/png", types.AnalysisPrompt).
		Return(`[{"name":"Omelette","ingredients":["eggs"]}]`, nil)

	svc := NewFridgeService(provider)
	result, err := svc.AnalyzeFridge(context.Background(), &types.UploadedImage{Data: []byte("png"), MIMEType: "image/png"})

	require.NoError(t, err)
	assert.True(t, result.Structured())
	assert.Equal(t, "Omelette", result.Recipes[0].Name)
}

func TestFridgeService_ProviderError(t *testing.T) {
	providerErr := &ProviderError{Provider: "Gemini", StatusCode: 429, Message: "quota exceeded"}
	provider := &mocks.MockVisionProvider{}
	provider.On("Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", providerErr)

	svc := NewFridgeService(provider)
	result, err := svc.AnalyzeFridge(context.Background(), &types.UploadedImage{Data: []byte("png"), MIMEType: "image/png"})

	assert.Nil(t, result)
	var perr *ProviderError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "quota exceeded", perr.Message)
}

func TestFridgeService_EmptyImage(t *testing.T) {
	provider := &mocks.MockVisionProvider{}
	svc := NewFridgeService(provider)

	_, err := svc.AnalyzeFridge(context.Background(), &types.UploadedImage{MIMEType: "image/png"})
	assert.ErrorIs(t, err, ErrEmptyImage)

	_, err = svc.AnalyzeFridge(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyImage)

	provider.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
