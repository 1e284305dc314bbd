package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/fridge-recipes/backend/internal/types"
)

// MockVisionProvider is a mock implementation of a vision provider
type MockVisionProvider struct {
	mock.Mock
}

// Name returns "mock"
func (m *MockVisionProvider) Name() string {
	return "mock"
}

// Analyze mocks the Analyze method
func (m *MockVisionProvider) Analyze(ctx context.Context, image []byte, mimeType, prompt string) (string, error) {
	args := m.Called(ctx, image, mimeType, prompt)
	return args.String(0), args.Error(1)
}

// MockFridgeService is a mock implementation of the fridge service
type MockFridgeService struct {
	mock.Mock
}

// AnalyzeFridge mocks the AnalyzeFridge method
func (m *MockFridgeService) AnalyzeFridge(ctx context.Context, image *types.UploadedImage) (*types.RecipeResult, error) {
	args := m.Called(ctx, image)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeResult), args.Error(1)
}

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// ListSampleRecipes mocks the ListSampleRecipes method
func (m *MockRecipeService) ListSampleRecipes(ctx context.Context) ([]types.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Recipe), args.Error(1)
}
