package service

import (
	"context"

	"github.com/pageza/fridge-recipes/backend/internal/types"
)

// VisionProvider sends one image plus a prompt to a vision-capable completion API
// and returns the model's text answer.
type VisionProvider interface {
	Name() string
	Analyze(ctx context.Context, image []byte, mimeType, prompt string) (string, error)
}

// IFridgeService turns an uploaded fridge photo into recipe suggestions
type IFridgeService interface {
	AnalyzeFridge(ctx context.Context, image *types.UploadedImage) (*types.RecipeResult, error)
}

// IRecipeService serves the sample recipe catalog
type IRecipeService interface {
	ListSampleRecipes(ctx context.Context) ([]types.Recipe, error)
}
