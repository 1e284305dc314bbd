package api

import "github.com/pageza/fridge-recipes/backend/internal/types"

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// RecipesResponse is the body of GET /api/recipes
type RecipesResponse struct {
	Recipes []types.Recipe `json:"recipes"`
}

// AnalyzeResponse is the body of a successful fridge analysis.
// Recipes holds the raw model text for freeform results and the record list otherwise.
type AnalyzeResponse struct {
	Success bool               `json:"success"`
	Recipes interface{}        `json:"recipes"`
	Format  types.ResultFormat `json:"format"`
	Message string             `json:"message"`
}
