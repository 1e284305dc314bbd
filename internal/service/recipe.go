package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/fridge-recipes/backend/internal/model"
	"github.com/pageza/fridge-recipes/backend/internal/types"
)

// RecipeService reads the sample recipe catalog
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListSampleRecipes returns the catalog in seed order
func (s *RecipeService) ListSampleRecipes(ctx context.Context) ([]types.Recipe, error) {
	var rows []model.SampleRecipe
	if err := s.db.WithContext(ctx).Order("position ASC").Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list sample recipes: %w", err)
	}

	recipes := make([]types.Recipe, 0, len(rows))
	for _, row := range rows {
		ingredients := []string(row.Ingredients)
		if ingredients == nil {
			ingredients = []string{}
		}
		recipes = append(recipes, types.Recipe{
			Name:         row.Name,
			Ingredients:  ingredients,
			Instructions: types.FlexibleText(row.Instructions),
			CookingTime:  types.FlexibleText(row.CookingTime),
			Difficulty:   types.FlexibleText(row.Difficulty),
		})
	}
	return recipes, nil
}
