package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge-recipes/backend/internal/testhelpers"
	"github.com/pageza/fridge-recipes/backend/internal/types"
)

func TestRecipeService_ListSampleRecipes(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewRecipeService(db)

	recipes, err := svc.ListSampleRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 4)

	assert.Equal(t, "Pasta Carbonara", recipes[0].Name)
	assert.Equal(t, []string{"pasta", "eggs", "bacon", "parmesan", "black pepper"}, recipes[0].Ingredients)
	assert.Equal(t, types.FlexibleText("Cook pasta, mix with eggs and bacon, top with parmesan"), recipes[0].Instructions)
	assert.Equal(t, "Chicken Stir Fry", recipes[1].Name)
	assert.Equal(t, "Simple Salad", recipes[3].Name)
}

func TestRecipeService_ListSampleRecipesPostgres(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	svc := NewRecipeService(db)

	recipes, err := svc.ListSampleRecipes(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 4)
	assert.Equal(t, "Pasta Carbonara", recipes[0].Name)
}
