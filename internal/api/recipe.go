package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/pageza/fridge-recipes/backend/internal/service"
)

// RecipeHandler serves the sample recipe catalog
type RecipeHandler struct {
	recipeService service.IRecipeService
}

// NewRecipeHandler creates a new recipe handler
func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recipes", h.ListRecipes)
}

// ListRecipes returns the sample recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListSampleRecipes(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("failed to list sample recipes")
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, RecipesResponse{Recipes: recipes})
}
