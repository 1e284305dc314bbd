package service

import (
	"encoding/json"
	"strings"

	"github.com/pageza/fridge-recipes/backend/internal/types"
)

// Fallback record values used when the model did not answer with recipe JSON
const (
	fallbackName        = "Recipe Suggestions"
	fallbackIngredients = "See details below"
	fallbackCookingTime = "Varies"
	fallbackDifficulty  = "See instructions"
)

// NormalizeResponse turns raw model output into a RecipeResult. It never fails:
// anything that is not recipe JSON becomes a single fallback record holding the full text.
func NormalizeResponse(raw string) *types.RecipeResult {
	if recipes, ok := parseRecipes(stripCodeFence(raw)); ok {
		return &types.RecipeResult{
			Format:  types.FormatStructured,
			Raw:     raw,
			Recipes: recipes,
		}
	}

	return &types.RecipeResult{
		Format: types.FormatFreeform,
		Raw:    raw,
		Recipes: []types.Recipe{{
			Name:         fallbackName,
			Ingredients:  []string{fallbackIngredients},
			Instructions: types.FlexibleText(raw),
			CookingTime:  fallbackCookingTime,
			Difficulty:   fallbackDifficulty,
		}},
	}
}

func parseRecipes(text string) ([]types.Recipe, bool) {
	if text == "" {
		return nil, false
	}

	switch text[0] {
	case '[':
		var recipes []types.Recipe
		if err := json.Unmarshal([]byte(text), &recipes); err != nil {
			return nil, false
		}
		return keepNamed(recipes)
	case '{':
		var wrapper struct {
			Recipes []types.Recipe `json:"recipes"`
		}
		if err := json.Unmarshal([]byte(text), &wrapper); err == nil && len(wrapper.Recipes) > 0 {
			return keepNamed(wrapper.Recipes)
		}

		var single types.Recipe
		if err := json.Unmarshal([]byte(text), &single); err != nil {
			return nil, false
		}
		return keepNamed([]types.Recipe{single})
	default:
		return nil, false
	}
}

// keepNamed drops records without a name; an all-empty result does not count as structured
func keepNamed(recipes []types.Recipe) ([]types.Recipe, bool) {
	out := make([]types.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		if r.Ingredients == nil {
			r.Ingredients = []string{}
		}
		out = append(out, r)
	}
	return out, len(out) > 0
}

// stripCodeFence removes a Markdown code fence such as ```json ... ``` around the payload
func stripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		return ""
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
