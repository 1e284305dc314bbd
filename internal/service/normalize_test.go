package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/fridge-recipes/backend/internal/types"
)

func TestNormalizeResponse_Structured(t *testing.T) {
	tests := []struct {
		name  string
		input string
		names []string
	}{
		{
			name:  "json array",
			input: `[{"name":"Omelette","ingredients":["eggs"],"instructions":"Whisk and fry","cookingTime":"10 minutes","difficulty":"Easy"},{"name":"Salad"}]`,
			names: []string{"Omelette", "Salad"},
		},
		{
			name:  "fenced json array",
			input: "```json\n[{\"name\":\"Frittata\",\"ingredients\":[\"eggs\",\"spinach\"]}]\n```",
			names: []string{"Frittata"},
		},
		{
			name:  "object with recipes key",
			input: `{"ingredients_found":["milk"],"recipes":[{"name":"Pancakes"}]}`,
			names: []string{"Pancakes"},
		},
		{
			name:  "single recipe object",
			input: `{"name":"Fried Rice","ingredients":"rice","instructions":["Cook rice","Fry"]}`,
			names: []string{"Fried Rice"},
		},
		{
			name:  "unnamed entries are dropped",
			input: `[{"name":""},{"name":"Toast"}]`,
			names: []string{"Toast"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeResponse(tt.input)
			require.NotNil(t, result)
			assert.Equal(t, types.FormatStructured, result.Format)
			assert.Equal(t, tt.input, result.Raw)

			names := make([]string, 0, len(result.Recipes))
			for _, r := range result.Recipes {
				names = append(names, r.Name)
				assert.NotNil(t, r.Ingredients)
			}
			assert.Equal(t, tt.names, names)
		})
	}
}

func TestNormalizeResponse_Fields(t *testing.T) {
	result := NormalizeResponse(`[{"name":"Omelette","ingredients":["eggs","cheese"],"instructions":["Whisk","Fry"],"cookingTime":10,"difficulty":"Easy"}]`)
	require.Len(t, result.Recipes, 1)

	r := result.Recipes[0]
	assert.Equal(t, []string{"eggs", "cheese"}, r.Ingredients)
	assert.Equal(t, types.FlexibleText("Whisk\nFry"), r.Instructions)
	assert.Equal(t, types.FlexibleText("10"), r.CookingTime)
	assert.Equal(t, types.FlexibleText("Easy"), r.Difficulty)
}

func TestNormalizeResponse_IsTotal(t *testing.T) {
	inputs := map[string]string{
		"plain prose":         "Recipe A: scramble the eggs. Recipe B: make a salad.",
		"empty string":        "",
		"whitespace":          "   \n\t",
		"empty array":         "[]",
		"array of numbers":    "[1, 2, 3]",
		"array of nulls":      "[null]",
		"json string":         `"just a string"`,
		"json number":         "42",
		"json null":           "null",
		"object without name": `{"ingredients":["eggs"]}`,
		"broken json":         `[{"name":"Soup"`,
		"bad field types":     `[{"name":"Soup","ingredients":42}]`,
		"unclosed fence":      "```json",
		"markdown":            "## Ingredients\n- eggs\n- milk\n\n## Recipes\n1. Omelette",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			var result *types.RecipeResult
			assert.NotPanics(t, func() { result = NormalizeResponse(input) })
			require.NotNil(t, result)
			require.NotEmpty(t, result.Recipes)

			assert.Equal(t, types.FormatFreeform, result.Format)
			assert.Equal(t, input, result.Raw)

			fallback := result.Recipes[0]
			assert.Equal(t, "Recipe Suggestions", fallback.Name)
			assert.Equal(t, []string{"See details below"}, fallback.Ingredients)
			assert.Equal(t, types.FlexibleText(input), fallback.Instructions)
			assert.Equal(t, types.FlexibleText("Varies"), fallback.CookingTime)
			assert.Equal(t, types.FlexibleText("See instructions"), fallback.Difficulty)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `[1]`, stripCodeFence("```json\n[1]\n```"))
	assert.Equal(t, `[1]`, stripCodeFence("```\n[1]```"))
	assert.Equal(t, `plain`, stripCodeFence("  plain  "))
	assert.Equal(t, ``, stripCodeFence("```"))
}
